// Package directory defines the application's core deal-directory domain entities.
package directory

// Category is the closed set of listing categories. The pseudo-category
// CategoryAll exists only for filtering and is never stored on a listing.
type Category string

const (
	CategoryAll         Category = "All"
	CategoryRestaurants Category = "Restaurants"
	CategoryClothing    Category = "Clothing"
	CategoryGrocery     Category = "Grocery"
	CategoryPharma      Category = "Pharma"
	CategorySalon       Category = "Salon"
	CategoryElectronics Category = "Electronics"
	CategoryMore        Category = "More"
)

// Categories lists every storable category in display order.
var Categories = []Category{
	CategoryRestaurants,
	CategoryClothing,
	CategoryGrocery,
	CategoryPharma,
	CategorySalon,
	CategoryElectronics,
	CategoryMore,
}

// IsValid reports whether c is a storable category (CategoryAll is not).
func (c Category) IsValid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Listing is one business/deal record shown to the public. Order controls
// display rank; a nil Order marks a legacy record that sorts after all
// ranked listings until the next collection-wide save.
type Listing struct {
	ID        string      `json:"id"`
	Type      Category    `json:"type"`
	Name      string      `json:"name"`
	Photo     string      `json:"photo"`
	MainOffer string      `json:"mainOffer"`
	Address   string      `json:"address"`
	Contact   string      `json:"contact"`
	Menu      []*MenuItem `json:"menu,omitempty"`
	Offers    []*Offer    `json:"offers,omitempty"`
	Order     *int        `json:"order,omitempty"`
}

// MenuItem is one priced entry on a listing's menu.
type MenuItem struct {
	Name  string `json:"name"`
	Price string `json:"price"`
}

// Offer is one secondary promotion beneath the main offer.
type Offer struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Ranked reports whether the listing carries an explicit display rank.
func (l *Listing) Ranked() bool {
	return l.Order != nil
}

// Rank returns the listing's order, or the supplied sentinel when unranked.
func (l *Listing) Rank(sentinel int) int {
	if l.Order == nil {
		return sentinel
	}
	return *l.Order
}

// Settings is the singleton site settings document.
type Settings struct {
	Tagline string `json:"tagline"`
}

// Analytics is the singleton counter document: total public page views plus
// per-listing detail-view click-throughs.
type Analytics struct {
	Views  int            `json:"views"`
	Clicks map[string]int `json:"clicks"`
}
