package services

import (
	"github.com/gulbargadeals/deals-go/internal/domain/repositories"
	"github.com/gulbargadeals/deals-go/internal/infrastructure/observability/logging"
)

// SettingsService orchestrates the singleton site settings.
type SettingsService struct {
	settingsRepo repositories.SettingsRepository
	logger       *logging.ChanneledLogger
}

// NewSettingsService creates a new settings application service
func NewSettingsService(settingsRepo repositories.SettingsRepository, logger *logging.ChanneledLogger) *SettingsService {
	return &SettingsService{
		settingsRepo: settingsRepo,
		logger:       logger,
	}
}

// GetTagline returns the site tagline; read failures substitute the default.
func (s *SettingsService) GetTagline() string {
	return s.settingsRepo.GetTagline()
}

// SaveTagline upserts the tagline, preserving sibling settings fields.
func (s *SettingsService) SaveTagline(tagline string) error {
	if err := s.settingsRepo.SaveTagline(tagline); err != nil {
		return err
	}
	s.logger.Content().Info("Tagline updated")
	return nil
}
