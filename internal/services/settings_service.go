package services

import (
	"context"

	"go.uber.org/zap"

	"time-track-invoice/internal/domain"
	"time-track-invoice/internal/repository/sqlite"
)

// settingsServiceImpl implements the SettingsService interface
type settingsServiceImpl struct {
	repo   sqlite.Repository
	mapper *domain.Mapper
	logger *zap.Logger
}

// NewSettingsService creates a new SettingsService instance
func NewSettingsService(repo sqlite.Repository, logger *zap.Logger) SettingsService {
	return &settingsServiceImpl{
		repo:   repo,
		mapper: domain.NewMapper(),
		logger: logger,
	}
}

// Get returns the business-details record. A record that has never been
// written reads as empty settings.
func (s *settingsServiceImpl) Get(ctx context.Context) (*domain.Settings, error) {
	dbSettings, err := s.repo.GetSettings(ctx)
	if err != nil {
		return nil, err
	}

	settings := s.mapper.Settings.FromDatabase(*dbSettings)
	return &settings, nil
}

// Update replaces the business-details record
func (s *settingsServiceImpl) Update(ctx context.Context, settings domain.Settings) error {
	dbSettings := s.mapper.Settings.ToDatabase(settings)
	return s.repo.PutSettings(ctx, &dbSettings)
}
