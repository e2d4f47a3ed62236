package services

import (
	"go.uber.org/zap"

	"time-track-invoice/internal/config"
	"time-track-invoice/internal/repository/sqlite"
	"time-track-invoice/internal/validation"
)

// NewServiceContainer wires every service over the shared repository.
// All services validate against the limits in cfg through one shared
// base validator; a nil cfg falls back to the built-in defaults.
func NewServiceContainer(repo sqlite.Repository, cfg *config.Config, logger *zap.Logger) *ServiceContainer {
	v := validation.NewValidatorWithConfig(cfg)
	return &ServiceContainer{
		Sessions: NewSessionServiceWithValidator(repo, v, logger),
		Jobs:     NewJobServiceWithValidator(repo, v, logger),
		Clients:  NewClientServiceWithValidator(repo, v, logger),
		Invoices: NewInvoiceServiceWithValidator(repo, v, logger),
		Settings: NewSettingsService(repo, logger),
	}
}
