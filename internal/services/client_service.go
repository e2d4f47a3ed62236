package services

import (
	"context"

	"go.uber.org/zap"

	"time-track-invoice/internal/domain"
	"time-track-invoice/internal/repository/sqlite"
	"time-track-invoice/internal/validation"
)

// clientServiceImpl implements the ClientService interface
type clientServiceImpl struct {
	repo            sqlite.Repository
	mapper          *domain.Mapper
	clientValidator *validation.ClientValidator
	logger          *zap.Logger
}

// NewClientService creates a new ClientService instance with default
// validation limits
func NewClientService(repo sqlite.Repository, logger *zap.Logger) ClientService {
	return NewClientServiceWithValidator(repo, validation.NewValidator(), logger)
}

// NewClientServiceWithValidator creates a ClientService whose validator
// shares the given base validator
func NewClientServiceWithValidator(repo sqlite.Repository, v *validation.Validator, logger *zap.Logger) ClientService {
	return &clientServiceImpl{
		repo:            repo,
		mapper:          domain.NewMapper(),
		clientValidator: validation.NewClientValidatorWithValidator(v),
		logger:          logger,
	}
}

// AddClient creates a new client record
func (c *clientServiceImpl) AddClient(ctx context.Context, client domain.Client) (*domain.Client, error) {
	if err := c.clientValidator.ValidateClientName(client.Name); err != nil {
		return nil, err
	}
	if err := c.clientValidator.ValidateEmail(client.Email); err != nil {
		return nil, err
	}

	dbClient := c.mapper.Client.ToDatabase(client)
	if err := c.repo.CreateClient(ctx, &dbClient); err != nil {
		return nil, err
	}

	created := c.mapper.Client.FromDatabase(dbClient)
	return &created, nil
}

// GetClient retrieves a client by its ID
func (c *clientServiceImpl) GetClient(ctx context.Context, id string) (*domain.Client, error) {
	if err := c.clientValidator.ValidateClientID(id); err != nil {
		return nil, err
	}

	dbClient, err := c.repo.GetClient(ctx, id)
	if err != nil {
		return nil, err
	}

	client := c.mapper.Client.FromDatabase(*dbClient)
	return &client, nil
}

// ListClients retrieves all clients in creation order
func (c *clientServiceImpl) ListClients(ctx context.Context) ([]domain.Client, error) {
	dbClients, err := c.repo.ListClients(ctx)
	if err != nil {
		return nil, err
	}
	return c.mapper.Client.FromDatabaseSlice(dbClients), nil
}

// UpdateClient replaces a client's details
func (c *clientServiceImpl) UpdateClient(ctx context.Context, id string, client domain.Client) error {
	if err := c.clientValidator.ValidateClientID(id); err != nil {
		return err
	}
	if err := c.clientValidator.ValidateClientName(client.Name); err != nil {
		return err
	}
	if err := c.clientValidator.ValidateEmail(client.Email); err != nil {
		return err
	}

	existing, err := c.repo.GetClient(ctx, id)
	if err != nil {
		return err
	}

	dbClient := c.mapper.Client.ToDatabase(client)
	dbClient.ID = existing.ID
	dbClient.CreatedAt = existing.CreatedAt
	return c.repo.UpdateClient(ctx, &dbClient)
}

// DeleteClient removes the client, then clears the client reference on
// every job that pointed at it. The sweep is best-effort: each unlink is
// independent, and a failed unlink is reported without aborting the
// others or rolling back the deletion.
func (c *clientServiceImpl) DeleteClient(ctx context.Context, id string) error {
	if err := c.clientValidator.ValidateClientID(id); err != nil {
		return err
	}

	jobs, err := c.repo.ListJobsByClient(ctx, id)
	if err != nil {
		return err
	}

	if err := c.repo.DeleteClient(ctx, id); err != nil {
		return err
	}

	failures := 0
	for _, job := range jobs {
		if err := c.repo.UnassignClientFromJob(ctx, job.ID); err != nil {
			failures++
			c.logger.Warn("failed to unlink job from deleted client",
				zap.String("client_id", id),
				zap.String("job_id", job.ID),
				zap.Error(err))
		}
	}
	if failures > 0 {
		c.logger.Warn("client deleted with incomplete unlink sweep",
			zap.String("client_id", id),
			zap.Int("failed_unlinks", failures),
			zap.Int("total_jobs", len(jobs)))
	}

	return nil
}
