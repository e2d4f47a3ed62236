package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"time-track-invoice/internal/billing"
	"time-track-invoice/internal/domain"
	"time-track-invoice/internal/errors"
	"time-track-invoice/internal/render"
	"time-track-invoice/internal/repository/sqlite"
	"time-track-invoice/internal/validation"
)

// invoiceServiceImpl implements the InvoiceService interface
type invoiceServiceImpl struct {
	repo             sqlite.Repository
	mapper           *domain.Mapper
	clientValidator  *validation.ClientValidator
	invoiceValidator *validation.InvoiceValidator
	logger           *zap.Logger
}

// NewInvoiceService creates a new InvoiceService instance with default
// validation limits
func NewInvoiceService(repo sqlite.Repository, logger *zap.Logger) InvoiceService {
	return NewInvoiceServiceWithValidator(repo, validation.NewValidator(), logger)
}

// NewInvoiceServiceWithValidator creates an InvoiceService whose
// validators share the given base validator
func NewInvoiceServiceWithValidator(repo sqlite.Repository, v *validation.Validator, logger *zap.Logger) InvoiceService {
	return &invoiceServiceImpl{
		repo:             repo,
		mapper:           domain.NewMapper(),
		clientValidator:  validation.NewClientValidatorWithValidator(v),
		invoiceValidator: validation.NewInvoiceValidatorWithValidator(v),
		logger:           logger,
	}
}

// ComputeInvoice aggregates the client's tracked time within the period
// into line items, one per job with a nonzero qualifying duration, and
// appends the manual items unmodified. An empty selection is a valid
// result with no line items and a zero total, not an error.
func (i *invoiceServiceImpl) ComputeInvoice(ctx context.Context, clientID string, period Period, manualItems []domain.LineItem) (*ComputedInvoice, error) {
	if err := i.clientValidator.ValidateClientID(clientID); err != nil {
		return nil, err
	}
	if err := i.invoiceValidator.ValidatePeriod(period.Start, period.End); err != nil {
		return nil, err
	}

	// The client must exist
	if _, err := i.repo.GetClient(ctx, clientID); err != nil {
		return nil, err
	}

	dbJobs, err := i.repo.ListJobsByClient(ctx, clientID)
	if err != nil {
		return nil, err
	}
	jobs, err := i.mapper.Job.FromDatabaseSlice(dbJobs)
	if err != nil {
		return nil, err
	}

	lineItems := make([]domain.LineItem, 0, len(jobs)+len(manualItems))
	total := decimal.Zero

	for _, job := range jobs {
		jobID := job.ID
		dbSessions, err := i.repo.SearchSessions(ctx, sqlite.SearchOptions{
			JobID:        &jobID,
			StartFrom:    &period.Start,
			StartTo:      &period.End,
			TerminalOnly: true,
		})
		if err != nil {
			return nil, err
		}

		var totalDuration int64
		for _, session := range dbSessions {
			totalDuration += session.DurationMs
		}
		if totalDuration == 0 {
			// No zero-amount rows for jobs without qualifying time.
			continue
		}

		duration := msToDuration(totalDuration)
		item := domain.LineItem{
			Description: job.Name,
			Hours:       billing.Hours(duration),
			Rate:        job.HourlyRate,
			Amount:      billing.Earnings(duration, job.HourlyRate),
		}
		lineItems = append(lineItems, item)
		total = total.Add(item.Amount)
	}

	for _, item := range manualItems {
		if err := i.invoiceValidator.ValidateManualItemDescription(item.Description); err != nil {
			return nil, err
		}
		lineItems = append(lineItems, item)
		total = total.Add(item.Amount)
	}

	return &ComputedInvoice{
		ClientID:  clientID,
		Period:    period,
		LineItems: lineItems,
		Total:     total,
	}, nil
}

func msToDuration(ms int64) time.Duration {
	return time.Duration(ms) * time.Millisecond
}

// BuildDocument assembles the renderer data contract for a computed invoice.
func (i *invoiceServiceImpl) BuildDocument(ctx context.Context, computed *ComputedInvoice) (*render.InvoiceDocument, error) {
	if computed == nil {
		return nil, errors.NewValidationError("nothing to render: invoice has not been computed", nil)
	}

	doc := &render.InvoiceDocument{
		PeriodStart: computed.Period.Start,
		PeriodEnd:   computed.Period.End,
		LineItems:   computed.LineItems,
		Total:       computed.Total,
	}

	if computed.ClientID != "" {
		dbClient, err := i.repo.GetClient(ctx, computed.ClientID)
		if err != nil {
			return nil, err
		}
		client := i.mapper.Client.FromDatabase(*dbClient)
		doc.Client = &client
	}

	dbSettings, err := i.repo.GetSettings(ctx)
	if err != nil {
		return nil, err
	}
	doc.Settings = i.mapper.Settings.FromDatabase(*dbSettings)

	return doc, nil
}

// SaveInvoice persists a frozen snapshot of a computed invoice. Later
// session changes do not alter the snapshot.
func (i *invoiceServiceImpl) SaveInvoice(ctx context.Context, computed *ComputedInvoice) (*domain.Invoice, error) {
	if computed == nil {
		return nil, errors.NewValidationError("nothing to save: invoice has not been computed", nil)
	}

	dbInvoice, err := i.mapper.Invoice.ToDatabase(domain.Invoice{
		ClientID:    computed.ClientID,
		PeriodStart: computed.Period.Start,
		PeriodEnd:   computed.Period.End,
		LineItems:   computed.LineItems,
		Total:       computed.Total,
	})
	if err != nil {
		return nil, errors.NewValidationError("invoice could not be encoded", err)
	}

	if err := i.repo.CreateInvoice(ctx, &dbInvoice); err != nil {
		return nil, err
	}

	invoice, err := i.mapper.Invoice.FromDatabase(dbInvoice)
	if err != nil {
		return nil, err
	}
	return &invoice, nil
}

// UpdateInvoice replaces a stored snapshot with a newly computed one.
// The caller decides when to recompute; this method never aggregates.
func (i *invoiceServiceImpl) UpdateInvoice(ctx context.Context, id string, computed *ComputedInvoice) error {
	if err := i.invoiceValidator.ValidateInvoiceID(id); err != nil {
		return err
	}
	if computed == nil {
		return errors.NewValidationError("nothing to update: invoice has not been computed", nil)
	}

	// The snapshot must exist
	existing, err := i.repo.GetInvoice(ctx, id)
	if err != nil {
		return err
	}

	dbInvoice, err := i.mapper.Invoice.ToDatabase(domain.Invoice{
		ID:          id,
		ClientID:    computed.ClientID,
		PeriodStart: computed.Period.Start,
		PeriodEnd:   computed.Period.End,
		LineItems:   computed.LineItems,
		Total:       computed.Total,
	})
	if err != nil {
		return errors.NewValidationError("invoice could not be encoded", err)
	}
	dbInvoice.CreatedAt = existing.CreatedAt

	return i.repo.UpdateInvoice(ctx, &dbInvoice)
}

// DeleteInvoice removes a stored snapshot
func (i *invoiceServiceImpl) DeleteInvoice(ctx context.Context, id string) error {
	if err := i.invoiceValidator.ValidateInvoiceID(id); err != nil {
		return err
	}
	return i.repo.DeleteInvoice(ctx, id)
}

// ListInvoices retrieves all stored snapshots in creation order
func (i *invoiceServiceImpl) ListInvoices(ctx context.Context) ([]domain.Invoice, error) {
	dbInvoices, err := i.repo.ListInvoices(ctx)
	if err != nil {
		return nil, err
	}
	return i.mapper.Invoice.FromDatabaseSlice(dbInvoices)
}

// GetInvoice retrieves a stored snapshot by ID
func (i *invoiceServiceImpl) GetInvoice(ctx context.Context, id string) (*domain.Invoice, error) {
	if err := i.invoiceValidator.ValidateInvoiceID(id); err != nil {
		return nil, err
	}

	dbInvoice, err := i.repo.GetInvoice(ctx, id)
	if err != nil {
		return nil, err
	}

	invoice, err := i.mapper.Invoice.FromDatabase(*dbInvoice)
	if err != nil {
		return nil, err
	}
	return &invoice, nil
}
