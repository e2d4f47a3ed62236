package api

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"time-track-invoice/internal/domain"
	"time-track-invoice/internal/render"
	"time-track-invoice/internal/services"
)

// API defines the interface for all tracking and invoicing operations.
type API interface {
	// Job operations
	CreateJob(ctx context.Context, name string, hourlyRate decimal.Decimal, clientID string) (*domain.Job, error)
	GetJob(ctx context.Context, id string) (*domain.Job, error)
	ListJobs(ctx context.Context) ([]*services.JobView, error)
	AssignClient(ctx context.Context, jobID, clientID string) error
	DeleteJob(ctx context.Context, id string) error

	// Session operations
	StartTimer(ctx context.Context, jobID string) (*domain.Session, error)
	StopTimer(ctx context.Context, jobID string) (*domain.Session, error)
	AddManualEntry(ctx context.Context, jobID string, start, end time.Time) (*domain.Session, error)
	DeleteSession(ctx context.Context, sessionID string) error
	ActiveSession(ctx context.Context) (*domain.Session, error)

	// Client operations
	CreateClient(ctx context.Context, client domain.Client) (*domain.Client, error)
	GetClient(ctx context.Context, id string) (*domain.Client, error)
	ListClients(ctx context.Context) ([]domain.Client, error)
	UpdateClient(ctx context.Context, id string, client domain.Client) error
	DeleteClient(ctx context.Context, id string) error

	// Invoice operations
	ComputeInvoice(ctx context.Context, clientID string, period services.Period, manualItems []domain.LineItem) (*services.ComputedInvoice, error)
	BuildInvoiceDocument(ctx context.Context, computed *services.ComputedInvoice) (*render.InvoiceDocument, error)
	SaveInvoice(ctx context.Context, computed *services.ComputedInvoice) (*domain.Invoice, error)
	UpdateInvoice(ctx context.Context, id string, computed *services.ComputedInvoice) error
	DeleteInvoice(ctx context.Context, id string) error
	ListInvoices(ctx context.Context) ([]domain.Invoice, error)
	GetInvoice(ctx context.Context, id string) (*domain.Invoice, error)

	// Settings operations
	GetSettings(ctx context.Context) (*domain.Settings, error)
	UpdateSettings(ctx context.Context, settings domain.Settings) error
}

type apiImpl struct {
	services *services.ServiceContainer
}

// New creates a new API instance over the service container.
func New(container *services.ServiceContainer) API {
	return &apiImpl{services: container}
}

// Job operations

func (a *apiImpl) CreateJob(ctx context.Context, name string, hourlyRate decimal.Decimal, clientID string) (*domain.Job, error) {
	return a.services.Jobs.AddJob(ctx, name, hourlyRate, clientID)
}

func (a *apiImpl) GetJob(ctx context.Context, id string) (*domain.Job, error) {
	return a.services.Jobs.GetJob(ctx, id)
}

func (a *apiImpl) ListJobs(ctx context.Context) ([]*services.JobView, error) {
	return a.services.Jobs.JobsView(ctx)
}

func (a *apiImpl) AssignClient(ctx context.Context, jobID, clientID string) error {
	return a.services.Jobs.AssignClient(ctx, jobID, clientID)
}

func (a *apiImpl) DeleteJob(ctx context.Context, id string) error {
	return a.services.Jobs.DeleteJob(ctx, id)
}

// Session operations

func (a *apiImpl) StartTimer(ctx context.Context, jobID string) (*domain.Session, error) {
	return a.services.Sessions.StartTimer(ctx, jobID)
}

func (a *apiImpl) StopTimer(ctx context.Context, jobID string) (*domain.Session, error) {
	return a.services.Sessions.StopTimer(ctx, jobID)
}

func (a *apiImpl) AddManualEntry(ctx context.Context, jobID string, start, end time.Time) (*domain.Session, error) {
	return a.services.Sessions.AddManualEntry(ctx, jobID, start, end)
}

func (a *apiImpl) DeleteSession(ctx context.Context, sessionID string) error {
	return a.services.Sessions.DeleteSession(ctx, sessionID)
}

func (a *apiImpl) ActiveSession(ctx context.Context) (*domain.Session, error) {
	return a.services.Sessions.ActiveSession(ctx)
}

// Client operations

func (a *apiImpl) CreateClient(ctx context.Context, client domain.Client) (*domain.Client, error) {
	return a.services.Clients.AddClient(ctx, client)
}

func (a *apiImpl) GetClient(ctx context.Context, id string) (*domain.Client, error) {
	return a.services.Clients.GetClient(ctx, id)
}

func (a *apiImpl) ListClients(ctx context.Context) ([]domain.Client, error) {
	return a.services.Clients.ListClients(ctx)
}

func (a *apiImpl) UpdateClient(ctx context.Context, id string, client domain.Client) error {
	return a.services.Clients.UpdateClient(ctx, id, client)
}

func (a *apiImpl) DeleteClient(ctx context.Context, id string) error {
	return a.services.Clients.DeleteClient(ctx, id)
}

// Invoice operations

func (a *apiImpl) ComputeInvoice(ctx context.Context, clientID string, period services.Period, manualItems []domain.LineItem) (*services.ComputedInvoice, error) {
	return a.services.Invoices.ComputeInvoice(ctx, clientID, period, manualItems)
}

func (a *apiImpl) BuildInvoiceDocument(ctx context.Context, computed *services.ComputedInvoice) (*render.InvoiceDocument, error) {
	return a.services.Invoices.BuildDocument(ctx, computed)
}

func (a *apiImpl) SaveInvoice(ctx context.Context, computed *services.ComputedInvoice) (*domain.Invoice, error) {
	return a.services.Invoices.SaveInvoice(ctx, computed)
}

func (a *apiImpl) UpdateInvoice(ctx context.Context, id string, computed *services.ComputedInvoice) error {
	return a.services.Invoices.UpdateInvoice(ctx, id, computed)
}

func (a *apiImpl) DeleteInvoice(ctx context.Context, id string) error {
	return a.services.Invoices.DeleteInvoice(ctx, id)
}

func (a *apiImpl) ListInvoices(ctx context.Context) ([]domain.Invoice, error) {
	return a.services.Invoices.ListInvoices(ctx)
}

func (a *apiImpl) GetInvoice(ctx context.Context, id string) (*domain.Invoice, error) {
	return a.services.Invoices.GetInvoice(ctx, id)
}

// Settings operations

func (a *apiImpl) GetSettings(ctx context.Context) (*domain.Settings, error) {
	return a.services.Settings.Get(ctx)
}

func (a *apiImpl) UpdateSettings(ctx context.Context, settings domain.Settings) error {
	return a.services.Settings.Update(ctx, settings)
}
