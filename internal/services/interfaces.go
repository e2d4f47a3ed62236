package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"time-track-invoice/internal/domain"
	"time-track-invoice/internal/render"
)

// Period represents an inclusive date range; both bounds filter on
// session start times.
type Period struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// JobTotals holds the aggregated tracked time and earnings for one job.
type JobTotals struct {
	TotalDuration time.Duration   `json:"total_duration"`
	TotalEarnings decimal.Decimal `json:"total_earnings"`
}

// JobView is a job prepared for rendering: the resolved client name and
// the job's terminal sessions sorted most recent first.
type JobView struct {
	Job        domain.Job       `json:"job"`
	ClientName string           `json:"client_name"` // empty when unassigned
	Sessions   []domain.Session `json:"sessions"`
	Totals     JobTotals        `json:"totals"`
}

// ComputedInvoice is a live invoice computation result, distinct from a
// persisted snapshot.
type ComputedInvoice struct {
	ClientID  string            `json:"client_id"`
	Period    Period            `json:"period"`
	LineItems []domain.LineItem `json:"line_items"`
	Total     decimal.Decimal   `json:"total"`
}

// SessionService handles the session lifecycle: timers and manual entries
type SessionService interface {
	// StartTimer begins a running session for the job. It fails with a
	// conflict error while any session is active.
	StartTimer(ctx context.Context, jobID string) (*domain.Session, error)

	// StopTimer ends the active session for the job, rounding the
	// elapsed time up to the billing increment.
	StopTimer(ctx context.Context, jobID string) (*domain.Session, error)

	// AddManualEntry records an already-finished interval. Manual
	// entries are terminal at creation and may coexist with a running timer.
	AddManualEntry(ctx context.Context, jobID string, start, end time.Time) (*domain.Session, error)

	// DeleteSession removes a session unconditionally.
	DeleteSession(ctx context.Context, sessionID string) error

	// ActiveSession returns the running session, or nil when none exists.
	ActiveSession(ctx context.Context) (*domain.Session, error)
}

// JobService handles job lifecycle and per-job aggregation
type JobService interface {
	AddJob(ctx context.Context, name string, hourlyRate decimal.Decimal, clientID string) (*domain.Job, error)
	GetJob(ctx context.Context, id string) (*domain.Job, error)

	// AssignClient links a job to a client; an empty clientID clears the link.
	AssignClient(ctx context.Context, jobID, clientID string) error

	// DeleteJob removes the job. Its sessions are retained as orphans.
	DeleteJob(ctx context.Context, id string) error

	// JobsView returns all jobs most recently created first, each with
	// its terminal sessions sorted descending by start time.
	JobsView(ctx context.Context) ([]*JobView, error)

	// Totals aggregates tracked time and earnings for a job. Sessions
	// belonging to other jobs or still running are excluded.
	Totals(job domain.Job, sessions []domain.Session) JobTotals
}

// ClientService handles the client roster and client-job link maintenance
type ClientService interface {
	AddClient(ctx context.Context, client domain.Client) (*domain.Client, error)
	GetClient(ctx context.Context, id string) (*domain.Client, error)
	ListClients(ctx context.Context) ([]domain.Client, error)
	UpdateClient(ctx context.Context, id string, client domain.Client) error

	// DeleteClient removes the client, then unlinks every referencing
	// job best-effort: an individual unlink failure is reported but
	// does not abort the sweep or undo the deletion.
	DeleteClient(ctx context.Context, id string) error
}

// InvoiceService handles live invoice computation and snapshot lifecycle
type InvoiceService interface {
	// ComputeInvoice aggregates the client's sessions within the period
	// into line items and appends the manual items unmodified.
	ComputeInvoice(ctx context.Context, clientID string, period Period, manualItems []domain.LineItem) (*ComputedInvoice, error)

	// BuildDocument assembles the data contract for a document renderer.
	BuildDocument(ctx context.Context, computed *ComputedInvoice) (*render.InvoiceDocument, error)

	// Snapshot lifecycle; none of these re-run aggregation.
	SaveInvoice(ctx context.Context, computed *ComputedInvoice) (*domain.Invoice, error)
	UpdateInvoice(ctx context.Context, id string, computed *ComputedInvoice) error
	DeleteInvoice(ctx context.Context, id string) error
	ListInvoices(ctx context.Context) ([]domain.Invoice, error)
	GetInvoice(ctx context.Context, id string) (*domain.Invoice, error)
}

// SettingsService handles the per-account business details record
type SettingsService interface {
	Get(ctx context.Context) (*domain.Settings, error)
	Update(ctx context.Context, settings domain.Settings) error
}

// ServiceContainer manages all services and their dependencies
type ServiceContainer struct {
	Sessions SessionService
	Jobs     JobService
	Clients  ClientService
	Invoices InvoiceService
	Settings SettingsService
}
