package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"time-track-invoice/internal/errors"
	"time-track-invoice/internal/repository/sqlite/migrations"

	_ "modernc.org/sqlite"
)

// SearchOptions contains all possible session search parameters. Both
// range bounds are inclusive and filter on the session start time.
type SearchOptions struct {
	JobID        *string
	StartFrom    *time.Time
	StartTo      *time.Time
	TerminalOnly bool
}

// Repository defines the persistence contract the engine works against.
// It is shape-compatible with a synced document store: string record ids,
// creation timestamps assigned on create, and snapshot subscriptions that
// deliver the full current result set after every change.
type Repository interface {
	// Job operations
	CreateJob(ctx context.Context, job *Job) error
	GetJob(ctx context.Context, id string) (*Job, error)
	ListJobs(ctx context.Context) ([]*Job, error)
	ListJobsByClient(ctx context.Context, clientID string) ([]*Job, error)
	UpdateJob(ctx context.Context, job *Job) error
	UnassignClientFromJob(ctx context.Context, jobID string) error
	DeleteJob(ctx context.Context, id string) error

	// Session operations
	CreateSession(ctx context.Context, session *Session) error
	GetSession(ctx context.Context, id string) (*Session, error)
	ListSessions(ctx context.Context) ([]*Session, error)
	SearchSessions(ctx context.Context, opts SearchOptions) ([]*Session, error)
	FindActiveSession(ctx context.Context) (*Session, error)
	FindActiveSessionForJob(ctx context.Context, jobID string) (*Session, error)
	UpdateSession(ctx context.Context, session *Session) error
	DeleteSession(ctx context.Context, id string) error

	// Client operations
	CreateClient(ctx context.Context, client *Client) error
	GetClient(ctx context.Context, id string) (*Client, error)
	ListClients(ctx context.Context) ([]*Client, error)
	UpdateClient(ctx context.Context, client *Client) error
	DeleteClient(ctx context.Context, id string) error

	// Invoice operations
	CreateInvoice(ctx context.Context, invoice *Invoice) error
	GetInvoice(ctx context.Context, id string) (*Invoice, error)
	ListInvoices(ctx context.Context) ([]*Invoice, error)
	UpdateInvoice(ctx context.Context, invoice *Invoice) error
	DeleteInvoice(ctx context.Context, id string) error

	// Settings operations
	GetSettings(ctx context.Context) (*Settings, error)
	PutSettings(ctx context.Context, settings *Settings) error

	// Snapshot subscriptions
	SubscribeJobs() (<-chan []*Job, func())
	SubscribeSessions() (<-chan []*Session, func())
	SubscribeClients() (<-chan []*Client, func())
	SubscribeInvoices() (<-chan []*Invoice, func())

	// Utility
	Close() error
}

// SQLiteRepository implements the Repository interface over an embedded
// sqlite database.
type SQLiteRepository struct {
	db     *DB
	logger *zap.Logger

	jobHub     *hub[Job]
	sessionHub *hub[Session]
	clientHub  *hub[Client]
	invoiceHub *hub[Invoice]
}

// New creates a new SQLite repository instance. Calls are bounded only
// by the caller's context; use NewWithTimeouts to cap individual calls.
func New(dbPath string, logger *zap.Logger) (*SQLiteRepository, error) {
	return NewWithTimeouts(dbPath, Timeouts{}, logger)
}

// NewWithTimeouts creates a repository whose reads and writes are each
// capped at the configured timeout on top of the caller's context.
func NewWithTimeouts(dbPath string, timeouts Timeouts, logger *zap.Logger) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, errors.NewPersistenceError("open database", err)
	}

	if err := migrations.Apply(db); err != nil {
		db.Close()
		return nil, errors.NewPersistenceError("apply migrations", err)
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	return &SQLiteRepository{
		db:         newDB(db, timeouts),
		logger:     logger,
		jobHub:     newHub[Job](),
		sessionHub: newHub[Session](),
		clientHub:  newHub[Client](),
		invoiceHub: newHub[Invoice](),
	}, nil
}

// Close closes the database connection
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

func nowRFC3339() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// ensureRecordMeta assigns a fresh id and creation timestamp where missing,
// mirroring server-assigned document ids and timestamps.
func ensureRecordMeta(id *string, createdAt *string) {
	if *id == "" {
		*id = uuid.NewString()
	}
	if *createdAt == "" {
		*createdAt = nowRFC3339()
	}
}

// Job operations

// CreateJob creates a new job record
func (r *SQLiteRepository) CreateJob(ctx context.Context, job *Job) error {
	ensureRecordMeta(&job.ID, &job.CreatedAt)

	query := `
	INSERT INTO jobs (id, name, hourly_rate, client_id, created_at)
	VALUES (?, ?, ?, ?, ?)`

	if err := Execute(ctx, r.db, query, job.ID, job.Name, job.HourlyRate, job.ClientID, job.CreatedAt); err != nil {
		return err
	}

	r.notifyJobs(ctx)
	return nil
}

// GetJob retrieves a job by ID
func (r *SQLiteRepository) GetJob(ctx context.Context, id string) (*Job, error) {
	query := `
	SELECT id, name, hourly_rate, client_id, created_at
	FROM jobs
	WHERE id = ?`

	return QuerySingle(ctx, r.db, query, ScanJob, "job", id, id)
}

// ListJobs retrieves all jobs in creation order
func (r *SQLiteRepository) ListJobs(ctx context.Context) ([]*Job, error) {
	query := `
	SELECT id, name, hourly_rate, client_id, created_at
	FROM jobs
	ORDER BY created_at ASC, id ASC`

	return QueryMultiple(ctx, r.db, query, ScanJobs, "jobs")
}

// ListJobsByClient retrieves all jobs assigned to the given client
func (r *SQLiteRepository) ListJobsByClient(ctx context.Context, clientID string) ([]*Job, error) {
	query := `
	SELECT id, name, hourly_rate, client_id, created_at
	FROM jobs
	WHERE client_id = ?
	ORDER BY created_at ASC, id ASC`

	return QueryMultiple(ctx, r.db, query, ScanJobs, "jobs", clientID)
}

// UpdateJob updates an existing job
func (r *SQLiteRepository) UpdateJob(ctx context.Context, job *Job) error {
	query := `
	UPDATE jobs
	SET name = ?, hourly_rate = ?, client_id = ?
	WHERE id = ?`

	if err := ExecuteWithRowsAffected(ctx, r.db, query, "job", job.ID, job.Name, job.HourlyRate, job.ClientID, job.ID); err != nil {
		return err
	}

	r.notifyJobs(ctx)
	return nil
}

// UnassignClientFromJob clears the client reference on a job
func (r *SQLiteRepository) UnassignClientFromJob(ctx context.Context, jobID string) error {
	query := `UPDATE jobs SET client_id = NULL WHERE id = ?`
	if err := ExecuteWithRowsAffected(ctx, r.db, query, "job", jobID, jobID); err != nil {
		return err
	}

	r.notifyJobs(ctx)
	return nil
}

// DeleteJob deletes a job by ID. Sessions referencing the job are retained.
func (r *SQLiteRepository) DeleteJob(ctx context.Context, id string) error {
	query := `DELETE FROM jobs WHERE id = ?`
	if err := ExecuteWithRowsAffected(ctx, r.db, query, "job", id, id); err != nil {
		return err
	}

	r.notifyJobs(ctx)
	return nil
}

// Session operations

// CreateSession creates a new session record
func (r *SQLiteRepository) CreateSession(ctx context.Context, session *Session) error {
	ensureRecordMeta(&session.ID, &session.CreatedAt)

	query := `
	INSERT INTO sessions (id, job_id, start_time, end_time, duration_ms, created_at)
	VALUES (?, ?, ?, ?, ?, ?)`

	if err := Execute(ctx, r.db, query, session.ID, session.JobID, session.StartTime, session.EndTime, session.DurationMs, session.CreatedAt); err != nil {
		return err
	}

	r.notifySessions(ctx)
	return nil
}

// GetSession retrieves a session by ID
func (r *SQLiteRepository) GetSession(ctx context.Context, id string) (*Session, error) {
	query := `
	SELECT id, job_id, start_time, end_time, duration_ms, created_at
	FROM sessions
	WHERE id = ?`

	return QuerySingle(ctx, r.db, query, ScanSession, "session", id, id)
}

// ListSessions retrieves all sessions ordered by start time
func (r *SQLiteRepository) ListSessions(ctx context.Context) ([]*Session, error) {
	query := `
	SELECT id, job_id, start_time, end_time, duration_ms, created_at
	FROM sessions
	ORDER BY start_time ASC`

	return QueryMultiple(ctx, r.db, query, ScanSessions, "sessions")
}

// SearchSessions searches for sessions based on the provided options
func (r *SQLiteRepository) SearchSessions(ctx context.Context, opts SearchOptions) ([]*Session, error) {
	var conditions []string
	var args []interface{}

	if opts.JobID != nil {
		conditions = append(conditions, "job_id = ?")
		args = append(args, *opts.JobID)
	}
	if opts.StartFrom != nil {
		conditions = append(conditions, "start_time >= ?")
		args = append(args, opts.StartFrom.UnixMilli())
	}
	if opts.StartTo != nil {
		conditions = append(conditions, "start_time <= ?")
		args = append(args, opts.StartTo.UnixMilli())
	}
	if opts.TerminalOnly {
		conditions = append(conditions, "end_time IS NOT NULL")
	}

	query := `
	SELECT id, job_id, start_time, end_time, duration_ms, created_at
	FROM sessions`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY start_time ASC"

	return QueryMultiple(ctx, r.db, query, ScanSessions, "sessions", args...)
}

// FindActiveSession returns the active session, if any. The result is
// nil when no session is running; absence is not an error.
func (r *SQLiteRepository) FindActiveSession(ctx context.Context) (*Session, error) {
	query := `
	SELECT id, job_id, start_time, end_time, duration_ms, created_at
	FROM sessions
	WHERE end_time IS NULL
	ORDER BY start_time ASC
	LIMIT 1`

	return QueryOptional(ctx, r.db, query, ScanSession, "session")
}

// FindActiveSessionForJob returns the active session for a job, if any.
func (r *SQLiteRepository) FindActiveSessionForJob(ctx context.Context, jobID string) (*Session, error) {
	query := `
	SELECT id, job_id, start_time, end_time, duration_ms, created_at
	FROM sessions
	WHERE end_time IS NULL AND job_id = ?
	ORDER BY start_time ASC
	LIMIT 1`

	return QueryOptional(ctx, r.db, query, ScanSession, "session", jobID)
}

// UpdateSession updates an existing session
func (r *SQLiteRepository) UpdateSession(ctx context.Context, session *Session) error {
	query := `
	UPDATE sessions
	SET job_id = ?, start_time = ?, end_time = ?, duration_ms = ?
	WHERE id = ?`

	if err := ExecuteWithRowsAffected(ctx, r.db, query, "session", session.ID, session.JobID, session.StartTime, session.EndTime, session.DurationMs, session.ID); err != nil {
		return err
	}

	r.notifySessions(ctx)
	return nil
}

// DeleteSession deletes a session by ID
func (r *SQLiteRepository) DeleteSession(ctx context.Context, id string) error {
	query := `DELETE FROM sessions WHERE id = ?`
	if err := ExecuteWithRowsAffected(ctx, r.db, query, "session", id, id); err != nil {
		return err
	}

	r.notifySessions(ctx)
	return nil
}

// Client operations

// CreateClient creates a new client record
func (r *SQLiteRepository) CreateClient(ctx context.Context, client *Client) error {
	ensureRecordMeta(&client.ID, &client.CreatedAt)

	query := `
	INSERT INTO clients (id, name, email, phone, address, town, county, postcode, terms, created_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	if err := Execute(ctx, r.db, query, client.ID, client.Name, client.Email, client.Phone, client.Address, client.Town, client.County, client.Postcode, client.Terms, client.CreatedAt); err != nil {
		return err
	}

	r.notifyClients(ctx)
	return nil
}

// GetClient retrieves a client by ID
func (r *SQLiteRepository) GetClient(ctx context.Context, id string) (*Client, error) {
	query := `
	SELECT id, name, email, phone, address, town, county, postcode, terms, created_at
	FROM clients
	WHERE id = ?`

	return QuerySingle(ctx, r.db, query, ScanClient, "client", id, id)
}

// ListClients retrieves all clients in creation order
func (r *SQLiteRepository) ListClients(ctx context.Context) ([]*Client, error) {
	query := `
	SELECT id, name, email, phone, address, town, county, postcode, terms, created_at
	FROM clients
	ORDER BY created_at ASC, id ASC`

	return QueryMultiple(ctx, r.db, query, ScanClients, "clients")
}

// UpdateClient updates an existing client
func (r *SQLiteRepository) UpdateClient(ctx context.Context, client *Client) error {
	query := `
	UPDATE clients
	SET name = ?, email = ?, phone = ?, address = ?, town = ?, county = ?, postcode = ?, terms = ?
	WHERE id = ?`

	if err := ExecuteWithRowsAffected(ctx, r.db, query, "client", client.ID, client.Name, client.Email, client.Phone, client.Address, client.Town, client.County, client.Postcode, client.Terms, client.ID); err != nil {
		return err
	}

	r.notifyClients(ctx)
	return nil
}

// DeleteClient deletes a client by ID. Jobs referencing the client are
// not touched here; unlinking is the caller's responsibility.
func (r *SQLiteRepository) DeleteClient(ctx context.Context, id string) error {
	query := `DELETE FROM clients WHERE id = ?`
	if err := ExecuteWithRowsAffected(ctx, r.db, query, "client", id, id); err != nil {
		return err
	}

	r.notifyClients(ctx)
	return nil
}

// Invoice operations

// CreateInvoice creates a new invoice snapshot
func (r *SQLiteRepository) CreateInvoice(ctx context.Context, invoice *Invoice) error {
	ensureRecordMeta(&invoice.ID, &invoice.CreatedAt)

	query := `
	INSERT INTO invoices (id, client_id, period_start, period_end, line_items, total, created_at)
	VALUES (?, ?, ?, ?, ?, ?, ?)`

	if err := Execute(ctx, r.db, query, invoice.ID, invoice.ClientID, invoice.PeriodStart, invoice.PeriodEnd, invoice.LineItems, invoice.Total, invoice.CreatedAt); err != nil {
		return err
	}

	r.notifyInvoices(ctx)
	return nil
}

// GetInvoice retrieves an invoice by ID
func (r *SQLiteRepository) GetInvoice(ctx context.Context, id string) (*Invoice, error) {
	query := `
	SELECT id, client_id, period_start, period_end, line_items, total, created_at
	FROM invoices
	WHERE id = ?`

	return QuerySingle(ctx, r.db, query, ScanInvoice, "invoice", id, id)
}

// ListInvoices retrieves all invoices in creation order
func (r *SQLiteRepository) ListInvoices(ctx context.Context) ([]*Invoice, error) {
	query := `
	SELECT id, client_id, period_start, period_end, line_items, total, created_at
	FROM invoices
	ORDER BY created_at ASC, id ASC`

	return QueryMultiple(ctx, r.db, query, ScanInvoices, "invoices")
}

// UpdateInvoice replaces a stored invoice snapshot
func (r *SQLiteRepository) UpdateInvoice(ctx context.Context, invoice *Invoice) error {
	query := `
	UPDATE invoices
	SET client_id = ?, period_start = ?, period_end = ?, line_items = ?, total = ?
	WHERE id = ?`

	if err := ExecuteWithRowsAffected(ctx, r.db, query, "invoice", invoice.ID, invoice.ClientID, invoice.PeriodStart, invoice.PeriodEnd, invoice.LineItems, invoice.Total, invoice.ID); err != nil {
		return err
	}

	r.notifyInvoices(ctx)
	return nil
}

// DeleteInvoice deletes an invoice by ID
func (r *SQLiteRepository) DeleteInvoice(ctx context.Context, id string) error {
	query := `DELETE FROM invoices WHERE id = ?`
	if err := ExecuteWithRowsAffected(ctx, r.db, query, "invoice", id, id); err != nil {
		return err
	}

	r.notifyInvoices(ctx)
	return nil
}

// Settings operations

// GetSettings retrieves the business-details record. A missing record
// yields empty settings, matching the auto-created empty document.
func (r *SQLiteRepository) GetSettings(ctx context.Context) (*Settings, error) {
	query := `
	SELECT owner_name, address, town, county, postcode, phone, email, vat_number,
	       terms_conditions, bank_account_name, sort_code, account_number
	FROM settings
	WHERE id = 1`

	settings, err := QueryOptional(ctx, r.db, query, ScanSettings, "settings")
	if err != nil {
		return nil, err
	}
	if settings == nil {
		return &Settings{}, nil
	}
	return settings, nil
}

// PutSettings writes the business-details record, replacing any existing one
func (r *SQLiteRepository) PutSettings(ctx context.Context, settings *Settings) error {
	query := `
	INSERT INTO settings (id, owner_name, address, town, county, postcode, phone, email,
	                      vat_number, terms_conditions, bank_account_name, sort_code, account_number)
	VALUES (1, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
		owner_name = excluded.owner_name,
		address = excluded.address,
		town = excluded.town,
		county = excluded.county,
		postcode = excluded.postcode,
		phone = excluded.phone,
		email = excluded.email,
		vat_number = excluded.vat_number,
		terms_conditions = excluded.terms_conditions,
		bank_account_name = excluded.bank_account_name,
		sort_code = excluded.sort_code,
		account_number = excluded.account_number`

	return Execute(ctx, r.db, query,
		settings.OwnerName, settings.Address, settings.Town, settings.County,
		settings.Postcode, settings.Phone, settings.Email, settings.VATNumber,
		settings.TermsConditions, settings.BankAccountName, settings.SortCode,
		settings.AccountNumber)
}

// Snapshot subscriptions

// SubscribeJobs delivers the full job collection after every job mutation
func (r *SQLiteRepository) SubscribeJobs() (<-chan []*Job, func()) {
	return r.jobHub.subscribe()
}

// SubscribeSessions delivers the full session collection after every session mutation
func (r *SQLiteRepository) SubscribeSessions() (<-chan []*Session, func()) {
	return r.sessionHub.subscribe()
}

// SubscribeClients delivers the full client collection after every client mutation
func (r *SQLiteRepository) SubscribeClients() (<-chan []*Client, func()) {
	return r.clientHub.subscribe()
}

// SubscribeInvoices delivers the full invoice collection after every invoice mutation
func (r *SQLiteRepository) SubscribeInvoices() (<-chan []*Invoice, func()) {
	return r.invoiceHub.subscribe()
}

func (r *SQLiteRepository) notifyJobs(ctx context.Context) {
	jobs, err := r.ListJobs(ctx)
	if err != nil {
		r.logger.Warn("dropping jobs snapshot", zap.Error(err))
		return
	}
	r.jobHub.publish(jobs)
}

func (r *SQLiteRepository) notifySessions(ctx context.Context) {
	sessions, err := r.ListSessions(ctx)
	if err != nil {
		r.logger.Warn("dropping sessions snapshot", zap.Error(err))
		return
	}
	r.sessionHub.publish(sessions)
}

func (r *SQLiteRepository) notifyClients(ctx context.Context) {
	clients, err := r.ListClients(ctx)
	if err != nil {
		r.logger.Warn("dropping clients snapshot", zap.Error(err))
		return
	}
	r.clientHub.publish(clients)
}

func (r *SQLiteRepository) notifyInvoices(ctx context.Context) {
	invoices, err := r.ListInvoices(ctx)
	if err != nil {
		r.logger.Warn("dropping invoices snapshot", zap.Error(err))
		return
	}
	r.invoiceHub.publish(invoices)
}
