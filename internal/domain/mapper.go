package domain

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"time-track-invoice/internal/repository/sqlite"
)

// JobMapper handles conversion between domain and database Job models.
type JobMapper struct{}

// NewJobMapper creates a new JobMapper instance.
func NewJobMapper() *JobMapper {
	return &JobMapper{}
}

// ToDatabase converts a domain Job to a database Job.
func (m *JobMapper) ToDatabase(domainJob Job) sqlite.Job {
	dbJob := sqlite.Job{
		ID:         domainJob.ID,
		Name:       domainJob.Name,
		HourlyRate: domainJob.HourlyRate.String(),
		CreatedAt:  formatTimestamp(domainJob.CreatedAt),
	}
	if domainJob.ClientID != "" {
		clientID := domainJob.ClientID
		dbJob.ClientID = &clientID
	}
	return dbJob
}

// FromDatabase converts a database Job to a domain Job.
func (m *JobMapper) FromDatabase(dbJob sqlite.Job) (Job, error) {
	rate, err := decimal.NewFromString(dbJob.HourlyRate)
	if err != nil {
		return Job{}, fmt.Errorf("parse hourly rate %q: %w", dbJob.HourlyRate, err)
	}

	job := Job{
		ID:         dbJob.ID,
		Name:       dbJob.Name,
		HourlyRate: rate,
		CreatedAt:  parseTimestamp(dbJob.CreatedAt),
	}
	if dbJob.ClientID != nil {
		job.ClientID = *dbJob.ClientID
	}
	return job, nil
}

// FromDatabaseSlice converts a slice of database Jobs to domain Jobs.
func (m *JobMapper) FromDatabaseSlice(dbJobs []*sqlite.Job) ([]Job, error) {
	jobs := make([]Job, len(dbJobs))
	for i, dbJob := range dbJobs {
		job, err := m.FromDatabase(*dbJob)
		if err != nil {
			return nil, err
		}
		jobs[i] = job
	}
	return jobs, nil
}

// SessionMapper handles conversion between domain and database Session models.
type SessionMapper struct{}

// NewSessionMapper creates a new SessionMapper instance.
func NewSessionMapper() *SessionMapper {
	return &SessionMapper{}
}

// ToDatabase converts a domain Session to a database Session.
func (m *SessionMapper) ToDatabase(domainSession Session) sqlite.Session {
	dbSession := sqlite.Session{
		ID:         domainSession.ID,
		JobID:      domainSession.JobID,
		StartTime:  domainSession.StartTime.UnixMilli(),
		DurationMs: domainSession.Duration.Milliseconds(),
		CreatedAt:  formatTimestamp(domainSession.CreatedAt),
	}
	if domainSession.EndTime != nil {
		endMs := domainSession.EndTime.UnixMilli()
		dbSession.EndTime = &endMs
	}
	return dbSession
}

// FromDatabase converts a database Session to a domain Session.
func (m *SessionMapper) FromDatabase(dbSession sqlite.Session) Session {
	session := Session{
		ID:        dbSession.ID,
		JobID:     dbSession.JobID,
		StartTime: time.UnixMilli(dbSession.StartTime),
		Duration:  time.Duration(dbSession.DurationMs) * time.Millisecond,
		CreatedAt: parseTimestamp(dbSession.CreatedAt),
	}
	if dbSession.EndTime != nil {
		end := time.UnixMilli(*dbSession.EndTime)
		session.EndTime = &end
	}
	return session
}

// FromDatabaseSlice converts a slice of database Sessions to domain Sessions.
func (m *SessionMapper) FromDatabaseSlice(dbSessions []*sqlite.Session) []Session {
	sessions := make([]Session, len(dbSessions))
	for i, dbSession := range dbSessions {
		sessions[i] = m.FromDatabase(*dbSession)
	}
	return sessions
}

// ClientMapper handles conversion between domain and database Client models.
type ClientMapper struct{}

// NewClientMapper creates a new ClientMapper instance.
func NewClientMapper() *ClientMapper {
	return &ClientMapper{}
}

// ToDatabase converts a domain Client to a database Client.
func (m *ClientMapper) ToDatabase(domainClient Client) sqlite.Client {
	return sqlite.Client{
		ID:        domainClient.ID,
		Name:      domainClient.Name,
		Email:     domainClient.Email,
		Phone:     domainClient.Phone,
		Address:   domainClient.Address,
		Town:      domainClient.Town,
		County:    domainClient.County,
		Postcode:  domainClient.Postcode,
		Terms:     domainClient.Terms,
		CreatedAt: formatTimestamp(domainClient.CreatedAt),
	}
}

// FromDatabase converts a database Client to a domain Client.
func (m *ClientMapper) FromDatabase(dbClient sqlite.Client) Client {
	return Client{
		ID:        dbClient.ID,
		Name:      dbClient.Name,
		Email:     dbClient.Email,
		Phone:     dbClient.Phone,
		Address:   dbClient.Address,
		Town:      dbClient.Town,
		County:    dbClient.County,
		Postcode:  dbClient.Postcode,
		Terms:     dbClient.Terms,
		CreatedAt: parseTimestamp(dbClient.CreatedAt),
	}
}

// FromDatabaseSlice converts a slice of database Clients to domain Clients.
func (m *ClientMapper) FromDatabaseSlice(dbClients []*sqlite.Client) []Client {
	clients := make([]Client, len(dbClients))
	for i, dbClient := range dbClients {
		clients[i] = m.FromDatabase(*dbClient)
	}
	return clients
}

// InvoiceMapper handles conversion between domain and database Invoice models.
type InvoiceMapper struct{}

// NewInvoiceMapper creates a new InvoiceMapper instance.
func NewInvoiceMapper() *InvoiceMapper {
	return &InvoiceMapper{}
}

// ToDatabase converts a domain Invoice to a database Invoice.
func (m *InvoiceMapper) ToDatabase(domainInvoice Invoice) (sqlite.Invoice, error) {
	items := domainInvoice.LineItems
	if items == nil {
		items = []LineItem{}
	}
	lineItems, err := json.Marshal(items)
	if err != nil {
		return sqlite.Invoice{}, fmt.Errorf("encode line items: %w", err)
	}

	dbInvoice := sqlite.Invoice{
		ID:          domainInvoice.ID,
		PeriodStart: domainInvoice.PeriodStart.UnixMilli(),
		PeriodEnd:   domainInvoice.PeriodEnd.UnixMilli(),
		LineItems:   string(lineItems),
		Total:       domainInvoice.Total.String(),
		CreatedAt:   formatTimestamp(domainInvoice.CreatedAt),
	}
	if domainInvoice.ClientID != "" {
		clientID := domainInvoice.ClientID
		dbInvoice.ClientID = &clientID
	}
	return dbInvoice, nil
}

// FromDatabase converts a database Invoice to a domain Invoice.
func (m *InvoiceMapper) FromDatabase(dbInvoice sqlite.Invoice) (Invoice, error) {
	var lineItems []LineItem
	if err := json.Unmarshal([]byte(dbInvoice.LineItems), &lineItems); err != nil {
		return Invoice{}, fmt.Errorf("decode line items: %w", err)
	}

	total, err := decimal.NewFromString(dbInvoice.Total)
	if err != nil {
		return Invoice{}, fmt.Errorf("parse total %q: %w", dbInvoice.Total, err)
	}

	invoice := Invoice{
		ID:          dbInvoice.ID,
		PeriodStart: time.UnixMilli(dbInvoice.PeriodStart),
		PeriodEnd:   time.UnixMilli(dbInvoice.PeriodEnd),
		LineItems:   lineItems,
		Total:       total,
		CreatedAt:   parseTimestamp(dbInvoice.CreatedAt),
	}
	if dbInvoice.ClientID != nil {
		invoice.ClientID = *dbInvoice.ClientID
	}
	return invoice, nil
}

// FromDatabaseSlice converts a slice of database Invoices to domain Invoices.
func (m *InvoiceMapper) FromDatabaseSlice(dbInvoices []*sqlite.Invoice) ([]Invoice, error) {
	invoices := make([]Invoice, len(dbInvoices))
	for i, dbInvoice := range dbInvoices {
		invoice, err := m.FromDatabase(*dbInvoice)
		if err != nil {
			return nil, err
		}
		invoices[i] = invoice
	}
	return invoices, nil
}

// SettingsMapper handles conversion between domain and database Settings models.
type SettingsMapper struct{}

// NewSettingsMapper creates a new SettingsMapper instance.
func NewSettingsMapper() *SettingsMapper {
	return &SettingsMapper{}
}

// ToDatabase converts domain Settings to database Settings.
func (m *SettingsMapper) ToDatabase(domainSettings Settings) sqlite.Settings {
	return sqlite.Settings(domainSettings)
}

// FromDatabase converts database Settings to domain Settings.
func (m *SettingsMapper) FromDatabase(dbSettings sqlite.Settings) Settings {
	return Settings(dbSettings)
}

// Mapper aggregates all entity mappers for convenient dependency injection.
type Mapper struct {
	Job      *JobMapper
	Session  *SessionMapper
	Client   *ClientMapper
	Invoice  *InvoiceMapper
	Settings *SettingsMapper
}

// NewMapper creates a new Mapper with all entity mappers initialized.
func NewMapper() *Mapper {
	return &Mapper{
		Job:      NewJobMapper(),
		Session:  NewSessionMapper(),
		Client:   NewClientMapper(),
		Invoice:  NewInvoiceMapper(),
		Settings: NewSettingsMapper(),
	}
}

func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func parseTimestamp(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
