package sqlite

// Storage models mirror the persisted document shape: session times are
// epoch milliseconds, monetary values are decimal strings and invoice
// line items are a JSON array, matching the records the engine syncs.

// Job represents a stored job record.
type Job struct {
	ID         string
	Name       string
	HourlyRate string
	ClientID   *string // NULL when the job is not assigned to a client
	CreatedAt  string  // RFC3339
}

// Session represents a stored time-tracking session.
type Session struct {
	ID         string
	JobID      string
	StartTime  int64  // epoch milliseconds
	EndTime    *int64 // NULL while the session is active
	DurationMs int64
	CreatedAt  string // RFC3339
}

// Client represents a stored client record.
type Client struct {
	ID        string
	Name      string
	Email     string
	Phone     string
	Address   string
	Town      string
	County    string
	Postcode  string
	Terms     string
	CreatedAt string // RFC3339
}

// Invoice represents a stored invoice snapshot.
type Invoice struct {
	ID          string
	ClientID    *string
	PeriodStart int64 // epoch milliseconds
	PeriodEnd   int64
	LineItems   string // JSON array of line items
	Total       string
	CreatedAt   string // RFC3339
}

// Settings represents the single stored business-details record.
type Settings struct {
	OwnerName       string
	Address         string
	Town            string
	County          string
	Postcode        string
	Phone           string
	Email           string
	VATNumber       string
	TermsConditions string
	BankAccountName string
	SortCode        string
	AccountNumber   string
}
