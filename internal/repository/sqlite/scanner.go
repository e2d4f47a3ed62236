package sqlite

import (
	"database/sql"
)

// Scanner interface defines the common scanning behavior for both sql.Row and sql.Rows
type Scanner interface {
	Scan(dest ...interface{}) error
}

// Rows interface defines the common behavior for sql.Rows
type Rows interface {
	Next() bool
	Scan(dest ...interface{}) error
	Err() error
}

// ScanJob scans a single job from a database row
func ScanJob(scanner Scanner) (*Job, error) {
	job := &Job{}
	var clientID sql.NullString

	err := scanner.Scan(
		&job.ID,
		&job.Name,
		&job.HourlyRate,
		&clientID,
		&job.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if clientID.Valid {
		job.ClientID = &clientID.String
	}

	return job, nil
}

// ScanSession scans a single session from a database row
func ScanSession(scanner Scanner) (*Session, error) {
	session := &Session{}
	var endTime sql.NullInt64

	err := scanner.Scan(
		&session.ID,
		&session.JobID,
		&session.StartTime,
		&endTime,
		&session.DurationMs,
		&session.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if endTime.Valid {
		session.EndTime = &endTime.Int64
	}

	return session, nil
}

// ScanClient scans a single client from a database row
func ScanClient(scanner Scanner) (*Client, error) {
	client := &Client{}
	err := scanner.Scan(
		&client.ID,
		&client.Name,
		&client.Email,
		&client.Phone,
		&client.Address,
		&client.Town,
		&client.County,
		&client.Postcode,
		&client.Terms,
		&client.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return client, nil
}

// ScanInvoice scans a single invoice from a database row
func ScanInvoice(scanner Scanner) (*Invoice, error) {
	invoice := &Invoice{}
	var clientID sql.NullString

	err := scanner.Scan(
		&invoice.ID,
		&clientID,
		&invoice.PeriodStart,
		&invoice.PeriodEnd,
		&invoice.LineItems,
		&invoice.Total,
		&invoice.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if clientID.Valid {
		invoice.ClientID = &clientID.String
	}

	return invoice, nil
}

// ScanSettings scans the settings record from a database row
func ScanSettings(scanner Scanner) (*Settings, error) {
	settings := &Settings{}
	err := scanner.Scan(
		&settings.OwnerName,
		&settings.Address,
		&settings.Town,
		&settings.County,
		&settings.Postcode,
		&settings.Phone,
		&settings.Email,
		&settings.VATNumber,
		&settings.TermsConditions,
		&settings.BankAccountName,
		&settings.SortCode,
		&settings.AccountNumber,
	)
	if err != nil {
		return nil, err
	}
	return settings, nil
}

// scanAll collects multiple records using a single-row scan function
func scanAll[T any](rows Rows, scanFunc func(Scanner) (*T, error)) ([]*T, error) {
	var results []*T
	for rows.Next() {
		result, err := scanFunc(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return results, nil
}

// ScanJobs scans multiple jobs from database rows
func ScanJobs(rows Rows) ([]*Job, error) {
	return scanAll(rows, ScanJob)
}

// ScanSessions scans multiple sessions from database rows
func ScanSessions(rows Rows) ([]*Session, error) {
	return scanAll(rows, ScanSession)
}

// ScanClients scans multiple clients from database rows
func ScanClients(rows Rows) ([]*Client, error) {
	return scanAll(rows, ScanClient)
}

// ScanInvoices scans multiple invoices from database rows
func ScanInvoices(rows Rows) ([]*Invoice, error) {
	return scanAll(rows, ScanInvoice)
}
