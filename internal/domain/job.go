package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Job represents a billable job in the domain model.
// This is a pure domain model without database-specific concerns.
type Job struct {
	ID         string
	Name       string
	HourlyRate decimal.Decimal
	ClientID   string // empty when the job is not assigned to a client
	CreatedAt  time.Time
}

// NewJob creates a new Job with the given name, rate and optional client.
func NewJob(name string, hourlyRate decimal.Decimal, clientID string) Job {
	return Job{
		Name:       name,
		HourlyRate: hourlyRate,
		ClientID:   clientID,
	}
}

// HasClient returns true if the job is assigned to a client.
func (j Job) HasClient() bool {
	return j.ClientID != ""
}

// IsValid checks if the job has valid data.
func (j Job) IsValid() bool {
	return j.Name != "" && !j.HourlyRate.IsNegative()
}

// String returns the job name for display purposes.
func (j Job) String() string {
	return j.Name
}
