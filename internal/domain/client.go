package domain

import (
	"time"
)

// Client represents a billable client. Referenced by jobs via ClientID;
// the reference is optional and nullable.
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
	CreatedAt time.Time
}

// IsValid checks if the client has valid data.
func (c Client) IsValid() bool {
	return c.Name != ""
}

// String returns the client name for display purposes.
func (c Client) String() string {
	return c.Name
}
