package domain

// Settings is the per-account record of business details consumed
// read-only when building invoice documents. A single record exists per
// account and is created empty on first use.
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
