package domain

// ClaimScope selects which claims an operation covers.
type ClaimScope string

const (
	ScopeOpen   ClaimScope = "open"
	ScopeClosed ClaimScope = "closed"
	ScopeBoth   ClaimScope = "both"
)

// BillingScope selects between money still owed and everything billed.
type BillingScope string

const (
	BillingOutstanding BillingScope = "outstanding"
	BillingTotal       BillingScope = "total"
)

// ClaimView is the schema-resolved read model of a claim. Adapters
// resolve the varying underlying column names (dob vs date_of_birth,
// is_closed vs closed_at vs status, ...) once at open; consumers only
// ever see this shape. Empty string means the field is not available on
// the underlying schema.
type ClaimView struct {
	ID       int64
	Number   string
	Claimant string
	Closed   bool
	DOB      string
	DOI      string
	State    string
	Adjuster string
	Phone    string
	Email    string
}

// InvoiceView is the schema-resolved read model of an invoice. Paid is
// the amount received so far; Total minus Paid is the open balance.
type InvoiceView struct {
	ID      int64
	ClaimID int64
	Total   float64
	Paid    float64
}

// BillableView is the schema-resolved read model of a billable work
// item. Quantity is kept as the raw stored text: the answer engine owns
// the parse-or-skip rule, so a malformed quantity is visible to it
// rather than silently coerced by the adapter.
type BillableView struct {
	ID           int64
	ClaimID      int64
	ActivityCode string
	Quantity     string
	Invoiced     bool
	ServiceDate  string
	Description  string
	Notes        string
}

// ReportView is the schema-resolved read model of a periodic report.
type ReportView struct {
	ID         int64
	ClaimID    int64
	WorkStatus string
	DOSStart   string
	DOSEnd     string
}
