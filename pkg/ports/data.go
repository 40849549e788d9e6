package ports

import (
	"context"

	"github.com/impact-cms/florence/pkg/domain"
)

// ClaimReader exposes claims as schema-resolved views.
type ClaimReader interface {
	// Claims returns all claims.
	Claims(ctx context.Context) ([]domain.ClaimView, error)

	// Claim returns a single claim by id, or domain.ErrClaimNotFound.
	Claim(ctx context.Context, id int64) (*domain.ClaimView, error)
}

// InvoiceReader exposes invoices. claimID zero means all claims.
type InvoiceReader interface {
	Invoices(ctx context.Context, claimID int64) ([]domain.InvoiceView, error)
}

// BillableReader exposes billable work items. claimID zero means all claims.
type BillableReader interface {
	Billables(ctx context.Context, claimID int64) ([]domain.BillableView, error)
}

// ReportReader exposes periodic reports.
type ReportReader interface {
	// LatestReport returns the most recent report for a claim, or nil if
	// the claim has none.
	LatestReport(ctx context.Context, claimID int64) (*domain.ReportView, error)

	// CountReports returns the number of reports. claimID zero means all claims.
	CountReports(ctx context.Context, claimID int64) (int, error)
}

// DataStore is the full read-only view of the host system's records.
// Implementations resolve schema variation (column name candidates) once
// at construction, not per call.
type DataStore interface {
	ClaimReader
	InvoiceReader
	BillableReader
	ReportReader
}
