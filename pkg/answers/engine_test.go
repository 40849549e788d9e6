package answers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/impact-cms/florence/pkg/domain"
)

// fixtureStore is a canned DataStore for engine tests.
type fixtureStore struct {
	claims    []domain.ClaimView
	invoices  []domain.InvoiceView
	billables []domain.BillableView
	reports   []domain.ReportView
}

func (f *fixtureStore) Claims(ctx context.Context) ([]domain.ClaimView, error) {
	return f.claims, nil
}

func (f *fixtureStore) Claim(ctx context.Context, id int64) (*domain.ClaimView, error) {
	for i := range f.claims {
		if f.claims[i].ID == id {
			return &f.claims[i], nil
		}
	}
	return nil, domain.ErrClaimNotFound
}

func (f *fixtureStore) Invoices(ctx context.Context, claimID int64) ([]domain.InvoiceView, error) {
	var out []domain.InvoiceView
	for _, inv := range f.invoices {
		if claimID == 0 || inv.ClaimID == claimID {
			out = append(out, inv)
		}
	}
	return out, nil
}

func (f *fixtureStore) Billables(ctx context.Context, claimID int64) ([]domain.BillableView, error) {
	var out []domain.BillableView
	for _, b := range f.billables {
		if claimID == 0 || b.ClaimID == claimID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fixtureStore) LatestReport(ctx context.Context, claimID int64) (*domain.ReportView, error) {
	var latest *domain.ReportView
	for i := range f.reports {
		r := &f.reports[i]
		if r.ClaimID != claimID {
			continue
		}
		if latest == nil || r.DOSEnd > latest.DOSEnd {
			latest = r
		}
	}
	return latest, nil
}

func (f *fixtureStore) CountReports(ctx context.Context, claimID int64) (int, error) {
	n := 0
	for _, r := range f.reports {
		if claimID == 0 || r.ClaimID == claimID {
			n++
		}
	}
	return n, nil
}

func testStore() *fixtureStore {
	return &fixtureStore{
		claims: []domain.ClaimView{
			{ID: 1, Number: "WC-1001", Claimant: "Ada Price", Closed: false, Adjuster: "Marcy Lin", DOI: "2025-03-14"},
			{ID: 2, Number: "WC-1002", Claimant: "Ben Okafor", Closed: false},
			{ID: 3, Number: "WC-1003", Claimant: "Cora Diaz", Closed: true},
		},
		invoices: []domain.InvoiceView{
			{ID: 10, ClaimID: 1, Total: 1200, Paid: 1200},
			{ID: 11, ClaimID: 1, Total: 800, Paid: 300},
			{ID: 12, ClaimID: 2, Total: 2500, Paid: 0},
		},
		billables: []domain.BillableView{
			{ID: 20, ClaimID: 1, ActivityCode: "CM", Quantity: "3.5", Invoiced: true, ServiceDate: "2025-06-01", Description: "Case management"},
			{ID: 21, ClaimID: 1, ActivityCode: "MIL", Quantity: "12.5", Invoiced: false, ServiceDate: "2025-06-02"},
			{ID: 22, ClaimID: 1, ActivityCode: "EXP", Quantity: "45.00", Invoiced: false, ServiceDate: "2025-06-02", Description: "Parking"},
			{ID: 23, ClaimID: 2, ActivityCode: "CM", Quantity: "8", Invoiced: false, ServiceDate: "2025-06-03", Description: "Records review"},
			{ID: 24, ClaimID: 2, ActivityCode: "CM", Quantity: "n/a", Invoiced: false, ServiceDate: "2025-06-04"},
			{ID: 25, ClaimID: 3, ActivityCode: "NO BILL", Quantity: "1.0", Invoiced: false, ServiceDate: "2025-05-20"},
		},
		reports: []domain.ReportView{
			{ID: 30, ClaimID: 1, WorkStatus: "Modified duty", DOSStart: "2025-05-01", DOSEnd: "2025-05-31"},
			{ID: 31, ClaimID: 1, WorkStatus: "Full duty", DOSStart: "2025-06-01", DOSEnd: "2025-06-30"},
		},
	}
}

func newTestEngine() *Engine {
	return New(testStore(), nil)
}

func TestClaimCountScopes(t *testing.T) {
	e := newTestEngine()
	ctx := context.Background()

	r, err := e.ClaimCount(ctx, domain.ScopeBoth)
	require.NoError(t, err)
	assert.Equal(t, "There are 3 open + closed claims.", r.Answer)
	assert.True(t, r.LocalOnly)
	assert.Equal(t, domain.SourceSystem, r.ModelSource)

	r, err = e.ClaimCount(ctx, domain.ScopeOpen)
	require.NoError(t, err)
	assert.Equal(t, "There are 2 open claims.", r.Answer)

	r, err = e.ClaimCount(ctx, domain.ScopeClosed)
	require.NoError(t, err)
	assert.Equal(t, "There is 1 closed claim.", r.Answer)
}

func TestBillingTotalScopes(t *testing.T) {
	e := newTestEngine()
	ctx := context.Background()

	r, err := e.BillingTotal(ctx, 0, domain.BillingOutstanding)
	require.NoError(t, err)
	// 800-300 on claim 1 plus 2500 on claim 2; the paid invoice drops out.
	assert.Equal(t, "You have $3,000.00 outstanding across all claims across 2 invoices.", r.Answer)

	r, err = e.BillingTotal(ctx, 0, domain.BillingTotal)
	require.NoError(t, err)
	assert.Equal(t, "You have billed $4,500.00 across all claims across 3 invoices.", r.Answer)

	r, err = e.BillingTotal(ctx, 1, domain.BillingOutstanding)
	require.NoError(t, err)
	assert.Equal(t, "You have $500.00 outstanding on this claim across 1 invoice.", r.Answer)
}

func TestBillableTotalsBuckets(t *testing.T) {
	e := newTestEngine()

	r, err := e.BillableTotals(context.Background(), 1)
	require.NoError(t, err)
	// Miles stay miles and expenses stay dollars.
	assert.Contains(t, r.Answer, "3.5 hours")
	assert.Contains(t, r.Answer, "12.5 miles")
	assert.Contains(t, r.Answer, "$45.00 in expenses")

	r, err = e.BillableTotals(context.Background(), 2)
	require.NoError(t, err)
	// The unparseable "n/a" row is skipped, not zeroed.
	assert.Contains(t, r.Answer, "8 hours")
	assert.Contains(t, r.Answer, "1 entry had unreadable quantities")
}

func TestNoBillStaysOutOfHours(t *testing.T) {
	e := newTestEngine()
	r, err := e.BillableTotals(context.Background(), 3)
	require.NoError(t, err)
	assert.Contains(t, r.Answer, "0 hours")
	assert.Contains(t, r.Answer, "1 entry no-bill (1 hours)")
}

func TestNoBillCountedSeparately(t *testing.T) {
	b := bucketBillables([]domain.BillableView{
		{ActivityCode: "CM", Quantity: "2"},
		{ActivityCode: "NO BILL", Quantity: "1.5"},
		{ActivityCode: "NOBILL", Quantity: "0.5"},
	})
	assert.Equal(t, 2.0, b.Hours)
	assert.Equal(t, 2.0, b.NoBill)
	assert.Equal(t, 2, b.NoBillCount)

	e := newTestEngine()
	facts, err := e.Facts(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, 1, facts["no_bill_count"])
	assert.Equal(t, "1", facts["no_bill_hours"])
}

func TestUninvoicedValueAndList(t *testing.T) {
	e := newTestEngine()
	ctx := context.Background()

	r, err := e.UninvoicedValue(ctx, 2)
	require.NoError(t, err)
	assert.Contains(t, r.Answer, "2 uninvoiced billables")
	assert.Contains(t, r.Answer, "8 hours")

	r, err = e.UninvoicedList(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, domain.ModeList, r.AnswerMode)
	assert.Contains(t, r.Answer, "Records review")
	assert.Contains(t, r.Answer, "quantity unreadable")
}

func TestInvoiceBreakdown(t *testing.T) {
	e := newTestEngine()
	r, err := e.InvoiceBreakdown(context.Background(), 0)
	require.NoError(t, err)
	assert.Contains(t, r.Answer, "1 paid")
	assert.Contains(t, r.Answer, "1 partially paid")
	assert.Contains(t, r.Answer, "1 unpaid")
	assert.Contains(t, r.Answer, "$3,000.00 is still owed")
}

func TestTopUninvoicedRanking(t *testing.T) {
	e := newTestEngine()
	r, err := e.TopUninvoiced(context.Background())
	require.NoError(t, err)
	// Claim 2 carries 8 uninvoiced hours; claim 1's backlog is miles and
	// expenses only, and claim 3 holds nothing but a no-bill row, so
	// neither ranks.
	assert.Contains(t, r.Answer, "1. WC-1002")
	assert.NotContains(t, r.Answer, "WC-1001")
	assert.NotContains(t, r.Answer, "WC-1003")
}

func TestTopUninvoicedIgnoresNoBillQuantities(t *testing.T) {
	store := testStore()
	// A large tracked-only quantity must not outrank real hours.
	store.billables = append(store.billables, domain.BillableView{
		ID: 26, ClaimID: 3, ActivityCode: "NO BILL", Quantity: "50", Invoiced: false, ServiceDate: "2025-06-05",
	})
	e := New(store, nil)

	r, err := e.TopUninvoiced(context.Background())
	require.NoError(t, err)
	assert.Contains(t, r.Answer, "1. WC-1002")
	assert.NotContains(t, r.Answer, "WC-1003")
}

func TestWorkStatusPicksLatestReport(t *testing.T) {
	e := newTestEngine()
	ctx := context.Background()

	r, err := e.WorkStatus(ctx, 1)
	require.NoError(t, err)
	assert.Contains(t, r.Answer, "Full duty")
	assert.NotContains(t, r.Answer, "Modified duty")

	r, err = e.WorkStatus(ctx, 2)
	require.NoError(t, err)
	assert.Contains(t, r.Answer, "no reports")
}

func TestReportsSummary(t *testing.T) {
	e := newTestEngine()
	ctx := context.Background()

	r, err := e.ReportsSummary(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, "There are 2 reports on file across all claims.", r.Answer)

	r, err = e.ReportsSummary(ctx, 1)
	require.NoError(t, err)
	assert.Contains(t, r.Answer, "2 reports on this claim")
	assert.Contains(t, r.Answer, "Full duty")
}

func TestClaimFieldLookup(t *testing.T) {
	e := newTestEngine()
	ctx := context.Background()

	r, err := e.ClaimField(ctx, 1, "adjuster")
	require.NoError(t, err)
	assert.Equal(t, "The adjuster on claim WC-1001 is Marcy Lin.", r.Answer)

	r, err = e.ClaimField(ctx, 2, "adjuster")
	require.NoError(t, err)
	assert.Contains(t, r.Answer, "no adjuster on file")

	r, err = e.ClaimField(ctx, 0, "adjuster")
	require.NoError(t, err)
	assert.Contains(t, r.Answer, "Open a claim")
}

func TestClaimSummary(t *testing.T) {
	e := newTestEngine()
	r, err := e.ClaimSummary(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, domain.ModeSummary, r.AnswerMode)
	assert.Contains(t, r.Answer, "WC-1001")
	assert.Contains(t, r.Answer, "Ada Price")
	assert.Contains(t, r.Answer, "Full duty")
}

func TestSystemOverview(t *testing.T) {
	e := newTestEngine()
	r, err := e.SystemOverview(context.Background())
	require.NoError(t, err)
	assert.Contains(t, r.Answer, "Claims: 2 open, 1 closed.")
	assert.Contains(t, r.Answer, "$3,000.00 outstanding")
	assert.Contains(t, r.Answer, "Reports: 2 on file.")
}

func TestAnswersAreDeterministic(t *testing.T) {
	e := newTestEngine()
	ctx := context.Background()
	first, err := e.SystemOverview(ctx)
	require.NoError(t, err)
	second, err := e.SystemOverview(ctx)
	require.NoError(t, err)
	assert.Equal(t, first.Answer, second.Answer)
}

func TestFactsAreAggregatesOnly(t *testing.T) {
	e := newTestEngine()
	facts, err := e.Facts(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "WC-1001", facts["claim_number"])
	assert.Equal(t, 2, facts["open_claims"])

	rendered := FormatFacts(facts)
	assert.Contains(t, rendered, "claim_number: WC-1001")
	assert.Contains(t, rendered, "outstanding: $500.00")
}

func TestFormatMoneyGrouping(t *testing.T) {
	assert.Equal(t, "$0.00", formatMoney(0))
	assert.Equal(t, "$1,234.50", formatMoney(1234.5))
	assert.Equal(t, "$1,234,567.89", formatMoney(1234567.89))
	assert.Equal(t, "-$42.00", formatMoney(-42))
}
