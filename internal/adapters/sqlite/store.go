// Package sqlite reads the host CMS billing database. Deployed schemas
// drifted over the years (column renames, optional fields), so the
// store resolves each logical field to the first matching column
// candidate once at open, and every query after that is fixed SQL.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/impact-cms/florence/pkg/domain"
)

// candidate column names per logical field, in preference order.
var (
	claimNumberCols   = []string{"claim_number", "number"}
	claimantCols      = []string{"claimant_name", "claimant", "patient_name"}
	claimClosedCols   = []string{"closed", "is_closed"}
	claimDOBCols      = []string{"dob", "date_of_birth"}
	claimDOICols      = []string{"doi", "date_of_injury"}
	claimStateCols    = []string{"claim_state", "state"}
	claimAdjusterCols = []string{"adjuster", "adjuster_name"}
	claimPhoneCols    = []string{"adjuster_phone", "phone"}
	claimEmailCols    = []string{"adjuster_email", "email"}

	invoiceTotalCols = []string{"balance_due", "amount_due", "total_amount", "total", "amount"}
	invoicePaidCols  = []string{"paid_amount", "amount_paid", "paid"}

	billQuantityCols = []string{"quantity", "qty", "hours", "units", "amount"}
	billActivityCols = []string{"activity", "activity_code", "code"}
	billInvoicedCols = []string{"invoiced", "is_invoiced", "billed"}
	billDateCols     = []string{"service_date", "dos", "date"}
	billDescCols     = []string{"description", "desc"}
	billNotesCols    = []string{"notes", "note"}

	reportStatusCols = []string{"work_status", "workstatus"}
	reportStartCols  = []string{"dos_start", "start_date"}
	reportEndCols    = []string{"dos_end", "end_date"}
)

// claimCols holds the resolved claims schema.
type claimCols struct {
	number, claimant, closed string
	dob, doi, state          string
	adjuster, phone, email   string
}

type invoiceCols struct {
	total, paid string
}

type billableCols struct {
	quantity, activity, invoiced string
	date, desc, notes            string
}

type reportCols struct {
	status, start, end string
}

// Store implements ports.DataStore over the CMS SQLite database.
// Read-only: the assistant never writes billing data.
type Store struct {
	db *sql.DB

	claims    claimCols
	invoices  invoiceCols
	billables billableCols
	reports   reportCols
}

// Open opens the database and resolves the schema. It fails fast if a
// required table or column is missing rather than degrading at query
// time.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	s := &Store{db: db}
	if err := s.resolveSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) resolveSchema() error {
	tables := map[string][]string{}
	for _, table := range []string{"claims", "invoices", "billables", "reports"} {
		cols, err := tableColumns(s.db, table)
		if err != nil {
			return err
		}
		tables[table] = cols
	}

	pick := func(table string, cands []string) string {
		for _, c := range cands {
			for _, have := range tables[table] {
				if strings.EqualFold(have, c) {
					return have
				}
			}
		}
		return ""
	}
	need := func(table string, cands []string) (string, error) {
		if c := pick(table, cands); c != "" {
			return c, nil
		}
		return "", fmt.Errorf("table %s has none of the expected columns %v", table, cands)
	}

	var err error
	if s.claims.number, err = need("claims", claimNumberCols); err != nil {
		return err
	}
	if s.claims.claimant, err = need("claims", claimantCols); err != nil {
		return err
	}
	if s.claims.closed, err = need("claims", claimClosedCols); err != nil {
		return err
	}
	s.claims.dob = pick("claims", claimDOBCols)
	s.claims.doi = pick("claims", claimDOICols)
	s.claims.state = pick("claims", claimStateCols)
	s.claims.adjuster = pick("claims", claimAdjusterCols)
	s.claims.phone = pick("claims", claimPhoneCols)
	s.claims.email = pick("claims", claimEmailCols)

	if s.invoices.total, err = need("invoices", invoiceTotalCols); err != nil {
		return err
	}
	s.invoices.paid = pick("invoices", invoicePaidCols)

	if s.billables.quantity, err = need("billables", billQuantityCols); err != nil {
		return err
	}
	if s.billables.activity, err = need("billables", billActivityCols); err != nil {
		return err
	}
	s.billables.invoiced = pick("billables", billInvoicedCols)
	s.billables.date = pick("billables", billDateCols)
	s.billables.desc = pick("billables", billDescCols)
	s.billables.notes = pick("billables", billNotesCols)

	s.reports.status = pick("reports", reportStatusCols)
	s.reports.start = pick("reports", reportStartCols)
	s.reports.end = pick("reports", reportEndCols)
	return nil
}

func tableColumns(db *sql.DB, table string) ([]string, error) {
	rows, err := db.Query(fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		return nil, fmt.Errorf("inspect table %s: %w", table, err)
	}
	defer rows.Close()

	var cols []string
	for rows.Next() {
		var cid int
		var name, typ string
		var notnull int
		var dflt any
		var pk int
		if err := rows.Scan(&cid, &name, &typ, &notnull, &dflt, &pk); err != nil {
			return nil, fmt.Errorf("scan table_info for %s: %w", table, err)
		}
		cols = append(cols, name)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(cols) == 0 {
		return nil, fmt.Errorf("table %s does not exist", table)
	}
	return cols, nil
}

// sel renders a column reference, substituting an empty literal for
// fields the schema does not carry.
func sel(col string) string {
	if col == "" {
		return "''"
	}
	return col
}

func truthy(v sql.NullString) bool {
	if !v.Valid {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(v.String)) {
	case "1", "true", "yes", "y", "closed":
		return true
	}
	return false
}

func (s *Store) Claims(ctx context.Context) ([]domain.ClaimView, error) {
	q := fmt.Sprintf(
		"SELECT id, %s, %s, %s, %s, %s, %s, %s, %s, %s FROM claims ORDER BY id",
		sel(s.claims.number), sel(s.claims.claimant), sel(s.claims.closed),
		sel(s.claims.dob), sel(s.claims.doi), sel(s.claims.state),
		sel(s.claims.adjuster), sel(s.claims.phone), sel(s.claims.email),
	)
	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("query claims: %w", err)
	}
	defer rows.Close()

	var out []domain.ClaimView
	for rows.Next() {
		c, err := scanClaim(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *Store) Claim(ctx context.Context, id int64) (*domain.ClaimView, error) {
	q := fmt.Sprintf(
		"SELECT id, %s, %s, %s, %s, %s, %s, %s, %s, %s FROM claims WHERE id = ?",
		sel(s.claims.number), sel(s.claims.claimant), sel(s.claims.closed),
		sel(s.claims.dob), sel(s.claims.doi), sel(s.claims.state),
		sel(s.claims.adjuster), sel(s.claims.phone), sel(s.claims.email),
	)
	rows, err := s.db.QueryContext(ctx, q, id)
	if err != nil {
		return nil, fmt.Errorf("query claim %d: %w", id, err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, err
		}
		return nil, domain.ErrClaimNotFound
	}
	c, err := scanClaim(rows)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func scanClaim(rows *sql.Rows) (domain.ClaimView, error) {
	var c domain.ClaimView
	var closed, dob, doi, state, adjuster, phone, email, number, claimant sql.NullString
	if err := rows.Scan(&c.ID, &number, &claimant, &closed, &dob, &doi, &state, &adjuster, &phone, &email); err != nil {
		return c, fmt.Errorf("scan claim: %w", err)
	}
	c.Number = number.String
	c.Claimant = claimant.String
	c.Closed = truthy(closed)
	c.DOB = dob.String
	c.DOI = doi.String
	c.State = state.String
	c.Adjuster = adjuster.String
	c.Phone = phone.String
	c.Email = email.String
	return c, nil
}

func (s *Store) Invoices(ctx context.Context, claimID int64) ([]domain.InvoiceView, error) {
	q := fmt.Sprintf(
		"SELECT id, claim_id, %s, %s FROM invoices",
		sel(s.invoices.total), sel(s.invoices.paid),
	)
	args := []any{}
	if claimID != 0 {
		q += " WHERE claim_id = ?"
		args = append(args, claimID)
	}
	q += " ORDER BY id"

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query invoices: %w", err)
	}
	defer rows.Close()

	var out []domain.InvoiceView
	for rows.Next() {
		var inv domain.InvoiceView
		var total, paid sql.NullFloat64
		if err := rows.Scan(&inv.ID, &inv.ClaimID, &total, &paid); err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		inv.Total = total.Float64
		inv.Paid = paid.Float64
		out = append(out, inv)
	}
	return out, rows.Err()
}

func (s *Store) Billables(ctx context.Context, claimID int64) ([]domain.BillableView, error) {
	q := fmt.Sprintf(
		"SELECT id, claim_id, %s, %s, %s, %s, %s, %s FROM billables",
		sel(s.billables.activity), sel(s.billables.quantity), sel(s.billables.invoiced),
		sel(s.billables.date), sel(s.billables.desc), sel(s.billables.notes),
	)
	args := []any{}
	if claimID != 0 {
		q += " WHERE claim_id = ?"
		args = append(args, claimID)
	}
	q += " ORDER BY id"

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query billables: %w", err)
	}
	defer rows.Close()

	var out []domain.BillableView
	for rows.Next() {
		var b domain.BillableView
		var activity, quantity, invoiced, date, desc, notes sql.NullString
		if err := rows.Scan(&b.ID, &b.ClaimID, &activity, &quantity, &invoiced, &date, &desc, &notes); err != nil {
			return nil, fmt.Errorf("scan billable: %w", err)
		}
		b.ActivityCode = activity.String
		b.Quantity = quantity.String
		b.Invoiced = truthy(invoiced)
		b.ServiceDate = date.String
		b.Description = desc.String
		b.Notes = notes.String
		out = append(out, b)
	}
	return out, rows.Err()
}

func (s *Store) LatestReport(ctx context.Context, claimID int64) (*domain.ReportView, error) {
	order := "id"
	if s.reports.end != "" {
		order = s.reports.end
	}
	q := fmt.Sprintf(
		"SELECT id, claim_id, %s, %s, %s FROM reports WHERE claim_id = ? ORDER BY %s DESC LIMIT 1",
		sel(s.reports.status), sel(s.reports.start), sel(s.reports.end), order,
	)
	rows, err := s.db.QueryContext(ctx, q, claimID)
	if err != nil {
		return nil, fmt.Errorf("query latest report: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}
	var r domain.ReportView
	var status, start, end sql.NullString
	if err := rows.Scan(&r.ID, &r.ClaimID, &status, &start, &end); err != nil {
		return nil, fmt.Errorf("scan report: %w", err)
	}
	r.WorkStatus = status.String
	r.DOSStart = start.String
	r.DOSEnd = end.String
	return &r, nil
}

func (s *Store) CountReports(ctx context.Context, claimID int64) (int, error) {
	q := "SELECT COUNT(*) FROM reports"
	args := []any{}
	if claimID != 0 {
		q += " WHERE claim_id = ?"
		args = append(args, claimID)
	}
	var n int
	if err := s.db.QueryRowContext(ctx, q, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count reports: %w", err)
	}
	return n, nil
}
