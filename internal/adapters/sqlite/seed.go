package sqlite

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

const seedSchema = `
CREATE TABLE IF NOT EXISTS claims (
	id INTEGER PRIMARY KEY,
	claim_number TEXT NOT NULL,
	claimant_name TEXT NOT NULL,
	closed INTEGER NOT NULL DEFAULT 0,
	dob TEXT,
	doi TEXT,
	claim_state TEXT,
	adjuster TEXT,
	adjuster_phone TEXT,
	adjuster_email TEXT
);
CREATE TABLE IF NOT EXISTS invoices (
	id INTEGER PRIMARY KEY,
	claim_id INTEGER NOT NULL REFERENCES claims(id),
	total_amount REAL NOT NULL,
	paid_amount REAL NOT NULL DEFAULT 0
);
CREATE TABLE IF NOT EXISTS billables (
	id INTEGER PRIMARY KEY,
	claim_id INTEGER NOT NULL REFERENCES claims(id),
	activity TEXT NOT NULL,
	quantity TEXT NOT NULL,
	invoiced INTEGER NOT NULL DEFAULT 0,
	service_date TEXT,
	description TEXT,
	notes TEXT
);
CREATE TABLE IF NOT EXISTS reports (
	id INTEGER PRIMARY KEY,
	claim_id INTEGER NOT NULL REFERENCES claims(id),
	work_status TEXT,
	dos_start TEXT,
	dos_end TEXT
);
`

// Seed creates the demo database at path: the schema plus a small set
// of claims, invoices, billables and reports good enough to exercise
// every assistant answer. Safe to run against an existing demo file.
func Seed(path string) error {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	if _, err := db.Exec(seedSchema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}

	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM claims").Scan(&n); err != nil {
		return fmt.Errorf("check existing data: %w", err)
	}
	if n > 0 {
		return nil
	}

	stmts := []struct {
		q    string
		args []any
	}{
		{"INSERT INTO claims (id, claim_number, claimant_name, closed, dob, doi, claim_state, adjuster, adjuster_phone, adjuster_email) VALUES (?,?,?,?,?,?,?,?,?,?)",
			[]any{1, "WC-1001", "Dana Reyes", 0, "1984-03-12", "2025-11-02", "CA", "Marcy Lin", "555-0142", "marcy.lin@example.com"}},
		{"INSERT INTO claims (id, claim_number, claimant_name, closed, dob, doi, claim_state, adjuster, adjuster_phone, adjuster_email) VALUES (?,?,?,?,?,?,?,?,?,?)",
			[]any{2, "WC-1002", "Ben Okafor", 0, "1991-07-29", "2026-01-18", "NV", "Tom Véras", "555-0177", ""}},
		{"INSERT INTO claims (id, claim_number, claimant_name, closed, dob, doi, claim_state, adjuster, adjuster_phone, adjuster_email) VALUES (?,?,?,?,?,?,?,?,?,?)",
			[]any{3, "WC-0990", "Alicia Fontaine", 1, "1976-10-05", "2024-06-21", "CA", "Marcy Lin", "555-0142", "marcy.lin@example.com"}},

		{"INSERT INTO invoices (id, claim_id, total_amount, paid_amount) VALUES (?,?,?,?)", []any{10, 1, 1200, 1200}},
		{"INSERT INTO invoices (id, claim_id, total_amount, paid_amount) VALUES (?,?,?,?)", []any{11, 1, 800, 300}},
		{"INSERT INTO invoices (id, claim_id, total_amount, paid_amount) VALUES (?,?,?,?)", []any{12, 2, 2500, 0}},
		{"INSERT INTO invoices (id, claim_id, total_amount, paid_amount) VALUES (?,?,?,?)", []any{13, 3, 950, 950}},

		{"INSERT INTO billables (id, claim_id, activity, quantity, invoiced, service_date, description, notes) VALUES (?,?,?,?,?,?,?,?)",
			[]any{100, 1, "HRS", "4", 1, "2026-02-03", "Case review", ""}},
		{"INSERT INTO billables (id, claim_id, activity, quantity, invoiced, service_date, description, notes) VALUES (?,?,?,?,?,?,?,?)",
			[]any{101, 1, "MIL", "12.5", 0, "2026-02-10", "Site visit travel", ""}},
		{"INSERT INTO billables (id, claim_id, activity, quantity, invoiced, service_date, description, notes) VALUES (?,?,?,?,?,?,?,?)",
			[]any{102, 1, "EXP", "$45.00", 0, "2026-02-10", "Parking", ""}},
		{"INSERT INTO billables (id, claim_id, activity, quantity, invoiced, service_date, description, notes) VALUES (?,?,?,?,?,?,?,?)",
			[]any{103, 2, "HRS", "8", 0, "2026-03-01", "Records review", "rush"}},
		{"INSERT INTO billables (id, claim_id, activity, quantity, invoiced, service_date, description, notes) VALUES (?,?,?,?,?,?,?,?)",
			[]any{104, 2, "NO BILL", "1", 0, "2026-03-02", "Scheduling call", ""}},
		{"INSERT INTO billables (id, claim_id, activity, quantity, invoiced, service_date, description, notes) VALUES (?,?,?,?,?,?,?,?)",
			[]any{105, 3, "HRS", "n/a", 1, "2024-07-15", "Closing summary", "quantity missing"}},

		{"INSERT INTO reports (id, claim_id, work_status, dos_start, dos_end) VALUES (?,?,?,?,?)",
			[]any{200, 1, "Modified duty", "2026-01-01", "2026-01-31"}},
		{"INSERT INTO reports (id, claim_id, work_status, dos_start, dos_end) VALUES (?,?,?,?,?)",
			[]any{201, 1, "Full duty", "2026-02-01", "2026-02-28"}},
		{"INSERT INTO reports (id, claim_id, work_status, dos_start, dos_end) VALUES (?,?,?,?,?)",
			[]any{202, 2, "Off work", "2026-02-15", "2026-03-15"}},
	}
	for _, s := range stmts {
		if _, err := db.Exec(s.q, s.args...); err != nil {
			return fmt.Errorf("seed data: %w", err)
		}
	}
	return nil
}
