package answers

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/impact-cms/florence/pkg/domain"
)

const (
	citeBillables = "billables"
	citeReports   = "reports"
)

const uninvoicedListLimit = 10

// buckets accumulates billable quantities by activity class. The
// activity code decides the unit: EXP rows are expense dollars, MIL rows
// are miles, NO BILL rows are tracked but never billed, and everything
// else is hours. Rows whose quantity does not parse are skipped, never
// zeroed.
type buckets struct {
	Hours       float64
	Miles       float64
	Expenses    float64
	NoBill      float64
	NoBillCount int
	Skipped     int
}

func bucketBillables(items []domain.BillableView) buckets {
	var b buckets
	for _, it := range items {
		v, ok := parseQuantity(it.Quantity)
		if !ok {
			b.Skipped++
			continue
		}
		switch strings.ToUpper(strings.TrimSpace(it.ActivityCode)) {
		case "EXP":
			b.Expenses += v
		case "MIL":
			b.Miles += v
		case "NO BILL", "NOBILL":
			b.NoBill += v
			b.NoBillCount++
		default:
			b.Hours += v
		}
	}
	return b
}

func scopeLabel(claimID int64) string {
	if claimID == 0 {
		return "across all claims"
	}
	return "on this claim"
}

// BillableTotals answers the hours/miles/expenses totals question for a
// claim or for the whole system.
func (e *Engine) BillableTotals(ctx context.Context, claimID int64) (*domain.Response, error) {
	items, err := e.data.Billables(ctx, claimID)
	if err != nil {
		return nil, err
	}
	b := bucketBillables(items)

	parts := []string{fmt.Sprintf("%s hours", formatHours(b.Hours))}
	if b.Miles > 0 {
		parts = append(parts, fmt.Sprintf("%s miles", formatHours(b.Miles)))
	}
	if b.Expenses > 0 {
		parts = append(parts, fmt.Sprintf("%s in expenses", formatMoney(b.Expenses)))
	}
	text := fmt.Sprintf("You have billed %s %s.", strings.Join(parts, ", "), scopeLabel(claimID))
	if b.NoBillCount > 0 {
		text += fmt.Sprintf(" Another %s no-bill (%s hours) %s tracked but not billed.",
			plural(b.NoBillCount, "entry", "entries"), formatHours(b.NoBill), isAre(b.NoBillCount))
	}
	if b.Skipped > 0 {
		text += fmt.Sprintf(" (%s had unreadable quantities and were not counted.)", plural(b.Skipped, "entry", "entries"))
	}
	r := domain.NewAnswer(text)
	r.Citations = []string{citeBillables}
	return r, nil
}

// BillablesSummary gives counts and invoiced-versus-not totals for
// billables in scope.
func (e *Engine) BillablesSummary(ctx context.Context, claimID int64) (*domain.Response, error) {
	items, err := e.data.Billables(ctx, claimID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		r := domain.NewAnswer(fmt.Sprintf("There are no billables %s.", scopeLabel(claimID)))
		r.Citations = []string{citeBillables}
		return r, nil
	}
	var invoiced, open []domain.BillableView
	for _, it := range items {
		if it.Invoiced {
			invoiced = append(invoiced, it)
		} else {
			open = append(open, it)
		}
	}
	all := bucketBillables(items)
	pending := bucketBillables(open)

	lines := []string{
		fmt.Sprintf("%s %s: %s hours total.", plural(len(items), "billable", "billables"), scopeLabel(claimID), formatHours(all.Hours)),
		fmt.Sprintf("%d invoiced, %d not yet invoiced (%s hours uninvoiced).", len(invoiced), len(open), formatHours(pending.Hours)),
	}
	if all.Miles > 0 {
		lines = append(lines, fmt.Sprintf("Mileage: %s miles.", formatHours(all.Miles)))
	}
	if all.Expenses > 0 {
		lines = append(lines, fmt.Sprintf("Expenses: %s.", formatMoney(all.Expenses)))
	}
	r := domain.NewSummaryAnswer(strings.Join(lines, "\n"))
	r.Citations = []string{citeBillables}
	return r, nil
}

// UninvoicedValue totals the not-yet-invoiced work in scope.
func (e *Engine) UninvoicedValue(ctx context.Context, claimID int64) (*domain.Response, error) {
	items, err := e.data.Billables(ctx, claimID)
	if err != nil {
		return nil, err
	}
	var open []domain.BillableView
	for _, it := range items {
		if !it.Invoiced {
			open = append(open, it)
		}
	}
	if len(open) == 0 {
		r := domain.NewAnswer(fmt.Sprintf("Everything is invoiced %s.", scopeLabel(claimID)))
		r.Citations = []string{citeBillables}
		return r, nil
	}
	b := bucketBillables(open)
	text := fmt.Sprintf("You have %s uninvoiced %s totalling %s hours", plural(len(open), "billable", "billables"), scopeLabel(claimID), formatHours(b.Hours))
	if b.Expenses > 0 {
		text += fmt.Sprintf(" plus %s in expenses", formatMoney(b.Expenses))
	}
	text += "."
	r := domain.NewAnswer(text)
	r.Citations = []string{citeBillables}
	return r, nil
}

// UninvoicedList lists the oldest uninvoiced billables, capped so the
// answer stays readable in chat.
func (e *Engine) UninvoicedList(ctx context.Context, claimID int64) (*domain.Response, error) {
	items, err := e.data.Billables(ctx, claimID)
	if err != nil {
		return nil, err
	}
	var open []domain.BillableView
	for _, it := range items {
		if !it.Invoiced {
			open = append(open, it)
		}
	}
	if len(open) == 0 {
		r := domain.NewAnswer(fmt.Sprintf("There are no uninvoiced billables %s.", scopeLabel(claimID)))
		r.Citations = []string{citeBillables}
		return r, nil
	}
	sort.SliceStable(open, func(i, j int) bool { return open[i].ServiceDate < open[j].ServiceDate })

	shown := open
	if len(shown) > uninvoicedListLimit {
		shown = shown[:uninvoicedListLimit]
	}
	lines := []string{fmt.Sprintf("%s uninvoiced %s:", plural(len(open), "billable", "billables"), scopeLabel(claimID))}
	for _, it := range shown {
		desc := it.Description
		if desc == "" {
			desc = it.ActivityCode
		}
		lines = append(lines, fmt.Sprintf("- %s: %s (%s)", it.ServiceDate, desc, quantityLabel(it)))
	}
	if len(open) > len(shown) {
		lines = append(lines, fmt.Sprintf("...and %d more.", len(open)-len(shown)))
	}
	r := domain.NewListAnswer(strings.Join(lines, "\n"))
	r.Citations = []string{citeBillables}
	return r, nil
}

func quantityLabel(it domain.BillableView) string {
	v, ok := parseQuantity(it.Quantity)
	if !ok {
		return "quantity unreadable"
	}
	switch strings.ToUpper(strings.TrimSpace(it.ActivityCode)) {
	case "EXP":
		return formatMoney(v)
	case "MIL":
		return formatHours(v) + " mi"
	default:
		return formatHours(v) + " hrs"
	}
}

// BillableMix reports the distribution of hours across activity codes,
// and when a claim is in context, sets it against the system-wide mix.
func (e *Engine) BillableMix(ctx context.Context, claimID int64) (*domain.Response, error) {
	if claimID == 0 {
		items, err := e.data.Billables(ctx, 0)
		if err != nil {
			return nil, err
		}
		r := domain.NewSummaryAnswer(renderMix("Across all claims", items))
		r.Citations = []string{citeBillables}
		return r, nil
	}
	claimItems, err := e.data.Billables(ctx, claimID)
	if err != nil {
		return nil, err
	}
	allItems, err := e.data.Billables(ctx, 0)
	if err != nil {
		return nil, err
	}
	text := renderMix("On this claim", claimItems) + "\n" + renderMix("System-wide", allItems)
	r := domain.NewSummaryAnswer(text)
	r.Citations = []string{citeBillables}
	return r, nil
}

func renderMix(label string, items []domain.BillableView) string {
	hours := map[string]float64{}
	var total float64
	for _, it := range items {
		code := strings.ToUpper(strings.TrimSpace(it.ActivityCode))
		switch code {
		case "EXP", "MIL", "NO BILL", "NOBILL":
			continue
		}
		v, ok := parseQuantity(it.Quantity)
		if !ok {
			continue
		}
		if code == "" {
			code = "UNCODED"
		}
		hours[code] += v
		total += v
	}
	if total == 0 {
		return label + ": no billed hours."
	}
	codes := make([]string, 0, len(hours))
	for c := range hours {
		codes = append(codes, c)
	}
	sort.Slice(codes, func(i, j int) bool {
		if hours[codes[i]] != hours[codes[j]] {
			return hours[codes[i]] > hours[codes[j]]
		}
		return codes[i] < codes[j]
	})
	parts := make([]string, 0, len(codes))
	for _, c := range codes {
		parts = append(parts, fmt.Sprintf("%s %.0f%%", c, hours[c]/total*100))
	}
	return fmt.Sprintf("%s: %s hours (%s).", label, formatHours(total), strings.Join(parts, ", "))
}

const topClaimsLimit = 5

// TopUninvoiced ranks claims by uninvoiced hours, highest first.
func (e *Engine) TopUninvoiced(ctx context.Context) (*domain.Response, error) {
	claims, err := e.data.Claims(ctx)
	if err != nil {
		return nil, err
	}
	items, err := e.data.Billables(ctx, 0)
	if err != nil {
		return nil, err
	}
	byClaim := map[int64]float64{}
	for _, it := range items {
		if it.Invoiced {
			continue
		}
		switch strings.ToUpper(strings.TrimSpace(it.ActivityCode)) {
		case "EXP", "MIL", "NO BILL", "NOBILL":
			continue
		}
		if v, ok := parseQuantity(it.Quantity); ok {
			byClaim[it.ClaimID] += v
		}
	}

	type ranked struct {
		claim domain.ClaimView
		hours float64
	}
	var rows []ranked
	for _, c := range claims {
		if h := byClaim[c.ID]; h > 0 {
			rows = append(rows, ranked{c, h})
		}
	}
	if len(rows) == 0 {
		r := domain.NewAnswer("No claims have uninvoiced hours right now.")
		r.Citations = []string{citeClaims, citeBillables}
		return r, nil
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].hours != rows[j].hours {
			return rows[i].hours > rows[j].hours
		}
		return rows[i].claim.ID < rows[j].claim.ID
	})
	if len(rows) > topClaimsLimit {
		rows = rows[:topClaimsLimit]
	}
	lines := []string{"Top claims by uninvoiced hours:"}
	for i, row := range rows {
		lines = append(lines, fmt.Sprintf("%d. %s (%s): %s hours", i+1, row.claim.Number, row.claim.Claimant, formatHours(row.hours)))
	}
	r := domain.NewListAnswer(strings.Join(lines, "\n"))
	r.Citations = []string{citeClaims, citeBillables}
	return r, nil
}
