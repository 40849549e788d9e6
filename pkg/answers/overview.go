package answers

import (
	"context"
	"fmt"
	"strings"

	"github.com/impact-cms/florence/pkg/domain"
)

// SystemOverview renders the cross-claim snapshot: claim counts,
// invoice standing, billable backlog, and report volume.
func (e *Engine) SystemOverview(ctx context.Context) (*domain.Response, error) {
	claims, err := e.data.Claims(ctx)
	if err != nil {
		return nil, err
	}
	invoices, err := e.data.Invoices(ctx, 0)
	if err != nil {
		return nil, err
	}
	billables, err := e.data.Billables(ctx, 0)
	if err != nil {
		return nil, err
	}
	reports, err := e.data.CountReports(ctx, 0)
	if err != nil {
		return nil, err
	}

	var open, closed int
	for _, c := range claims {
		if c.Closed {
			closed++
		} else {
			open++
		}
	}
	var outstanding, billed float64
	for _, inv := range invoices {
		billed += inv.Total
		if bal := inv.Total - inv.Paid; bal > 0 {
			outstanding += bal
		}
	}
	var openWork []domain.BillableView
	for _, b := range billables {
		if !b.Invoiced {
			openWork = append(openWork, b)
		}
	}
	pending := bucketBillables(openWork)

	lines := []string{
		fmt.Sprintf("Claims: %d open, %d closed.", open, closed),
		fmt.Sprintf("Invoices: %d totalling %s, %s outstanding.", len(invoices), formatMoney(billed), formatMoney(outstanding)),
		fmt.Sprintf("Billables: %d on file, %d awaiting invoicing (%s hours).", len(billables), len(openWork), formatHours(pending.Hours)),
		fmt.Sprintf("Reports: %d on file.", reports),
	}
	r := domain.NewSummaryAnswer(strings.Join(lines, "\n"))
	r.Citations = []string{citeClaims, citeInvoices, citeBillables, citeReports}
	return r, nil
}

// Workload gives a rough read on how much open work the consultant is
// carrying: open claims and the uninvoiced backlog behind them.
func (e *Engine) Workload(ctx context.Context) (*domain.Response, error) {
	claims, err := e.data.Claims(ctx)
	if err != nil {
		return nil, err
	}
	billables, err := e.data.Billables(ctx, 0)
	if err != nil {
		return nil, err
	}

	var open int
	for _, c := range claims {
		if !c.Closed {
			open++
		}
	}
	var backlog []domain.BillableView
	for _, b := range billables {
		if !b.Invoiced {
			backlog = append(backlog, b)
		}
	}
	pending := bucketBillables(backlog)

	text := fmt.Sprintf("You are carrying %s with %s hours of uninvoiced work behind them.",
		plural(open, "open claim", "open claims"), formatHours(pending.Hours))
	if len(backlog) == 0 {
		text = fmt.Sprintf("You are carrying %s and the invoicing backlog is clear.",
			plural(open, "open claim", "open claims"))
	}
	r := domain.NewAnswer(text)
	r.Citations = []string{citeClaims, citeBillables}
	return r, nil
}
