package answers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/impact-cms/florence/pkg/domain"
)

// Facts gathers the compact, pre-aggregated context handed to the
// generative fallback. Only derived numbers and header fields go in;
// the model never sees raw rows it could miscount.
func (e *Engine) Facts(ctx context.Context, claimID int64) (map[string]any, error) {
	facts := map[string]any{}

	claims, err := e.data.Claims(ctx)
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
	facts["open_claims"] = open
	facts["closed_claims"] = closed

	invoices, err := e.data.Invoices(ctx, claimID)
	if err != nil {
		return nil, err
	}
	var outstanding, billed float64
	for _, inv := range invoices {
		billed += inv.Total
		if bal := inv.Total - inv.Paid; bal > 0 {
			outstanding += bal
		}
	}
	facts["invoice_count"] = len(invoices)
	facts["total_billed"] = formatMoney(billed)
	facts["outstanding"] = formatMoney(outstanding)

	billables, err := e.data.Billables(ctx, claimID)
	if err != nil {
		return nil, err
	}
	b := bucketBillables(billables)
	facts["billable_count"] = len(billables)
	facts["billed_hours"] = formatHours(b.Hours)
	if b.Miles > 0 {
		facts["billed_miles"] = formatHours(b.Miles)
	}
	if b.Expenses > 0 {
		facts["billed_expenses"] = formatMoney(b.Expenses)
	}
	if b.NoBillCount > 0 {
		facts["no_bill_count"] = b.NoBillCount
		facts["no_bill_hours"] = formatHours(b.NoBill)
	}

	if claimID != 0 {
		c, err := e.data.Claim(ctx, claimID)
		if err != nil && !errors.Is(err, domain.ErrClaimNotFound) {
			return nil, err
		}
		if c != nil {
			facts["claim_number"] = c.Number
			facts["claimant"] = c.Claimant
			if c.Adjuster != "" {
				facts["adjuster"] = c.Adjuster
			}
			if c.State != "" {
				facts["claim_state"] = c.State
			}
			status := "open"
			if c.Closed {
				status = "closed"
			}
			facts["claim_status"] = status
		}
		if rep, err := e.data.LatestReport(ctx, claimID); err != nil {
			return nil, err
		} else if rep != nil && rep.WorkStatus != "" {
			facts["latest_work_status"] = rep.WorkStatus
		}
	}
	return facts, nil
}

// FormatFacts renders a fact map as stable "key: value" lines for
// prompt assembly. Keys are emitted in a fixed order so prompts are
// reproducible.
func FormatFacts(facts map[string]any) string {
	order := []string{
		"claim_number", "claimant", "claim_status", "claim_state", "adjuster",
		"latest_work_status",
		"open_claims", "closed_claims",
		"invoice_count", "total_billed", "outstanding",
		"billable_count", "billed_hours", "billed_miles", "billed_expenses",
		"no_bill_count", "no_bill_hours",
	}
	var b strings.Builder
	for _, k := range order {
		if v, ok := facts[k]; ok {
			fmt.Fprintf(&b, "%s: %v\n", k, v)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
