package answers

import (
	"context"
	"fmt"
	"strings"

	"github.com/impact-cms/florence/pkg/domain"
)

const citeInvoices = "invoices"

// BillingTotal answers the two billing totals: outstanding balance
// (billed minus paid) or gross billed. The caller resolves ambiguity
// before getting here; this method never clarifies.
func (e *Engine) BillingTotal(ctx context.Context, claimID int64, scope domain.BillingScope) (*domain.Response, error) {
	invoices, err := e.data.Invoices(ctx, claimID)
	if err != nil {
		return nil, err
	}
	if len(invoices) == 0 {
		r := domain.NewAnswer(fmt.Sprintf("There are no invoices %s.", scopeLabel(claimID)))
		r.Citations = []string{citeInvoices}
		return r, nil
	}

	var text string
	switch scope {
	case domain.BillingTotal:
		var total float64
		for _, inv := range invoices {
			total += inv.Total
		}
		text = fmt.Sprintf("You have billed %s %s across %s.", formatMoney(total), scopeLabel(claimID), plural(len(invoices), "invoice", "invoices"))
	default:
		var outstanding float64
		var openCount int
		for _, inv := range invoices {
			bal := inv.Total - inv.Paid
			if bal > 0 {
				outstanding += bal
				openCount++
			}
		}
		if openCount == 0 {
			text = fmt.Sprintf("Nothing is outstanding %s. All %s are paid in full.", scopeLabel(claimID), plural(len(invoices), "invoice is", "invoices"))
		} else {
			text = fmt.Sprintf("You have %s outstanding %s across %s.", formatMoney(outstanding), scopeLabel(claimID), plural(openCount, "invoice", "invoices"))
		}
	}

	r := domain.NewAnswer(text)
	r.Citations = []string{citeInvoices}
	return r, nil
}

// InvoiceBreakdown counts invoices by payment state: paid in full,
// partially paid, and unpaid.
func (e *Engine) InvoiceBreakdown(ctx context.Context, claimID int64) (*domain.Response, error) {
	invoices, err := e.data.Invoices(ctx, claimID)
	if err != nil {
		return nil, err
	}
	if len(invoices) == 0 {
		r := domain.NewAnswer(fmt.Sprintf("There are no invoices %s.", scopeLabel(claimID)))
		r.Citations = []string{citeInvoices}
		return r, nil
	}
	var paid, partial, unpaid int
	var outstanding float64
	for _, inv := range invoices {
		bal := inv.Total - inv.Paid
		switch {
		case bal <= 0:
			paid++
		case inv.Paid > 0:
			partial++
			outstanding += bal
		default:
			unpaid++
			outstanding += bal
		}
	}
	parts := []string{fmt.Sprintf("%d paid", paid)}
	if partial > 0 {
		parts = append(parts, fmt.Sprintf("%d partially paid", partial))
	}
	parts = append(parts, fmt.Sprintf("%d unpaid", unpaid))
	text := fmt.Sprintf("You have %s %s: %s.", plural(len(invoices), "invoice", "invoices"), scopeLabel(claimID), strings.Join(parts, ", "))
	if outstanding > 0 {
		text += fmt.Sprintf(" %s is still owed.", formatMoney(outstanding))
	}
	r := domain.NewAnswer(text)
	r.Citations = []string{citeInvoices}
	return r, nil
}
