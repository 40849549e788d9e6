package answers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/impact-cms/florence/pkg/domain"
)

const citeClaims = "claims"

// needClaim is the stock reply for claim-scoped questions asked with no
// claim in context.
func needClaim() *domain.Response {
	r := domain.NewAnswer("I don't see a claim in context. Open a claim and ask again.")
	r.Citations = nil
	return r
}

// ClaimCount counts claims in the given scope. The default scope is
// both, labelled "open + closed" so the reader knows closed claims are
// included.
func (e *Engine) ClaimCount(ctx context.Context, scope domain.ClaimScope) (*domain.Response, error) {
	claims, err := e.data.Claims(ctx)
	if err != nil {
		return nil, err
	}
	var n int
	for _, c := range claims {
		switch scope {
		case domain.ScopeOpen:
			if !c.Closed {
				n++
			}
		case domain.ScopeClosed:
			if c.Closed {
				n++
			}
		default:
			n++
		}
	}
	var label, labels string
	switch scope {
	case domain.ScopeOpen:
		label, labels = "open claim", "open claims"
	case domain.ScopeClosed:
		label, labels = "closed claim", "closed claims"
	default:
		label, labels = "open + closed claim", "open + closed claims"
	}
	verb := "are"
	if n == 1 {
		verb = "is"
	}
	r := domain.NewAnswer(fmt.Sprintf("There %s %s.", verb, plural(n, label, labels)))
	r.Citations = []string{citeClaims}
	return r, nil
}

// claimFieldLabels maps field names to the phrasing used in answers.
var claimFieldLabels = map[string]string{
	"dob":         "date of birth",
	"doi":         "date of injury",
	"claim_state": "claim state",
	"adjuster":    "adjuster",
	"phone":       "adjuster phone",
	"email":       "adjuster email",
}

func claimFieldValue(c *domain.ClaimView, field string) string {
	switch field {
	case "dob":
		return c.DOB
	case "doi":
		return c.DOI
	case "claim_state":
		return c.State
	case "adjuster":
		return c.Adjuster
	case "phone":
		return c.Phone
	case "email":
		return c.Email
	}
	return ""
}

// ClaimField answers a single header-field lookup on the claim in
// context.
func (e *Engine) ClaimField(ctx context.Context, claimID int64, field string) (*domain.Response, error) {
	if claimID == 0 {
		return needClaim(), nil
	}
	c, err := e.data.Claim(ctx, claimID)
	if err != nil {
		if errors.Is(err, domain.ErrClaimNotFound) {
			return needClaim(), nil
		}
		return nil, err
	}
	label := claimFieldLabels[field]
	if label == "" {
		label = field
	}
	value := strings.TrimSpace(claimFieldValue(c, field))
	if value == "" {
		r := domain.NewAnswer(fmt.Sprintf("There is no %s on file for claim %s.", label, c.Number))
		r.Citations = []string{citeClaims}
		return r, nil
	}
	var text string
	switch field {
	case "adjuster":
		text = fmt.Sprintf("The adjuster on claim %s is %s.", c.Number, value)
	case "claim_state":
		text = fmt.Sprintf("Claim %s is in %s.", c.Number, value)
	default:
		text = fmt.Sprintf("The %s on claim %s is %s.", label, c.Number, value)
	}
	r := domain.NewAnswer(text)
	r.Citations = []string{citeClaims}
	return r, nil
}

// ClaimSummary renders a short header-plus-activity summary for the
// claim in context.
func (e *Engine) ClaimSummary(ctx context.Context, claimID int64) (*domain.Response, error) {
	if claimID == 0 {
		return needClaim(), nil
	}
	c, err := e.data.Claim(ctx, claimID)
	if err != nil {
		if errors.Is(err, domain.ErrClaimNotFound) {
			return needClaim(), nil
		}
		return nil, err
	}
	billables, err := e.data.Billables(ctx, claimID)
	if err != nil {
		return nil, err
	}
	invoices, err := e.data.Invoices(ctx, claimID)
	if err != nil {
		return nil, err
	}

	status := "open"
	if c.Closed {
		status = "closed"
	}
	buckets := bucketBillables(billables)

	var outstanding float64
	for _, inv := range invoices {
		outstanding += inv.Total - inv.Paid
	}

	lines := []string{
		fmt.Sprintf("Claim %s (%s) for %s.", c.Number, status, c.Claimant),
	}
	if c.Adjuster != "" {
		lines = append(lines, fmt.Sprintf("Adjuster: %s.", c.Adjuster))
	}
	lines = append(lines,
		fmt.Sprintf("%s on file, %s hours billed.", plural(len(billables), "billable", "billables"), formatHours(buckets.Hours)),
		fmt.Sprintf("%s, %s outstanding.", plural(len(invoices), "invoice", "invoices"), formatMoney(outstanding)),
	)
	if rep, err := e.data.LatestReport(ctx, claimID); err != nil {
		return nil, err
	} else if rep != nil && rep.WorkStatus != "" {
		lines = append(lines, fmt.Sprintf("Latest report work status: %s.", rep.WorkStatus))
	}

	r := domain.NewSummaryAnswer(strings.Join(lines, "\n"))
	r.Citations = []string{citeClaims, citeInvoices, citeBillables}
	return r, nil
}

// ReportsSummary counts reports in scope and, for a claim, surfaces the
// latest work status alongside the count.
func (e *Engine) ReportsSummary(ctx context.Context, claimID int64) (*domain.Response, error) {
	n, err := e.data.CountReports(ctx, claimID)
	if err != nil {
		return nil, err
	}
	if claimID == 0 {
		r := domain.NewAnswer(fmt.Sprintf("There %s %s on file across all claims.", isAre(n), plural(n, "report", "reports")))
		r.Citations = []string{citeReports}
		return r, nil
	}
	text := fmt.Sprintf("There %s %s on this claim.", isAre(n), plural(n, "report", "reports"))
	if rep, err := e.data.LatestReport(ctx, claimID); err != nil {
		return nil, err
	} else if rep != nil && rep.WorkStatus != "" {
		text += fmt.Sprintf(" The latest lists work status: %s.", rep.WorkStatus)
	}
	r := domain.NewAnswer(text)
	r.Citations = []string{citeReports}
	return r, nil
}

func isAre(n int) string {
	if n == 1 {
		return "is"
	}
	return "are"
}

// WorkStatus reads the work status off the most recent report on the
// claim in context.
func (e *Engine) WorkStatus(ctx context.Context, claimID int64) (*domain.Response, error) {
	if claimID == 0 {
		return needClaim(), nil
	}
	rep, err := e.data.LatestReport(ctx, claimID)
	if err != nil {
		return nil, err
	}
	if rep == nil {
		r := domain.NewAnswer("There are no reports on file for this claim.")
		r.Citations = []string{citeReports}
		return r, nil
	}
	if strings.TrimSpace(rep.WorkStatus) == "" {
		r := domain.NewAnswer("The latest report does not record a work status.")
		r.Citations = []string{citeReports}
		return r, nil
	}
	text := fmt.Sprintf("The latest report lists work status: %s.", rep.WorkStatus)
	if rep.DOSStart != "" && rep.DOSEnd != "" {
		text = fmt.Sprintf("The latest report (%s to %s) lists work status: %s.", rep.DOSStart, rep.DOSEnd, rep.WorkStatus)
	}
	r := domain.NewAnswer(text)
	r.Citations = []string{citeReports}
	return r, nil
}
