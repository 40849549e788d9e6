// Package intent maps a canonicalized question to one deterministic
// intent. Classification is a strictly ordered keyword-priority ladder,
// not a scored classifier: the token sets overlap, so precedence is the
// contract. The ladder is expressed as an explicit table of (predicate,
// intent) pairs; first match wins and short-circuits.
package intent

import (
	"strings"

	"github.com/impact-cms/florence/pkg/domain"
)

// Intent identifies one deterministic answer shape, or Unhandled for
// questions that route to the generative fallback.
type Intent string

const (
	Capabilities     Intent = "capabilities"
	TopUninvoiced    Intent = "top_uninvoiced"
	SystemOverview   Intent = "system_overview"
	InvoiceBreakdown Intent = "invoice_breakdown"
	ClaimField       Intent = "claim_field"
	ClaimSummary     Intent = "claim_summary"
	WorkStatus       Intent = "work_status"
	ReportsSummary   Intent = "reports_summary"
	BillableMix      Intent = "billable_mix"
	Workload         Intent = "workload"
	BillableTotals   Intent = "billable_totals"
	UninvoicedList   Intent = "uninvoiced_list"
	UninvoicedValue  Intent = "uninvoiced_value"
	BillablesSummary Intent = "billables_summary"
	BillingTotal     Intent = "billing_total"
	ClaimCount       Intent = "claim_count"
	Unhandled        Intent = "unhandled"
)

// Match is the result of classification: the intent plus any slots the
// predicates could extract from the phrasing.
type Match struct {
	Intent Intent

	// Field names the claim header field for ClaimField.
	Field string

	// ClaimScope is set for ClaimCount. Defaults to both when the
	// question does not specify.
	ClaimScope domain.ClaimScope

	// BillingScope is set for BillingTotal. Empty means the question is
	// ambiguous and the turn should clarify.
	BillingScope domain.BillingScope
}

// rung is one row of the ladder.
type rung struct {
	intent Intent
	match  func(q string) (Match, bool)
}

// ladder is the canonical precedence order. Order matters: moving a row
// changes classification for overlapping phrasings, so treat this table
// as behavior, not as a list to tidy.
var ladder = []rung{
	{Capabilities, matchCapabilities},
	{TopUninvoiced, matchTopUninvoiced},
	{SystemOverview, matchSystemOverview},
	{InvoiceBreakdown, matchInvoiceBreakdown},
	{ClaimField, matchClaimField},
	{ClaimSummary, matchClaimSummary},
	{WorkStatus, matchWorkStatus},
	{ReportsSummary, matchReportsSummary},
	{BillableMix, matchBillableMix},
	{Workload, matchWorkload},
	{BillableTotals, matchBillableTotals},
	{UninvoicedList, matchUninvoicedList},
	{UninvoicedValue, matchUninvoicedValue},
	{BillablesSummary, matchBillablesSummary},
	{BillingTotal, matchBillingTotal},
	{ClaimCount, matchClaimCount},
}

// Classify runs the ladder over a normalized question. The second return
// is false when no rung matched (the fallback path).
func Classify(question string) (Match, bool) {
	q := Normalize(question)
	for _, r := range ladder {
		if m, ok := r.match(q); ok {
			m.Intent = r.intent
			return m, true
		}
	}
	return Match{Intent: Unhandled}, false
}

// Normalize lowercases and trims a question the way every matcher
// expects it.
func Normalize(q string) string {
	return strings.ToLower(strings.TrimSpace(q))
}

func containsAny(q string, keys ...string) bool {
	for _, k := range keys {
		if strings.Contains(q, k) {
			return true
		}
	}
	return false
}

func matchCapabilities(q string) (Match, bool) {
	if containsAny(q,
		"what can you do",
		"what do you do",
		"what can you help",
		"capabilities",
		"help me with",
	) || q == "help" || q == "help?" {
		return Match{}, true
	}
	return Match{}, false
}

func matchTopUninvoiced(q string) (Match, bool) {
	if containsAny(q, "top claims", "most uninvoiced") ||
		(strings.Contains(q, "top") && strings.Contains(q, "uninvoiced")) {
		return Match{}, true
	}
	return Match{}, false
}

func matchSystemOverview(q string) (Match, bool) {
	if containsAny(q,
		"system overview",
		"system snapshot",
		"my system",
		"snapshot",
		"diagnostic",
		"overall status",
		"big picture",
		"how is everything",
	) {
		return Match{}, true
	}
	return Match{}, false
}

func matchInvoiceBreakdown(q string) (Match, bool) {
	if !containsAny(q, "invoice", "invoices") {
		return Match{}, false
	}
	if containsAny(q, "breakdown", "how many", "paid", "unpaid", "draft", "status") {
		return Match{}, true
	}
	return Match{}, false
}

// claimFieldPhrases maps question phrasings to header field names. The
// field names line up with the answer engine's candidate lists.
var claimFieldPhrases = []struct {
	field   string
	phrases []string
}{
	{"dob", []string{"dob", "date of birth", "birth date", "birthday"}},
	{"doi", []string{"doi", "date of injury", "injury date"}},
	{"adjuster", []string{"adjuster"}},
	{"claim_state", []string{"what state", "which state", "claim state"}},
	{"phone", []string{"phone"}},
	{"email", []string{"email"}},
}

func matchClaimField(q string) (Match, bool) {
	// Only lookup phrasings route here. A question that merely mentions
	// an adjuster ("have any adjusters been slow?") is not a field read
	// and belongs to the fallback.
	if !containsAny(q, "what is", "what's", "whats", "who is", "who's", "what state", "which state", "show me") {
		return Match{}, false
	}
	for _, cf := range claimFieldPhrases {
		if containsAny(q, cf.phrases...) {
			return Match{Field: cf.field}, true
		}
	}
	return Match{}, false
}

func matchClaimSummary(q string) (Match, bool) {
	if containsAny(q,
		"summarize this claim",
		"summarize claim",
		"claim summary",
		"summary of this claim",
		"tell me about this claim",
		"tell me what you know about this claim",
		"what do you know about this claim",
		"overview of this claim",
	) {
		return Match{}, true
	}
	return Match{}, false
}

func matchWorkStatus(q string) (Match, bool) {
	if containsAny(q, "work status", "latest report") {
		return Match{}, true
	}
	return Match{}, false
}

func matchReportsSummary(q string) (Match, bool) {
	if !strings.Contains(q, "report") {
		return Match{}, false
	}
	if containsAny(q, "how many", "summar", "overview", "count") {
		return Match{}, true
	}
	return Match{}, false
}

func matchBillableMix(q string) (Match, bool) {
	if strings.Contains(q, "mix") && containsAny(q, "billable", "billables", "activity") {
		return Match{}, true
	}
	if strings.Contains(q, "compare") && containsAny(q, "claim", "billable", "system") {
		return Match{}, true
	}
	return Match{}, false
}

func matchWorkload(q string) (Match, bool) {
	if containsAny(q,
		"workload",
		"capacity",
		"too much work",
		"how am i doing",
		"am i behind",
		"hours per day",
		"hours per week",
	) || q == "busy" || strings.Contains(q, "am i busy") {
		return Match{}, true
	}
	return Match{}, false
}

func matchBillableTotals(q string) (Match, bool) {
	unit := containsAny(q, "hours", "miles", "mileage", "expense", "expenses") ||
		strings.Contains(q, " exp")
	if !unit {
		return Match{}, false
	}
	if containsAny(q, "how many", "how much", "total", "billed") {
		return Match{}, true
	}
	return Match{}, false
}

func matchUninvoicedList(q string) (Match, bool) {
	if strings.Contains(q, "uninvoiced") && containsAny(q, "list", "show") {
		return Match{}, true
	}
	return Match{}, false
}

func matchUninvoicedValue(q string) (Match, bool) {
	if strings.Contains(q, "uninvoiced") && containsAny(q, "how much", "value", "worth") {
		return Match{}, true
	}
	return Match{}, false
}

func matchBillablesSummary(q string) (Match, bool) {
	if !containsAny(q, "billable", "billables") {
		return Match{}, false
	}
	if containsAny(q, "summar", "overview", "how many", "uninvoiced") {
		return Match{}, true
	}
	return Match{}, false
}

func matchBillingTotal(q string) (Match, bool) {
	subject := containsAny(q, "billing", "invoice", "invoices", "accounts receivable", "a/r")
	if !subject {
		return Match{}, false
	}
	due := containsAny(q, "outstanding", "owed", "unpaid", "receivable", "due", "balance")
	money := containsAny(q, "how much", "total", "amount", "$", "dollars")
	if !due && !money {
		return Match{}, false
	}
	if containsAny(q, "tell me about", "overview", "summary") {
		return Match{}, false
	}
	return Match{BillingScope: ExtractBillingScope(q)}, true
}

func matchClaimCount(q string) (Match, bool) {
	if containsAny(q, "how many claims", "number of claims", "count claims") ||
		(strings.Contains(q, "claims") && containsAny(q, "how many", "count")) {
		return Match{ClaimScope: ExtractClaimScope(q)}, true
	}
	return Match{}, false
}
