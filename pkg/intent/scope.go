package intent

import (
	"strings"

	"github.com/impact-cms/florence/pkg/domain"
)

// ExtractClaimScope reads an open/closed/both scope out of a question.
// "Both" phrasings are checked first so "open and closed" never reads as
// open; bare total/overall counts also mean both. The default is both.
func ExtractClaimScope(question string) domain.ClaimScope {
	q := Normalize(question)
	if containsAny(q, "open and closed", "closed and open", "both", "all claims", "everything") {
		return domain.ScopeBoth
	}
	if containsAny(q, "total", "overall") {
		return domain.ScopeBoth
	}
	if containsAny(q, "open", "opened", "active", "current") {
		return domain.ScopeOpen
	}
	if containsAny(q, "closed", "inactive") {
		return domain.ScopeClosed
	}
	return domain.ScopeBoth
}

// ExtractBillingScope reads outstanding-vs-total out of a question.
// Returns the empty scope when the phrasing carries neither, which the
// turn handler treats as a clarification trigger.
func ExtractBillingScope(question string) domain.BillingScope {
	q := Normalize(question)
	if containsAny(q, "outstanding", "owed", "unpaid", "due", "receivable") {
		return domain.BillingOutstanding
	}
	if containsAny(q, "total billed", "total invoiced", "billed", "invoiced", "total", "gross") {
		return domain.BillingTotal
	}
	return ""
}

// MentionsThisClaim reports whether the question anchors itself to the
// claim in context, which suppresses system-level frame resets and
// defaults ambiguous billing questions to the outstanding balance.
func MentionsThisClaim(question string) bool {
	q := Normalize(question)
	return strings.Contains(q, "this claim") || strings.Contains(q, "the current claim")
}
