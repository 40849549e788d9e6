package chat

import (
	"strings"

	"github.com/impact-cms/florence/pkg/config"
	"github.com/impact-cms/florence/pkg/domain"
	"github.com/impact-cms/florence/pkg/intent"
)

// followupNoun pulls the topic noun out of a "what about X" / "how
// about X" follow-up. Returns empty when the question is not that
// shape.
func followupNoun(q string) string {
	parts := strings.Fields(strings.Trim(q, "?!. "))
	if len(parts) < 3 {
		return ""
	}
	head := parts[0] + " " + parts[1]
	if head != "what about" && head != "how about" {
		return ""
	}
	return strings.Trim(parts[2], "?!.,")
}

// canonicalizeFrame rewrites a frame-relative follow-up against the
// active frame stack: "what about billing" inside a system overview
// becomes the canonical billing question for that frame. Innermost
// frame wins.
func canonicalizeFrame(reg *config.Registry, state *domain.ThreadState, q string) (string, bool) {
	noun := followupNoun(q)
	if noun == "" {
		return "", false
	}
	for _, frame := range state.ActiveFrames() {
		if question, ok := reg.Resolve(frame, noun); ok {
			return question, true
		}
	}
	return "", false
}

// intentFollowups maps a prior intent to keyword rewrites for terse
// follow-ups like "and closed?". Keyed by the last answered intent so
// "closed" after a claim count means claims, not invoices.
var intentFollowups = map[intent.Intent][]struct {
	keys     []string
	question string
}{
	intent.ClaimCount: {
		{[]string{"open and closed", "closed and open", "both", "all", "total"}, "How many claims do I have?"},
		{[]string{"closed", "inactive"}, "How many closed claims do I have?"},
		{[]string{"open", "active", "current"}, "How many open claims do I have?"},
	},
	intent.BillingTotal: {
		{[]string{"all claims", "every claim", "across all claims"}, "How much billing do I have?"},
		{[]string{"outstanding", "owed", "unpaid", "due"}, "How much outstanding billing do I have?"},
		{[]string{"total", "billed", "invoiced"}, "How much have I billed in total?"},
	},
	intent.SystemOverview: {
		{[]string{"this claim"}, "Summarize this claim"},
		{[]string{"all claims", "every claim"}, "How many claims do I have?"},
	},
}

// canonicalizeIntent rewrites a short follow-up relative to the last
// intent. Only short questions qualify; a full sentence is a new
// question, not a follow-up.
func canonicalizeIntent(last intent.Intent, q string) (string, bool) {
	if len(strings.Fields(q)) > 6 {
		return "", false
	}
	rest := strings.Trim(q, "?!. ")
	for _, prefix := range []string{"what about ", "how about ", "and "} {
		if strings.HasPrefix(rest, prefix) {
			rest = strings.TrimPrefix(rest, prefix)
			break
		}
	}
	rest = strings.Trim(rest, "?!. ")
	if rest == "" {
		return "", false
	}
	for _, rule := range intentFollowups[last] {
		for _, key := range rule.keys {
			if rest == key || strings.Contains(rest, key) {
				return rule.question, true
			}
		}
	}
	return "", false
}
