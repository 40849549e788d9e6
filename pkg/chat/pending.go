package chat

import (
	"strings"

	"github.com/impact-cms/florence/pkg/domain"
)

// Bounds for treating an utterance as a clarification answer rather
// than a new question. A long sentence abandons the clarification.
const (
	pendingMaxChars  = 40
	pendingMaxTokens = 6
)

// slotAnswer is one recognized clarification value.
type slotAnswer struct {
	value   string
	phrases []string
}

// slotAnswers holds the per-slot vocabularies. Multi-word phrases come
// first within a slot so "open and closed" never reads as "open".
var slotAnswers = map[string][]slotAnswer{
	domain.SlotClaimStatus: {
		{"both", []string{"open and closed", "closed and open", "both", "all", "everything"}},
		{"closed", []string{"closed", "inactive"}},
		{"open", []string{"open", "opened", "active", "current"}},
	},
	domain.SlotBillingScope: {
		{"outstanding", []string{"outstanding", "owed", "due", "unpaid", "receivable"}},
		{"total", []string{"total billed", "total invoiced", "total", "billed", "invoiced"}},
	},
}

// isPendingCandidate gates the resolver: anything longer than the char
// and token bounds is a fresh question.
func isPendingCandidate(q string) bool {
	if len(q) > pendingMaxChars && len(strings.Fields(q)) > pendingMaxTokens {
		return false
	}
	return true
}

// resolveSlot matches a short reply against a slot's vocabulary. Exact
// phrase match is tried first; then, for replies of four tokens or
// fewer, substring containment.
func resolveSlot(slot, reply string) (string, bool) {
	answers := slotAnswers[slot]
	cleaned := strings.Trim(strings.ToLower(strings.TrimSpace(reply)), "?!. ")

	for _, a := range answers {
		for _, p := range a.phrases {
			if cleaned == p {
				return a.value, true
			}
		}
	}
	if len(strings.Fields(cleaned)) <= 4 {
		for _, a := range answers {
			for _, p := range a.phrases {
				if strings.Contains(cleaned, p) {
					return a.value, true
				}
			}
		}
	}
	return "", false
}
