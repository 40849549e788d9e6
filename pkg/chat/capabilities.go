package chat

import (
	"strings"

	"github.com/impact-cms/florence/pkg/domain"
)

// Capability is one advertised skill, with an example phrasing the
// deterministic ladder is guaranteed to catch.
type Capability struct {
	Name    string `json:"name"`
	Example string `json:"example"`
}

// Capabilities lists what the assistant can answer deterministically.
// The order is the order they are shown in.
func Capabilities() []Capability {
	return []Capability{
		{"Claim counts", "How many open claims do I have?"},
		{"Billing totals", "How much outstanding billing do I have?"},
		{"Invoice status", "How many unpaid invoices do I have?"},
		{"Billable hours, miles, and expenses", "How many hours have I billed?"},
		{"Uninvoiced work", "List my uninvoiced billables"},
		{"Top claims by uninvoiced hours", "Which claims have the most uninvoiced hours?"},
		{"Claim details", "Who is the adjuster on this claim?"},
		{"Claim summaries", "Summarize this claim"},
		{"Work status", "What's the work status on the latest report?"},
		{"System snapshot", "Give me a system snapshot"},
	}
}

func capabilitiesAnswer() *domain.Response {
	lines := []string{"Here's what I can help with:"}
	for _, c := range Capabilities() {
		lines = append(lines, "- "+c.Name+` ("`+c.Example+`")`)
	}
	lines = append(lines, "Anything else and I'll take my best shot with the local model.")
	r := domain.NewListAnswer(strings.Join(lines, "\n"))
	return r
}
