package tui

import (
	"fmt"
	"strings"

	"github.com/muesli/termenv"

	"github.com/impact-cms/florence/pkg/domain"
)

// FormatAnswer renders a response for the terminal: the answer text
// plus a dim trust line when the answer is a model guess or carries
// citations. Deterministic high-confidence answers print bare.
func FormatAnswer(r *domain.Response) string {
	var b strings.Builder
	b.WriteString(r.Answer)

	var notes []string
	if r.IsGuess {
		notes = append(notes, "unverified")
	}
	if r.ModelSource != domain.SourceSystem {
		notes = append(notes, "source: "+r.ModelSource)
	}
	if len(r.Citations) > 0 {
		notes = append(notes, "from: "+strings.Join(r.Citations, ", "))
	}
	if len(notes) > 0 {
		line := termenv.String("(" + strings.Join(notes, " | ") + ")").Faint()
		b.WriteString("\n")
		b.WriteString(line.String())
	}

	if r.Action != nil && len(r.Action.Options) > 0 {
		b.WriteString("\n")
		for i, opt := range r.Action.Options {
			b.WriteString(fmt.Sprintf("\n  %d. %s", i+1, opt.Label))
		}
	}
	return b.String()
}

// ResolveChoice maps a numeric reply ("1", "2") to the matching option
// value of a clarify action. Non-numeric or out-of-range replies come
// back unchanged so the normal slot vocabulary still applies.
func ResolveChoice(reply string, action *domain.Action) string {
	if action == nil {
		return reply
	}
	trimmed := strings.TrimSpace(reply)
	for i, opt := range action.Options {
		if trimmed == fmt.Sprintf("%d", i+1) {
			return opt.Value
		}
	}
	return reply
}
