// Package answers is the deterministic side of the assistant: every
// quantitative question that can be answered by arithmetic over the
// billing store is answered here, with the model never in the loop.
// Each method reads through ports.DataStore, computes, and returns a
// fully formed domain.Response with system provenance.
package answers

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/impact-cms/florence/pkg/ports"
)

// Engine answers deterministic intents over a billing data store.
type Engine struct {
	data ports.DataStore
	log  *slog.Logger
}

// New builds an engine. A nil logger defaults to slog.Default.
func New(data ports.DataStore, log *slog.Logger) *Engine {
	if log == nil {
		log = slog.Default()
	}
	return &Engine{data: data, log: log}
}

// parseQuantity turns a stored quantity string into a float. Quantities
// arrive as free text from the billing UI, so unparseable values are
// skipped by callers rather than treated as zero.
func parseQuantity(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// formatMoney renders a dollar amount with thousands separators,
// e.g. 1234.5 -> "$1,234.50".
func formatMoney(v float64) string {
	neg := v < 0
	if neg {
		v = -v
	}
	s := strconv.FormatFloat(v, 'f', 2, 64)
	dot := strings.IndexByte(s, '.')
	whole, frac := s[:dot], s[dot:]
	var b strings.Builder
	for i, c := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	out := "$" + b.String() + frac
	if neg {
		out = "-" + out
	}
	return out
}

// formatHours trims trailing zeros so 8.0 reads as "8" and 12.5 stays
// "12.5".
func formatHours(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimRight(s, ".")
	if s == "" || s == "-" {
		s = "0"
	}
	return s
}

func plural(n int, singular, pluralForm string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, singular)
	}
	return fmt.Sprintf("%d %s", n, pluralForm)
}
