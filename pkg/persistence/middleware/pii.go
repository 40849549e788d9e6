package middleware

import (
	"context"
	"regexp"

	"github.com/impact-cms/florence/pkg/domain"
	"github.com/impact-cms/florence/pkg/ports"
)

const masked = "***"

type piiMiddleware struct {
	next     ports.StateStore
	patterns []*regexp.Regexp
}

// NewPIIMiddleware returns a middleware that scrubs matching substrings
// out of stored question text. Raw questions ("what is Dana Reyes's
// DOB") can carry claimant names and identifiers, and they are the only
// free-text fields in the state; everything else is numeric or drawn
// from closed vocabularies. Scrubbing happens on a clone, so the live
// state the caller keeps is untouched.
func NewPIIMiddleware(patternStrings []string) Middleware {
	patterns := make([]*regexp.Regexp, len(patternStrings))
	for i, p := range patternStrings {
		patterns[i] = regexp.MustCompile(p)
	}
	return func(next ports.StateStore) ports.StateStore {
		return &piiMiddleware{next: next, patterns: patterns}
	}
}

func (m *piiMiddleware) Save(ctx context.Context, sessionID string, state *domain.ThreadState) error {
	scrubbed := state.Clone()
	scrubbed.LastCanonicalQuestion = m.scrub(scrubbed.LastCanonicalQuestion)
	scrubbed.LastClarifyOriginalQuestion = m.scrub(scrubbed.LastClarifyOriginalQuestion)
	if scrubbed.Pending != nil {
		scrubbed.Pending.OriginalQuestion = m.scrub(scrubbed.Pending.OriginalQuestion)
	}
	return m.next.Save(ctx, sessionID, scrubbed)
}

func (m *piiMiddleware) scrub(text string) string {
	for _, p := range m.patterns {
		text = p.ReplaceAllString(text, masked)
	}
	return text
}

func (m *piiMiddleware) Load(ctx context.Context, sessionID string) (*domain.ThreadState, error) {
	return m.next.Load(ctx, sessionID)
}

func (m *piiMiddleware) Delete(ctx context.Context, sessionID string) error {
	return m.next.Delete(ctx, sessionID)
}

func (m *piiMiddleware) List(ctx context.Context) ([]string, error) {
	return m.next.List(ctx)
}
