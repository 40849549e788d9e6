package middleware

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/impact-cms/florence/pkg/adapters/memory"
	"github.com/impact-cms/florence/pkg/domain"
)

func TestPIIScrubsQuestionText(t *testing.T) {
	inner := memory.NewStore()
	store := NewPIIMiddleware([]string{`(?i)dana reyes`, `\d{3}-\d{2}-\d{4}`})(inner)

	state := domain.NewThreadState()
	state.LastCanonicalQuestion = "what is Dana Reyes's date of birth"
	state.SetPending(domain.PendingClarification{
		Intent:           "billing_total",
		Slot:             domain.SlotBillingScope,
		OriginalQuestion: "how much is owed for SSN 123-45-6789",
	})
	require.NoError(t, store.Save(context.Background(), "s1", state))

	stored, err := inner.Load(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, "what is ***'s date of birth", stored.LastCanonicalQuestion)
	assert.Equal(t, "how much is owed for SSN ***", stored.Pending.OriginalQuestion)
	assert.Equal(t, "how much is owed for SSN ***", stored.LastClarifyOriginalQuestion)
}

func TestPIILeavesCallerStateUntouched(t *testing.T) {
	inner := memory.NewStore()
	store := NewPIIMiddleware([]string{`(?i)dana`})(inner)

	state := domain.NewThreadState()
	state.LastCanonicalQuestion = "is Dana's claim open"
	require.NoError(t, store.Save(context.Background(), "s1", state))

	assert.Equal(t, "is Dana's claim open", state.LastCanonicalQuestion)
}

func TestPIIDoesNotTouchStructuredFields(t *testing.T) {
	inner := memory.NewStore()
	store := NewPIIMiddleware([]string{`claim`})(inner)

	state := domain.NewThreadState()
	state.PushFrame(domain.FrameClaimOverview)
	state.LastIntent = "claim_count"
	state.LastClaimID = 3
	require.NoError(t, store.Save(context.Background(), "s1", state))

	stored, err := inner.Load(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, []string{domain.FrameClaimOverview}, stored.FrameStack)
	assert.Equal(t, "claim_count", stored.LastIntent)
	assert.Equal(t, int64(3), stored.LastClaimID)
}

func TestMiddlewareComposition(t *testing.T) {
	inner := memory.NewStore()

	// Scrubber outermost, so what gets sealed is the scrubbed state.
	wrapped := NewPIIMiddleware([]string{`(?i)reyes`})(
		NewEncryptionMiddleware(EncryptionConfig{ActiveKey: testKey(9)})(inner),
	)

	state := domain.NewThreadState()
	state.LastCanonicalQuestion = "summarize the Reyes claim"
	require.NoError(t, wrapped.Save(context.Background(), "s1", state))

	got, err := wrapped.Load(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, "summarize the *** claim", got.LastCanonicalQuestion)

	raw, err := inner.Load(context.Background(), "s1")
	require.NoError(t, err)
	assert.NotEmpty(t, raw.Sealed)
}
