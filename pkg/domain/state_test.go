package domain_test

import (
	"testing"

	"github.com/impact-cms/florence/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPushFrame_NoConsecutiveDuplicates(t *testing.T) {
	s := domain.NewThreadState()

	s.PushFrame(domain.FrameSystemOverview)
	s.PushFrame(domain.FrameSystemOverview)
	s.PushFrame(domain.FrameClaimOverview)
	s.PushFrame(domain.FrameClaimOverview)
	s.PushFrame(domain.FrameSystemOverview)

	assert.Equal(t, []string{
		domain.FrameSystemOverview,
		domain.FrameClaimOverview,
		domain.FrameSystemOverview,
	}, s.FrameStack)
	assert.Equal(t, domain.FrameSystemOverview, s.LastFrame)

	// The invariant holds after any sequence of pushes.
	for i := 1; i < len(s.FrameStack); i++ {
		assert.NotEqual(t, s.FrameStack[i-1], s.FrameStack[i])
	}
}

func TestPushFrame_IgnoresEmpty(t *testing.T) {
	s := domain.NewThreadState()
	s.PushFrame("")
	assert.Empty(t, s.FrameStack)
	assert.Empty(t, s.LastFrame)
}

func TestActiveFrames_MostSpecificFirst(t *testing.T) {
	s := domain.NewThreadState()
	s.PushFrame(domain.FrameSystemOverview)
	s.PushFrame(domain.FrameClaimOverview)

	assert.Equal(t, []string{domain.FrameClaimOverview, domain.FrameSystemOverview}, s.ActiveFrames())
}

func TestActiveFrames_FallsBackToLastFrame(t *testing.T) {
	s := domain.NewThreadState()
	s.LastFrame = domain.FrameSystemOverview

	assert.Equal(t, []string{domain.FrameSystemOverview}, s.ActiveFrames())
}

func TestResetFrames(t *testing.T) {
	s := domain.NewThreadState()
	s.PushFrame(domain.FrameSystemOverview)
	s.ResetFrames()

	assert.Empty(t, s.FrameStack)
	assert.Empty(t, s.LastFrame)
}

func TestClone_IsDeep(t *testing.T) {
	s := domain.NewThreadState()
	s.PushFrame(domain.FrameSystemOverview)
	s.SetPending(domain.PendingClarification{
		Intent: "billing_total",
		Slot:   domain.SlotBillingScope,
	})

	c := s.Clone()
	c.PushFrame(domain.FrameClaimOverview)
	c.Pending.Slot = domain.SlotClaimStatus

	assert.Equal(t, []string{domain.FrameSystemOverview}, s.FrameStack)
	assert.Equal(t, domain.SlotBillingScope, s.Pending.Slot)
}

func TestClone_Nil(t *testing.T) {
	var s *domain.ThreadState
	c := s.Clone()
	require.NotNil(t, c)
	assert.Empty(t, c.FrameStack)
}

func TestEffectivePending_ReconstructsFromFlatKeys(t *testing.T) {
	s := domain.NewThreadState()
	s.LastClarifyIntent = "claim_count"
	s.LastClarifySlot = domain.SlotClaimStatus
	s.LastClarifyOriginalQuestion = "how many claims?"

	p := s.EffectivePending()
	require.NotNil(t, p)
	assert.Equal(t, "claim_count", p.Intent)
	assert.Equal(t, domain.SlotClaimStatus, p.Slot)
	assert.Equal(t, "how many claims?", p.OriginalQuestion)
}

func TestSetPending_MirrorsFlatKeys(t *testing.T) {
	s := domain.NewThreadState()
	s.SetPending(domain.PendingClarification{
		Intent:           "billing_total",
		Slot:             domain.SlotBillingScope,
		OriginalQuestion: "how much billing do I have?",
	})

	assert.Equal(t, "billing_total", s.LastClarifyIntent)
	assert.Equal(t, domain.SlotBillingScope, s.LastClarifySlot)

	s.ClearPending()
	assert.Nil(t, s.Pending)
	assert.Nil(t, s.EffectivePending())
}

func TestDecodeTurnContext(t *testing.T) {
	cases := []struct {
		name string
		raw  map[string]any
		want domain.TurnContext
	}{
		{"nil", nil, domain.TurnContext{}},
		{"numeric id", map[string]any{"claim_id": 9, "page_context": "claim_detail"},
			domain.TurnContext{ClaimID: 9, PageContext: "claim_detail"}},
		{"string id", map[string]any{"claim_id": "12"},
			domain.TurnContext{ClaimID: 12}},
		{"legacy context key", map[string]any{"context": "claim_detail"},
			domain.TurnContext{PageContext: "claim_detail"}},
		{"garbage id degrades", map[string]any{"claim_id": "abc", "page_context": "system"},
			domain.TurnContext{PageContext: "system"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := domain.DecodeTurnContext(tc.raw)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestConfidence(t *testing.T) {
	assert.Equal(t, 0.3, domain.Confidence("", true, false, false))
	assert.Equal(t, 0.3, domain.Confidence("   ", true, false, false))
	assert.Equal(t, 0.6, domain.Confidence("x", true, true, false))
	assert.Equal(t, 0.7, domain.Confidence("x", true, false, true))
	assert.Equal(t, 1.0, domain.Confidence("x", true, false, false))
	assert.Equal(t, 0.5, domain.Confidence("x", false, false, false))
}
