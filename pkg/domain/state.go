package domain

// Clarification slots. Each slot has a closed set of valid values; the
// pending resolver in pkg/chat only ever matches against these.
const (
	SlotClaimStatus  = "claim_status"  // open | closed | both
	SlotBillingScope = "billing_scope" // outstanding | total
)

// Frame identifiers. A frame is a named conversational scope used to
// resolve referential follow-ups ("what about billing?").
const (
	FrameSystemOverview = "system_overview"
	FrameClaimOverview  = "claim_overview"
)

// PendingClarification is a stored question awaiting a short
// disambiguating reply. OriginalQuestion preserves the pre-clarification
// question so the turn can be replayed once the slot is resolved.
type PendingClarification struct {
	Intent           string `json:"intent"`
	Slot             string `json:"slot"`
	OriginalQuestion string `json:"original_question,omitempty"`
}

// ThreadState is the per-conversation state. It is owned by the caller:
// created empty on first contact, passed in on every turn, and replaced
// wholesale by the ThreadStateUpdate of the response. The engine never
// mutates a state it was given; each turn works on a clone.
type ThreadState struct {
	// FrameStack holds the active frames in order, most specific last.
	// Never contains two identical consecutive entries.
	FrameStack []string `json:"frame_stack,omitempty"`

	LastFrame       string `json:"last_frame,omitempty"`
	LastIntent      string `json:"last_intent,omitempty"`
	LastClaimID     int64  `json:"last_claim_id,omitempty"`
	LastPageContext string `json:"last_page_context,omitempty"`

	// Pending is non-nil while a clarification question is outstanding.
	Pending *PendingClarification `json:"pending,omitempty"`

	// Mirrors of the last clarify, kept so a pending clarification can be
	// reconstructed if the caller drops the Pending pointer but keeps the
	// flat keys (the original web client did exactly that).
	LastClarifyIntent           string `json:"last_clarify_intent,omitempty"`
	LastClarifySlot             string `json:"last_clarify_slot,omitempty"`
	LastClarifyOriginalQuestion string `json:"last_clarify_original_question,omitempty"`

	LastCanonicalQuestion string `json:"last_canonical_question,omitempty"`
	LastFollowupRewrite   bool   `json:"last_followup_rewrite,omitempty"`

	// Sealed carries the encrypted form of the whole state when the
	// persistence encryption middleware is in use. When set, every other
	// field is empty.
	Sealed string `json:"sealed,omitempty"`
}

// NewThreadState returns an empty conversation state.
func NewThreadState() *ThreadState {
	return &ThreadState{}
}

// Clone returns a deep copy. Turn processing always clones the incoming
// state and mutates only the copy, so state transitions stay pure from
// the caller's point of view.
func (s *ThreadState) Clone() *ThreadState {
	if s == nil {
		return NewThreadState()
	}
	out := *s
	out.FrameStack = append([]string(nil), s.FrameStack...)
	if s.Pending != nil {
		p := *s.Pending
		out.Pending = &p
	}
	return &out
}

// PushFrame records that an intent established a scope. The frame is
// appended unless it is already the top of the stack, keeping the
// no-consecutive-duplicates invariant.
func (s *ThreadState) PushFrame(frame string) {
	if frame == "" {
		return
	}
	if n := len(s.FrameStack); n > 0 && s.FrameStack[n-1] == frame {
		s.LastFrame = frame
		return
	}
	s.FrameStack = append(s.FrameStack, frame)
	s.LastFrame = frame
}

// ResetFrames clears the frame stack and the last frame marker.
func (s *ThreadState) ResetFrames() {
	s.FrameStack = nil
	s.LastFrame = ""
}

// ActiveFrames returns the frames to consult for follow-up resolution,
// most specific first. When the stack is empty it falls back to the last
// known frame, if any.
func (s *ThreadState) ActiveFrames() []string {
	if len(s.FrameStack) == 0 {
		if s.LastFrame != "" {
			return []string{s.LastFrame}
		}
		return nil
	}
	out := make([]string, 0, len(s.FrameStack))
	for i := len(s.FrameStack) - 1; i >= 0; i-- {
		out = append(out, s.FrameStack[i])
	}
	return out
}

// EffectivePending returns the outstanding clarification, reconstructing
// it from the flat last_clarify keys when the pointer itself is gone.
func (s *ThreadState) EffectivePending() *PendingClarification {
	if s.Pending != nil {
		return s.Pending
	}
	if s.LastClarifyIntent != "" && s.LastClarifySlot != "" {
		return &PendingClarification{
			Intent:           s.LastClarifyIntent,
			Slot:             s.LastClarifySlot,
			OriginalQuestion: s.LastClarifyOriginalQuestion,
		}
	}
	return nil
}

// ClearPending removes the outstanding clarification and its mirrors.
func (s *ThreadState) ClearPending() {
	s.Pending = nil
	s.LastClarifyIntent = ""
	s.LastClarifySlot = ""
	s.LastClarifyOriginalQuestion = ""
}

// SetPending records a clarification and mirrors it into the flat keys.
func (s *ThreadState) SetPending(p PendingClarification) {
	s.Pending = &p
	s.LastClarifyIntent = p.Intent
	s.LastClarifySlot = p.Slot
	s.LastClarifyOriginalQuestion = p.OriginalQuestion
}
