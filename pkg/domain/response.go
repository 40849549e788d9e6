package domain

// AnswerMode describes how the answer text should be presented.
type AnswerMode string

const (
	ModeBrief    AnswerMode = "brief"
	ModeSummary  AnswerMode = "summary"
	ModeList     AnswerMode = "list"
	ModeClarify  AnswerMode = "clarify"
	ModeFallback AnswerMode = "fallback"
	ModeDebug    AnswerMode = "debug"
)

// Model sources reported in responses. Selection is never silent: every
// response names the backend that produced it.
const (
	SourceSystem = "system" // deterministic, no model involved
	SourceLocal  = "local"  // local model service
	SourceMock   = "mock"   // deterministic mock backend
)

// ChoiceOption is one selectable value of a clarification action.
type ChoiceOption struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Action is a structured UI request attached to a clarify response.
// The only type currently defined is "choose_one".
type Action struct {
	Type    string         `json:"type"`
	Slot    string         `json:"slot"`
	Options []ChoiceOption `json:"options"`
}

// ChooseOne builds a single-slot choice action.
func ChooseOne(slot string, options ...ChoiceOption) *Action {
	return &Action{Type: "choose_one", Slot: slot, Options: options}
}

// Response is the stable output contract of a turn. The subsystem never
// returns a raw error to its caller; trust level is communicated through
// IsGuess, Confidence and AnswerMode instead.
type Response struct {
	Handled     bool         `json:"handled"`
	OK          bool         `json:"ok"`
	Answer      string       `json:"answer"`
	Citations   []string     `json:"citations"`
	IsGuess     bool         `json:"is_guess"`
	Confidence  *float64     `json:"confidence"`
	ModelSource string       `json:"model_source"`
	Model       string       `json:"model,omitempty"`
	LocalOnly   bool         `json:"local_only"`
	AnswerMode  AnswerMode   `json:"answer_mode"`
	Action      *Action      `json:"action,omitempty"`
	StateUpdate *ThreadState `json:"thread_state_update"`
}

// NewAnswer builds a deterministic system answer. The turn orchestrator
// attaches the state update before the response leaves the subsystem.
func NewAnswer(text string) *Response {
	conf := Confidence(text, true, false, false)
	return &Response{
		Handled:     true,
		OK:          true,
		Answer:      text,
		Citations:   []string{},
		Confidence:  &conf,
		ModelSource: SourceSystem,
		LocalOnly:   true,
		AnswerMode:  ModeBrief,
	}
}

// NewListAnswer builds a deterministic answer presented as a list.
func NewListAnswer(text string) *Response {
	r := NewAnswer(text)
	r.AnswerMode = ModeList
	return r
}

// NewSummaryAnswer builds a deterministic answer presented as a summary.
func NewSummaryAnswer(text string) *Response {
	r := NewAnswer(text)
	r.AnswerMode = ModeSummary
	return r
}

// NewClarify builds a clarification response. The pending clarification
// must already be set on the turn's state; its intent/slot/original
// question are mirrored into the flat last_clarify keys by SetPending.
func NewClarify(text string, action *Action) *Response {
	r := NewAnswer(text)
	r.AnswerMode = ModeClarify
	r.Action = action
	return r
}
