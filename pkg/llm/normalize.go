package llm

import (
	"encoding/json"
	"strings"

	"github.com/impact-cms/florence/pkg/domain"
	"github.com/impact-cms/florence/pkg/ports"
)

// briefLineCap is the line budget for a brief answer. Anything longer
// gets trimmed so chat replies stay scannable.
const briefLineCap = 4

// modelOutput is the schema the prompt asks for.
type modelOutput struct {
	Answer    string   `json:"answer"`
	Citations []string `json:"citations"`
	IsGuess   bool     `json:"is_guess"`
}

// Normalize turns raw model output into a Response. Fenced or embedded
// JSON is extracted and honored. Output no extraction can recover is
// rejected with a MalformedOutputError; AsGuess is the salvage path.
func Normalize(raw string, gen ports.Generator) (*domain.Response, error) {
	var out modelOutput
	body, ok := ExtractJSON(raw)
	if !ok || json.Unmarshal([]byte(body), &out) != nil || strings.TrimSpace(out.Answer) == "" {
		return nil, &domain.MalformedOutputError{Backend: gen.Name(), Model: gen.Model(), Raw: raw}
	}

	r := fallbackResponse(gen.Name(), gen.Model())
	r.Answer = TrimBrief(strings.TrimSpace(out.Answer))
	r.Citations = out.Citations
	r.IsGuess = out.IsGuess
	c := domain.Confidence(r.Answer, false, true, false)
	r.Confidence = &c
	return r, nil
}

// AsGuess salvages output that failed extraction, keeping the raw text
// as a low-confidence prose answer.
func AsGuess(e *domain.MalformedOutputError) *domain.Response {
	r := fallbackResponse(e.Backend, e.Model)
	r.Answer = TrimBrief(strings.TrimSpace(e.Raw))
	r.IsGuess = true
	c := domain.Confidence(r.Answer, false, true, false)
	r.Confidence = &c
	return r
}

func fallbackResponse(source, model string) *domain.Response {
	return &domain.Response{
		Handled:     true,
		OK:          true,
		ModelSource: source,
		Model:       model,
		LocalOnly:   true,
		AnswerMode:  domain.ModeFallback,
	}
}

// TrimBrief caps an answer at the brief line budget, dropping the rest
// with an ellipsis marker.
func TrimBrief(text string) string {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	if len(lines) <= briefLineCap {
		return strings.TrimSpace(text)
	}
	kept := lines[:briefLineCap]
	return strings.TrimSpace(strings.Join(kept, "\n")) + "\n..."
}
