package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/impact-cms/florence/pkg/answers"
	"github.com/impact-cms/florence/pkg/domain"
)

// Orchestrator runs the generative fallback for questions the
// deterministic ladder declined. It gathers pre-aggregated facts,
// prompts the selected backend, and guards the output: a claim-scoped
// refusal escalates once to system scope, and the user never gets an
// empty or errored-out reply.
type Orchestrator struct {
	engine *answers.Engine
	router *Router
	log    *slog.Logger
}

// NewOrchestrator wires the fallback path.
func NewOrchestrator(engine *answers.Engine, router *Router, log *slog.Logger) *Orchestrator {
	if log == nil {
		log = slog.Default()
	}
	return &Orchestrator{engine: engine, router: router, log: log}
}

// Answer handles one fallback question. claimID zero means system
// scope.
func (o *Orchestrator) Answer(ctx context.Context, question string, claimID int64) (*domain.Response, error) {
	resp, facts, err := o.once(ctx, question, claimID)
	if err != nil {
		return nil, err
	}

	// A model that refuses for lack of claim context gets one retry at
	// system scope before we give up on it.
	if claimID != 0 && looksLikeRefusal(resp.Answer) {
		o.log.Debug("fallback refused at claim scope, retrying system-wide", "question", question)
		wide, wideFacts, err := o.once(ctx, question, 0)
		if err != nil {
			return nil, err
		}
		if !looksLikeRefusal(wide.Answer) && strings.TrimSpace(wide.Answer) != "" {
			return wide, nil
		}
		resp, facts = wide, wideFacts
	}

	if strings.TrimSpace(resp.Answer) == "" || looksLikeRefusal(resp.Answer) {
		return o.synthesize(facts, resp), nil
	}
	return resp, nil
}

// once runs a single prompt-generate-normalize pass at one scope.
func (o *Orchestrator) once(ctx context.Context, question string, claimID int64) (*domain.Response, map[string]any, error) {
	facts, err := o.engine.Facts(ctx, claimID)
	if err != nil {
		return nil, nil, err
	}
	gen, err := o.router.Pick(ctx)
	if err != nil {
		o.log.Warn("fallback unavailable", "err", err)
		return o.synthesize(facts, &domain.Response{ModelSource: domain.SourceSystem}), facts, nil
	}
	prompt := BuildPrompt(question, answers.FormatFacts(facts))

	raw, err := gen.Generate(ctx, prompt)
	if err != nil {
		o.log.Warn("fallback generation failed", "backend", gen.Name(), "err", err)
		return o.synthesize(facts, &domain.Response{
			ModelSource: gen.Name(),
			Model:       gen.Model(),
		}), facts, nil
	}

	resp, err := Normalize(raw, gen)
	if err != nil {
		var malformed *domain.MalformedOutputError
		if !errors.As(err, &malformed) {
			return nil, nil, err
		}
		o.log.Warn("model output failed extraction, keeping it as prose", "backend", malformed.Backend, "model", malformed.Model)
		return AsGuess(malformed), facts, nil
	}
	return resp, facts, nil
}

// synthesize builds the deterministic last-resort reply from the fact
// map so the turn still says something grounded.
func (o *Orchestrator) synthesize(facts map[string]any, base *domain.Response) *domain.Response {
	lines := []string{"I couldn't work out an answer to that, but here is what I can see:"}
	if rendered := answers.FormatFacts(facts); rendered != "" {
		for _, line := range strings.Split(rendered, "\n") {
			if k, v, ok := strings.Cut(line, ": "); ok {
				lines = append(lines, fmt.Sprintf("- %s: %s", strings.ReplaceAll(k, "_", " "), v))
			}
		}
	} else {
		lines = append(lines, "- no records in context")
	}

	text := strings.Join(lines, "\n")
	c := domain.Confidence(text, false, true, false)
	return &domain.Response{
		Handled:     true,
		OK:          true,
		Answer:      text,
		IsGuess:     true,
		Confidence:  &c,
		ModelSource: base.ModelSource,
		Model:       base.Model,
		LocalOnly:   true,
		AnswerMode:  domain.ModeFallback,
	}
}

// refusalMarkers are phrasings that mean "the context was not enough",
// which is the escalation trigger, not an answer.
var refusalMarkers = []string{
	"do not have that information",
	"don't have that information",
	"no context",
	"not in the context",
	"no information about",
	"cannot answer",
	"can't answer",
}

func looksLikeRefusal(answer string) bool {
	a := strings.ToLower(answer)
	for _, m := range refusalMarkers {
		if strings.Contains(a, m) {
			return true
		}
	}
	return false
}
