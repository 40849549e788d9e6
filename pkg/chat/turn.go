// Package chat runs conversational turns: it owns the frame stack,
// follow-up canonicalization, pending-clarification resolution, the
// deterministic intent dispatch, and the hand-off to the generative
// fallback. Turns are pure over their inputs: the caller passes thread
// state in and gets the updated state back on the response.
package chat

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/impact-cms/florence/pkg/answers"
	"github.com/impact-cms/florence/pkg/config"
	"github.com/impact-cms/florence/pkg/domain"
	"github.com/impact-cms/florence/pkg/intent"
)

// Fallback answers questions the deterministic ladder declined.
type Fallback interface {
	Answer(ctx context.Context, question string, claimID int64) (*domain.Response, error)
}

// Recorder receives per-turn observations. Nil-safe at the call sites
// so wiring metrics stays optional.
type Recorder interface {
	ObserveTurn(intentName string, fallback bool, elapsed time.Duration)
}

// Engine orchestrates turns.
type Engine struct {
	answers  *answers.Engine
	fallback Fallback
	registry *config.Registry
	recorder Recorder
	log      *slog.Logger
}

// Option configures a chat engine.
type Option func(*Engine)

// WithRecorder attaches turn metrics.
func WithRecorder(r Recorder) Option {
	return func(e *Engine) { e.recorder = r }
}

// NewEngine wires a turn engine over the deterministic answer engine
// and a fallback.
func NewEngine(ans *answers.Engine, fb Fallback, reg *config.Registry, log *slog.Logger, opts ...Option) *Engine {
	if log == nil {
		log = slog.Default()
	}
	if reg == nil {
		reg = config.DefaultRegistry()
	}
	e := &Engine{answers: ans, fallback: fb, registry: reg, log: log}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// resetPhrases abandon the current conversation thread when uttered.
var resetPhrases = []string{"new question", "start over", "reset", "never mind", "forget that"}

// systemIntents reset claim frames when asked, because the user has
// moved the conversation back to the whole book of business.
var systemIntents = map[intent.Intent]bool{
	intent.Capabilities:   true,
	intent.SystemOverview: true,
	intent.ClaimCount:     true,
	intent.TopUninvoiced:  true,
	intent.Workload:       true,
}

// Turn processes one question against the caller's thread state. The
// returned response always carries the updated state; the input state
// is never mutated.
func (e *Engine) Turn(ctx context.Context, state *domain.ThreadState, question string, tc domain.TurnContext) (*domain.Response, error) {
	start := time.Now()
	if state == nil {
		state = domain.NewThreadState()
	}
	next := state.Clone()
	q := intent.Normalize(question)

	if q == "" {
		return e.finish(next, "empty", false, start,
			domain.NewAnswer("Ask me about claims, billing, billables, invoices, or reports.")), nil
	}

	// Explicit resets. A bare reset phrase gets an acknowledgement; a
	// reset phrase leading into a real question clears state and keeps
	// going.
	for _, phrase := range resetPhrases {
		if !strings.Contains(q, phrase) {
			continue
		}
		next.ResetFrames()
		next.ClearPending()
		if strings.Trim(q, "?!. ") == phrase {
			return e.finish(next, "reset", false, start,
				domain.NewAnswer("Okay, fresh start. What would you like to know?")), nil
		}
		break
	}

	// Navigating to a different page abandons the old frames.
	pc := domain.ResolvePageContext(tc)
	if next.LastPageContext != "" && pc != next.LastPageContext {
		next.ResetFrames()
	}
	next.LastPageContext = pc
	if tc.ClaimID != 0 {
		next.LastClaimID = tc.ClaimID
	}

	// Pending clarification. Short replies are read as answers to the
	// outstanding question. A short reply that doesn't resolve the slot
	// leaves the clarification open; only a full new question abandons
	// it.
	if p := next.EffectivePending(); p != nil {
		if isPendingCandidate(q) {
			if value, ok := resolveSlot(p.Slot, q); ok {
				return e.resolvePending(ctx, next, p, value, tc, start)
			}
		} else {
			next.ClearPending()
		}
	}

	// Canonicalize follow-ups: frame-relative first, then relative to
	// the last intent.
	canonical := q
	next.LastFollowupRewrite = false
	if cq, ok := canonicalizeFrame(e.registry, next, q); ok {
		canonical = cq
		next.LastFollowupRewrite = true
	} else if cq, ok := canonicalizeIntent(intent.Intent(next.LastIntent), q); ok {
		canonical = cq
		next.LastFollowupRewrite = true
	}
	next.LastCanonicalQuestion = canonical

	m, matched := intent.Classify(canonical)
	if !matched {
		claimID := e.targetClaim(canonical, pc, tc, next)
		resp, err := e.fallback.Answer(ctx, question, claimID)
		if err != nil {
			return nil, err
		}
		next.LastIntent = string(intent.Unhandled)
		return e.finish(next, string(intent.Unhandled), true, start, resp), nil
	}

	if systemIntents[m.Intent] && !intent.MentionsThisClaim(canonical) {
		next.ResetFrames()
	}

	resp, err := e.dispatch(ctx, next, m, canonical, question, tc, pc)
	if err != nil {
		return nil, err
	}
	next.LastIntent = string(m.Intent)
	return e.finish(next, string(m.Intent), false, start, resp), nil
}

// targetClaim decides whether a question is claim-scoped and resolves
// which claim it targets. System questions get zero.
func (e *Engine) targetClaim(q, pc string, tc domain.TurnContext, state *domain.ThreadState) int64 {
	if pc == domain.PageClaimDetail || tc.ClaimID != 0 || intent.MentionsThisClaim(q) {
		return domain.ResolveClaimID(tc, state)
	}
	return 0
}

func (e *Engine) dispatch(ctx context.Context, next *domain.ThreadState, m intent.Match, canonical, original string, tc domain.TurnContext, pc string) (*domain.Response, error) {
	claimID := e.targetClaim(canonical, pc, tc, next)

	pushScoped := func() {
		if claimID != 0 {
			next.PushFrame(domain.FrameClaimOverview)
		} else {
			next.PushFrame(domain.FrameSystemOverview)
		}
	}

	switch m.Intent {
	case intent.Capabilities:
		return capabilitiesAnswer(), nil
	case intent.TopUninvoiced:
		next.PushFrame(domain.FrameSystemOverview)
		return e.answers.TopUninvoiced(ctx)
	case intent.SystemOverview:
		next.PushFrame(domain.FrameSystemOverview)
		return e.answers.SystemOverview(ctx)
	case intent.Workload:
		next.PushFrame(domain.FrameSystemOverview)
		return e.answers.Workload(ctx)
	case intent.ClaimCount:
		next.PushFrame(domain.FrameSystemOverview)
		return e.answers.ClaimCount(ctx, m.ClaimScope)
	case intent.InvoiceBreakdown:
		pushScoped()
		return e.answers.InvoiceBreakdown(ctx, claimID)
	case intent.ClaimField:
		pushScoped()
		return e.answers.ClaimField(ctx, claimID, m.Field)
	case intent.ClaimSummary:
		pushScoped()
		return e.answers.ClaimSummary(ctx, claimID)
	case intent.WorkStatus:
		pushScoped()
		return e.answers.WorkStatus(ctx, claimID)
	case intent.ReportsSummary:
		pushScoped()
		return e.answers.ReportsSummary(ctx, claimID)
	case intent.BillableMix:
		pushScoped()
		return e.answers.BillableMix(ctx, claimID)
	case intent.BillableTotals:
		pushScoped()
		return e.answers.BillableTotals(ctx, claimID)
	case intent.UninvoicedList:
		pushScoped()
		return e.answers.UninvoicedList(ctx, claimID)
	case intent.UninvoicedValue:
		pushScoped()
		return e.answers.UninvoicedValue(ctx, claimID)
	case intent.BillablesSummary:
		pushScoped()
		return e.answers.BillablesSummary(ctx, claimID)
	case intent.BillingTotal:
		scope := m.BillingScope
		if scope == "" {
			if claimID != 0 {
				// Anchored to a claim, the usual meaning is the balance owed.
				scope = domain.BillingOutstanding
			} else {
				next.SetPending(domain.PendingClarification{
					Intent:           string(intent.BillingTotal),
					Slot:             domain.SlotBillingScope,
					OriginalQuestion: original,
				})
				return domain.NewClarify(
					"Do you want the outstanding (unpaid) balance, or the total billed?",
					domain.ChooseOne(domain.SlotBillingScope,
						domain.ChoiceOption{Label: "Outstanding", Value: "outstanding"},
						domain.ChoiceOption{Label: "Total billed", Value: "total"},
					)), nil
			}
		}
		pushScoped()
		return e.answers.BillingTotal(ctx, claimID, scope)
	}
	return capabilitiesAnswer(), nil
}

// resolvePending consumes a clarification answer. Claim-status answers
// resolve directly; billing-scope answers re-run the original question
// with the chosen scope written into it.
func (e *Engine) resolvePending(ctx context.Context, next *domain.ThreadState, p *domain.PendingClarification, value string, tc domain.TurnContext, start time.Time) (*domain.Response, error) {
	next.ClearPending()
	switch p.Slot {
	case domain.SlotClaimStatus:
		scope := domain.ScopeBoth
		switch value {
		case "open":
			scope = domain.ScopeOpen
		case "closed":
			scope = domain.ScopeClosed
		}
		resp, err := e.answers.ClaimCount(ctx, scope)
		if err != nil {
			return nil, err
		}
		next.PushFrame(domain.FrameSystemOverview)
		next.LastIntent = string(intent.ClaimCount)
		return e.finish(next, string(intent.ClaimCount), false, start, resp), nil
	case domain.SlotBillingScope:
		annotation := " (outstanding/unpaid only)"
		if value == "total" {
			annotation = " (total billed)"
		}
		return e.Turn(ctx, next, p.OriginalQuestion+annotation, tc)
	}
	return e.finish(next, "unknown_slot", false, start,
		domain.NewAnswer("Let's start over. What would you like to know?")), nil
}

// finish stamps the state update onto the response and records the
// turn.
func (e *Engine) finish(next *domain.ThreadState, intentName string, usedFallback bool, start time.Time, resp *domain.Response) *domain.Response {
	resp.StateUpdate = next
	if e.recorder != nil {
		e.recorder.ObserveTurn(intentName, usedFallback, time.Since(start))
	}
	e.log.Debug("turn complete",
		"intent", intentName,
		"fallback", usedFallback,
		"mode", string(resp.AnswerMode),
	)
	return resp
}
