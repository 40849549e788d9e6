package domain

import (
	"strconv"

	"github.com/mitchellh/mapstructure"
)

// TurnContext carries what the host UI knows about where the user is:
// the claim open on screen (if any) and the page kind. It is deliberately
// loose; adapters receive it as a JSON object and decode it here.
type TurnContext struct {
	ClaimID     int64  `mapstructure:"claim_id" json:"claim_id,omitempty"`
	PageContext string `mapstructure:"page_context" json:"page_context,omitempty"`
}

// PageClaimDetail is the page context the host sends while a claim
// detail view is open.
const PageClaimDetail = "claim_detail"

// DecodeTurnContext converts a loose payload map into a TurnContext.
// Claim ids arrive as numbers or strings depending on the client;
// anything unparseable decodes to zero (no claim).
func DecodeTurnContext(raw map[string]any) (TurnContext, error) {
	var tc TurnContext
	if raw == nil {
		return tc, nil
	}

	// Older clients send "context" instead of "page_context".
	if _, ok := raw["page_context"]; !ok {
		if v, ok := raw["context"]; ok {
			raw = cloneMap(raw)
			raw["page_context"] = v
		}
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &tc,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return tc, err
	}
	if err := dec.Decode(raw); err != nil {
		// A claim_id like "abc" should degrade to "no claim", not fail
		// the turn. Retry without the offending key.
		scrubbed := cloneMap(raw)
		delete(scrubbed, "claim_id")
		tc = TurnContext{}
		dec2, derr := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			Result:           &tc,
			WeaklyTypedInput: true,
		})
		if derr != nil {
			return tc, derr
		}
		if derr := dec2.Decode(scrubbed); derr != nil {
			return tc, derr
		}
	}
	return tc, nil
}

// ResolveClaimID picks the best-known claim id: the context wins, then
// the prior state. Zero means no claim is known.
func ResolveClaimID(tc TurnContext, state *ThreadState) int64 {
	if tc.ClaimID != 0 {
		return tc.ClaimID
	}
	if state != nil {
		return state.LastClaimID
	}
	return 0
}

// ResolvePageContext normalizes the page context, defaulting to "system".
func ResolvePageContext(tc TurnContext) string {
	if tc.PageContext == "" {
		return "system"
	}
	return tc.PageContext
}

// FormatClaimID renders a claim id for display.
func FormatClaimID(id int64) string {
	return strconv.FormatInt(id, 10)
}

func cloneMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
