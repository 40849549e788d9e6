/*
Package florence is the conversational query layer of a medical case
management system. It answers a consultant's questions about claims,
billables, invoices, and reports: deterministically by arithmetic over
the billing database wherever possible, and through a guarded local
language model for everything else.

# Concept

Florence is deliberately split into a deterministic core and a
generative fallback. Questions about counts, totals, and record fields
never touch a model; a keyword-priority intent ladder routes them to
exact answers computed from data. Open-ended questions go to a local
model that only ever sees pre-aggregated numbers, so it cannot
miscount, and its output is normalized into the same response contract.

Conversation state is owned by the caller: every turn takes the thread
state in and hands an updated copy back, which makes the engine
stateless and safe behind any number of web workers. Follow-ups like
"what about billing?" resolve against a stack of conversational frames
carried in that state.

# Usage

Build an Assistant over a data store, then run turns:

	assistant, err := florence.New(store)
	if err != nil {
		log.Fatal(err)
	}
	resp, err := assistant.HandleTurn(ctx, state, "How many open claims do I have?", turnCtx)

The response carries the answer, provenance (model source, confidence,
is_guess), and the updated thread state to persist for the next turn.
*/
package florence
