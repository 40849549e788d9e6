package llm

import "strings"

// numericGuard is prepended to every generative prompt. The model only
// ever sees pre-aggregated facts, and this preamble tells it to stay
// inside them.
const numericGuard = `Do not invent numbers. Only use figures that appear in the CONTEXT below. If the context does not contain the number needed to answer, say you do not have that information. Always include units (hours, miles, dollars) with any figure.`

// responseSchema describes the JSON shape the model is asked to emit.
const responseSchema = `Respond with a single JSON object and nothing else:
{"answer": "<your answer as plain text>", "citations": ["<context keys you relied on>"], "is_guess": <true if you are unsure or the context was insufficient>}`

// BuildPrompt assembles the fallback prompt: guardrails, schema, the
// serialized facts, and the question, in that order so instructions
// come before data.
func BuildPrompt(question, facts string) string {
	var b strings.Builder
	b.WriteString("You are Florence, the assistant inside a medical case management system. Answer the consultant's question using only the context provided.\n\n")
	b.WriteString(numericGuard)
	b.WriteString("\n\n")
	b.WriteString(responseSchema)
	b.WriteString("\n\nCONTEXT:\n")
	if strings.TrimSpace(facts) == "" {
		b.WriteString("(no records in context)\n")
	} else {
		b.WriteString(facts)
		b.WriteString("\n")
	}
	b.WriteString("\nQUESTION: ")
	b.WriteString(question)
	b.WriteString("\n")
	return b.String()
}
