package llm

import (
	"context"
	"fmt"
)

// mockEmbedDim keeps mock vectors small but shaped like real ones.
const mockEmbedDim = 8

// Mock is the always-available backend of last resort. Its output is
// deterministic so turns stay reproducible when no model is running,
// and everything it says is marked as a guess downstream.
type Mock struct {
	// Respond, when set, overrides the canned reply. Used by tests to
	// script backend output.
	Respond func(prompt string) (string, error)
}

// NewMock builds a mock backend with the canned reply.
func NewMock() *Mock { return &Mock{} }

func (m *Mock) Name() string  { return "mock" }
func (m *Mock) Model() string { return "mock" }

func (m *Mock) Available(ctx context.Context) bool { return true }

func (m *Mock) Generate(ctx context.Context, prompt string) (string, error) {
	if m.Respond != nil {
		return m.Respond(prompt)
	}
	return fmt.Sprintf(`{"answer": "I don't have a model available to answer that. (prompt was %d characters)", "citations": [], "is_guess": true}`, len(prompt)), nil
}

func (m *Mock) Embed(ctx context.Context, texts []string) ([][]float64, error) {
	vectors := make([][]float64, len(texts))
	for i := range texts {
		vectors[i] = make([]float64, mockEmbedDim)
	}
	return vectors, nil
}
