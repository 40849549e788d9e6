package ports

import "context"

// Generator is a generative model backend. Implementations are expected
// to be cheap to construct; Available is the reachability probe used for
// backend selection and must return quickly (sub-second).
type Generator interface {
	// Name identifies the backend ("local", "mock"). Reported verbatim
	// as the model_source of any response it produces.
	Name() string

	// Model returns the configured model identifier.
	Model() string

	// Available reports whether the backend can serve requests right now.
	Available(ctx context.Context) bool

	// Generate produces text for a prompt. Blocking, bounded by the
	// backend's configured timeout or ctx, whichever is shorter.
	Generate(ctx context.Context, prompt string) (string, error)

	// Embed converts a batch of strings into vectors.
	Embed(ctx context.Context, texts []string) ([][]float64, error)
}
