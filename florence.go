package florence

import (
	"context"
	"log/slog"

	"github.com/impact-cms/florence/internal/logging"
	"github.com/impact-cms/florence/pkg/answers"
	"github.com/impact-cms/florence/pkg/chat"
	"github.com/impact-cms/florence/pkg/config"
	"github.com/impact-cms/florence/pkg/domain"
	"github.com/impact-cms/florence/pkg/llm"
	"github.com/impact-cms/florence/pkg/ports"
)

// Assistant is the high-level entry point. It wraps the turn engine and
// provides a simplified API for hosts: web handlers, the CLI, and the
// MCP server all go through HandleTurn.
type Assistant struct {
	engine   *chat.Engine
	settings config.Settings
	registry *config.Registry
	backends []ports.Generator
	recorder chat.Recorder
	logger   *slog.Logger
}

// Option configures the Assistant.
type Option func(*Assistant)

// WithLogger sets a structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Assistant) { a.logger = logger }
}

// WithSettings overrides the default model and timeout settings.
func WithSettings(s config.Settings) Option {
	return func(a *Assistant) { a.settings = s }
}

// WithRegistry injects a custom frame registry.
func WithRegistry(r *config.Registry) Option {
	return func(a *Assistant) { a.registry = r }
}

// WithGenerators overrides the backend preference order. By default the
// assistant tries the local model service and degrades to the
// deterministic mock.
func WithGenerators(gens ...ports.Generator) Option {
	return func(a *Assistant) { a.backends = gens }
}

// WithRecorder attaches turn metrics.
func WithRecorder(r chat.Recorder) Option {
	return func(a *Assistant) { a.recorder = r }
}

// New builds an Assistant over a billing data store.
func New(data ports.DataStore, opts ...Option) (*Assistant, error) {
	a := &Assistant{
		settings: config.DefaultSettings(),
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.registry == nil {
		if a.settings.RegistryPath != "" {
			reg, err := config.LoadRegistry(a.settings.RegistryPath)
			if err != nil {
				return nil, err
			}
			a.registry = reg
		} else {
			a.registry = config.DefaultRegistry()
		}
	}
	if len(a.backends) == 0 {
		a.backends = []ports.Generator{
			llm.NewOllama(a.settings.ModelURL, a.settings.ModelName, a.logger,
				llm.WithProbeTimeout(a.settings.ProbeTimeout),
				llm.WithGenerateTimeout(a.settings.GenerateTimeout),
			),
			llm.NewMock(),
		}
	}

	engine := answers.New(data, a.logger)
	router := llm.NewRouter(a.logger, a.backends...)
	fallback := llm.NewOrchestrator(engine, router, a.logger)

	var chatOpts []chat.Option
	if a.recorder != nil {
		chatOpts = append(chatOpts, chat.WithRecorder(a.recorder))
	}
	a.engine = chat.NewEngine(engine, fallback, a.registry, a.logger, chatOpts...)
	return a, nil
}

// HandleTurn processes one question against the caller's thread state.
// The input state is never mutated; the returned response carries the
// updated state to persist.
func (a *Assistant) HandleTurn(ctx context.Context, state *domain.ThreadState, question string, tc domain.TurnContext) (*domain.Response, error) {
	return a.engine.Turn(ctx, state, question, tc)
}

// Capabilities lists what the assistant answers deterministically.
func (a *Assistant) Capabilities() []chat.Capability {
	return chat.Capabilities()
}
