// Package llm holds the generative side of the assistant: backends,
// backend selection, prompt assembly, output extraction, and the
// fallback orchestrator that guards what the model is allowed to say.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/impact-cms/florence/pkg/domain"
)

// Ollama talks to a local Ollama server over its HTTP API. All traffic
// stays on the workstation.
type Ollama struct {
	baseURL      string
	model        string
	probeTimeout time.Duration
	client       *http.Client
	log          *slog.Logger
}

// OllamaOption configures an Ollama backend.
type OllamaOption func(*Ollama)

// WithHTTPClient swaps the HTTP client, mainly for tests.
func WithHTTPClient(c *http.Client) OllamaOption {
	return func(o *Ollama) { o.client = c }
}

// WithProbeTimeout bounds the Available reachability check.
func WithProbeTimeout(d time.Duration) OllamaOption {
	return func(o *Ollama) { o.probeTimeout = d }
}

// WithGenerateTimeout bounds Generate and Embed calls.
func WithGenerateTimeout(d time.Duration) OllamaOption {
	return func(o *Ollama) { o.client.Timeout = d }
}

// NewOllama builds a backend against baseURL (e.g. http://localhost:11434).
func NewOllama(baseURL, model string, log *slog.Logger, opts ...OllamaOption) *Ollama {
	if log == nil {
		log = slog.Default()
	}
	o := &Ollama{
		baseURL:      baseURL,
		model:        model,
		probeTimeout: 500 * time.Millisecond,
		client:       &http.Client{Timeout: 120 * time.Second},
		log:          log,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func (o *Ollama) Name() string  { return "local" }
func (o *Ollama) Model() string { return o.model }

// Available probes the tags endpoint with a short deadline so a missing
// server costs half a second, not a request timeout.
func (o *Ollama) Available(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, o.probeTimeout)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, o.baseURL+"/api/tags", nil)
	if err != nil {
		return false
	}
	resp, err := o.client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)
	return resp.StatusCode == http.StatusOK
}

type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type generateResponse struct {
	Response string `json:"response"`
}

// Generate runs a non-streaming completion.
func (o *Ollama) Generate(ctx context.Context, prompt string) (string, error) {
	var out generateResponse
	if err := o.post(ctx, "/api/generate", generateRequest{Model: o.model, Prompt: prompt}, &out); err != nil {
		return "", err
	}
	return out.Response, nil
}

type embedRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
}

type embedResponse struct {
	Embedding []float64 `json:"embedding"`
}

// Embed vectorizes each text with a separate embeddings call.
func (o *Ollama) Embed(ctx context.Context, texts []string) ([][]float64, error) {
	vectors := make([][]float64, 0, len(texts))
	for _, text := range texts {
		var out embedResponse
		if err := o.post(ctx, "/api/embeddings", embedRequest{Model: o.model, Prompt: text}, &out); err != nil {
			return nil, err
		}
		vectors = append(vectors, out.Embedding)
	}
	return vectors, nil
}

func (o *Ollama) post(ctx context.Context, path string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return &domain.BackendError{Backend: o.Name(), Model: o.model, Err: err}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return &domain.BackendError{Backend: o.Name(), Model: o.model, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := o.client.Do(req)
	if err != nil {
		return &domain.BackendError{Backend: o.Name(), Model: o.model, Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return &domain.BackendError{
			Backend: o.Name(),
			Model:   o.model,
			Err:     fmt.Errorf("%s returned %s", path, resp.Status),
		}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &domain.BackendError{Backend: o.Name(), Model: o.model, Err: err}
	}
	return nil
}
