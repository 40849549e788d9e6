package config

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed registry.yaml
var defaultRegistryYAML []byte

// Domain is one subject area inside a frame: a canonical question plus
// the nouns that resolve to it. Domains are matched in declaration
// order, keys before synonyms, so precedence is data, not code layout.
type Domain struct {
	Key      string   `yaml:"key"`
	Synonyms []string `yaml:"synonyms"`
	Question string   `yaml:"question"`
}

// Frame is a named conversational scope with its domain registry.
type Frame struct {
	Domains []Domain `yaml:"domains"`
}

// Registry maps frame ids to their domain registries. It is loaded once
// at startup and treated as immutable afterwards.
type Registry struct {
	Frames map[string]Frame `yaml:"frames"`
}

// DefaultRegistry returns the built-in frame registry.
func DefaultRegistry() *Registry {
	reg, err := ParseRegistry(defaultRegistryYAML)
	if err != nil {
		// The embedded registry is part of the build; failing to parse it
		// is a programming error, not a runtime condition.
		panic(fmt.Sprintf("embedded frame registry invalid: %v", err))
	}
	return reg
}

// LoadRegistry reads a frame registry from a YAML file.
func LoadRegistry(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read frame registry: %w", err)
	}
	return ParseRegistry(data)
}

// ParseRegistry parses registry YAML.
func ParseRegistry(data []byte) (*Registry, error) {
	var reg Registry
	if err := yaml.Unmarshal(data, &reg); err != nil {
		return nil, fmt.Errorf("failed to parse frame registry: %w", err)
	}
	for id, frame := range reg.Frames {
		for _, d := range frame.Domains {
			if d.Key == "" || d.Question == "" {
				return nil, fmt.Errorf("frame %q: every domain needs a key and a question", id)
			}
		}
	}
	return &reg, nil
}

// Resolve looks up a trailing noun against a frame's domains: exact (or
// plural-insensitive) key match first, then the same normalization over
// synonyms. Returns the canonical question and whether a match was found.
func (r *Registry) Resolve(frameID, noun string) (string, bool) {
	frame, ok := r.Frames[frameID]
	if !ok {
		return "", false
	}

	for _, d := range frame.Domains {
		if nounMatches(noun, d.Key) {
			return d.Question, true
		}
	}
	for _, d := range frame.Domains {
		for _, syn := range d.Synonyms {
			if nounMatches(noun, syn) {
				return d.Question, true
			}
		}
	}
	return "", false
}

func nounMatches(noun, candidate string) bool {
	if noun == candidate {
		return true
	}
	return strings.TrimSuffix(noun, "s") == strings.TrimSuffix(candidate, "s")
}
