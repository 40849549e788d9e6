package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Settings configures the assistant's external collaborators. Loaded
// once at startup; zero values fall back to defaults.
type Settings struct {
	// Model service (Ollama-compatible).
	ModelURL  string `yaml:"model_url"`
	ModelName string `yaml:"model_name"`

	// ProbeTimeout bounds the reachability check; it must stay sub-second
	// so backend selection never stalls a turn.
	ProbeTimeout time.Duration `yaml:"probe_timeout"`

	// GenerateTimeout bounds a single generation call.
	GenerateTimeout time.Duration `yaml:"generate_timeout"`

	// Database path for the billing store (SQLite).
	DatabasePath string `yaml:"database_path"`

	// Optional path overriding the embedded frame registry.
	RegistryPath string `yaml:"registry_path"`

	// SessionDir is where the file session store keeps its JSON files
	// when Redis is not configured.
	SessionDir string `yaml:"session_dir"`

	// Optional Redis session store for multi-replica serving. An empty
	// address keeps sessions in the file store.
	RedisAddress  string `yaml:"redis_address"`
	RedisPassword string `yaml:"redis_password"`
	RedisDB       int    `yaml:"redis_db"`

	// SessionKey, when set, seals stored session state at rest.
	// Base64-encoded 32-byte AES key.
	SessionKey string `yaml:"session_key"`

	// PIIPatterns are regular expressions scrubbed out of stored
	// question text before it reaches the session store.
	PIIPatterns []string `yaml:"pii_patterns"`
}

// DefaultSettings returns the defaults used when no config file exists.
func DefaultSettings() Settings {
	return Settings{
		ModelURL:        "http://localhost:11434",
		ModelName:       "llama3.1",
		ProbeTimeout:    500 * time.Millisecond,
		GenerateTimeout: 120 * time.Second,
		DatabasePath:    "florence.db",
	}
}

// LoadSettings reads settings from a YAML file, filling gaps with
// defaults. A missing file is not an error; the defaults apply.
func LoadSettings(path string) (Settings, error) {
	s := DefaultSettings()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return s, fmt.Errorf("failed to read settings: %w", err)
	}

	if err := yaml.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("failed to parse settings: %w", err)
	}

	def := DefaultSettings()
	if s.ModelURL == "" {
		s.ModelURL = def.ModelURL
	}
	if s.ModelName == "" {
		s.ModelName = def.ModelName
	}
	if s.ProbeTimeout <= 0 {
		s.ProbeTimeout = def.ProbeTimeout
	}
	if s.GenerateTimeout <= 0 {
		s.GenerateTimeout = def.GenerateTimeout
	}
	if s.DatabasePath == "" {
		s.DatabasePath = def.DatabasePath
	}
	return s, nil
}
