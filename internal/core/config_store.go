package core

import (
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/EmundoT/apim-governance/internal/types"
)

// ConfigStore handles console.yml I/O operations
type ConfigStore interface {
	Load() (types.ConsoleConfig, error)
	Save(config types.ConsoleConfig) error
	Path() string
}

// FileConfigStore implements ConfigStore using the filesystem
type FileConfigStore struct {
	store *YAMLStore[types.ConsoleConfig]
}

// NewFileConfigStore creates a new FileConfigStore rooted at rootDir.
// A missing console.yml loads as an empty config.
func NewFileConfigStore(rootDir string) *FileConfigStore {
	return &FileConfigStore{store: NewYAMLStore[types.ConsoleConfig](rootDir, ConfigFile, true)}
}

// Path returns the config file path
func (s *FileConfigStore) Path() string {
	return s.store.Path()
}

// Load reads and parses console.yml
func (s *FileConfigStore) Load() (types.ConsoleConfig, error) {
	return s.store.Load()
}

// Save writes console.yml
func (s *FileConfigStore) Save(cfg types.ConsoleConfig) error {
	return s.store.Save(cfg)
}

// DefaultConfig returns the config written by 'apim-gov init'.
func DefaultConfig() types.ConsoleConfig {
	return types.ConsoleConfig{
		Server: types.ServerConfig{
			BaseURL: DefaultBaseURL,
			Timeout: DefaultTimeout,
		},
		Overview: types.OverviewConfig{Workers: DefaultOverviewWorkers},
	}
}

// ApplyDefaults fills unset fields of cfg.
func ApplyDefaults(cfg types.ConsoleConfig) types.ConsoleConfig {
	if cfg.Server.BaseURL == "" {
		cfg.Server.BaseURL = DefaultBaseURL
	}
	if cfg.Server.Timeout <= 0 {
		cfg.Server.Timeout = DefaultTimeout
	}
	if cfg.Overview.Workers <= 0 {
		cfg.Overview.Workers = DefaultOverviewWorkers
	}
	return cfg
}

// ApplyEnv overrides cfg with APIM_GOV_* variables read through getenv.
// An unparseable timeout is reported as a ConfigError.
func ApplyEnv(cfg types.ConsoleConfig, getenv func(string) string) (types.ConsoleConfig, error) {
	if getenv == nil {
		getenv = os.Getenv
	}
	if v := getenv(EnvBaseURL); v != "" {
		cfg.Server.BaseURL = v
	}
	if v := getenv(EnvToken); v != "" {
		cfg.Server.Token = v
	}
	if v := getenv(EnvTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return cfg, NewConfigError("server.timeout", EnvTimeout+"="+v+" is not a duration (e.g. 30s)")
		}
		cfg.Server.Timeout = d
	}
	return cfg, nil
}

// ValidateConfig rejects configs the client cannot work with.
func ValidateConfig(cfg types.ConsoleConfig) error {
	if strings.TrimSpace(cfg.Server.BaseURL) == "" {
		return NewConfigError("server.base_url", "base URL is empty")
	}
	u, err := url.Parse(cfg.Server.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return NewConfigError("server.base_url", cfg.Server.BaseURL+" is not an http(s) URL")
	}
	if cfg.Subscription.Limit < 0 {
		return NewConfigError("subscription.limit", "limit cannot be negative")
	}
	seen := make(map[string]bool)
	for _, a := range cfg.Artifacts {
		if a.ID == "" {
			return NewConfigError("artifacts", "artifact id is empty")
		}
		if seen[a.ID] {
			return NewConfigError("artifacts", "artifact "+a.ID+" is listed twice")
		}
		seen[a.ID] = true
	}
	return nil
}

// LoadConfig loads console.yml, fills defaults, applies environment overrides and validates.
func LoadConfig(store ConfigStore, getenv func(string) string) (types.ConsoleConfig, error) {
	cfg, err := store.Load()
	if err != nil {
		return cfg, err
	}
	cfg, err = ApplyEnv(ApplyDefaults(cfg), getenv)
	if err != nil {
		return cfg, err
	}
	if err := ValidateConfig(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// FindArtifact returns the configured artifact with the given id, or nil if not found.
func FindArtifact(artifacts []types.ArtifactRef, id string) *types.ArtifactRef {
	for i := range artifacts {
		if artifacts[i].ID == id {
			return &artifacts[i]
		}
	}
	return nil
}

// SelectedArtifact returns the artifact watch should display: the selected one,
// else the first configured one. ok is false when none is configured.
func SelectedArtifact(cfg types.ConsoleConfig) (types.ArtifactRef, bool) {
	if cfg.Selected != "" {
		if a := FindArtifact(cfg.Artifacts, cfg.Selected); a != nil {
			return *a, true
		}
		return types.ArtifactRef{ID: cfg.Selected}, true
	}
	if len(cfg.Artifacts) > 0 {
		return cfg.Artifacts[0], true
	}
	return types.ArtifactRef{}, false
}
