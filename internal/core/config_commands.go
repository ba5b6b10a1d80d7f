package core

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/EmundoT/apim-governance/internal/types"
)

// ConfigService edits console.yml for the config and artifact commands.
type ConfigService struct {
	store ConfigStore
}

// NewConfigService creates a ConfigService over store.
func NewConfigService(store ConfigStore) *ConfigService {
	return &ConfigService{store: store}
}

// Init writes the default console.yml unless one already exists with a base URL.
func (s *ConfigService) Init() error {
	cfg, err := s.store.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if cfg.Server.BaseURL != "" {
		return nil
	}
	def := DefaultConfig()
	def.Artifacts = cfg.Artifacts
	def.Selected = cfg.Selected
	return s.store.Save(def)
}

// GetConfigValue retrieves a config value by dotted key path.
// Supported keys: server.base_url, server.timeout, server.token, subscription.limit,
// subscription.validation_disabling_allowed, overview.workers, selected, artifacts.
// The token is never returned in clear.
func (s *ConfigService) GetConfigValue(key string) (interface{}, error) {
	cfg, err := s.store.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	switch key {
	case "server.base_url":
		return cfg.Server.BaseURL, nil
	case "server.timeout":
		return cfg.Server.Timeout.String(), nil
	case "server.token":
		return MaskSecret(cfg.Server.Token), nil
	case "subscription.limit":
		return cfg.Subscription.Limit, nil
	case "subscription.validation_disabling_allowed":
		return cfg.Subscription.ValidationDisablingAllowed, nil
	case "overview.workers":
		return cfg.Overview.Workers, nil
	case "selected":
		return cfg.Selected, nil
	case "artifacts":
		ids := make([]string, len(cfg.Artifacts))
		for i, a := range cfg.Artifacts {
			ids[i] = a.ID
		}
		return ids, nil
	default:
		return nil, fmt.Errorf("unknown config key: %s", key)
	}
}

// SetConfigValue sets a config value by dotted key path.
func (s *ConfigService) SetConfigValue(key, value string) error {
	cfg, err := s.store.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	switch key {
	case "server.base_url":
		cfg.Server.BaseURL = strings.TrimSpace(value)
		if err := ValidateConfig(cfg); err != nil {
			return err
		}
	case "server.timeout":
		d, err := time.ParseDuration(value)
		if err != nil || d <= 0 {
			return NewConfigError(key, value+" is not a positive duration (e.g. 30s)")
		}
		cfg.Server.Timeout = d
	case "server.token":
		cfg.Server.Token = value
	case "subscription.limit":
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return NewConfigError(key, value+" is not a non-negative integer")
		}
		cfg.Subscription.Limit = n
	case "subscription.validation_disabling_allowed":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return NewConfigError(key, value+" is not a boolean")
		}
		cfg.Subscription.ValidationDisablingAllowed = b
	case "overview.workers":
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return NewConfigError(key, value+" is not a positive integer")
		}
		cfg.Overview.Workers = n
	case "selected":
		return s.SelectArtifact(value)
	default:
		return fmt.Errorf("unknown config key: %s (settable: server.base_url, server.timeout, server.token, subscription.limit, subscription.validation_disabling_allowed, overview.workers, selected)", key)
	}

	return s.store.Save(cfg)
}

// AddArtifact appends an artifact to the configured list.
func (s *ConfigService) AddArtifact(ref types.ArtifactRef) error {
	if strings.TrimSpace(ref.ID) == "" {
		return fmt.Errorf("artifact id is required")
	}
	cfg, err := s.store.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if FindArtifact(cfg.Artifacts, ref.ID) != nil {
		return fmt.Errorf("artifact '%s' already exists", ref.ID)
	}
	cfg.Artifacts = append(cfg.Artifacts, ref)
	return s.store.Save(cfg)
}

// RemoveArtifact drops an artifact and clears the selection if it pointed at it.
func (s *ConfigService) RemoveArtifact(id string) error {
	cfg, err := s.store.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	idx := -1
	for i, a := range cfg.Artifacts {
		if a.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("artifact '%s' not found", id)
	}
	cfg.Artifacts = append(cfg.Artifacts[:idx], cfg.Artifacts[idx+1:]...)
	if cfg.Selected == id {
		cfg.Selected = ""
	}
	return s.store.Save(cfg)
}

// SelectArtifact sets the artifact shown by watch. The id must be configured.
func (s *ConfigService) SelectArtifact(id string) error {
	cfg, err := s.store.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if FindArtifact(cfg.Artifacts, id) == nil {
		return fmt.Errorf("artifact '%s' not found (add it with 'apim-gov artifact add %s')", id, id)
	}
	cfg.Selected = id
	return s.store.Save(cfg)
}
