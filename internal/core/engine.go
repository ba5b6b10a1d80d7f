package core

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/EmundoT/apim-governance/internal/types"
)

// APIClient is everything the console needs from the backend.
type APIClient interface {
	GovernanceClient
	PublisherClient
}

// ClientFactory builds a backend client from the resolved server settings.
type ClientFactory func(server types.ServerConfig, logger *zap.Logger) APIClient

// DefaultClientFactory returns a RESTClient for server.
func DefaultClientFactory(server types.ServerConfig, logger *zap.Logger) APIClient {
	return NewRESTClient(server.BaseURL,
		WithToken(server.Token),
		WithTimeout(server.Timeout),
		WithLogger(logger))
}

// Manager provides the main API for apim-gov operations.
// Every operation resolves console.yml (plus environment overrides) before talking to the backend.
type Manager struct {
	RootDir string

	store     ConfigStore
	getenv    func(string) string
	newClient ClientFactory
	logger    *zap.Logger
	ui        UICallback
}

// NewManager creates a Manager rooted at ConfigDir.
func NewManager(logger *zap.Logger) *Manager {
	return NewManagerWithStore(NewFileConfigStore(ConfigDir), DefaultClientFactory, logger)
}

// NewManagerWithStore creates a Manager with custom dependencies (useful for testing).
func NewManagerWithStore(store ConfigStore, factory ClientFactory, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	if factory == nil {
		factory = DefaultClientFactory
	}
	return &Manager{
		RootDir:   ConfigDir,
		store:     store,
		getenv:    os.Getenv,
		newClient: factory,
		logger:    logger,
		ui:        &SilentUICallback{},
	}
}

// SetUICallback sets the UI callback for user interactions
func (m *Manager) SetUICallback(ui UICallback) {
	m.ui = ui
}

// SetEnv replaces the environment lookup used for APIM_GOV_* overrides.
func (m *Manager) SetEnv(getenv func(string) string) {
	m.getenv = getenv
}

// ConfigPath returns the path to console.yml
func (m *Manager) ConfigPath() string {
	return m.store.Path()
}

// IsInitialized checks if the config directory exists
func IsInitialized() bool {
	info, err := os.Stat(ConfigDir)
	return err == nil && info.IsDir()
}

// Init writes a default console.yml.
func (m *Manager) Init() error {
	return m.Configs().Init()
}

// Configs returns the config editing service.
func (m *Manager) Configs() *ConfigService {
	return NewConfigService(m.store)
}

// Config loads the effective configuration.
func (m *Manager) Config() (types.ConsoleConfig, error) {
	return LoadConfig(m.store, m.getenv)
}

// Client returns a backend client for the effective configuration.
func (m *Manager) Client() (APIClient, error) {
	client, _, err := m.client()
	return client, err
}

func (m *Manager) client() (APIClient, types.ConsoleConfig, error) {
	cfg, err := m.Config()
	if err != nil {
		return nil, cfg, err
	}
	return m.newClient(cfg.Server, m.logger), cfg, nil
}

// Compliance fetches the summary for one artifact. Revisions are skipped without a request
// and report skipped=true with the fallback summary.
func (m *Manager) Compliance(ctx context.Context, ref types.ArtifactRef) (summary types.ComplianceSummary, skipped bool, err error) {
	if ref.Revision {
		return FallbackSummary(ref.ID), true, nil
	}
	client, _, err := m.client()
	if err != nil {
		return FallbackSummary(ref.ID), false, err
	}
	summary, err = FetchComplianceSummary(ctx, client, ref.ID)
	if err != nil && !IsCancelled(err) {
		m.logger.Error("fetch compliance failed", zap.String("artifact_id", ref.ID), zap.Error(err))
	}
	return summary, false, err
}

// ComplianceView creates a live view backed by the configured backend.
func (m *Manager) ComplianceView() (*ComplianceView, error) {
	client, _, err := m.client()
	if err != nil {
		return nil, err
	}
	return NewComplianceView(client, m.logger), nil
}

// Artifacts returns the configured artifacts.
func (m *Manager) Artifacts() ([]types.ArtifactRef, error) {
	cfg, err := m.Config()
	if err != nil {
		return nil, err
	}
	return cfg.Artifacts, nil
}

// Overview fetches every configured artifact's compliance concurrently.
func (m *Manager) Overview(ctx context.Context, progress ProgressTracker) ([]OverviewResult, error) {
	client, cfg, err := m.client()
	if err != nil {
		return nil, err
	}
	if len(cfg.Artifacts) == 0 {
		return nil, fmt.Errorf("no artifacts configured (add one with 'apim-gov artifact add <id>')")
	}
	svc := NewOverviewService(client, cfg.Overview.Workers, m.logger)
	return svc.Run(ctx, cfg.Artifacts, progress), nil
}

// Policies returns the governance policy service.
func (m *Manager) Policies() (*PolicyService, error) {
	client, _, err := m.client()
	if err != nil {
		return nil, err
	}
	return NewPolicyService(client, m.ui, m.logger), nil
}

// Violations fetches one ruleset's validation detail, filtered to severity (empty keeps all).
// The counts always cover every violation, regardless of the filter.
func (m *Manager) Violations(ctx context.Context, artifactID, rulesetID, severity string) (*types.RulesetValidationDetail, types.SeverityCounts, error) {
	if !ValidSeverity(severity) {
		return nil, types.SeverityCounts{}, fmt.Errorf("unknown severity %q (use ERROR, WARN or INFO)", severity)
	}
	client, _, err := m.client()
	if err != nil {
		return nil, types.SeverityCounts{}, err
	}
	detail, err := client.GetRulesetValidation(ctx, artifactID, rulesetID)
	if err != nil {
		return nil, types.SeverityCounts{}, err
	}
	counts := CountSeverities(detail.Violations)
	detail.Violations = FilterBySeverity(detail.Violations, severity)
	return detail, counts, nil
}

// Subscriptions returns the subscription policy service.
func (m *Manager) Subscriptions() (*SubscriptionService, error) {
	client, cfg, err := m.client()
	if err != nil {
		return nil, err
	}
	return NewSubscriptionService(client, cfg.Subscription, m.logger), nil
}

// Watch follows the selected artifact in console.yml until ctx is done.
// onChange receives every state the view applies.
func (m *Manager) Watch(ctx context.Context, onChange func(types.ComplianceState)) error {
	view, err := m.ComplianceView()
	if err != nil {
		return err
	}
	view.OnChange(onChange)
	w := NewComplianceWatcher(m.store, view, m.ui, m.logger)
	w.getenv = m.getenv
	return w.Run(ctx)
}
