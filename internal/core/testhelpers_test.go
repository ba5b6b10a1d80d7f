package core

import (
	"sync"
	"testing"

	"github.com/golang/mock/gomock"
	"go.uber.org/zap"

	"github.com/EmundoT/apim-governance/internal/types"
)

// ============================================================================
// Gomock Test Helpers
// ============================================================================

// setupMocks creates the backend client mocks with gomock
func setupMocks(t *testing.T) (*gomock.Controller, *MockGovernanceClient, *MockPublisherClient) {
	ctrl := gomock.NewController(t)
	return ctrl, NewMockGovernanceClient(ctrl), NewMockPublisherClient(ctrl)
}

// mockAPIClient joins both mocks into an APIClient for Manager tests.
type mockAPIClient struct {
	*MockGovernanceClient
	*MockPublisherClient
}

// factoryFor returns a ClientFactory handing out client and recording the server settings.
func factoryFor(client APIClient, seen *types.ServerConfig) ClientFactory {
	return func(server types.ServerConfig, _ *zap.Logger) APIClient {
		if seen != nil {
			*seen = server
		}
		return client
	}
}

// ============================================================================
// Compliance document builders
// ============================================================================

func ruleset(id string, status types.RulesetStatus) types.RulesetResult {
	return types.RulesetResult{ID: id, Name: "ruleset " + id, Status: status}
}

func governed(results ...types.RulesetResult) types.GovernedPolicy {
	if results == nil {
		results = []types.RulesetResult{}
	}
	return types.GovernedPolicy{ID: "gp", Name: "policy", RulesetValidationResults: results}
}

func complianceDoc(name string, policies ...types.GovernedPolicy) *types.ComplianceResponse {
	if policies == nil {
		policies = []types.GovernedPolicy{}
	}
	return &types.ComplianceResponse{
		ID:               "artifact",
		Info:             &types.ArtifactInfo{Name: name},
		GovernedPolicies: policies,
	}
}

// ============================================================================
// In-memory ConfigStore
// ============================================================================

// memConfigStore implements ConfigStore in memory for testing
type memConfigStore struct {
	mu      sync.Mutex
	cfg     types.ConsoleConfig
	loadErr error
	saveErr error
	saves   int
	path    string
}

func (s *memConfigStore) Load() (types.ConsoleConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loadErr != nil {
		return types.ConsoleConfig{}, s.loadErr
	}
	cfg := s.cfg
	cfg.Artifacts = append([]types.ArtifactRef(nil), s.cfg.Artifacts...)
	return cfg, nil
}

func (s *memConfigStore) Save(cfg types.ConsoleConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return s.saveErr
	}
	s.cfg = cfg
	s.saves++
	return nil
}

func (s *memConfigStore) Path() string {
	if s.path == "" {
		return ConfigPath
	}
	return s.path
}

// recordingUI is a UICallback that records what it was asked and answers confirmations with confirm.
type recordingUI struct {
	SilentUICallback
	confirm   bool
	asked     []string
	warnings  []string
	errorsOut []string
}

func (r *recordingUI) AskConfirmation(title, _ string) bool {
	r.asked = append(r.asked, title)
	return r.confirm
}

func (r *recordingUI) ShowWarning(title, _ string) {
	r.warnings = append(r.warnings, title)
}

func (r *recordingUI) ShowError(title, _ string) {
	r.errorsOut = append(r.errorsOut, title)
}
