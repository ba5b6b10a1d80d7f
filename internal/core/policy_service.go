package core

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/EmundoT/apim-governance/internal/types"
)

// maxChips is how many states/labels a policy row shows before collapsing into "+N".
const maxChips = 2

// governableStateLabels maps backend governable states to display labels.
var governableStateLabels = map[string]string{
	types.StateAPICreate:  "API Create",
	types.StateAPIUpdate:  "API Update",
	types.StateAPIDeploy:  "API Deploy",
	types.StateAPIPublish: "API Publish",
}

// PolicyService lists and deletes governance policies.
type PolicyService struct {
	client GovernanceClient
	ui     UICallback
	logger *zap.Logger
}

// NewPolicyService creates a PolicyService.
func NewPolicyService(client GovernanceClient, ui UICallback, logger *zap.Logger) *PolicyService {
	if ui == nil {
		ui = &SilentUICallback{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PolicyService{client: client, ui: ui, logger: logger}
}

// List fetches the policy catalog, keeps policies whose name or description contains query
// (case-insensitive; empty query keeps all), and returns table rows sorted by name.
func (s *PolicyService) List(ctx context.Context, query string) ([]types.PolicyRow, error) {
	policies, err := s.client.ListPolicies(ctx)
	if err != nil {
		if !IsCancelled(err) {
			s.logger.Error("list policies failed", zap.Error(err))
		}
		return nil, err
	}

	filtered := FilterPolicies(policies, query)
	sort.SliceStable(filtered, func(i, j int) bool {
		return strings.ToLower(filtered[i].Name) < strings.ToLower(filtered[j].Name)
	})

	rows := make([]types.PolicyRow, 0, len(filtered))
	for _, p := range filtered {
		rows = append(rows, PolicyToRow(p))
	}
	return rows, nil
}

// Delete removes a policy after confirmation. It returns false when the user declined.
func (s *PolicyService) Delete(ctx context.Context, id string) (bool, error) {
	if id == "" {
		return false, fmt.Errorf("policy id is required")
	}
	if !s.ui.AskConfirmation("Delete Policy", fmt.Sprintf("Policy %s will be permanently deleted. Continue?", id)) {
		return false, nil
	}
	if err := s.client.DeletePolicy(ctx, id); err != nil {
		s.logger.Error("delete policy failed", zap.String("policy_id", id), zap.Error(err))
		return false, err
	}
	return true, nil
}

// FilterPolicies keeps policies whose name or description contains query, case-insensitively.
func FilterPolicies(policies []types.PolicyDescriptor, query string) []types.PolicyDescriptor {
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]types.PolicyDescriptor, 0, len(policies))
	for _, p := range policies {
		if q == "" ||
			strings.Contains(strings.ToLower(p.Name), q) ||
			strings.Contains(strings.ToLower(p.Description), q) {
			out = append(out, p)
		}
	}
	return out
}

// PolicyToRow projects a policy onto the table columns.
func PolicyToRow(p types.PolicyDescriptor) types.PolicyRow {
	states := make([]string, len(p.GovernableStates))
	for i, s := range p.GovernableStates {
		states[i] = GovernableStateLabel(s)
	}
	return types.PolicyRow{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		AppliesWhen: SummarizeChips(states, "Not set"),
		AppliesTo:   SummarizeChips(p.Labels, "All"),
	}
}

// SummarizeChips renders the first two items, then "+N" for the rest.
// An empty list renders as empty.
func SummarizeChips(items []string, empty string) string {
	if len(items) == 0 {
		return empty
	}
	if len(items) <= maxChips {
		return strings.Join(items, ", ")
	}
	return fmt.Sprintf("%s +%d", strings.Join(items[:maxChips], ", "), len(items)-maxChips)
}

// GovernableStateLabel maps API_CREATE to "API Create". Unknown states are title-cased word by word.
func GovernableStateLabel(state string) string {
	if label, ok := governableStateLabels[state]; ok {
		return label
	}
	words := strings.Split(strings.ToLower(state), "_")
	for i, w := range words {
		if w == "api" {
			words[i] = "API"
			continue
		}
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}
