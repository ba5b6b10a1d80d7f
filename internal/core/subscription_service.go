package core

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/EmundoT/apim-governance/internal/types"
)

// SubscriptionOptions captures what decides whether an empty selection gets a default plan.
type SubscriptionOptions struct {
	ValidationDisablingAllowed bool
	Async                      bool
	MutualSSLOnly              bool
	APIKeyEnabled              bool
}

// IsAsyncAPI reports whether apiType uses the streaming subscription catalog.
func IsAsyncAPI(apiType string) bool {
	switch apiType {
	case types.APITypeWS, types.APITypeWebSub, types.APITypeSSE, types.APITypeAsync:
		return true
	}
	return false
}

// IsMutualSSLOnly reports whether the scheme is exactly mutual SSL, mandatory.
func IsMutualSSLOnly(scheme []string) bool {
	return len(scheme) == 2 &&
		containsString(scheme, types.SchemeMutualSSL) &&
		containsString(scheme, types.SchemeMutualSSLMandatory)
}

// IsAPIKeyEnabled reports whether API keys are accepted.
func IsAPIKeyEnabled(scheme []string) bool {
	return containsString(scheme, types.SchemeAPIKey)
}

// OptionsForAPI derives SubscriptionOptions from an API descriptor.
func OptionsForAPI(api types.APIDescriptor, validationDisablingAllowed bool) SubscriptionOptions {
	return SubscriptionOptions{
		ValidationDisablingAllowed: validationDisablingAllowed,
		Async:                      IsAsyncAPI(api.Type),
		MutualSSLOnly:              IsMutualSSLOnly(api.SecurityScheme),
		APIKeyEnabled:              IsAPIKeyEnabled(api.SecurityScheme),
	}
}

// MigratedPolicies returns the API's policies that have no catalog entry with the same
// display name, in API order. These come from APIs created before async APIs had their own
// policy catalog. Nothing is migrated while either list is empty.
func MigratedPolicies(apiPolicies []string, catalog []types.SubscriptionPolicy) []string {
	if len(catalog) == 0 || len(apiPolicies) == 0 {
		return nil
	}
	known := make(map[string]struct{}, len(catalog))
	for _, p := range catalog {
		known[p.DisplayName] = struct{}{}
	}
	var migrated []string
	for _, name := range apiPolicies {
		if _, ok := known[name]; !ok {
			migrated = append(migrated, name)
		}
	}
	return migrated
}

// SelectablePolicies drops the subscriptionless plans, which are never offered as choices.
func SelectablePolicies(catalog []types.SubscriptionPolicy) []types.SubscriptionPolicy {
	out := make([]types.SubscriptionPolicy, 0, len(catalog))
	for _, p := range catalog {
		if strings.Contains(p.DisplayName, types.DefaultSubscriptionlessPlan) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// TogglePolicy applies one check/uncheck to selected and returns the new selection.
// Unchecking the last policy injects the subscriptionless plan when validation disabling is
// allowed and the API is neither mutual-SSL-only nor API-key enabled.
func TogglePolicy(selected []string, name string, checked bool, opts SubscriptionOptions) []string {
	next := make([]string, 0, len(selected)+1)
	if checked {
		next = append(next, selected...)
		return append(next, name)
	}

	for _, p := range selected {
		if p != name {
			next = append(next, p)
		}
	}
	if opts.ValidationDisablingAllowed && !opts.MutualSSLOnly && !opts.APIKeyEnabled && len(next) == 0 {
		if opts.Async {
			next = append(next, types.DefaultAsyncSubscriptionlessPlan)
		} else {
			next = append(next, types.DefaultSubscriptionlessPlan)
		}
	}
	return next
}

// ApplySelection replays the difference between prev and chosen through TogglePolicy:
// additions first in chosen order, then removals in prev order. Subscriptionless plans are
// never offered as a choice, so they are kept and only ever added by TogglePolicy.
func ApplySelection(prev, chosen []string, opts SubscriptionOptions) []string {
	current := append([]string(nil), prev...)
	for _, p := range chosen {
		if !containsString(current, p) {
			current = TogglePolicy(current, p, true, opts)
		}
	}
	for _, p := range prev {
		if isSubscriptionlessPlan(p) || containsString(chosen, p) {
			continue
		}
		current = TogglePolicy(current, p, false, opts)
	}
	return current
}

func isSubscriptionlessPlan(name string) bool {
	return name == types.DefaultSubscriptionlessPlan || name == types.DefaultAsyncSubscriptionlessPlan
}

// SubscriptionService loads and saves an API's subscription policies.
type SubscriptionService struct {
	client PublisherClient
	cfg    types.SubscriptionConfig
	logger *zap.Logger
}

// NewSubscriptionService creates a SubscriptionService.
func NewSubscriptionService(client PublisherClient, cfg types.SubscriptionConfig, logger *zap.Logger) *SubscriptionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SubscriptionService{client: client, cfg: cfg, logger: logger}
}

// Options returns the toggle options for api under this service's settings.
func (s *SubscriptionService) Options(api types.APIDescriptor) SubscriptionOptions {
	return OptionsForAPI(api, s.cfg.ValidationDisablingAllowed)
}

// Load fetches the API and its policy catalog and builds the form state.
// A catalog failure is logged and leaves the catalog empty, as the form still shows
// the API's current selection.
func (s *SubscriptionService) Load(ctx context.Context, apiID string) (types.SubscriptionSelection, error) {
	api, err := s.client.GetAPI(ctx, apiID)
	if err != nil {
		return types.SubscriptionSelection{}, fmt.Errorf("load api %s: %w", apiID, err)
	}

	catalog, err := s.client.ListSubscriptionPolicies(ctx, IsAsyncAPI(api.Type), s.cfg.Limit)
	if err != nil {
		if IsCancelled(err) {
			return types.SubscriptionSelection{}, err
		}
		s.logger.Warn("list subscription policies failed", zap.String("api_id", apiID), zap.Error(err))
		catalog = nil
	}

	return types.SubscriptionSelection{
		API:        *api,
		Selectable: SelectablePolicies(catalog),
		Migrated:   MigratedPolicies(api.Policies, catalog),
		Selected:   append([]string(nil), api.Policies...),
	}, nil
}

// Save persists policies for apiID.
func (s *SubscriptionService) Save(ctx context.Context, apiID string, policies []string) error {
	if err := s.client.UpdateSubscriptionPolicies(ctx, apiID, policies); err != nil {
		return fmt.Errorf("save subscription policies for %s: %w", apiID, err)
	}
	return nil
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
