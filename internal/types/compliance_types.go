// Package types defines the governance data contract exchanged with the API-management backend.
//
//nolint:revive // Package name "types" is standard and appropriate
package types

// RulesetStatus is the evaluation outcome of a single ruleset against an artifact.
type RulesetStatus string

// RulesetStatus values reported by the governance backend. Anything else (e.g. PENDING)
// is carried through but never counted.
const (
	RulesetPassed  RulesetStatus = "PASSED"
	RulesetFailed  RulesetStatus = "FAILED"
	RulesetPending RulesetStatus = "PENDING"
)

// ComplianceResponse is the body of GET /governance/compliance/{artifactId}.
type ComplianceResponse struct {
	ID               string           `json:"id,omitempty"`
	Info             *ArtifactInfo    `json:"info,omitempty"`
	Status           string           `json:"status,omitempty"`
	GovernedPolicies []GovernedPolicy `json:"governedPolicies"`
}

// ArtifactInfo describes the API (or API revision) being evaluated.
type ArtifactInfo struct {
	Name    string `json:"name"`
	Version string `json:"version,omitempty"`
	Type    string `json:"type,omitempty"`
	Owner   string `json:"owner,omitempty"`
}

// GovernedPolicy bundles the ruleset evaluation results of one governance policy.
type GovernedPolicy struct {
	ID                       string          `json:"id,omitempty"`
	Name                     string          `json:"name,omitempty"`
	Status                   string          `json:"status,omitempty"`
	RulesetValidationResults []RulesetResult `json:"rulesetValidationResults"`
}

// RulesetResult is one ruleset evaluation record. ID is the identity key.
type RulesetResult struct {
	ID     string        `json:"id"`
	Name   string        `json:"name,omitempty"`
	Status RulesetStatus `json:"status"`
}

// StatusCounts is the deduplicated pass/fail tally of rulesets.
type StatusCounts struct {
	Passed int `json:"passed"`
	Failed int `json:"failed"`
}

// Total returns passed plus failed.
func (c StatusCounts) Total() int {
	return c.Passed + c.Failed
}

// ComplianceSummary is what a compliance view displays for one artifact.
type ComplianceSummary struct {
	ArtifactID   string          `json:"artifact_id"`
	ArtifactName string          `json:"artifact_name"`
	Counts       StatusCounts    `json:"counts"`
	Rulesets     []RulesetResult `json:"rulesets,omitempty"`
}

// ComplianceState is the displayed state of a compliance view at a point in time.
type ComplianceState struct {
	Summary ComplianceSummary
	Loading bool
	// Skipped is set for API revisions, which are never evaluated.
	Skipped bool
	Err     error
}
