package types

// GovernableState values a governance policy can be attached to.
const (
	StateAPICreate  = "API_CREATE"
	StateAPIUpdate  = "API_UPDATE"
	StateAPIDeploy  = "API_DEPLOY"
	StateAPIPublish = "API_PUBLISH"
)

// PolicyDescriptor is one entry of GET /governance/policies.
type PolicyDescriptor struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	Description      string   `json:"description"`
	GovernableStates []string `json:"governableStates"`
	Labels           []string `json:"labels"`
}

// PolicyList is the envelope of GET /governance/policies.
type PolicyList struct {
	Count int                `json:"count"`
	List  []PolicyDescriptor `json:"list"`
}

// PolicyRow is a PolicyDescriptor projected onto the policy table columns.
type PolicyRow struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	AppliesWhen string `json:"applies_when"`
	AppliesTo   string `json:"applies_to"`
}

// Violation severities.
const (
	SeverityError = "ERROR"
	SeverityWarn  = "WARN"
	SeverityInfo  = "INFO"
)

// RuleViolation is a single rule failure inside a ruleset validation.
type RuleViolation struct {
	RuleName string `json:"ruleName"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
	Path     string `json:"path,omitempty"`
}

// RulesetValidationDetail is the body of
// GET /governance/compliance/{artifactId}/rulesets/{rulesetId}.
type RulesetValidationDetail struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Status     RulesetStatus   `json:"status"`
	Violations []RuleViolation `json:"violations"`
}

// SeverityCounts tallies violations per severity.
type SeverityCounts struct {
	Error int `json:"error"`
	Warn  int `json:"warn"`
	Info  int `json:"info"`
}
