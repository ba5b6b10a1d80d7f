package types

// API types whose subscription plans come from the streaming policy catalog.
const (
	APITypeWS     = "WS"
	APITypeWebSub = "WEBSUB"
	APITypeSSE    = "SSE"
	APITypeAsync  = "ASYNC"
)

// APITypeProduct marks an API product rather than a plain API.
const APITypeProduct = "APIProduct"

// Security scheme identifiers relevant to subscription handling.
const (
	SchemeMutualSSL          = "mutualssl"
	SchemeMutualSSLMandatory = "mutualssl_mandatory"
	SchemeAPIKey             = "api_key"
)

// Plans injected when subscription validation is disabled.
const (
	DefaultSubscriptionlessPlan      = "DefaultSubscriptionless"
	DefaultAsyncSubscriptionlessPlan = "AsyncDefaultSubscriptionless"
)

// APIDescriptor is the subset of GET /apis/{apiId} the console needs.
type APIDescriptor struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Version        string   `json:"version,omitempty"`
	Type           string   `json:"type"`
	APIType        string   `json:"apiType,omitempty"`
	SecurityScheme []string `json:"securityScheme"`
	Policies       []string `json:"policies"`
	IsRevision     bool     `json:"isRevision,omitempty"`
}

// SubscriptionPolicy is a throttling tier offered to subscribers.
type SubscriptionPolicy struct {
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
	Description string `json:"description"`
}

// SubscriptionPolicyList is the envelope of the throttling-policies endpoints.
type SubscriptionPolicyList struct {
	Count int                  `json:"count"`
	List  []SubscriptionPolicy `json:"list"`
}

// SubscriptionPolicyUpdate is the body of PUT /apis/{apiId}/subscription-policies.
type SubscriptionPolicyUpdate struct {
	Policies []string `json:"policies"`
}

// SubscriptionSelection is the state of the subscription-policy form for one API.
type SubscriptionSelection struct {
	API        APIDescriptor        `json:"api"`
	Selectable []SubscriptionPolicy `json:"selectable"`
	Migrated   []string             `json:"migrated"`
	Selected   []string             `json:"selected"`
}
