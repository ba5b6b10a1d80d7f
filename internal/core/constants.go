package core

import "time"

// File and directory names
const (
	// ConfigDir is the root directory for console settings.
	ConfigDir = ".apim-gov"
	// ConfigFile is the console configuration filename
	ConfigFile = "console.yml"
)

// Full paths relative to the working directory.
const (
	// ConfigPath is the full path to console.yml
	ConfigPath = ConfigDir + "/" + ConfigFile
)

// Backend defaults
const (
	// DefaultBaseURL points at a local API manager's REST root.
	DefaultBaseURL = "https://localhost:9443/api/am"
	// DefaultTimeout bounds a single REST call.
	DefaultTimeout = 30 * time.Second
	// DefaultOverviewWorkers caps concurrent compliance fetches in the overview.
	DefaultOverviewWorkers = 4
	// maxOverviewWorkers keeps the overview from flooding the backend.
	maxOverviewWorkers = 8
)

// Environment overrides for console.yml values.
const (
	EnvBaseURL = "APIM_GOV_URL"
	EnvToken   = "APIM_GOV_TOKEN"
	EnvTimeout = "APIM_GOV_TIMEOUT"
)

// REST paths
const (
	pathCompliance          = "/governance/compliance/"
	pathPolicies            = "/governance/policies"
	pathAPIs                = "/apis/"
	pathSubscriptionTiers   = "/throttling-policies/subscription"
	pathStreamingSubTiers   = "/throttling-policies/streaming/subscription"
	pathSubscriptionSetting = "/subscription-policies"
)
