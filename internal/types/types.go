// Package types defines data structures for apim-gov configuration and the governance API contract.
package types

import "time"

// ConsoleConfig is the content of .apim-gov/console.yml.
type ConsoleConfig struct {
	Server       ServerConfig       `yaml:"server"`
	Subscription SubscriptionConfig `yaml:"subscription,omitempty"`
	Overview     OverviewConfig     `yaml:"overview,omitempty"`
	Artifacts    []ArtifactRef      `yaml:"artifacts,omitempty"`
	Selected     string             `yaml:"selected,omitempty"` // artifact id shown by watch
}

// ServerConfig locates the governance/publisher REST backend.
type ServerConfig struct {
	BaseURL string        `yaml:"base_url"`
	Token   string        `yaml:"token,omitempty"`
	Timeout time.Duration `yaml:"timeout,omitempty"`
}

// SubscriptionConfig mirrors the publisher portal's subscription settings.
type SubscriptionConfig struct {
	Limit                      int  `yaml:"limit,omitempty"`
	ValidationDisablingAllowed bool `yaml:"validation_disabling_allowed,omitempty"`
}

// OverviewConfig tunes the overview fan-out.
type OverviewConfig struct {
	Workers int `yaml:"workers,omitempty"`
}

// ArtifactRef identifies an artifact whose compliance can be displayed.
type ArtifactRef struct {
	ID       string `yaml:"id" json:"id"`
	Name     string `yaml:"name,omitempty" json:"name,omitempty"`
	Revision bool   `yaml:"revision,omitempty" json:"revision,omitempty"`
}
