// Package kubelinkcfg defines the configuration schema (structs) for kubelink.yml.
package kubelinkcfg

import "time"

// Root is the root structure of kubelink.yml.
type Root struct {
	Version    string     `yaml:"version"`
	Database   Database   `yaml:"database"`
	Provider   Provider   `yaml:"provider"`
	Cache      Cache      `yaml:"cache"`
	Reconcile  Reconcile  `yaml:"reconcile"`
	Encryption Encryption `yaml:"encryption"`
}

// Database selects the persistence substrate.
type Database struct {
	URL string `yaml:"url"` // sqlite:<dsn> | memory:
}

// Provider represents the cloud provider driver configuration.
type Provider struct {
	Driver   string            `yaml:"driver"`   // e.g., "gke"
	Settings map[string]string `yaml:"settings"` // driver-specific settings (GKE_ENDPOINT, GKE_USER_AGENT)
}

// Cache configures the reconciliation result cache used by status queries.
type Cache struct {
	Backend string        `yaml:"backend"` // memory | redis
	TTL     time.Duration `yaml:"ttl"`     // staleness window
	Redis   Redis         `yaml:"redis"`
}

// Redis holds connection settings for the redis cache backend.
type Redis struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password,omitempty"`
	DB       int    `yaml:"db,omitempty"`
}

// Reconcile tunes how the bearer token and integration are resolved.
type Reconcile struct {
	SecretNamespace      string `yaml:"secretNamespace"`
	TokenSecretPattern   string `yaml:"tokenSecretPattern"`
	IntegrationNamespace string `yaml:"integrationNamespace"`
}

// Encryption holds the key used to seal cluster passwords at rest.
type Encryption struct {
	Key string `yaml:"key"` // base64 of 32 bytes
}
