package kubelinkcfg

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultDatabaseURL     = "sqlite:./kubelink.db"
	DefaultDriver          = "gke"
	DefaultCacheBackend    = "memory"
	DefaultCacheTTL        = 10 * time.Second
	DefaultSecretNamespace = "default"
	DefaultTokenPattern    = "default-token"

	// EnvEncryptionKey overrides encryption.key.
	EnvEncryptionKey = "KUBELINK_ENCRYPTION_KEY"
)

// Load reads a YAML file from the given path and returns a deserialized Root
// with defaults and environment overrides applied. An empty path yields the
// defaults only.
func Load(path string) (*Root, error) {
	cfg := &Root{}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to unmarshal YAML: %w", err)
		}
	}
	cfg.applyDefaults()
	cfg.applyEnv(os.LookupEnv)
	return cfg, nil
}

func (r *Root) applyDefaults() {
	if r.Database.URL == "" {
		r.Database.URL = DefaultDatabaseURL
	}
	if r.Provider.Driver == "" {
		r.Provider.Driver = DefaultDriver
	}
	if r.Provider.Settings == nil {
		r.Provider.Settings = map[string]string{}
	}
	if r.Cache.Backend == "" {
		r.Cache.Backend = DefaultCacheBackend
	}
	if r.Cache.TTL == 0 {
		r.Cache.TTL = DefaultCacheTTL
	}
	if r.Reconcile.SecretNamespace == "" {
		r.Reconcile.SecretNamespace = DefaultSecretNamespace
	}
	if r.Reconcile.TokenSecretPattern == "" {
		r.Reconcile.TokenSecretPattern = DefaultTokenPattern
	}
}

func (r *Root) applyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup(EnvEncryptionKey); ok && v != "" {
		r.Encryption.Key = v
	}
}
