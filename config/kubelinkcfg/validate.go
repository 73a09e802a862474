package kubelinkcfg

import (
	"encoding/base64"
	"fmt"
	"regexp"
	"strings"

	"github.com/kompox/kubelink/internal/naming"
)

// Validate performs semantic validation on the configuration tree.
func (r *Root) Validate() error {
	if err := r.validateDatabase(); err != nil {
		return fmt.Errorf("database: %w", err)
	}
	if err := r.Cache.validate(); err != nil {
		return fmt.Errorf("cache: %w", err)
	}
	if err := r.Reconcile.validate(); err != nil {
		return fmt.Errorf("reconcile: %w", err)
	}
	if err := r.Encryption.validate(); err != nil {
		return fmt.Errorf("encryption: %w", err)
	}
	return nil
}

func (r *Root) validateDatabase() error {
	u := r.Database.URL
	if strings.HasPrefix(u, "sqlite:") || strings.HasPrefix(u, "sqlite3:") || u == "memory:" {
		return nil
	}
	return fmt.Errorf("url: unsupported scheme %q", u)
}

func (c *Cache) validate() error {
	switch c.Backend {
	case "memory":
	case "redis":
		if c.Redis.Addr == "" {
			return fmt.Errorf("redis.addr is required for the redis backend")
		}
	default:
		return fmt.Errorf("backend: invalid value %q, must be %q or %q", c.Backend, "memory", "redis")
	}
	if c.TTL < 0 {
		return fmt.Errorf("ttl: must not be negative")
	}
	return nil
}

func (r *Reconcile) validate() error {
	if err := naming.ValidateNamespace(r.SecretNamespace); err != nil {
		return fmt.Errorf("secretNamespace: %w", err)
	}
	if r.IntegrationNamespace != "" {
		if err := naming.ValidateNamespace(r.IntegrationNamespace); err != nil {
			return fmt.Errorf("integrationNamespace: %w", err)
		}
	}
	if _, err := regexp.Compile(r.TokenSecretPattern); err != nil {
		return fmt.Errorf("tokenSecretPattern: %w", err)
	}
	return nil
}

func (e *Encryption) validate() error {
	if e.Key == "" {
		return nil
	}
	key, err := base64.StdEncoding.DecodeString(e.Key)
	if err != nil {
		return fmt.Errorf("key: not valid base64: %w", err)
	}
	if len(key) != 32 {
		return fmt.Errorf("key: must decode to 32 bytes, got %d", len(key))
	}
	return nil
}
