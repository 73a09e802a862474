package kubelinkcfg

import (
	"strings"
	"testing"
)

func TestRootValidate(t *testing.T) {
	t.Parallel()

	valid := func() Root {
		r := Root{}
		r.applyDefaults()
		return r
	}

	tests := []struct {
		name    string
		mutate  func(r *Root)
		wantErr string
	}{
		{name: "defaults"},
		{name: "memory database", mutate: func(r *Root) { r.Database.URL = "memory:" }},
		{name: "unsupported database", mutate: func(r *Root) { r.Database.URL = "postgres://x" }, wantErr: "unsupported scheme"},
		{name: "unknown cache backend", mutate: func(r *Root) { r.Cache.Backend = "memcached" }, wantErr: "backend: invalid value"},
		{name: "redis without addr", mutate: func(r *Root) { r.Cache.Backend = "redis" }, wantErr: "redis.addr is required"},
		{name: "invalid secret namespace", mutate: func(r *Root) { r.Reconcile.SecretNamespace = "Bad_NS" }, wantErr: "secretNamespace"},
		{name: "invalid integration namespace", mutate: func(r *Root) { r.Reconcile.IntegrationNamespace = "-x" }, wantErr: "integrationNamespace"},
		{name: "invalid token pattern", mutate: func(r *Root) { r.Reconcile.TokenSecretPattern = "(" }, wantErr: "tokenSecretPattern"},
		{name: "key not base64", mutate: func(r *Root) { r.Encryption.Key = "!!" }, wantErr: "not valid base64"},
		{name: "key wrong size", mutate: func(r *Root) { r.Encryption.Key = "AAAA" }, wantErr: "32 bytes"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r := valid()
			if tt.mutate != nil {
				tt.mutate(&r)
			}
			err := r.Validate()
			switch {
			case tt.wantErr == "" && err != nil:
				t.Fatalf("Validate() error = %v, want nil", err)
			case tt.wantErr != "" && err == nil:
				t.Fatalf("Validate() error = nil, want contains %q", tt.wantErr)
			case tt.wantErr != "" && err != nil && !strings.Contains(err.Error(), tt.wantErr):
				t.Fatalf("Validate() error = %v, want contains %q", err, tt.wantErr)
			}
		})
	}
}
