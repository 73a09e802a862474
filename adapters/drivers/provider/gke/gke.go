package gke

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	providerdrv "github.com/kompox/kubelink/adapters/drivers/provider"
	"github.com/kompox/kubelink/domain/model"
	"golang.org/x/oauth2"
	container "google.golang.org/api/container/v1"
	"google.golang.org/api/option"
)

// driver implements the GKE provider driver.
type driver struct {
	// Endpoint overrides the Kubernetes Engine API base URL (emulators, tests).
	Endpoint  string
	UserAgent string
	// Timeout bounds each API request, including reading the body.
	Timeout time.Duration
}

// DefaultTimeout applies when GKE_HTTP_TIMEOUT is not set.
const DefaultTimeout = 30 * time.Second

// ID returns the provider identifier.
func (d *driver) ID() string { return "gke" }

// init registers the GKE driver.
func init() {
	providerdrv.Register("gke", func(settings map[string]string) (providerdrv.Driver, error) {
		get := func(k string) string {
			if settings == nil {
				return ""
			}
			return strings.TrimSpace(settings[k])
		}
		endpoint := get("GKE_ENDPOINT")
		if endpoint != "" && !strings.HasSuffix(endpoint, "/") {
			endpoint += "/"
		}
		timeout := DefaultTimeout
		if v := get("GKE_HTTP_TIMEOUT"); v != "" {
			d, err := time.ParseDuration(v)
			if err != nil || d <= 0 {
				return nil, fmt.Errorf("invalid GKE_HTTP_TIMEOUT %q", v)
			}
			timeout = d
		}
		return &driver{
			Endpoint:  endpoint,
			UserAgent: get("GKE_USER_AGENT"),
			Timeout:   timeout,
		}, nil
	})
}

// service builds a Kubernetes Engine API client authorized with the caller's
// short-lived access credential. A client is built per call since the
// credential is not owned by the driver.
func (d *driver) service(ctx context.Context, cred model.AccessCredential) (*container.Service, error) {
	if cred == "" {
		return nil, fmt.Errorf("access credential is empty")
	}
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: string(cred), TokenType: "Bearer"})
	hc := &http.Client{
		Timeout:   d.Timeout,
		Transport: &oauth2.Transport{Source: ts, Base: http.DefaultTransport},
	}
	opts := []option.ClientOption{option.WithHTTPClient(hc)}
	if d.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(d.Endpoint))
	}
	if d.UserAgent != "" {
		opts = append(opts, option.WithUserAgent(d.UserAgent))
	}
	svc, err := container.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create container service: %w", err)
	}
	return svc, nil
}
