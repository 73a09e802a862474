package kube

import (
	"context"
	"fmt"
	"time"

	"github.com/kompox/kubelink/domain/model"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"
)

// Client wraps commonly used Kubernetes clients and the underlying REST config.
// Keep this package focused on client construction; provider-specific credential
// retrieval lives in provider drivers which then pass cluster details here.
type Client struct {
	// RESTConfig is the configuration used to talk to the API server.
	RESTConfig *rest.Config
	// Clientset provides typed clients for core/built-in resources.
	Clientset kubernetes.Interface
}

// Options controls client construction tuning. All fields are optional.
type Options struct {
	// UserAgent adds a custom user agent to the REST config.
	UserAgent string
	// QPS sets the allowed queries per second on the REST client.
	QPS float32
	// Burst sets the client-side rate limiter burst.
	Burst int
	// Timeout bounds each request to the API server.
	Timeout time.Duration
}

// applyDefaults applies reasonable defaults if not set.
func (o *Options) applyDefaults() {
	if o.QPS <= 0 {
		o.QPS = 20
	}
	if o.Burst <= 0 {
		o.Burst = 50
	}
	if o.Timeout <= 0 {
		o.Timeout = 30 * time.Second
	}
}

// RESTConfigFromClusterDetail builds a REST config that authenticates with the
// basic-auth credentials and CA bundle reported by the provider.
func RESTConfigFromClusterDetail(detail *model.ClusterDetail) (*rest.Config, error) {
	if detail == nil || detail.Endpoint == "" {
		return nil, fmt.Errorf("cluster endpoint is empty")
	}
	return &rest.Config{
		Host:     detail.APIURL(),
		Username: detail.Username,
		Password: detail.Password,
		TLSClientConfig: rest.TLSClientConfig{
			CAData: detail.CACert,
		},
	}, nil
}

// NewClientFromClusterDetail constructs a transient Client for a freshly created cluster.
func NewClientFromClusterDetail(detail *model.ClusterDetail, opts *Options) (*Client, error) {
	cfg, err := RESTConfigFromClusterDetail(detail)
	if err != nil {
		return nil, err
	}
	return NewClientFromRESTConfig(cfg, opts)
}

// NewClientFromKubeconfig constructs a Client from kubeconfig bytes.
func NewClientFromKubeconfig(_ context.Context, kubeconfig []byte, opts *Options) (*Client, error) {
	if len(kubeconfig) == 0 {
		return nil, fmt.Errorf("kubeconfig is empty")
	}
	cfg, err := clientcmd.RESTConfigFromKubeConfig(kubeconfig)
	if err != nil {
		return nil, fmt.Errorf("build REST config from kubeconfig: %w", err)
	}
	return NewClientFromRESTConfig(cfg, opts)
}

// NewClientFromRESTConfig constructs a Client from an existing rest.Config.
func NewClientFromRESTConfig(cfg *rest.Config, opts *Options) (*Client, error) {
	if cfg == nil {
		return nil, fmt.Errorf("REST config is nil")
	}
	if opts == nil {
		opts = &Options{}
	}
	opts.applyDefaults()

	cfg.QPS = opts.QPS
	cfg.Burst = opts.Burst
	cfg.Timeout = opts.Timeout
	if opts.UserAgent != "" {
		_ = rest.AddUserAgent(cfg, opts.UserAgent)
	}

	cs, err := kubernetes.NewForConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("build clientset: %w", err)
	}

	return &Client{RESTConfig: cfg, Clientset: cs}, nil
}
