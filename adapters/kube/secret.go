package kube

import (
	"context"
	"errors"
	"fmt"

	"github.com/kompox/kubelink/domain/model"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// ListSecrets returns the secrets of namespace in the order the API server
// listed them. An answer from the API server (including 401/403) is returned
// wrapped as-is; failing to reach the server wraps model.ErrControlPlaneUnreachable.
func (c *Client) ListSecrets(ctx context.Context, namespace string) ([]model.Secret, error) {
	if c == nil || c.Clientset == nil {
		return nil, fmt.Errorf("kube client is not initialized")
	}
	list, err := c.Clientset.CoreV1().Secrets(namespace).List(ctx, metav1.ListOptions{})
	if err != nil {
		var status apierrors.APIStatus
		if errors.As(err, &status) {
			return nil, fmt.Errorf("list secrets in %q: %w", namespace, err)
		}
		return nil, fmt.Errorf("%w: list secrets in %q: %v", model.ErrControlPlaneUnreachable, namespace, err)
	}
	out := make([]model.Secret, 0, len(list.Items))
	for i := range list.Items {
		s := &list.Items[i]
		out = append(out, model.Secret{Name: s.Name, Data: s.Data})
	}
	return out, nil
}

// SecretPort implements model.SecretPort by dialing the cluster's own control
// plane with the credentials reported by the provider.
type SecretPort struct {
	Options *Options
	// NewClient overrides client construction (tests).
	NewClient func(detail *model.ClusterDetail, opts *Options) (*Client, error)
}

// ListSecrets builds a transient client for detail and lists namespace.
func (p *SecretPort) ListSecrets(ctx context.Context, detail *model.ClusterDetail, namespace string) ([]model.Secret, error) {
	newClient := p.NewClient
	if newClient == nil {
		newClient = NewClientFromClusterDetail
	}
	var opts *Options
	if p.Options != nil {
		cp := *p.Options
		opts = &cp
	}
	c, err := newClient(detail, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrControlPlaneUnreachable, err)
	}
	return c.ListSecrets(ctx, namespace)
}

var _ model.SecretPort = (*SecretPort)(nil)
