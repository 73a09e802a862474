package domain

import (
	"context"

	"github.com/kompox/kubelink/domain/model"
)

// ReconcileResultCache keeps the last reconciliation result per identity key
// and decides when compute runs again. It guarantees at most one concurrent
// computation per key.
type ReconcileResultCache interface {
	Fetch(ctx context.Context, key string, compute func(ctx context.Context) (*model.ReconcileResult, error)) (*model.ReconcileResult, error)
	Invalidate(ctx context.Context, key string) error
}
