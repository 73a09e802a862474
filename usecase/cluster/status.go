package cluster

import (
	"context"

	"github.com/kompox/kubelink/domain/model"
)

// StatusInput represents a query of a cluster's provisioning status.
type StatusInput struct {
	// ClusterID identifies the cluster.
	ClusterID string `json:"cluster_id"`
	// AccessCredential is used if the cached result is stale.
	AccessCredential model.AccessCredential `json:"-"`
}

// StatusOutput is the display projection of the last reconciliation result.
type StatusOutput struct {
	ClusterID     string `json:"cluster_id"`
	Status        string `json:"status"`
	StatusMessage string `json:"status_message"`
}

// Status returns the cached reconciliation result of a cluster, reconciling
// when the cache considers it stale.
func (u *UseCase) Status(ctx context.Context, in *StatusInput) (*StatusOutput, error) {
	if in == nil || in.ClusterID == "" {
		return nil, model.ErrClusterInvalid
	}
	c, err := u.Repos.Cluster.Get(ctx, in.ClusterID)
	if err != nil {
		return nil, err
	}

	compute := func(ctx context.Context) (*model.ReconcileResult, error) {
		// reconcile against the latest persisted state, not the lookup above
		fresh, err := u.Repos.Cluster.Get(ctx, c.ID)
		if err != nil {
			return nil, err
		}
		return u.reconcile(ctx, fresh, in.AccessCredential)
	}

	var res *model.ReconcileResult
	if u.StatusCache != nil {
		res, err = u.StatusCache.Fetch(ctx, c.StatusCacheKey().String(), compute)
	} else {
		res, err = compute(ctx)
	}
	if err != nil {
		return nil, err
	}
	return &StatusOutput{ClusterID: c.ID, Status: res.Status, StatusMessage: res.StatusMessage}, nil
}
