package cluster

import (
	"context"

	"github.com/kompox/kubelink/domain/model"
)

// ListInput optionally filters clusters by project.
type ListInput struct {
	ProjectID string `json:"project_id,omitempty"`
}

// ListOutput contains the clusters in creation order.
type ListOutput struct {
	Clusters []*model.Cluster `json:"clusters"`
}

func (u *UseCase) List(ctx context.Context, in *ListInput) (*ListOutput, error) {
	all, err := u.Repos.Cluster.List(ctx)
	if err != nil {
		return nil, err
	}
	if in == nil || in.ProjectID == "" {
		return &ListOutput{Clusters: all}, nil
	}
	out := make([]*model.Cluster, 0, len(all))
	for _, c := range all {
		if c.ProjectID == in.ProjectID {
			out = append(out, c)
		}
	}
	return &ListOutput{Clusters: out}, nil
}
