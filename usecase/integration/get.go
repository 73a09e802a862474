package integration

import (
	"context"

	"github.com/kompox/kubelink/domain/model"
)

// GetInput selects a project's Kubernetes integration. ID takes precedence.
type GetInput struct {
	ID        string `json:"id,omitempty"`
	ProjectID string `json:"project_id,omitempty"`
}

// GetOutput wraps the integration.
type GetOutput struct {
	Integration *model.Integration `json:"integration"`
}

func (u *UseCase) Get(ctx context.Context, in *GetInput) (*GetOutput, error) {
	if in == nil || (in.ID == "" && in.ProjectID == "") {
		return nil, model.ErrIntegrationInvalid
	}
	var (
		i   *model.Integration
		err error
	)
	if in.ID != "" {
		i, err = u.Repos.Integration.Get(ctx, in.ID)
	} else {
		i, err = u.Repos.Integration.FindByProject(ctx, in.ProjectID, model.IntegrationKindKubernetes)
	}
	if err != nil {
		return nil, err
	}
	return &GetOutput{Integration: i}, nil
}
