package cluster

import (
	"context"
	"fmt"
	"strings"

	"github.com/kompox/kubelink/domain/model"
)

// RegisterInput contains the handle of a cluster creation started elsewhere.
type RegisterInput struct {
	ProjectID      string `json:"project_id"`
	UserID         string `json:"user_id"`
	ProviderID     string `json:"provider_id"`
	GCPProjectID   string `json:"gcp_project_id"`
	Zone           string `json:"zone"`
	ClusterName    string `json:"cluster_name"`
	GCPOperationID string `json:"gcp_operation_id"`
	Namespace      string `json:"namespace"`
}

// RegisterOutput wraps the registered cluster.
type RegisterOutput struct {
	Cluster *model.Cluster `json:"cluster"`
}

// Register persists a pre-provisioning cluster record.
func (u *UseCase) Register(ctx context.Context, in *RegisterInput) (*RegisterOutput, error) {
	if in == nil {
		return nil, model.ErrClusterInvalid
	}
	providerID := strings.TrimSpace(in.ProviderID)
	if providerID == "" {
		providerID = u.Settings.providerID()
	}
	if providerID != u.Settings.providerID() {
		v := &model.ValidationError{Entity: "cluster"}
		v.Add("providerID", fmt.Sprintf("provider %q is not configured (configured: %q)", providerID, u.Settings.providerID()))
		return nil, v
	}
	c := &model.Cluster{
		ProjectID:      strings.TrimSpace(in.ProjectID),
		UserID:         strings.TrimSpace(in.UserID),
		ProviderID:     providerID,
		GCPProjectID:   strings.TrimSpace(in.GCPProjectID),
		Zone:           strings.TrimSpace(in.Zone),
		ClusterName:    strings.TrimSpace(in.ClusterName),
		GCPOperationID: strings.TrimSpace(in.GCPOperationID),
		Namespace:      strings.TrimSpace(in.Namespace),
	}
	if err := u.Repos.Cluster.Create(ctx, c); err != nil {
		return nil, err
	}
	return &RegisterOutput{Cluster: c}, nil
}
