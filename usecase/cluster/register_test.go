package cluster

import (
	"context"
	"errors"
	"testing"

	"github.com/kompox/kubelink/adapters/store/inmem"
	"github.com/kompox/kubelink/domain/model"
)

func TestRegisterGetList(t *testing.T) {
	ctx := context.Background()
	repos := inmem.NewStore().Repositories()
	uc := &UseCase{Repos: &Repos{Cluster: repos.Cluster, Integration: repos.Integration}}

	out, err := uc.Register(ctx, &RegisterInput{
		ProjectID:      "proj-1",
		GCPProjectID:   " gcp-project ",
		Zone:           "us-central1-a",
		ClusterName:    "gke-cluster",
		GCPOperationID: "operation-123",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if out.Cluster.ID == "" || out.Cluster.ProviderID != "gke" || out.Cluster.GCPProjectID != "gcp-project" {
		t.Errorf("unexpected cluster: %+v", out.Cluster)
	}
	if out.Cluster.Enabled || out.Cluster.Integrated() {
		t.Errorf("registered cluster must start pre-provisioning")
	}

	got, err := uc.Get(ctx, &GetInput{ClusterID: out.Cluster.ID})
	if err != nil || got.Cluster.ClusterName != "gke-cluster" {
		t.Fatalf("Get = %+v, %v", got, err)
	}

	if _, err := uc.Register(ctx, &RegisterInput{ProjectID: "proj-2", GCPProjectID: "g", Zone: "z", ClusterName: "other"}); !errors.Is(err, model.ErrValidation) {
		t.Errorf("expected validation error for missing operation id, got %v", err)
	}

	foreign := &RegisterInput{ProjectID: "proj-3", ProviderID: "aks", GCPProjectID: "g", Zone: "z", ClusterName: "aks-cluster", GCPOperationID: "op"}
	if _, err := uc.Register(ctx, foreign); !errors.Is(err, model.ErrValidation) {
		t.Errorf("expected validation error for unconfigured provider, got %v", err)
	}

	all, err := uc.List(ctx, nil)
	if err != nil || len(all.Clusters) != 1 {
		t.Fatalf("List = %+v, %v", all, err)
	}
	none, _ := uc.List(ctx, &ListInput{ProjectID: "proj-9"})
	if len(none.Clusters) != 0 {
		t.Errorf("expected no clusters for proj-9")
	}
	if _, err := uc.Get(ctx, &GetInput{}); !errors.Is(err, model.ErrClusterInvalid) {
		t.Errorf("expected ErrClusterInvalid, got %v", err)
	}
}
