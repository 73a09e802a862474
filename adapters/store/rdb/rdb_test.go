package rdb

import (
	"context"
	"errors"
	"testing"

	"github.com/kompox/kubelink/domain"
	"github.com/kompox/kubelink/domain/model"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := OpenFromURL("sqlite::memory:")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	// every connection to :memory: is a separate database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	if err := AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func pendingCluster() *model.Cluster {
	return &model.Cluster{
		ProjectID:      "proj-1",
		GCPProjectID:   "gcp-project",
		Zone:           "us-central1-a",
		ClusterName:    "gke-cluster",
		GCPOperationID: "operation-123",
		Namespace:      "proj-1",
	}
}

func TestOpenFromURL_UnsupportedScheme(t *testing.T) {
	if _, err := OpenFromURL("postgres://localhost/db"); err == nil {
		t.Fatalf("expected error for unsupported scheme")
	}
}

func TestClusterRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	repo := NewClusterRepository(openTestDB(t))

	c := pendingCluster()
	if err := repo.Create(ctx, c); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if c.ID == "" {
		t.Fatalf("expected generated ID")
	}

	got, err := repo.Get(ctx, c.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.ClusterName != "gke-cluster" || got.GCPOperationID != "operation-123" {
		t.Errorf("unexpected cluster: %+v", got)
	}

	got.Enabled = true
	got.Endpoint = "https://34.1.2.3"
	got.Token = "TOKEN123"
	got.IntegrationID = "intg-1"
	if err := repo.Update(ctx, got); err != nil {
		t.Fatalf("Update: %v", err)
	}
	again, _ := repo.Get(ctx, c.ID)
	if !again.Enabled || again.Endpoint != "https://34.1.2.3" {
		t.Errorf("update not persisted: %+v", again)
	}

	list, err := repo.List(ctx)
	if err != nil || len(list) != 1 {
		t.Fatalf("List: %v (%d items)", err, len(list))
	}

	if _, err := repo.Get(ctx, "missing"); !errors.Is(err, model.ErrClusterNotFound) {
		t.Errorf("expected ErrClusterNotFound, got %v", err)
	}
	missing := pendingCluster()
	missing.ID = "missing"
	if err := repo.Update(ctx, missing); !errors.Is(err, model.ErrClusterNotFound) {
		t.Errorf("expected ErrClusterNotFound on update, got %v", err)
	}
}

func TestClusterRepository_CreateValidates(t *testing.T) {
	repo := NewClusterRepository(openTestDB(t))
	c := pendingCluster()
	c.Zone = ""
	err := repo.Create(context.Background(), c)
	if !errors.Is(err, model.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestIntegrationRepository_SaveAndFind(t *testing.T) {
	ctx := context.Background()
	repo := NewIntegrationRepository(openTestDB(t))

	if _, err := repo.FindByProject(ctx, "proj-1", model.IntegrationKindKubernetes); !errors.Is(err, model.ErrIntegrationNotFound) {
		t.Fatalf("expected ErrIntegrationNotFound, got %v", err)
	}

	in := &model.Integration{ProjectID: "proj-1", Kind: model.IntegrationKindKubernetes}
	if err := repo.Save(ctx, in); err != nil {
		t.Fatalf("Save: %v", err)
	}
	in.Active = true
	in.APIURL = "https://34.1.2.3"
	in.Namespace = "proj-1"
	in.Token = "TOKEN123"
	if err := repo.Save(ctx, in); err != nil {
		t.Fatalf("Save (update): %v", err)
	}

	got, err := repo.FindByProject(ctx, "proj-1", model.IntegrationKindKubernetes)
	if err != nil {
		t.Fatalf("FindByProject: %v", err)
	}
	if got.ID != in.ID || !got.Active || got.Token != "TOKEN123" {
		t.Errorf("unexpected integration: %+v", got)
	}
}

func TestUnitOfWork_RollbackOnValidationFailure(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	clusters := NewClusterRepository(db)
	c := pendingCluster()
	if err := clusters.Create(ctx, c); err != nil {
		t.Fatalf("Create: %v", err)
	}

	uow := NewUnitOfWork(db)
	err := uow.Do(ctx, func(repos *domain.Repositories) error {
		in := &model.Integration{ProjectID: c.ProjectID, Kind: model.IntegrationKindKubernetes,
			Active: true, APIURL: "https://34.1.2.3", Namespace: "proj-1", Token: "TOKEN123"}
		if err := repos.Integration.Save(ctx, in); err != nil {
			return err
		}
		// enabled without endpoint fails validation after the integration write
		c.Enabled = true
		c.IntegrationID = in.ID
		return repos.Cluster.Update(ctx, c)
	})
	var ve *model.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}

	if _, err := NewIntegrationRepository(db).FindByProject(ctx, c.ProjectID, model.IntegrationKindKubernetes); !errors.Is(err, model.ErrIntegrationNotFound) {
		t.Errorf("integration write was not rolled back: %v", err)
	}
	got, _ := clusters.Get(ctx, c.ID)
	if got.Enabled || got.IntegrationID != "" {
		t.Errorf("cluster mutated: %+v", got)
	}
}
