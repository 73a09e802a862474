package domain

import (
	"context"

	"github.com/kompox/kubelink/domain/model"
)

// ClusterRepository stores and retrieves Cluster aggregates.
type ClusterRepository interface {
	Create(ctx context.Context, c *model.Cluster) error
	Get(ctx context.Context, id string) (*model.Cluster, error)
	List(ctx context.Context) ([]*model.Cluster, error)
	Update(ctx context.Context, c *model.Cluster) error
}

// IntegrationRepository stores and retrieves Integration aggregates.
type IntegrationRepository interface {
	Get(ctx context.Context, id string) (*model.Integration, error)
	// FindByProject returns ErrIntegrationNotFound when the project has no
	// integration of the given kind.
	FindByProject(ctx context.Context, projectID, kind string) (*model.Integration, error)
	// Save creates or updates the integration after validating it.
	Save(ctx context.Context, i *model.Integration) error
}

// UnitOfWork coordinates transactional operations. When fn returns an error
// nothing written through repos is kept.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(repos *Repositories) error) error
}

// Repositories groups repository interfaces for use inside UnitOfWork.
type Repositories struct {
	Cluster     ClusterRepository
	Integration IntegrationRepository
}
