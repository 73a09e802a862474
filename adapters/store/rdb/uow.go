package rdb

import (
	"context"

	"github.com/kompox/kubelink/domain"
	"gorm.io/gorm"
)

// UnitOfWork runs a function inside a single database transaction.
type UnitOfWork struct{ db *gorm.DB }

func NewUnitOfWork(db *gorm.DB) *UnitOfWork { return &UnitOfWork{db: db} }

// Do commits when fn returns nil and rolls back otherwise.
func (u *UnitOfWork) Do(ctx context.Context, fn func(repos *domain.Repositories) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepositories(tx))
	})
}

// NewRepositories returns repositories bound to db (or a transaction handle).
func NewRepositories(db *gorm.DB) *domain.Repositories {
	return &domain.Repositories{
		Cluster:     NewClusterRepository(db),
		Integration: NewIntegrationRepository(db),
	}
}

var _ domain.UnitOfWork = (*UnitOfWork)(nil)
