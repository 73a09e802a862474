package rdb

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/kompox/kubelink/domain"
	"github.com/kompox/kubelink/domain/model"
	"gorm.io/gorm"
)

type IntegrationRepository struct{ db *gorm.DB }

func NewIntegrationRepository(db *gorm.DB) *IntegrationRepository {
	return &IntegrationRepository{db: db}
}

func integrationToRecord(i *model.Integration) *IntegrationRecord {
	return &IntegrationRecord{
		ID:        i.ID,
		ProjectID: i.ProjectID,
		Kind:      i.Kind,
		Active:    i.Active,
		APIURL:    i.APIURL,
		CACert:    i.CACert,
		Namespace: i.Namespace,
		Token:     i.Token,
		CreatedAt: i.CreatedAt,
		UpdatedAt: i.UpdatedAt,
	}
}

func integrationToModel(r *IntegrationRecord) *model.Integration {
	return &model.Integration{
		ID:        r.ID,
		ProjectID: r.ProjectID,
		Kind:      r.Kind,
		Active:    r.Active,
		APIURL:    r.APIURL,
		CACert:    r.CACert,
		Namespace: r.Namespace,
		Token:     r.Token,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func (r *IntegrationRepository) Get(ctx context.Context, id string) (*model.Integration, error) {
	var rec IntegrationRecord
	if err := r.db.WithContext(ctx).First(&rec, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrIntegrationNotFound
		}
		return nil, err
	}
	return integrationToModel(&rec), nil
}

func (r *IntegrationRepository) FindByProject(ctx context.Context, projectID, kind string) (*model.Integration, error) {
	var rec IntegrationRecord
	err := r.db.WithContext(ctx).Where("project_id = ? AND kind = ?", projectID, kind).First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrIntegrationNotFound
		}
		return nil, err
	}
	return integrationToModel(&rec), nil
}

func (r *IntegrationRepository) Save(ctx context.Context, i *model.Integration) error {
	if err := i.Validate(); err != nil {
		return err
	}
	rec := integrationToRecord(i)
	if rec.ID == "" {
		rec.ID = "intg-" + uuid.NewString()
	}
	if err := r.db.WithContext(ctx).Save(rec).Error; err != nil {
		return err
	}
	i.ID, i.CreatedAt, i.UpdatedAt = rec.ID, rec.CreatedAt, rec.UpdatedAt
	return nil
}

var _ domain.IntegrationRepository = (*IntegrationRepository)(nil)
