package rdb

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/kompox/kubelink/domain"
	"github.com/kompox/kubelink/domain/model"
	"gorm.io/gorm"
)

type ClusterRepository struct{ db *gorm.DB }

func NewClusterRepository(db *gorm.DB) *ClusterRepository { return &ClusterRepository{db: db} }

func clusterToRecord(c *model.Cluster) *ClusterRecord {
	return &ClusterRecord{
		ID:                c.ID,
		ProjectID:         c.ProjectID,
		UserID:            c.UserID,
		ProviderID:        c.ProviderID,
		GCPProjectID:      c.GCPProjectID,
		Zone:              c.Zone,
		ClusterName:       c.ClusterName,
		GCPOperationID:    c.GCPOperationID,
		Namespace:         c.Namespace,
		Enabled:           c.Enabled,
		Endpoint:          c.Endpoint,
		CACert:            c.CACert,
		Username:          c.Username,
		EncryptedPassword: c.EncryptedPassword,
		Token:             c.Token,
		IntegrationID:     c.IntegrationID,
		CreatedAt:         c.CreatedAt,
		UpdatedAt:         c.UpdatedAt,
	}
}

func clusterToModel(r *ClusterRecord) *model.Cluster {
	return &model.Cluster{
		ID:                r.ID,
		ProjectID:         r.ProjectID,
		UserID:            r.UserID,
		ProviderID:        r.ProviderID,
		GCPProjectID:      r.GCPProjectID,
		Zone:              r.Zone,
		ClusterName:       r.ClusterName,
		GCPOperationID:    r.GCPOperationID,
		Namespace:         r.Namespace,
		Enabled:           r.Enabled,
		Endpoint:          r.Endpoint,
		CACert:            r.CACert,
		Username:          r.Username,
		EncryptedPassword: r.EncryptedPassword,
		Token:             r.Token,
		IntegrationID:     r.IntegrationID,
		CreatedAt:         r.CreatedAt,
		UpdatedAt:         r.UpdatedAt,
	}
}

func (r *ClusterRepository) Create(ctx context.Context, c *model.Cluster) error {
	if err := c.Validate(); err != nil {
		return err
	}
	rec := clusterToRecord(c)
	if rec.ID == "" {
		rec.ID = "clus-" + uuid.NewString()
	}
	if err := r.db.WithContext(ctx).Create(rec).Error; err != nil {
		return err
	}
	c.ID, c.CreatedAt, c.UpdatedAt = rec.ID, rec.CreatedAt, rec.UpdatedAt
	return nil
}

func (r *ClusterRepository) Get(ctx context.Context, id string) (*model.Cluster, error) {
	var rec ClusterRecord
	if err := r.db.WithContext(ctx).First(&rec, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrClusterNotFound
		}
		return nil, err
	}
	return clusterToModel(&rec), nil
}

func (r *ClusterRepository) List(ctx context.Context) ([]*model.Cluster, error) {
	var recs []ClusterRecord
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&recs).Error; err != nil {
		return nil, err
	}
	out := make([]*model.Cluster, 0, len(recs))
	for i := range recs {
		out = append(out, clusterToModel(&recs[i]))
	}
	return out, nil
}

// Update writes every column so that clearing a field is persisted too.
func (r *ClusterRepository) Update(ctx context.Context, c *model.Cluster) error {
	if err := c.Validate(); err != nil {
		return err
	}
	rec := clusterToRecord(c)
	rec.UpdatedAt = time.Now().UTC()
	res := r.db.WithContext(ctx).Model(&ClusterRecord{}).Where("id = ?", rec.ID).Select("*").Omit("created_at").Updates(rec)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return model.ErrClusterNotFound
	}
	c.UpdatedAt = rec.UpdatedAt
	return nil
}

var _ domain.ClusterRepository = (*ClusterRepository)(nil)
