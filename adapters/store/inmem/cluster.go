package inmem

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/kompox/kubelink/domain"
	"github.com/kompox/kubelink/domain/model"
)

// ClusterRepository is a thread-safe in-memory implementation. It is bound
// either to a Store (committed data) or to a transaction's private copy.
type ClusterRepository struct {
	store *Store
	tx    *state
}

func (r *ClusterRepository) state() *state {
	if r.tx != nil {
		return r.tx
	}
	return r.store.current()
}

func (r *ClusterRepository) Create(_ context.Context, c *model.Cluster) error {
	if err := c.Validate(); err != nil {
		return err
	}
	s := r.state()
	s.mu.Lock()
	defer s.mu.Unlock()
	if c.ID == "" {
		c.ID = "clus-" + uuid.NewString()
	}
	now := time.Now().UTC()
	c.CreatedAt, c.UpdatedAt = now, now
	cp := *c
	s.clusters[c.ID] = &cp
	s.touchCluster(c.ID)
	return nil
}

func (r *ClusterRepository) Get(_ context.Context, id string) (*model.Cluster, error) {
	s := r.state()
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.clusters[id]
	if !ok {
		return nil, model.ErrClusterNotFound
	}
	cp := *v
	return &cp, nil
}

func (r *ClusterRepository) List(_ context.Context) ([]*model.Cluster, error) {
	s := r.state()
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*model.Cluster, 0, len(s.clusters))
	for _, v := range s.clusters {
		cp := *v
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *ClusterRepository) Update(_ context.Context, c *model.Cluster) error {
	if err := c.Validate(); err != nil {
		return err
	}
	s := r.state()
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.clusters[c.ID]; !ok {
		return model.ErrClusterNotFound
	}
	c.UpdatedAt = time.Now().UTC()
	cp := *c
	s.clusters[c.ID] = &cp
	s.touchCluster(c.ID)
	return nil
}

var _ domain.ClusterRepository = (*ClusterRepository)(nil)
