package inmem

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/kompox/kubelink/domain"
	"github.com/kompox/kubelink/domain/model"
)

// IntegrationRepository is a thread-safe in-memory implementation.
type IntegrationRepository struct {
	store *Store
	tx    *state
}

func (r *IntegrationRepository) state() *state {
	if r.tx != nil {
		return r.tx
	}
	return r.store.current()
}

func (r *IntegrationRepository) Get(_ context.Context, id string) (*model.Integration, error) {
	s := r.state()
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.integrations[id]
	if !ok {
		return nil, model.ErrIntegrationNotFound
	}
	cp := *v
	return &cp, nil
}

func (r *IntegrationRepository) FindByProject(_ context.Context, projectID, kind string) (*model.Integration, error) {
	s := r.state()
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, v := range s.integrations {
		if v.ProjectID == projectID && v.Kind == kind {
			cp := *v
			return &cp, nil
		}
	}
	return nil, model.ErrIntegrationNotFound
}

func (r *IntegrationRepository) Save(_ context.Context, i *model.Integration) error {
	if err := i.Validate(); err != nil {
		return err
	}
	s := r.state()
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, v := range s.integrations {
		if id != i.ID && v.ProjectID == i.ProjectID && v.Kind == i.Kind {
			return fmt.Errorf("%w: project %s already has a %s integration", model.ErrIntegrationInvalid, i.ProjectID, i.Kind)
		}
	}
	now := time.Now().UTC()
	if i.ID == "" {
		i.ID = "intg-" + uuid.NewString()
	}
	if prev, ok := s.integrations[i.ID]; ok {
		i.CreatedAt = prev.CreatedAt
	} else {
		i.CreatedAt = now
	}
	i.UpdatedAt = now
	cp := *i
	s.integrations[i.ID] = &cp
	s.touchIntegration(i.ID)
	return nil
}

var _ domain.IntegrationRepository = (*IntegrationRepository)(nil)
