package inmem

import (
	"context"
	"fmt"
	"sync"

	"github.com/kompox/kubelink/domain"
	"github.com/kompox/kubelink/domain/model"
)

// state is a data set guarded by its own mutex. Values are owned copies.
// A transaction's copy also records which entries it wrote.
type state struct {
	mu           sync.RWMutex
	clusters     map[string]*model.Cluster
	integrations map[string]*model.Integration

	// write sets, nil outside transactions
	dirtyClusters     map[string]struct{}
	dirtyIntegrations map[string]struct{}
}

func newState() *state {
	return &state{
		clusters:     make(map[string]*model.Cluster),
		integrations: make(map[string]*model.Integration),
	}
}

// snapshot copies s into a transaction state with empty write sets.
func (s *state) snapshot() *state {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := newState()
	n.dirtyClusters = make(map[string]struct{})
	n.dirtyIntegrations = make(map[string]struct{})
	for k, v := range s.clusters {
		cp := *v
		n.clusters[k] = &cp
	}
	for k, v := range s.integrations {
		cp := *v
		n.integrations[k] = &cp
	}
	return n
}

// touchCluster and touchIntegration record a write; callers hold s.mu.
func (s *state) touchCluster(id string) {
	if s.dirtyClusters != nil {
		s.dirtyClusters[id] = struct{}{}
	}
}

func (s *state) touchIntegration(id string) {
	if s.dirtyIntegrations != nil {
		s.dirtyIntegrations[id] = struct{}{}
	}
}

// apply merges the entries tx wrote into s. Entries written outside the
// transaction are kept. Nothing is applied if an integration written by tx
// now collides with another one on (project, kind).
func (s *state) apply(tx *state) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id := range tx.dirtyIntegrations {
		v := tx.integrations[id]
		for oid, o := range s.integrations {
			if oid != id && o.ProjectID == v.ProjectID && o.Kind == v.Kind {
				return fmt.Errorf("%w: project %s already has a %s integration", model.ErrIntegrationInvalid, v.ProjectID, v.Kind)
			}
		}
	}
	for id := range tx.dirtyClusters {
		cp := *tx.clusters[id]
		s.clusters[id] = &cp
	}
	for id := range tx.dirtyIntegrations {
		cp := *tx.integrations[id]
		s.integrations[id] = &cp
	}
	return nil
}

// Store provides a unified interface for all in-memory repositories.
// Transactions write to a private copy of the data set; on commit only the
// entries they wrote are merged back, so partial writes are never visible
// and concurrent plain writes survive.
type Store struct {
	txMu sync.Mutex
	data *state
}

// NewStore creates a new in-memory store with all repositories.
func NewStore() *Store {
	return &Store{data: newState()}
}

func (s *Store) current() *state { return s.data }

// Repositories returns repositories bound to the committed data set.
func (s *Store) Repositories() *domain.Repositories {
	return &domain.Repositories{
		Cluster:     &ClusterRepository{store: s},
		Integration: &IntegrationRepository{store: s},
	}
}

// Do runs fn inside a transaction. Transactions are serialized.
func (s *Store) Do(ctx context.Context, fn func(repos *domain.Repositories) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}
	tx := s.data.snapshot()
	repos := &domain.Repositories{
		Cluster:     &ClusterRepository{tx: tx},
		Integration: &IntegrationRepository{tx: tx},
	}
	if err := fn(repos); err != nil {
		return err
	}
	return s.data.apply(tx)
}

var _ domain.UnitOfWork = (*Store)(nil)
