package main

import (
	"fmt"
	"strings"

	"github.com/kompox/kubelink/adapters/store/inmem"
	"github.com/kompox/kubelink/adapters/store/rdb"
	"github.com/kompox/kubelink/domain"
)

// store bundles repositories with the unit of work that commits them together.
type store struct {
	Repos      *domain.Repositories
	UnitOfWork domain.UnitOfWork
}

// buildStore opens the persistence substrate selected by database.url.
// A memory: store lives only for the current process.
func buildStore() (*store, error) {
	dbURL := configRoot.Database.URL

	switch {
	case dbURL == "memory:":
		s := inmem.NewStore()
		return &store{Repos: s.Repositories(), UnitOfWork: s}, nil

	case strings.HasPrefix(dbURL, "sqlite:") || strings.HasPrefix(dbURL, "sqlite3:"):
		db, err := rdb.OpenFromURL(dbURL)
		if err != nil {
			return nil, err
		}
		if err := rdb.AutoMigrate(db); err != nil {
			return nil, err
		}
		return &store{Repos: rdb.NewRepositories(db), UnitOfWork: rdb.NewUnitOfWork(db)}, nil

	default:
		return nil, fmt.Errorf("unsupported db scheme: %s", dbURL)
	}
}
