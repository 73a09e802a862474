package main

import (
	"fmt"

	"github.com/kompox/kubelink/adapters/cache"
	providerdrv "github.com/kompox/kubelink/adapters/drivers/provider"
	"github.com/kompox/kubelink/adapters/kube"
	"github.com/kompox/kubelink/domain/model"
	"github.com/kompox/kubelink/internal/sealer"
	"github.com/kompox/kubelink/usecase/cluster"
	"github.com/kompox/kubelink/usecase/integration"
	"github.com/redis/go-redis/v9"
)

// buildClusterUseCase creates cluster use case with required repositories and ports.
func buildClusterUseCase() (*cluster.UseCase, error) {
	s, err := buildStore()
	if err != nil {
		return nil, err
	}
	clusterPort, err := providerdrv.GetClusterPort(configRoot.Provider.Driver, configRoot.Provider.Settings)
	if err != nil {
		return nil, err
	}
	token, err := cluster.NewTokenMatcher(configRoot.Reconcile.TokenSecretPattern, "")
	if err != nil {
		return nil, err
	}
	u := &cluster.UseCase{
		Repos:       &cluster.Repos{Cluster: s.Repos.Cluster, Integration: s.Repos.Integration},
		UnitOfWork:  s.UnitOfWork,
		ClusterPort: clusterPort,
		SecretPort:  &kube.SecretPort{Options: &kube.Options{UserAgent: "kubelink/" + version}},
		StatusCache: buildStatusCache(),
		Settings: cluster.Settings{
			ProviderID:           configRoot.Provider.Driver,
			SecretNamespace:      configRoot.Reconcile.SecretNamespace,
			IntegrationNamespace: configRoot.Reconcile.IntegrationNamespace,
			Token:                token,
		},
	}
	// Without a key the reconciler refuses to commit; read-only commands still work.
	if configRoot.Encryption.Key != "" {
		sl, err := sealer.NewFromBase64(configRoot.Encryption.Key)
		if err != nil {
			return nil, fmt.Errorf("encryption key: %w", err)
		}
		u.Sealer = sl
	}
	return u, nil
}

// buildStatusCache selects the cache backend for status queries.
func buildStatusCache() *cache.Typed[model.ReconcileResult] {
	var backend cache.Store
	switch configRoot.Cache.Backend {
	case "redis":
		backend = cache.NewRedisStore(redis.NewClient(&redis.Options{
			Addr:     configRoot.Cache.Redis.Addr,
			Password: configRoot.Cache.Redis.Password,
			DB:       configRoot.Cache.Redis.DB,
		}))
	default:
		backend = cache.NewInMemoryStore()
	}
	return cache.NewTyped[model.ReconcileResult](cache.New(backend, configRoot.Cache.TTL))
}

// buildIntegrationUseCase creates integration use case with required repositories.
func buildIntegrationUseCase() (*integration.UseCase, error) {
	s, err := buildStore()
	if err != nil {
		return nil, err
	}
	return &integration.UseCase{Repos: &integration.Repos{Integration: s.Repos.Integration}}, nil
}
