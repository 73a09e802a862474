package cluster

import (
	"github.com/kompox/kubelink/domain"
	"github.com/kompox/kubelink/domain/model"
)

// DefaultSecretNamespace is the namespace searched for the service-account token.
const DefaultSecretNamespace = "default"

// Repos holds repositories needed for cluster use cases.
type Repos struct {
	Cluster     domain.ClusterRepository
	Integration domain.IntegrationRepository
}

// DefaultProviderID is the provider assumed when none is configured.
const DefaultProviderID = "gke"

// Settings tunes reconciliation.
type Settings struct {
	// ProviderID names the provider ClusterPort talks to. Clusters of other
	// providers are rejected.
	ProviderID string
	// SecretNamespace is listed on the new cluster to find the token secret.
	SecretNamespace string
	// IntegrationNamespace is written to the integration when the cluster has
	// no namespace of its own.
	IntegrationNamespace string
	// Token selects the secret holding the bearer token.
	Token TokenMatcher
}

func (s Settings) providerID() string {
	if s.ProviderID == "" {
		return DefaultProviderID
	}
	return s.ProviderID
}

func (s Settings) secretNamespace() string {
	if s.SecretNamespace == "" {
		return DefaultSecretNamespace
	}
	return s.SecretNamespace
}

// UseCase wires repositories and ports needed for cluster use cases.
type UseCase struct {
	Repos       *Repos
	UnitOfWork  domain.UnitOfWork
	ClusterPort model.ClusterPort
	SecretPort  model.SecretPort
	Sealer      model.Sealer
	// StatusCache throttles reconciliation for Status. When nil every Status
	// call reconciles.
	StatusCache domain.ReconcileResultCache
	Settings    Settings
}
