package integration

import "github.com/kompox/kubelink/domain"

// Repos holds repositories needed for integration use cases.
type Repos struct {
	Integration domain.IntegrationRepository
}

// UseCase wires repositories needed for integration use cases.
type UseCase struct {
	Repos *Repos
}
