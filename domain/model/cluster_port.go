package model

import "context"

// AccessCredential is the short-lived OAuth bearer token supplied by the caller
// for provider API calls.
type AccessCredential string

// ClusterPort is the domain port to the cloud provider control API.
// Implementations return ErrOperationUnavailable / ErrClusterDetailUnavailable
// (wrapped) when the provider API answered with an error; any other error is a
// transport fault.
type ClusterPort interface {
	Operation(ctx context.Context, cred AccessCredential, ref OperationRef) (*Operation, error)
	ClusterDetail(ctx context.Context, cred AccessCredential, ref ClusterRef) (*ClusterDetail, error)
}

// SecretPort lists secrets on a cluster's own control plane.
type SecretPort interface {
	// ListSecrets returns ErrControlPlaneUnreachable (wrapped) when the control
	// plane cannot be reached; a reachable namespace with no secrets yields an
	// empty slice.
	ListSecrets(ctx context.Context, detail *ClusterDetail, namespace string) ([]Secret, error)
}

// Sealer encrypts credentials stored at rest.
type Sealer interface {
	Seal(plaintext string) (string, error)
	Open(ciphertext string) (string, error)
}
