package providerdrv

import (
	"context"

	"github.com/kompox/kubelink/domain/model"
)

// Driver abstracts provider-specific access to the cloud control API.
// Implementations live under adapters/drivers/provider/<name> and should return a
// provider identifier such as "gke" via ID().
//
// Both methods wrap the matching model sentinel (ErrOperationUnavailable,
// ErrClusterDetailUnavailable) when the provider API answered with an error.
type Driver interface {
	// ID returns the provider identifier (e.g., "gke").
	ID() string

	// Operation returns the current state of a long-running creation operation.
	Operation(ctx context.Context, cred model.AccessCredential, ref model.OperationRef) (*model.Operation, error)

	// ClusterDetail returns the endpoint and control-plane credentials of a cluster.
	ClusterDetail(ctx context.Context, cred model.AccessCredential, ref model.ClusterRef) (*model.ClusterDetail, error)
}

// driverFactory is a constructor function for a provider driver.
type driverFactory func(settings map[string]string) (Driver, error)

// registry holds registered drivers by name.
var registry = map[string]driverFactory{}

// Register makes a driver available by the given name. Drivers should call
// this from their init() function.
func Register(name string, factory driverFactory) {
	registry[name] = factory
}

// GetDriverFactory returns the driver factory function for the given name.
func GetDriverFactory(name string) (driverFactory, bool) {
	factory, exists := registry[name]
	return factory, exists
}
