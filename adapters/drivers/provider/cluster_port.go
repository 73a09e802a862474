package providerdrv

import (
	"context"
	"fmt"

	"github.com/kompox/kubelink/domain/model"
)

// clusterPortAdapter implements model.ClusterPort backed by a provider driver.
type clusterPortAdapter struct {
	driver Driver
}

func (a *clusterPortAdapter) Operation(ctx context.Context, cred model.AccessCredential, ref model.OperationRef) (*model.Operation, error) {
	return a.driver.Operation(ctx, cred, ref)
}

func (a *clusterPortAdapter) ClusterDetail(ctx context.Context, cred model.AccessCredential, ref model.ClusterRef) (*model.ClusterDetail, error) {
	return a.driver.ClusterDetail(ctx, cred, ref)
}

// GetClusterPort returns a model.ClusterPort implemented via the named provider driver.
func GetClusterPort(driverName string, settings map[string]string) (model.ClusterPort, error) {
	factory, exists := GetDriverFactory(driverName)
	if !exists {
		return nil, fmt.Errorf("unknown provider driver: %s", driverName)
	}
	driver, err := factory(settings)
	if err != nil {
		return nil, fmt.Errorf("failed to create driver %s: %w", driverName, err)
	}
	return &clusterPortAdapter{driver: driver}, nil
}
