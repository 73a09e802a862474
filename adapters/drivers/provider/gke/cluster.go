package gke

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/kompox/kubelink/domain/model"
	container "google.golang.org/api/container/v1"
	"google.golang.org/api/googleapi"
)

// unavailable wraps sentinel when err is an answer from the provider API.
// Transport faults are returned as-is for the caller to handle.
func unavailable(sentinel error, what string, err error) error {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return fmt.Errorf("%w: %s: %v", sentinel, what, err)
	}
	return fmt.Errorf("%s: %w", what, err)
}

// Operation returns the status of a zonal cluster operation.
func (d *driver) Operation(ctx context.Context, cred model.AccessCredential, ref model.OperationRef) (op *model.Operation, err error) {
	ctx, cleanup := d.withMethodLogger(ctx, "Operation")
	defer func() { cleanup(err) }()

	svc, err := d.service(ctx, cred)
	if err != nil {
		return nil, err
	}
	res, err := svc.Projects.Zones.Operations.Get(ref.ProjectID, ref.Zone, ref.OperationID).Context(ctx).Do()
	if err != nil {
		return nil, unavailable(model.ErrOperationUnavailable, "get operation "+ref.OperationID, err)
	}
	return operationToModel(res), nil
}

// ClusterDetail returns the endpoint and master auth of a zonal cluster.
func (d *driver) ClusterDetail(ctx context.Context, cred model.AccessCredential, ref model.ClusterRef) (detail *model.ClusterDetail, err error) {
	ctx, cleanup := d.withMethodLogger(ctx, "ClusterDetail")
	defer func() { cleanup(err) }()

	svc, err := d.service(ctx, cred)
	if err != nil {
		return nil, err
	}
	res, err := svc.Projects.Zones.Clusters.Get(ref.ProjectID, ref.Zone, ref.ClusterName).Context(ctx).Do()
	if err != nil {
		return nil, unavailable(model.ErrClusterDetailUnavailable, "get cluster "+ref.ClusterName, err)
	}
	if res.Endpoint == "" || res.MasterAuth == nil {
		return nil, fmt.Errorf("%w: cluster %s has no endpoint yet", model.ErrClusterDetailUnavailable, ref.ClusterName)
	}
	ca, err := base64.StdEncoding.DecodeString(res.MasterAuth.ClusterCaCertificate)
	if err != nil {
		return nil, fmt.Errorf("%w: decode CA certificate of %s: %v", model.ErrClusterDetailUnavailable, ref.ClusterName, err)
	}
	return &model.ClusterDetail{
		Endpoint: res.Endpoint,
		CACert:   ca,
		Username: res.MasterAuth.Username,
		Password: res.MasterAuth.Password,
	}, nil
}

func operationToModel(o *container.Operation) *model.Operation {
	return &model.Operation{
		Name:          o.Name,
		Zone:          o.Zone,
		OperationType: o.OperationType,
		Status:        o.Status,
		StatusMessage: o.StatusMessage,
		Detail:        o.Detail,
		SelfLink:      o.SelfLink,
		TargetLink:    o.TargetLink,
		StartTime:     parseTime(o.StartTime),
		EndTime:       parseTime(o.EndTime),
	}
}

func parseTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
