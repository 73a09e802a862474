package model

import (
	"strings"
	"time"

	"github.com/kompox/kubelink/internal/naming"
)

// Cluster represents a managed Kubernetes cluster whose creation was started on
// a cloud provider and whose connectivity is later handed off to an integration.
type Cluster struct {
	ID         string
	ProjectID  string // owning project (cache identity together with ID)
	UserID     string
	ProviderID string // provider driver name, e.g. "gke"

	// Provider handle of the pending creation.
	GCPProjectID   string
	Zone           string
	ClusterName    string
	GCPOperationID string

	// Namespace written into the integration once the cluster is usable.
	Namespace string

	// Connectivity, set together by a successful reconciliation.
	Enabled           bool
	Endpoint          string
	CACert            string
	Username          string
	EncryptedPassword string
	Token             string
	IntegrationID     string // references Integration; empty until integrated

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Integrated reports whether the cluster has completed the commit step.
func (c *Cluster) Integrated() bool { return c != nil && c.IntegrationID != "" }

// OperationRef returns the provider handle of the pending creation operation.
func (c *Cluster) OperationRef() OperationRef {
	return OperationRef{ProjectID: c.GCPProjectID, Zone: c.Zone, OperationID: c.GCPOperationID}
}

// ClusterRef returns the provider handle of the cluster itself.
func (c *Cluster) ClusterRef() ClusterRef {
	return ClusterRef{ProjectID: c.GCPProjectID, Zone: c.Zone, ClusterName: c.ClusterName}
}

// Validate checks the invariants of a persisted cluster record.
func (c *Cluster) Validate() error {
	v := &ValidationError{Entity: "cluster"}
	if strings.TrimSpace(c.ProjectID) == "" {
		v.Add("projectID", "must not be empty")
	}
	if strings.TrimSpace(c.GCPProjectID) == "" {
		v.Add("gcpProjectID", "must not be empty")
	}
	if strings.TrimSpace(c.Zone) == "" {
		v.Add("zone", "must not be empty")
	}
	if err := naming.ValidateClusterName(c.ClusterName); err != nil {
		v.Add("clusterName", err.Error())
	}
	if c.Enabled {
		// connectivity group must be complete once the cluster is enabled
		if !strings.HasPrefix(c.Endpoint, "https://") {
			v.Add("endpoint", "must be an https URL")
		}
		if c.Token == "" {
			v.Add("token", "must not be empty")
		}
		if c.IntegrationID == "" {
			v.Add("integrationID", "must not be empty")
		}
	} else if strings.TrimSpace(c.GCPOperationID) == "" {
		v.Add("gcpOperationID", "must not be empty")
	}
	return v.OrNil()
}
