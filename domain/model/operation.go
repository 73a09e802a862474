package model

import "time"

// Provider-reported operation statuses. Other provider codes pass through as-is.
const (
	OperationStatusPending  = "PENDING"
	OperationStatusRunning  = "RUNNING"
	OperationStatusDone     = "DONE"
	OperationStatusAborting = "ABORTING"
)

// OperationRef identifies a long-running cluster creation operation.
type OperationRef struct {
	ProjectID   string
	Zone        string
	OperationID string
}

// ClusterRef identifies a cluster on the provider.
type ClusterRef struct {
	ProjectID   string
	Zone        string
	ClusterName string
}

// Operation is the provider representation of a long-running operation. It is
// transient and never persisted, but it is cached as part of a ReconcileResult.
type Operation struct {
	Name          string    `json:"name,omitempty"`
	Zone          string    `json:"zone,omitempty"`
	OperationType string    `json:"operationType,omitempty"`
	Status        string    `json:"status"`
	StatusMessage string    `json:"statusMessage,omitempty"`
	Detail        string    `json:"detail,omitempty"`
	SelfLink      string    `json:"selfLink,omitempty"`
	TargetLink    string    `json:"targetLink,omitempty"`
	StartTime     time.Time `json:"startTime,omitempty"`
	EndTime       time.Time `json:"endTime,omitempty"`
}

// Done reports whether the provider finished the operation.
func (o *Operation) Done() bool { return o != nil && o.Status == OperationStatusDone }

// ClusterDetail carries the connection material of a created cluster.
type ClusterDetail struct {
	Endpoint string // bare host or IP as reported by the provider
	CACert   []byte // decoded PEM bundle
	Username string
	Password string
}

// Secret is a control-plane secret record; Data values are already decoded.
type Secret struct {
	Name string
	Data map[string][]byte
}

// APIURL is the https URL of the cluster's control plane.
func (d *ClusterDetail) APIURL() string { return "https://" + d.Endpoint }
