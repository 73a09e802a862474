package model

// Reconciliation statuses and fixed messages reported to callers.
const (
	StatusIntegrated = "INTEGRATED"

	MsgOperationUnavailable = "Failed to get a status"
	MsgClusterUnavailable   = "Failed to get a cluster info on gke"
	MsgTokenNotFound        = "Failed to get a default token on kubernetes"
	MsgSetupFailed          = "Failed to setup integration"
)

// ReconcileResult is the cached outcome of a single reconciliation attempt.
// Operation is set when the provider operation representation is returned
// as-is (still running, or done on this call).
type ReconcileResult struct {
	Status        string     `json:"status,omitempty"`
	StatusMessage string     `json:"statusMessage,omitempty"`
	Operation     *Operation `json:"operation,omitempty"`
}

// IntegratedResult is returned once a cluster has been integrated.
func IntegratedResult() *ReconcileResult { return &ReconcileResult{Status: StatusIntegrated} }

// FailureResult is a retryable soft failure carrying a fixed message.
func FailureResult(msg string) *ReconcileResult { return &ReconcileResult{StatusMessage: msg} }

// OperationResult exposes the provider operation representation.
func OperationResult(op *Operation) *ReconcileResult {
	return &ReconcileResult{Status: op.Status, StatusMessage: op.StatusMessage, Operation: op}
}

// CacheKey identifies a cached reconciliation result.
type CacheKey struct {
	ResourceType string
	ProjectID    string
	ResourceID   string
}

func (k CacheKey) String() string {
	return k.ResourceType + ":" + k.ProjectID + ":" + k.ResourceID
}

// StatusCacheKey is the cache identity of a cluster's reconciliation result.
func (c *Cluster) StatusCacheKey() CacheKey {
	return CacheKey{ResourceType: "cluster", ProjectID: c.ProjectID, ResourceID: c.ID}
}
