package cluster

import (
	"context"
	"time"

	"github.com/kompox/kubelink/domain/model"
	"github.com/kompox/kubelink/internal/logging"
	"github.com/kompox/kubelink/internal/metrics"
)

// withReconcileLogger implements the Span pattern for reconciliation.
// It emits UC:<op>/S and returns a cleanup that emits UC:<op>/EOK or /EFAIL
// with the result label, and records the reconcile metrics.
func withReconcileLogger(ctx context.Context, operation, clusterID string) (context.Context, func(res *model.ReconcileResult, err error)) {
	startAt := time.Now()

	logger := logging.FromContext(ctx).With("clusterId", clusterID)
	ctx = logging.WithLogger(ctx, logger)

	logger.Info(ctx, "UC:"+operation+"/S")

	cleanup := func(res *model.ReconcileResult, err error) {
		elapsed := time.Since(startAt)
		result := resultLabel(res, err)
		metrics.ReconcileTotal.WithLabelValues(result).Inc()
		metrics.ReconcileDuration.Observe(elapsed.Seconds())
		if err != nil {
			logger.Info(ctx, "UC:"+operation+"/EFAIL", "err", logging.Truncate(err.Error(), 32), "result", result, "elapsed", elapsed.Seconds())
			return
		}
		logger.Info(ctx, "UC:"+operation+"/EOK", "err", "", "result", result, "elapsed", elapsed.Seconds())
	}

	return ctx, cleanup
}

func resultLabel(res *model.ReconcileResult, err error) string {
	switch {
	case err != nil || res == nil:
		return metrics.ResultError
	case res.Status == model.StatusIntegrated:
		return metrics.ResultIntegrated
	case res.Operation != nil && res.Operation.Done():
		return metrics.ResultCommitted
	case res.Operation != nil:
		return metrics.ResultPending
	}
	switch res.StatusMessage {
	case model.MsgOperationUnavailable:
		return metrics.ResultOperationUnavailable
	case model.MsgClusterUnavailable:
		return metrics.ResultClusterUnavailable
	case model.MsgTokenNotFound:
		return metrics.ResultTokenNotFound
	case model.MsgSetupFailed:
		return metrics.ResultCommitInvalid
	}
	return metrics.ResultError
}
