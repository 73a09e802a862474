package gke

import (
	"context"
	"time"

	"github.com/kompox/kubelink/internal/logging"
)

// withMethodLogger implements the Span pattern for GKE driver logging.
// It emits a START log line and returns a context with logger attributes attached,
// plus a cleanup function to emit the END:OK or END:FAILED log line.
//
// Usage:
//
//	ctx, cleanup := d.withMethodLogger(ctx, "Operation")
//	defer func() { cleanup(err) }()
func (d *driver) withMethodLogger(ctx context.Context, method string) (context.Context, func(err error)) {
	startAt := time.Now()

	logger := logging.FromContext(ctx).With("driver", "GKE."+method)
	ctx = logging.WithLogger(ctx, logger)

	logger.Info(ctx, "GKE:"+method+":START")

	cleanup := func(err error) {
		elapsed := time.Since(startAt).Seconds()
		if err == nil {
			logger.Info(ctx, "GKE:"+method+":END:OK", "err", "", "elapsed", elapsed)
			return
		}
		logger.Warn(ctx, "GKE:"+method+":END:FAILED", "err", logging.Truncate(err.Error(), 32), "elapsed", elapsed)
	}

	return ctx, cleanup
}
