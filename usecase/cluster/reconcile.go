package cluster

import (
	"context"
	"errors"
	"fmt"

	"github.com/kompox/kubelink/domain"
	"github.com/kompox/kubelink/domain/model"
	"github.com/kompox/kubelink/internal/logging"
)

// ReconcileInput represents a command to advance a cluster's provisioning handoff.
type ReconcileInput struct {
	// ClusterID identifies the cluster.
	ClusterID string `json:"cluster_id"`
	// AccessCredential authorizes provider API calls for this attempt only.
	AccessCredential model.AccessCredential `json:"-"`
}

// ReconcileOutput carries the result of one attempt.
type ReconcileOutput struct {
	Result *model.ReconcileResult `json:"result"`
}

// Reconcile runs one complete reconciliation attempt without caching.
func (u *UseCase) Reconcile(ctx context.Context, in *ReconcileInput) (*ReconcileOutput, error) {
	if in == nil || in.ClusterID == "" {
		return nil, model.ErrClusterInvalid
	}
	c, err := u.Repos.Cluster.Get(ctx, in.ClusterID)
	if err != nil {
		return nil, err
	}
	res, err := u.reconcile(ctx, c, in.AccessCredential)
	if err != nil {
		return nil, err
	}
	return &ReconcileOutput{Result: res}, nil
}

// reconcile polls the creation operation and, once it is done, fetches the
// cluster detail, extracts the bearer token from the cluster and commits the
// connectivity config. Soft failures are reported in the result; only
// unexpected faults are returned as errors.
func (u *UseCase) reconcile(ctx context.Context, c *model.Cluster, cred model.AccessCredential) (res *model.ReconcileResult, err error) {
	ctx, cleanup := withReconcileLogger(ctx, "cluster.reconcile", c.ID)
	defer func() { cleanup(res, err) }()
	logger := logging.FromContext(ctx)

	if c.Integrated() {
		return model.IntegratedResult(), nil
	}
	if c.ProviderID != "" && c.ProviderID != u.Settings.providerID() {
		return nil, fmt.Errorf("%w: cluster %s belongs to provider %q, configured provider is %q", model.ErrClusterInvalid, c.ID, c.ProviderID, u.Settings.providerID())
	}

	op, err := u.ClusterPort.Operation(ctx, cred, c.OperationRef())
	if err != nil {
		if errors.Is(err, model.ErrOperationUnavailable) {
			logger.Warn(ctx, "operation status unavailable", "err", err)
			return model.FailureResult(model.MsgOperationUnavailable), nil
		}
		return nil, fmt.Errorf("get operation: %w", err)
	}
	if !op.Done() {
		return model.OperationResult(op), nil
	}

	detail, err := u.ClusterPort.ClusterDetail(ctx, cred, c.ClusterRef())
	if err != nil {
		if errors.Is(err, model.ErrClusterDetailUnavailable) {
			logger.Warn(ctx, "cluster detail unavailable", "err", err)
			return model.FailureResult(model.MsgClusterUnavailable), nil
		}
		return nil, fmt.Errorf("get cluster detail: %w", err)
	}

	secrets, err := u.SecretPort.ListSecrets(ctx, detail, u.Settings.secretNamespace())
	if err != nil {
		return nil, fmt.Errorf("list secrets: %w", err)
	}
	token, err := u.Settings.Token.Extract(secrets)
	if err != nil {
		logger.Warn(ctx, "bearer token not found", "err", err)
		return model.FailureResult(model.MsgTokenNotFound), nil
	}

	if err := u.commit(ctx, c, detail, token); err != nil {
		var verr *model.ValidationError
		if errors.As(err, &verr) {
			logger.Warn(ctx, "integration commit rejected", "err", verr)
			return model.FailureResult(model.MsgSetupFailed), nil
		}
		return nil, fmt.Errorf("commit integration: %w", err)
	}
	logger.Info(ctx, "cluster integrated", "endpoint", detail.APIURL())
	return model.OperationResult(op), nil
}

// commit writes the integration and the cluster's connectivity group in one
// transaction. c is updated only after the transaction committed.
func (u *UseCase) commit(ctx context.Context, c *model.Cluster, detail *model.ClusterDetail, token string) error {
	if u.Sealer == nil {
		return fmt.Errorf("password sealer is not configured")
	}
	password, err := u.Sealer.Seal(detail.Password)
	if err != nil {
		return fmt.Errorf("seal password: %w", err)
	}
	namespace := c.Namespace
	if namespace == "" {
		namespace = u.Settings.IntegrationNamespace
	}

	updated := *c
	err = u.UnitOfWork.Do(ctx, func(repos *domain.Repositories) error {
		integ, err := repos.Integration.FindByProject(ctx, c.ProjectID, model.IntegrationKindKubernetes)
		if errors.Is(err, model.ErrIntegrationNotFound) {
			integ = &model.Integration{ProjectID: c.ProjectID, Kind: model.IntegrationKindKubernetes}
		} else if err != nil {
			return err
		}
		integ.Active = true
		integ.APIURL = detail.APIURL()
		integ.CACert = string(detail.CACert)
		integ.Namespace = namespace
		integ.Token = token
		if err := repos.Integration.Save(ctx, integ); err != nil {
			return err
		}

		updated.Enabled = true
		updated.IntegrationID = integ.ID
		updated.Username = detail.Username
		updated.EncryptedPassword = password
		updated.Token = token
		updated.CACert = string(detail.CACert)
		updated.Endpoint = detail.APIURL()
		return repos.Cluster.Update(ctx, &updated)
	})
	if err != nil {
		return err
	}
	*c = updated
	return nil
}
