package cluster

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/kompox/kubelink/adapters/cache"
	"github.com/kompox/kubelink/adapters/store/inmem"
	"github.com/kompox/kubelink/domain"
	"github.com/kompox/kubelink/domain/model"
	"github.com/kompox/kubelink/internal/sealer"
)

type fakeClusterPort struct {
	op          *model.Operation
	opErr       error
	detail      *model.ClusterDetail
	detailErr   error
	opCalls     int
	detailCalls int
}

func (f *fakeClusterPort) Operation(_ context.Context, _ model.AccessCredential, _ model.OperationRef) (*model.Operation, error) {
	f.opCalls++
	if f.opErr != nil {
		return nil, f.opErr
	}
	cp := *f.op
	return &cp, nil
}

func (f *fakeClusterPort) ClusterDetail(_ context.Context, _ model.AccessCredential, _ model.ClusterRef) (*model.ClusterDetail, error) {
	f.detailCalls++
	if f.detailErr != nil {
		return nil, f.detailErr
	}
	return f.detail, nil
}

type fakeSecretPort struct {
	secrets   []model.Secret
	err       error
	calls     int
	namespace string
}

func (f *fakeSecretPort) ListSecrets(_ context.Context, _ *model.ClusterDetail, namespace string) ([]model.Secret, error) {
	f.calls++
	f.namespace = namespace
	return f.secrets, f.err
}

// rejectingClusterUoW fails the cluster write with a validation error after
// the integration write has gone through.
type rejectingClusterUoW struct{ store *inmem.Store }

type rejectingClusterRepo struct{ domain.ClusterRepository }

func (rejectingClusterRepo) Update(context.Context, *model.Cluster) error {
	v := &model.ValidationError{Entity: "cluster"}
	v.Add("endpoint", "rejected")
	return v
}

func (u rejectingClusterUoW) Do(ctx context.Context, fn func(repos *domain.Repositories) error) error {
	return u.store.Do(ctx, func(repos *domain.Repositories) error {
		return fn(&domain.Repositories{Cluster: rejectingClusterRepo{repos.Cluster}, Integration: repos.Integration})
	})
}

type fixture struct {
	uc      *UseCase
	store   *inmem.Store
	repos   *domain.Repositories
	cluster *model.Cluster
	port    *fakeClusterPort
	secrets *fakeSecretPort
	sealer  *sealer.Sealer
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := inmem.NewStore()
	repos := store.Repositories()
	c := &model.Cluster{
		ProjectID:      "proj-1",
		GCPProjectID:   "gcp-project",
		Zone:           "us-central1-a",
		ClusterName:    "gke-cluster",
		GCPOperationID: "operation-123",
		Namespace:      "proj-1",
	}
	if err := repos.Cluster.Create(context.Background(), c); err != nil {
		t.Fatalf("create cluster: %v", err)
	}
	s, err := sealer.New(bytes.Repeat([]byte{7}, 32))
	if err != nil {
		t.Fatalf("sealer: %v", err)
	}
	port := &fakeClusterPort{
		op: &model.Operation{Name: "operation-123", Status: model.OperationStatusDone},
		detail: &model.ClusterDetail{
			Endpoint: "34.1.2.3",
			CACert:   []byte("CERT"),
			Username: "admin",
			Password: "secret",
		},
	}
	secrets := &fakeSecretPort{secrets: []model.Secret{
		{Name: "default-token-abcde", Data: map[string][]byte{"token": []byte("TOKEN123")}},
	}}
	uc := &UseCase{
		Repos:       &Repos{Cluster: repos.Cluster, Integration: repos.Integration},
		UnitOfWork:  store,
		ClusterPort: port,
		SecretPort:  secrets,
		Sealer:      s,
	}
	return &fixture{uc: uc, store: store, repos: repos, cluster: c, port: port, secrets: secrets, sealer: s}
}

func (f *fixture) reconcile(t *testing.T) *model.ReconcileResult {
	t.Helper()
	out, err := f.uc.Reconcile(context.Background(), &ReconcileInput{ClusterID: f.cluster.ID, AccessCredential: "access-token"})
	if err != nil {
		t.Fatalf("Reconcile: %v", err)
	}
	return out.Result
}

func (f *fixture) persisted(t *testing.T) *model.Cluster {
	t.Helper()
	c, err := f.repos.Cluster.Get(context.Background(), f.cluster.ID)
	if err != nil {
		t.Fatalf("get cluster: %v", err)
	}
	return c
}

func (f *fixture) assertUnchanged(t *testing.T) {
	t.Helper()
	c := f.persisted(t)
	if c.Enabled || c.IntegrationID != "" || c.Endpoint != "" || c.Token != "" || c.EncryptedPassword != "" {
		t.Errorf("cluster was mutated: %+v", c)
	}
	if _, err := f.repos.Integration.FindByProject(context.Background(), "proj-1", model.IntegrationKindKubernetes); !errors.Is(err, model.ErrIntegrationNotFound) {
		t.Errorf("integration persisted: %v", err)
	}
}

func TestReconcile_EndToEnd(t *testing.T) {
	f := newFixture(t)

	res := f.reconcile(t)
	if res.Operation == nil || res.Status != model.OperationStatusDone {
		t.Fatalf("expected operation result, got %+v", res)
	}
	if f.secrets.namespace != DefaultSecretNamespace {
		t.Errorf("secrets listed in %q", f.secrets.namespace)
	}

	c := f.persisted(t)
	if !c.Enabled || c.Endpoint != "https://34.1.2.3" || c.Token != "TOKEN123" || c.CACert != "CERT" || c.Username != "admin" {
		t.Errorf("unexpected cluster: %+v", c)
	}
	if c.EncryptedPassword == "secret" {
		t.Errorf("password stored in plaintext")
	}
	if plain, err := f.sealer.Open(c.EncryptedPassword); err != nil || plain != "secret" {
		t.Errorf("sealed password = %q, %v", plain, err)
	}

	integ, err := f.repos.Integration.Get(context.Background(), c.IntegrationID)
	if err != nil {
		t.Fatalf("integration: %v", err)
	}
	if !integ.Active || integ.Token != "TOKEN123" || integ.APIURL != "https://34.1.2.3" || integ.Namespace != "proj-1" || integ.CACert != "CERT" {
		t.Errorf("unexpected integration: %+v", integ)
	}
}

func TestReconcile_IdempotentOnceIntegrated(t *testing.T) {
	f := newFixture(t)
	f.reconcile(t)

	// collaborators now fail; the short-circuit must not reach them
	f.port.opCalls, f.port.detailCalls, f.secrets.calls = 0, 0, 0
	f.port.opErr = errors.New("must not be called")
	for i := 0; i < 2; i++ {
		res := f.reconcile(t)
		if res.Status != model.StatusIntegrated || res.StatusMessage != "" || res.Operation != nil {
			t.Fatalf("expected INTEGRATED, got %+v", res)
		}
	}
	if f.port.opCalls+f.port.detailCalls+f.secrets.calls != 0 {
		t.Errorf("collaborators called after integration: op=%d detail=%d secrets=%d", f.port.opCalls, f.port.detailCalls, f.secrets.calls)
	}
}

func TestReconcile_NotDone(t *testing.T) {
	for _, status := range []string{model.OperationStatusPending, model.OperationStatusRunning, model.OperationStatusAborting, "STATUS_UNSPECIFIED"} {
		t.Run(status, func(t *testing.T) {
			f := newFixture(t)
			f.port.op = &model.Operation{Name: "operation-123", Status: status, StatusMessage: "working"}
			res := f.reconcile(t)
			if res.Operation == nil || res.Operation.Name != "operation-123" || res.Status != status || res.StatusMessage != "working" {
				t.Errorf("expected raw operation, got %+v", res)
			}
			if f.port.detailCalls != 0 || f.secrets.calls != 0 {
				t.Errorf("unexpected calls: detail=%d secrets=%d", f.port.detailCalls, f.secrets.calls)
			}
			f.assertUnchanged(t)
		})
	}
}

func TestReconcile_SoftFailures(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(f *fixture)
		wantMsg string
	}{
		{
			name:    "operation unavailable",
			mutate:  func(f *fixture) { f.port.opErr = fmt.Errorf("%w: 404", model.ErrOperationUnavailable) },
			wantMsg: model.MsgOperationUnavailable,
		},
		{
			name:    "cluster detail unavailable",
			mutate:  func(f *fixture) { f.port.detailErr = fmt.Errorf("%w: 500", model.ErrClusterDetailUnavailable) },
			wantMsg: model.MsgClusterUnavailable,
		},
		{
			name: "no matching secret",
			mutate: func(f *fixture) {
				f.secrets.secrets = []model.Secret{{Name: "builder-token-x", Data: map[string][]byte{"token": []byte("T")}}}
			},
			wantMsg: model.MsgTokenNotFound,
		},
		{
			name:    "no secrets at all",
			mutate:  func(f *fixture) { f.secrets.secrets = nil },
			wantMsg: model.MsgTokenNotFound,
		},
		{
			name: "matching secret with empty token",
			mutate: func(f *fixture) {
				f.secrets.secrets = []model.Secret{{Name: "default-token-abcde", Data: map[string][]byte{"token": {}}}}
			},
			wantMsg: model.MsgTokenNotFound,
		},
		{
			name:    "integration fails validation",
			mutate:  func(f *fixture) { f.port.detail.Endpoint = "" },
			wantMsg: model.MsgSetupFailed,
		},
		{
			name:    "cluster write fails validation",
			mutate:  func(f *fixture) { f.uc.UnitOfWork = rejectingClusterUoW{store: f.store} },
			wantMsg: model.MsgSetupFailed,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.mutate(f)
			res := f.reconcile(t)
			if res.StatusMessage != tt.wantMsg || res.Status != "" || res.Operation != nil {
				t.Errorf("got %+v, want status_message %q", res, tt.wantMsg)
			}
			f.assertUnchanged(t)
		})
	}
}

func TestReconcile_OperationUnavailableCallsNothingElse(t *testing.T) {
	f := newFixture(t)
	f.port.opErr = fmt.Errorf("%w: 403", model.ErrOperationUnavailable)
	f.reconcile(t)
	if f.port.detailCalls != 0 || f.secrets.calls != 0 {
		t.Errorf("unexpected calls: detail=%d secrets=%d", f.port.detailCalls, f.secrets.calls)
	}
}

func TestReconcile_IntegrationNamespaceFallback(t *testing.T) {
	f := newFixture(t)
	c := f.persisted(t)
	c.Namespace = ""
	if err := f.repos.Cluster.Update(context.Background(), c); err != nil {
		t.Fatalf("update: %v", err)
	}
	f.uc.Settings.IntegrationNamespace = "fallback-ns"
	f.reconcile(t)
	integ, err := f.repos.Integration.FindByProject(context.Background(), "proj-1", model.IntegrationKindKubernetes)
	if err != nil || integ.Namespace != "fallback-ns" {
		t.Fatalf("integration = %+v, %v", integ, err)
	}
}

func TestReconcile_ReusesExistingIntegration(t *testing.T) {
	f := newFixture(t)
	existing := &model.Integration{ProjectID: "proj-1", Kind: model.IntegrationKindKubernetes}
	if err := f.repos.Integration.Save(context.Background(), existing); err != nil {
		t.Fatalf("save: %v", err)
	}
	f.reconcile(t)
	if c := f.persisted(t); c.IntegrationID != existing.ID {
		t.Errorf("IntegrationID = %q, want %q", c.IntegrationID, existing.ID)
	}
}

func TestReconcile_FaultsPropagate(t *testing.T) {
	transport := errors.New("dial tcp: i/o timeout")
	tests := []struct {
		name   string
		mutate func(f *fixture)
		want   error
	}{
		{name: "operation transport fault", mutate: func(f *fixture) { f.port.opErr = transport }, want: transport},
		{name: "detail transport fault", mutate: func(f *fixture) { f.port.detailErr = transport }, want: transport},
		{
			name:   "control plane unreachable",
			mutate: func(f *fixture) { f.secrets.err = fmt.Errorf("%w: refused", model.ErrControlPlaneUnreachable) },
			want:   model.ErrControlPlaneUnreachable,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.mutate(f)
			_, err := f.uc.Reconcile(context.Background(), &ReconcileInput{ClusterID: f.cluster.ID, AccessCredential: "access-token"})
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
			f.assertUnchanged(t)
		})
	}
}

func TestReconcile_RejectsForeignProvider(t *testing.T) {
	f := newFixture(t)
	c := f.persisted(t)
	c.ProviderID = "aks"
	if err := f.repos.Cluster.Update(context.Background(), c); err != nil {
		t.Fatalf("update: %v", err)
	}
	_, err := f.uc.Reconcile(context.Background(), &ReconcileInput{ClusterID: f.cluster.ID, AccessCredential: "access-token"})
	if !errors.Is(err, model.ErrClusterInvalid) {
		t.Fatalf("expected ErrClusterInvalid, got %v", err)
	}
	if f.port.opCalls != 0 {
		t.Errorf("provider API called for a foreign cluster")
	}
	f.assertUnchanged(t)
}

func TestReconcile_InvalidInput(t *testing.T) {
	f := newFixture(t)
	if _, err := f.uc.Reconcile(context.Background(), &ReconcileInput{}); !errors.Is(err, model.ErrClusterInvalid) {
		t.Errorf("expected ErrClusterInvalid, got %v", err)
	}
	if _, err := f.uc.Reconcile(context.Background(), &ReconcileInput{ClusterID: "missing"}); !errors.Is(err, model.ErrClusterNotFound) {
		t.Errorf("expected ErrClusterNotFound, got %v", err)
	}
}

func TestStatus_CachesAndProjects(t *testing.T) {
	f := newFixture(t)
	f.port.op = &model.Operation{Name: "operation-123", Status: model.OperationStatusRunning, StatusMessage: "creating", Zone: "us-central1-a"}
	f.uc.StatusCache = cache.NewTyped[model.ReconcileResult](cache.New(cache.NewInMemoryStore(), time.Minute))

	for i := 0; i < 3; i++ {
		out, err := f.uc.Status(context.Background(), &StatusInput{ClusterID: f.cluster.ID, AccessCredential: "access-token"})
		if err != nil {
			t.Fatalf("Status: %v", err)
		}
		if out.Status != model.OperationStatusRunning || out.StatusMessage != "creating" || out.ClusterID != f.cluster.ID {
			t.Errorf("unexpected output: %+v", out)
		}
	}
	if f.port.opCalls != 1 {
		t.Errorf("reconciled %d times within the staleness window, want 1", f.port.opCalls)
	}
}

func TestStatus_ProgressesAfterInvalidation(t *testing.T) {
	f := newFixture(t)
	typed := cache.NewTyped[model.ReconcileResult](cache.New(cache.NewInMemoryStore(), time.Minute))
	f.uc.StatusCache = typed
	in := &StatusInput{ClusterID: f.cluster.ID, AccessCredential: "access-token"}

	out, err := f.uc.Status(context.Background(), in)
	if err != nil || out.Status != model.OperationStatusDone {
		t.Fatalf("first Status = %+v, %v", out, err)
	}
	if err := typed.Invalidate(context.Background(), f.cluster.StatusCacheKey().String()); err != nil {
		t.Fatalf("invalidate: %v", err)
	}
	out, err = f.uc.Status(context.Background(), in)
	if err != nil || out.Status != model.StatusIntegrated || out.StatusMessage != "" {
		t.Fatalf("second Status = %+v, %v", out, err)
	}
}

func TestStatus_WithoutCache(t *testing.T) {
	f := newFixture(t)
	f.port.opErr = model.ErrOperationUnavailable
	out, err := f.uc.Status(context.Background(), &StatusInput{ClusterID: f.cluster.ID})
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if out.Status != "" || out.StatusMessage != model.MsgOperationUnavailable {
		t.Errorf("unexpected output: %+v", out)
	}
}
