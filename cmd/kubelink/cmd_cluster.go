package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/kompox/kubelink/domain/model"
	"github.com/kompox/kubelink/internal/logging"
	"github.com/kompox/kubelink/internal/metrics"
	uc "github.com/kompox/kubelink/usecase/cluster"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"k8s.io/apimachinery/pkg/util/wait"
)

const redacted = "<redacted>"

// clusterView is the CLI projection of a cluster with secrets masked.
type clusterView struct {
	ID             string    `json:"id"`
	ProjectID      string    `json:"projectID"`
	UserID         string    `json:"userID,omitempty"`
	ProviderID     string    `json:"providerID"`
	GCPProjectID   string    `json:"gcpProjectID"`
	Zone           string    `json:"zone"`
	ClusterName    string    `json:"clusterName"`
	GCPOperationID string    `json:"gcpOperationID"`
	Namespace      string    `json:"namespace,omitempty"`
	Enabled        bool      `json:"enabled"`
	Endpoint       string    `json:"endpoint,omitempty"`
	Username       string    `json:"username,omitempty"`
	Password       string    `json:"password,omitempty"`
	Token          string    `json:"token,omitempty"`
	IntegrationID  string    `json:"integrationID,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func mask(s string) string {
	if s == "" {
		return ""
	}
	return redacted
}

func newClusterView(c *model.Cluster) clusterView {
	return clusterView{
		ID:             c.ID,
		ProjectID:      c.ProjectID,
		UserID:         c.UserID,
		ProviderID:     c.ProviderID,
		GCPProjectID:   c.GCPProjectID,
		Zone:           c.Zone,
		ClusterName:    c.ClusterName,
		GCPOperationID: c.GCPOperationID,
		Namespace:      c.Namespace,
		Enabled:        c.Enabled,
		Endpoint:       c.Endpoint,
		Username:       c.Username,
		Password:       mask(c.EncryptedPassword),
		Token:          mask(c.Token),
		IntegrationID:  c.IntegrationID,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}

// newCmdCluster returns the parent command for cluster-related operations.
func newCmdCluster() *cobra.Command {
	c := &cobra.Command{
		Use:   "cluster",
		Short: "Cluster related commands",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	c.AddCommand(newCmdClusterRegister())
	c.AddCommand(newCmdClusterGet())
	c.AddCommand(newCmdClusterList())
	c.AddCommand(newCmdClusterStatus())
	c.AddCommand(newCmdClusterWatch())
	return c
}

func newCmdClusterRegister() *cobra.Command {
	var in uc.RegisterInput
	c := &cobra.Command{
		Use:   "register",
		Short: "Register a GKE cluster whose creation operation is in flight",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			ctx, cleanup := withCmdRunLogger(cmd.Context(), "cluster.register", in.ClusterName)
			defer func() { cleanup(err) }()

			u, err := buildClusterUseCase()
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
			defer cancel()
			out, err := u.Register(ctx, &in)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), newClusterView(out.Cluster))
		},
	}
	f := c.Flags()
	f.StringVar(&in.ProjectID, "project", "", "Owning project id")
	f.StringVar(&in.UserID, "user", "", "Registering user id")
	f.StringVar(&in.ProviderID, "provider", "", "Provider driver name (default: provider.driver from config)")
	f.StringVar(&in.GCPProjectID, "gcp-project", "", "GCP project id")
	f.StringVar(&in.Zone, "zone", "", "GCP zone")
	f.StringVar(&in.ClusterName, "name", "", "GKE cluster name")
	f.StringVar(&in.GCPOperationID, "operation", "", "GKE creation operation id")
	f.StringVar(&in.Namespace, "namespace", "", "Namespace written to the integration")
	for _, name := range []string{"project", "gcp-project", "zone", "name", "operation"} {
		_ = c.MarkFlagRequired(name)
	}
	return c
}

func newCmdClusterGet() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Get a cluster",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := buildClusterUseCase()
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
			defer cancel()
			out, err := u.Get(ctx, &uc.GetInput{ClusterID: args[0]})
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), newClusterView(out.Cluster))
		},
	}
}

func newCmdClusterList() *cobra.Command {
	var project string
	c := &cobra.Command{
		Use:   "list",
		Short: "List clusters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := buildClusterUseCase()
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
			defer cancel()
			out, err := u.List(ctx, &uc.ListInput{ProjectID: project})
			if err != nil {
				return err
			}
			views := make([]clusterView, 0, len(out.Clusters))
			for _, c := range out.Clusters {
				views = append(views, newClusterView(c))
			}
			return writeJSON(cmd.OutOrStdout(), views)
		},
	}
	c.Flags().StringVar(&project, "project", "", "Only list clusters of this project")
	return c
}

// accessToken resolves the provider access credential from flag or env.
func accessToken(cmd *cobra.Command) (model.AccessCredential, error) {
	tok, _ := cmd.Flags().GetString("access-token")
	if tok == "" {
		tok = os.Getenv("KUBELINK_ACCESS_TOKEN")
	}
	if tok == "" {
		return "", errors.New("access token required (--access-token or env KUBELINK_ACCESS_TOKEN)")
	}
	return model.AccessCredential(tok), nil
}

func newCmdClusterStatus() *cobra.Command {
	c := &cobra.Command{
		Use:   "status <id>",
		Short: "Show the provisioning status, reconciling when the cached status is stale",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			ctx, cleanup := withCmdRunLogger(cmd.Context(), "cluster.status", args[0])
			defer func() { cleanup(err) }()

			cred, err := accessToken(cmd)
			if err != nil {
				return err
			}
			u, err := buildClusterUseCase()
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
			defer cancel()
			out, err := u.Status(ctx, &uc.StatusInput{ClusterID: args[0], AccessCredential: cred})
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), out)
		},
	}
	c.Flags().String("access-token", "", "Provider OAuth access token (env KUBELINK_ACCESS_TOKEN)")
	return c
}

func newCmdClusterWatch() *cobra.Command {
	var (
		interval    time.Duration
		timeout     time.Duration
		metricsAddr string
	)
	c := &cobra.Command{
		Use:   "watch <id>",
		Short: "Poll the provisioning status until the cluster is integrated",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			ctx, cleanup := withCmdRunLogger(cmd.Context(), "cluster.watch", args[0])
			defer func() { cleanup(err) }()
			logger := logging.FromContext(ctx)

			cred, err := accessToken(cmd)
			if err != nil {
				return err
			}
			u, err := buildClusterUseCase()
			if err != nil {
				return err
			}

			if metricsAddr != "" {
				if err := metrics.Register(prometheus.DefaultRegisterer); err != nil {
					return err
				}
				srv := &http.Server{Addr: metricsAddr, Handler: promhttp.Handler(), ReadHeaderTimeout: 5 * time.Second}
				go func() {
					if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
						logger.Warn(ctx, "metrics server stopped", "err", err)
					}
				}()
				defer func() {
					sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
					defer cancel()
					_ = srv.Shutdown(sctx)
				}()
			}

			last := ""
			return wait.PollUntilContextTimeout(ctx, interval, timeout, true, func(ctx context.Context) (bool, error) {
				out, err := u.Status(ctx, &uc.StatusInput{ClusterID: args[0], AccessCredential: cred})
				if err != nil {
					return false, err
				}
				line := out.Status + " " + out.StatusMessage
				if line != last {
					last = line
					fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", time.Now().UTC().Format(time.RFC3339), out.Status, out.StatusMessage)
				}
				return out.Status == model.StatusIntegrated, nil
			})
		},
	}
	c.Flags().String("access-token", "", "Provider OAuth access token (env KUBELINK_ACCESS_TOKEN)")
	c.Flags().DurationVar(&interval, "interval", 15*time.Second, "Polling interval")
	c.Flags().DurationVar(&timeout, "timeout", 30*time.Minute, "Give up after this long")
	c.Flags().StringVar(&metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address (e.g. :9090)")
	return c
}
