package main

import (
	"context"
	"fmt"
	"time"

	"github.com/kompox/kubelink/adapters/kube"
	"github.com/kompox/kubelink/domain/model"
	"github.com/kompox/kubelink/internal/kubeconfig"
	"github.com/kompox/kubelink/internal/logging"
	ui "github.com/kompox/kubelink/usecase/integration"
	"github.com/spf13/cobra"
	"k8s.io/client-go/tools/clientcmd"
)

type integrationView struct {
	ID        string    `json:"id"`
	ProjectID string    `json:"projectID"`
	Kind      string    `json:"kind"`
	Active    bool      `json:"active"`
	APIURL    string    `json:"apiURL,omitempty"`
	Namespace string    `json:"namespace,omitempty"`
	Token     string    `json:"token,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func newIntegrationView(i *model.Integration) integrationView {
	return integrationView{
		ID:        i.ID,
		ProjectID: i.ProjectID,
		Kind:      i.Kind,
		Active:    i.Active,
		APIURL:    i.APIURL,
		Namespace: i.Namespace,
		Token:     mask(i.Token),
		CreatedAt: i.CreatedAt,
		UpdatedAt: i.UpdatedAt,
	}
}

func newCmdIntegration() *cobra.Command {
	c := &cobra.Command{
		Use:   "integration",
		Short: "Integration related commands",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	c.AddCommand(newCmdIntegrationGet())
	c.AddCommand(newCmdIntegrationKubeconfig())
	return c
}

func newCmdIntegrationGet() *cobra.Command {
	var project string
	c := &cobra.Command{
		Use:   "get [id]",
		Short: "Get an integration by id or by --project",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := &ui.GetInput{ProjectID: project}
			if len(args) == 1 {
				in.ID = args[0]
			}
			u, err := buildIntegrationUseCase()
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
			defer cancel()
			out, err := u.Get(ctx, in)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), newIntegrationView(out.Integration))
		},
	}
	c.Flags().StringVar(&project, "project", "", "Project whose Kubernetes integration to show")
	return c
}

func newCmdIntegrationKubeconfig() *cobra.Command {
	var project, ctxName, format string
	var verify bool
	c := &cobra.Command{
		Use:   "kubeconfig",
		Short: "Print a kubeconfig for a project's active Kubernetes integration (contains the bearer token)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			ctx, cleanup := withCmdRunLogger(cmd.Context(), "integration.kubeconfig", project)
			defer func() { cleanup(err) }()

			u, err := buildIntegrationUseCase()
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
			defer cancel()
			out, err := u.Get(ctx, &ui.GetInput{ProjectID: project})
			if err != nil {
				return err
			}
			cfg, err := kubeconfig.FromIntegration(out.Integration, ctxName)
			if err != nil {
				return err
			}
			if verify {
				data, err := clientcmd.Write(*cfg)
				if err != nil {
					return fmt.Errorf("serialize kubeconfig: %w", err)
				}
				n, err := verifyKubeconfig(ctx, data, out.Integration.Namespace)
				if err != nil {
					return fmt.Errorf("verify kubeconfig: %w", err)
				}
				logging.FromContext(ctx).Infof(ctx, "kubeconfig verified: %d secrets visible in namespace %q", n, out.Integration.Namespace)
			}
			return kubeconfig.Print(cmd.OutOrStdout(), cfg, format)
		},
	}
	c.Flags().StringVar(&project, "project", "", "Project whose Kubernetes integration to export")
	c.Flags().StringVar(&ctxName, "context", "", "Context name (default kubelink-<project>)")
	c.Flags().StringVarP(&format, "output", "o", "yaml", "Output format (yaml|json)")
	c.Flags().BoolVar(&verify, "verify", false, "Connect with the kubeconfig and list secrets before printing it")
	_ = c.MarkFlagRequired("project")
	return c
}

// verifyKubeconfig dials the API server described by data and lists the
// secrets of namespace, returning how many the token can see.
func verifyKubeconfig(ctx context.Context, data []byte, namespace string) (int, error) {
	client, err := kube.NewClientFromKubeconfig(ctx, data, &kube.Options{UserAgent: "kubelink/" + version, Timeout: 10 * time.Second})
	if err != nil {
		return 0, err
	}
	secrets, err := client.ListSecrets(ctx, namespace)
	if err != nil {
		return 0, err
	}
	return len(secrets), nil
}
