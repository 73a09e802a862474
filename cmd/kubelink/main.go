package main

import (
	"context"
	"os"

	_ "github.com/kompox/kubelink/adapters/drivers/provider/gke"
	"github.com/kompox/kubelink/config/kubelinkcfg"
	"github.com/kompox/kubelink/internal/logging"
	"github.com/spf13/cobra"
)

// configRoot holds the loaded configuration.
var configRoot *kubelinkcfg.Root

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "kubelink",
		Short:   "KubeLink CLI",
		Long:    "KubeLink tracks GKE cluster creation and hands the finished cluster off to a Kubernetes integration.",
		Version: version,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Show help by default when no subcommand is provided.
			return cmd.Help()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().String("config", os.Getenv("KUBELINK_CONFIG"), "Config file path (env KUBELINK_CONFIG); defaults apply when empty")
	cmd.PersistentFlags().String("db-url", os.Getenv("KUBELINK_DB_URL"), "Database URL, overrides database.url (env KUBELINK_DB_URL) (sqlite:/path/to.db | memory:)")
	cmd.PersistentFlags().String("log-format", "human", "Log format (human|text|json) (env KUBELINK_LOG_FORMAT)")
	cmd.PersistentFlags().String("log-level", "info", "Log level (debug|info|warn|error)")

	cmd.PersistentPreRunE = func(c *cobra.Command, _ []string) error {
		format, _ := c.Flags().GetString("log-format")
		if env := os.Getenv("KUBELINK_LOG_FORMAT"); env != "" { // env overrides flag
			format = env
		}
		levelStr, _ := c.Flags().GetString("log-level")
		level, err := logging.ParseLevel(levelStr)
		if err != nil {
			return err
		}
		l, err := logging.New(format, level)
		if err != nil {
			return err
		}
		ctx := logging.WithLogger(c.Context(), l)
		c.SetContext(ctx)

		path, _ := c.Flags().GetString("config")
		cfg, err := kubelinkcfg.Load(path)
		if err != nil {
			return err
		}
		if dbURL, _ := c.Flags().GetString("db-url"); dbURL != "" {
			cfg.Database.URL = dbURL
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		configRoot = cfg
		quietKlog()
		return nil
	}

	cmd.AddCommand(newCmdVersion())
	cmd.AddCommand(newCmdCluster())
	cmd.AddCommand(newCmdIntegration())
	return cmd
}

func main() {
	root := newRootCmd()
	root.SetContext(context.Background())
	executed, err := root.ExecuteC()
	if err != nil {
		ctx := root.Context()
		if executed != nil {
			ctx = executed.Context()
		}
		logging.FromContext(ctx).Errorf(ctx, "Failed: %s", err)
		os.Exit(1)
	}
}
