// Package kubeconfig renders client configuration for integrated clusters.
package kubeconfig

import (
	"fmt"
	"io"

	"github.com/kompox/kubelink/domain/model"
	"k8s.io/client-go/tools/clientcmd"
	clientcmdapi "k8s.io/client-go/tools/clientcmd/api"
	"sigs.k8s.io/yaml"
)

// FromIntegration returns a single-context kubeconfig that authenticates with
// the integration's bearer token. ctxName names the context, cluster and user;
// it defaults to "kubelink-<projectID>".
func FromIntegration(i *model.Integration, ctxName string) (*clientcmdapi.Config, error) {
	if i == nil {
		return nil, fmt.Errorf("integration is nil")
	}
	if !i.Active {
		return nil, fmt.Errorf("integration %s is not active", i.ID)
	}
	if ctxName == "" {
		ctxName = "kubelink-" + i.ProjectID
	}

	cfg := clientcmdapi.NewConfig()
	cluster := clientcmdapi.NewCluster()
	cluster.Server = i.APIURL
	cluster.CertificateAuthorityData = []byte(i.CACert)
	cfg.Clusters[ctxName] = cluster

	user := clientcmdapi.NewAuthInfo()
	user.Token = i.Token
	cfg.AuthInfos[ctxName] = user

	kctx := clientcmdapi.NewContext()
	kctx.Cluster = ctxName
	kctx.AuthInfo = ctxName
	kctx.Namespace = i.Namespace
	cfg.Contexts[ctxName] = kctx
	cfg.CurrentContext = ctxName

	if err := clientcmd.Validate(*cfg); err != nil {
		return nil, fmt.Errorf("invalid kubeconfig: %w", err)
	}
	return cfg, nil
}

// Print prints cfg to writer in yaml or json.
func Print(w io.Writer, cfg *clientcmdapi.Config, format string) error {
	data, err := clientcmd.Write(*cfg)
	if err != nil {
		return fmt.Errorf("serialize kubeconfig: %w", err)
	}
	switch format {
	case "", "yaml":
	case "json":
		// convert kubeconfig YAML to JSON
		data, err = yaml.YAMLToJSON(data)
		if err != nil {
			return fmt.Errorf("convert to json: %w", err)
		}
	default:
		return fmt.Errorf("unsupported format %q", format)
	}
	_, err = w.Write(data)
	return err
}
