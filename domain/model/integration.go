package model

import (
	"net/url"
	"time"

	"github.com/kompox/kubelink/internal/naming"
)

// IntegrationKindKubernetes is the kind of integration configured by cluster reconciliation.
const IntegrationKindKubernetes = "kubernetes"

// Integration is the connection config of a dependent service for a project.
type Integration struct {
	ID        string
	ProjectID string
	Kind      string
	Active    bool
	APIURL    string
	CACert    string
	Namespace string
	Token     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate checks the invariants of an integration. Inactive integrations only
// need an owner; active ones need a complete connection config.
func (i *Integration) Validate() error {
	v := &ValidationError{Entity: "integration"}
	if i.ProjectID == "" {
		v.Add("projectID", "must not be empty")
	}
	if i.Kind == "" {
		v.Add("kind", "must not be empty")
	}
	if !i.Active {
		return v.OrNil()
	}
	if u, err := url.Parse(i.APIURL); err != nil || u.Scheme != "https" || u.Host == "" {
		v.Add("apiURL", "must be an https URL")
	}
	if i.Token == "" {
		v.Add("token", "must not be empty")
	}
	if err := naming.ValidateNamespace(i.Namespace); err != nil {
		v.Add("namespace", err.Error())
	}
	return v.OrNil()
}
