// Package naming validates names handed to the provider and to Kubernetes.
package naming

import (
	"fmt"
	"regexp"
	"strings"

	utilvalidation "k8s.io/apimachinery/pkg/util/validation"
)

const (
	namespaceMaxLength   = 63
	clusterNameMaxLength = 40
)

// GKE cluster names start with a letter and end with a letter or digit.
var clusterNameRE = regexp.MustCompile(`^[a-z]([-a-z0-9]*[a-z0-9])?$`)

func validateDNS1123Label(name string, maximum int, labelKind string) error {
	if name == "" {
		return fmt.Errorf("%s name must not be empty", labelKind)
	}
	if len(name) > maximum {
		return fmt.Errorf("%s name exceeds %d characters", labelKind, maximum)
	}
	if errs := utilvalidation.IsDNS1123Label(name); len(errs) > 0 {
		return fmt.Errorf("invalid %s name: %s", labelKind, strings.Join(errs, ", "))
	}
	return nil
}

func ValidateNamespace(name string) error {
	return validateDNS1123Label(name, namespaceMaxLength, "namespace")
}

func ValidateClusterName(name string) error {
	if err := validateDNS1123Label(name, clusterNameMaxLength, "cluster"); err != nil {
		return err
	}
	if !clusterNameRE.MatchString(name) {
		return fmt.Errorf("invalid cluster name: must start with a lowercase letter")
	}
	return nil
}
