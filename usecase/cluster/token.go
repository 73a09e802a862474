package cluster

import (
	"fmt"
	"regexp"

	"github.com/kompox/kubelink/domain/model"
)

const (
	DefaultTokenSecretPattern = "default-token"
	DefaultTokenDataKey       = "token"
)

var defaultTokenSecretRE = regexp.MustCompile(DefaultTokenSecretPattern)

// TokenMatcher picks the bearer token out of a secret listing.
type TokenMatcher struct {
	// NamePattern matches secret names; unanchored, so a plain string is a
	// substring match. Defaults to DefaultTokenSecretPattern.
	NamePattern *regexp.Regexp
	// DataKey is the data field holding the token. Defaults to "token".
	DataKey string
}

// NewTokenMatcher compiles pattern (empty means the default).
func NewTokenMatcher(pattern, dataKey string) (TokenMatcher, error) {
	m := TokenMatcher{DataKey: dataKey}
	if pattern != "" {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return TokenMatcher{}, fmt.Errorf("invalid token secret pattern %q: %w", pattern, err)
		}
		m.NamePattern = re
	}
	return m, nil
}

// Extract returns the token of the first secret, in listing order, whose name
// matches. A matching secret without a token is not skipped: it fails.
func (m TokenMatcher) Extract(secrets []model.Secret) (string, error) {
	re := m.NamePattern
	if re == nil {
		re = defaultTokenSecretRE
	}
	key := m.DataKey
	if key == "" {
		key = DefaultTokenDataKey
	}
	for _, s := range secrets {
		if !re.MatchString(s.Name) {
			continue
		}
		token := s.Data[key]
		if len(token) == 0 {
			return "", fmt.Errorf("%w: secret %s has no %q field", model.ErrTokenNotFound, s.Name, key)
		}
		return string(token), nil
	}
	return "", fmt.Errorf("%w: no secret name matches %q", model.ErrTokenNotFound, re.String())
}
