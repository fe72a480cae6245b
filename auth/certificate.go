package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const (
	KindCertificate = "certificate"

	serviceAccountType     = "service_account"
	certificateDescription = "service account certificate"
)

// serviceAccountKey is the subset of a service account JSON key file a
// Certificate needs.
type serviceAccountKey struct {
	Type         string `json:"type"`
	ProjectID    string `json:"project_id"`
	PrivateKeyID string `json:"private_key_id"`
	PrivateKey   string `json:"private_key"`
	ClientEmail  string `json:"client_email"`
	ClientID     string `json:"client_id"`
	TokenURI     string `json:"token_uri"`
}

// Certificate authenticates as a service account using its JSON key.
type Certificate struct {
	key    serviceAccountKey
	raw    []byte
	scopes []string
}

func NewCertificateFromFile(path string, opts ...Option) (*Certificate, error) {
	data, err := readCredentialFile(certificateDescription, path)
	if err != nil {
		return nil, err
	}
	return NewCertificate(data, opts...)
}

// NewCertificate parses a service account JSON key. The key must be of type
// service_account and carry a client email and a PEM encoded RSA private key,
// which is checked here rather than at the first token request.
func NewCertificate(data []byte, opts ...Option) (*Certificate, error) {
	var key serviceAccountKey
	if err := json.Unmarshal(data, &key); err != nil {
		return nil, fmt.Errorf("auth: invalid %s JSON: %w", certificateDescription, err)
	}
	settings := resolveOptions(opts)
	cert := &Certificate{
		key:    key,
		raw:    append([]byte(nil), data...),
		scopes: settings.scopes,
	}
	if err := cert.Validate(); err != nil {
		return nil, err
	}
	if _, err := jwt.ParseRSAPrivateKeyFromPEM([]byte(key.PrivateKey)); err != nil {
		return nil, fmt.Errorf("auth: %s private key: %w", certificateDescription, err)
	}
	return cert, nil
}

func (*Certificate) Kind() string {
	return KindCertificate
}

// Validate checks the structure of the parsed key. A zero Certificate fails.
func (c *Certificate) Validate() error {
	if c == nil {
		return fmt.Errorf("auth: %s is nil", certificateDescription)
	}
	if c.key.Type != serviceAccountType {
		return fmt.Errorf("auth: %s must be of type %q, got %q", certificateDescription, serviceAccountType, c.key.Type)
	}
	missing := missingFields(map[string]string{
		"client_email": c.key.ClientEmail,
		"private_key":  c.key.PrivateKey,
	})
	if len(missing) > 0 {
		return fmt.Errorf("auth: %s is missing %s", certificateDescription, strings.Join(missing, ", "))
	}
	return nil
}

func (c *Certificate) ProjectID() string {
	if c == nil {
		return ""
	}
	return c.key.ProjectID
}

func (c *Certificate) ServiceAccountEmail() string {
	if c == nil {
		return ""
	}
	return c.key.ClientEmail
}

func (c *Certificate) Scopes() []string {
	if c == nil {
		return nil
	}
	return append([]string(nil), c.scopes...)
}

// TokenSource exchanges signed assertions for access tokens. No request is
// made until the first Token call.
func (c *Certificate) TokenSource(ctx context.Context) (oauth2.TokenSource, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	cfg, err := google.JWTConfigFromJSON(c.raw, c.scopes...)
	if err != nil {
		return nil, fmt.Errorf("auth: build %s token source: %w", certificateDescription, err)
	}
	return cfg.TokenSource(ctx), nil
}
