package auth

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/tidwall/gjson"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/goliatone/go-apps/core"
)

const KindApplicationDefault = "application_default"

// ApplicationDefault discovers credentials from the environment the first
// time a token source is requested: the file named by
// GOOGLE_APPLICATION_CREDENTIALS, the gcloud well-known file, then platform
// metadata. Discovery failures surface from TokenSource, never from
// construction.
type ApplicationDefault struct {
	scopes    []string
	projectID string
	path      string

	once  sync.Once
	creds *google.Credentials
	err   error
}

func NewApplicationDefault(opts ...Option) *ApplicationDefault {
	return NewApplicationDefaultFromEnv(core.OSEnvironment{}, opts...)
}

// NewApplicationDefaultFromEnv reads the credentials file path from env. The
// project id is taken from that file when it can be read; read errors are
// deferred to TokenSource.
func NewApplicationDefaultFromEnv(env core.Environment, opts ...Option) *ApplicationDefault {
	settings := resolveOptions(opts)
	cred := &ApplicationDefault{scopes: settings.scopes}
	if env == nil {
		return cred
	}
	path, _ := env.Lookup(core.DefaultCredentialsEnvVar)
	cred.path = strings.TrimSpace(path)
	if cred.path == "" {
		return cred
	}
	if data, err := os.ReadFile(cred.path); err == nil {
		cred.projectID = gjson.GetBytes(data, "project_id").String()
	}
	return cred
}

func (*ApplicationDefault) Kind() string {
	return KindApplicationDefault
}

func (a *ApplicationDefault) ProjectID() string {
	if a == nil {
		return ""
	}
	return a.projectID
}

// CredentialsFile is the path discovered at construction, if any.
func (a *ApplicationDefault) CredentialsFile() string {
	if a == nil {
		return ""
	}
	return a.path
}

// TokenSource resolves the credentials once and reuses them. The resolved
// source keeps the values of the first ctx, such as an oauth2.HTTPClient, but
// not its cancellation, so later refreshes outlive that caller.
func (a *ApplicationDefault) TokenSource(ctx context.Context) (oauth2.TokenSource, error) {
	if a == nil {
		return nil, fmt.Errorf("auth: application default credential is nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = context.WithoutCancel(ctx)
	a.once.Do(func() {
		if a.path != "" {
			data, err := os.ReadFile(a.path)
			if err != nil {
				a.err = fmt.Errorf("auth: read application default credentials %q: %w", a.path, err)
				return
			}
			a.creds, a.err = credentialsFromFile(ctx, data, a.scopes)
			return
		}
		a.creds, a.err = google.FindDefaultCredentials(ctx, a.scopes...)
	})
	if a.err != nil {
		return nil, fmt.Errorf("auth: resolve application default credentials: %w", a.err)
	}
	return a.creds.TokenSource, nil
}

// credentialsFromFile accepts only the key types this package can also parse
// directly.
func credentialsFromFile(ctx context.Context, data []byte, scopes []string) (*google.Credentials, error) {
	switch kind := gjson.GetBytes(data, "type").String(); kind {
	case serviceAccountType:
		return google.CredentialsFromJSONWithType(ctx, data, google.ServiceAccount, scopes...)
	case authorizedUserType:
		return google.CredentialsFromJSONWithType(ctx, data, google.AuthorizedUser, scopes...)
	default:
		return nil, fmt.Errorf("auth: unsupported credentials file type %q", kind)
	}
}
