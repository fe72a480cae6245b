package core

import (
	"context"

	glog "github.com/goliatone/go-logger/glog"
	"golang.org/x/oauth2"
)

// Credential produces the authentication material an App hands to the
// service clients built on top of it.
type Credential interface {
	Kind() string
	TokenSource(ctx context.Context) (oauth2.TokenSource, error)
}

// ProjectIDProvider is implemented by credentials that embed a project id.
type ProjectIDProvider interface {
	ProjectID() string
}

// CredentialValidator is implemented by credentials that can check their own
// structure before an App is created with them.
type CredentialValidator interface {
	Validate() error
}

// CredentialFactory builds the credential used when an app is created
// without one. env is the registry's environment.
type CredentialFactory func(env Environment) (Credential, error)

// Environment is a read-only view over process environment variables.
type Environment interface {
	Lookup(key string) (string, bool)
}

type MetricsRecorder interface {
	IncCounter(ctx context.Context, name string, value int64, tags map[string]string)
	ObserveHistogram(ctx context.Context, name string, value float64, tags map[string]string)
}

type Logger = glog.Logger

type LoggerProvider = glog.LoggerProvider

type FieldsLogger = glog.FieldsLogger
