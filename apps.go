package apps

import (
	"context"

	"github.com/goliatone/go-apps/auth"
	"github.com/goliatone/go-apps/core"
)

const DefaultAppName = core.DefaultAppName

type Config = core.Config

type Option = core.Option

type AppOption = core.AppOption

type Registry = core.Registry

type RegistryDependencies = core.RegistryDependencies

type App = core.App
type AppConfig = core.AppConfig
type Options = core.Options
type ServiceFactory = core.ServiceFactory

type Credential = core.Credential
type CredentialFactory = core.CredentialFactory
type Environment = core.Environment
type MapEnvironment = core.MapEnvironment
type OSEnvironment = core.OSEnvironment

var (
	WithLogger            = core.WithLogger
	WithLoggerProvider    = core.WithLoggerProvider
	WithMetricsRecorder   = core.WithMetricsRecorder
	WithErrorMapper       = core.WithErrorMapper
	WithConfigProvider    = core.WithConfigProvider
	WithOptionsResolver   = core.WithOptionsResolver
	WithEnvironment       = core.WithEnvironment
	WithDefaultCredential = core.WithDefaultCredential
	WithAppName           = core.WithAppName
)

var (
	NewCertificate          = auth.NewCertificate
	NewCertificateFromFile  = auth.NewCertificateFromFile
	NewRefreshToken         = auth.NewRefreshToken
	NewRefreshTokenFromFile = auth.NewRefreshTokenFromFile
	NewStatic               = auth.NewStatic
	NewCredentialFromFile   = auth.NewFromFile
)

var (
	IsInvalidArgument = core.IsInvalidArgument
	HasTextCode       = core.HasTextCode
	RedactOptions     = core.RedactOptions
	OptionsFromValue  = core.OptionsFromValue
)

func DefaultConfig() Config {
	return core.DefaultConfig()
}

// NewRegistry builds a registry whose apps fall back to application default
// credentials when created without one. A WithDefaultCredential option
// replaces that fallback.
func NewRegistry(cfg Config, opts ...Option) (*Registry, error) {
	base := []Option{core.WithDefaultCredential(ApplicationDefaultCredential)}
	return core.NewRegistry(cfg, append(base, opts...)...)
}

// ApplicationDefaultCredential is the default CredentialFactory. Discovery
// errors are reported by the credential's TokenSource.
func ApplicationDefaultCredential(env Environment) (Credential, error) {
	return auth.NewApplicationDefaultFromEnv(env), nil
}

func Service[T any](app *App, key string, factory func(*App) (T, error)) (T, error) {
	return core.Service(app, key, factory)
}

func AppService[T any](ctx context.Context, registry *Registry, app *App, key string, factory func(*App) (T, error)) (T, error) {
	return core.AppService(ctx, registry, app, key, factory)
}
