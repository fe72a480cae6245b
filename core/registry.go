package core

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	glog "github.com/goliatone/go-logger/glog"
)

// Registry maps app names to live Apps. The zero value is not usable; build
// one with NewRegistry.
type Registry struct {
	mu   sync.RWMutex
	apps map[string]*App

	config            Config
	logger            Logger
	loggerProvider    LoggerProvider
	metricsRecorder   MetricsRecorder
	errorMapper       ErrorMapper
	configProvider    ConfigProvider
	optionsResolver   OptionsResolver
	environment       Environment
	defaultCredential CredentialFactory
	resolver          *ConfigResolver
}

type RegistryDependencies struct {
	Logger            Logger
	LoggerProvider    LoggerProvider
	MetricsRecorder   MetricsRecorder
	ErrorMapper       ErrorMapper
	ConfigProvider    ConfigProvider
	OptionsResolver   OptionsResolver
	Environment       Environment
	DefaultCredential CredentialFactory
}

func NewRegistry(cfg Config, opts ...Option) (*Registry, error) {
	builder := defaultRegistryBuilder(cfg)
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(&builder)
	}

	provider, logger := glog.Resolve("apps", builder.loggerProvider, builder.logger)
	logger = glog.Ensure(logger)
	if provider != nil {
		if named := provider.GetLogger("apps"); named != nil {
			logger = glog.Ensure(named)
		}
	}

	if builder.metricsRecorder == nil {
		builder.metricsRecorder = NopMetricsRecorder{}
	}
	if builder.errorMapper == nil {
		builder.errorMapper = defaultErrorMapper
	}
	if builder.configProvider == nil {
		builder.configProvider = NewCfgxConfigProvider(nil)
	}
	if builder.optionsResolver == nil {
		builder.optionsResolver = GoOptionsResolver{}
	}
	if builder.environment == nil {
		builder.environment = OSEnvironment{}
	}

	defaults := DefaultConfig()
	loaded, err := builder.configProvider.Load(context.Background(), defaults)
	if err != nil {
		return nil, mapBuildError(builder.errorMapper, err)
	}
	finalConfig, err := builder.optionsResolver.Resolve(defaults, loaded, builder.runtimeConfig)
	if err != nil {
		return nil, mapBuildError(builder.errorMapper, err)
	}

	return &Registry{
		apps:              map[string]*App{},
		config:            finalConfig,
		logger:            logger,
		loggerProvider:    provider,
		metricsRecorder:   builder.metricsRecorder,
		errorMapper:       builder.errorMapper,
		configProvider:    builder.configProvider,
		optionsResolver:   builder.optionsResolver,
		environment:       builder.environment,
		defaultCredential: builder.defaultCredential,
		resolver:          NewConfigResolver(finalConfig, logger),
	}, nil
}

func mapBuildError(mapper ErrorMapper, err error) error {
	if err == nil {
		return nil
	}
	if mapper == nil {
		return err
	}
	mapped := mapper(err)
	if mapped == nil {
		return err
	}
	return mapped
}

func (r *Registry) Config() Config {
	if r == nil {
		return Config{}
	}
	return r.config
}

func (r *Registry) Dependencies() RegistryDependencies {
	if r == nil {
		return RegistryDependencies{}
	}
	return RegistryDependencies{
		Logger:            r.logger,
		LoggerProvider:    r.loggerProvider,
		MetricsRecorder:   r.metricsRecorder,
		ErrorMapper:       r.errorMapper,
		ConfigProvider:    r.configProvider,
		OptionsResolver:   r.optionsResolver,
		Environment:       r.environment,
		DefaultCredential: r.defaultCredential,
	}
}

type createSettings struct {
	name    string
	nameSet bool
}

type AppOption func(*createSettings)

// WithAppName creates the app under name instead of the default app name.
func WithAppName(name string) AppOption {
	return func(s *createSettings) {
		s.name = name
		s.nameSet = true
	}
}

// Create validates its arguments, resolves options and registers a new App.
// A nil credential selects the registry's default credential; nil options
// read configuration from the environment. Creating a second app under a
// live name fails.
func (r *Registry) Create(ctx context.Context, credential Credential, options Options, appOpts ...AppOption) (app *App, err error) {
	startedAt := time.Now()
	settings := createSettings{name: r.config.DefaultAppName}
	for _, opt := range appOpts {
		if opt == nil {
			continue
		}
		opt(&settings)
	}
	defer func() {
		fields := map[string]any{"app_name": settings.name}
		if app != nil {
			fields["app_id"] = app.ID()
			fields["project_id"] = app.ProjectID()
			fields["credential_kind"] = app.Credential().Kind()
		}
		r.observeOperation(ctx, startedAt, "create", err, fields)
	}()

	if strings.TrimSpace(settings.name) == "" {
		return nil, r.mapError(invalidNameError(settings.name))
	}

	cred, err := ValidateCredential(credential)
	if err != nil {
		return nil, r.mapError(err)
	}
	if cred == nil {
		cred = r.resolveDefaultCredential()
	}

	resolved, err := r.resolver.Resolve(options, r.environment)
	if err != nil {
		return nil, r.mapError(err)
	}

	candidate, err := newApp(settings.name, cred, resolved, r.environment, r.config.ProjectIDEnvVars)
	if err != nil {
		return nil, r.mapError(err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.apps[candidate.name]; exists {
		return nil, r.mapError(alreadyExistsError(candidate.name))
	}
	r.apps[candidate.name] = candidate
	return candidate, nil
}

func (r *Registry) resolveDefaultCredential() Credential {
	if r.defaultCredential == nil {
		return unresolvedCredential{}
	}
	cred, err := r.defaultCredential(r.environment)
	if err != nil {
		return unresolvedCredential{err: err}
	}
	if cred == nil || isNilValue(cred) {
		return unresolvedCredential{}
	}
	return cred
}

// Get returns the live App registered under name.
func (r *Registry) Get(ctx context.Context, name string) (app *App, err error) {
	startedAt := time.Now()
	defer func() {
		r.observeDebug(ctx, startedAt, "get", err, map[string]any{"app_name": name})
	}()

	if strings.TrimSpace(name) == "" {
		return nil, r.mapError(invalidNameError(name))
	}
	r.mu.RLock()
	app, ok := r.apps[name]
	r.mu.RUnlock()
	if !ok {
		return nil, r.mapError(notFoundError(name))
	}
	return app, nil
}

// Default returns the app registered under the default app name.
func (r *Registry) Default(ctx context.Context) (*App, error) {
	return r.Get(ctx, r.config.DefaultAppName)
}

// Delete unregisters app and marks it deleted. app must be the exact
// instance currently registered under its name.
func (r *Registry) Delete(ctx context.Context, app *App) (err error) {
	startedAt := time.Now()
	defer func() {
		r.observeOperation(ctx, startedAt, "delete", err, map[string]any{
			"app_name": app.Name(),
			"app_id":   app.ID(),
		})
	}()

	if app == nil {
		return r.mapError(invalidAppError())
	}

	r.mu.Lock()
	registered, ok := r.apps[app.name]
	if !ok || registered != app {
		r.mu.Unlock()
		switch {
		case app.Deleted():
			return r.mapError(deletedAppError(app.name))
		case ok:
			return r.mapError(instanceMismatchError(app.name))
		default:
			return r.mapError(notFoundError(app.name))
		}
	}
	delete(r.apps, app.name)
	released, _ := app.markDeleted()
	r.mu.Unlock()

	r.closeServices(ctx, app, released)
	return nil
}

// List returns the live apps sorted by name.
func (r *Registry) List(context.Context) []*App {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	names := make([]string, 0, len(r.apps))
	for name := range r.apps {
		names = append(names, name)
	}
	sort.Strings(names)
	apps := make([]*App, 0, len(names))
	for _, name := range names {
		apps = append(apps, r.apps[name])
	}
	r.mu.RUnlock()
	return apps
}

// Reset deletes every registered app. It is meant for test teardown.
func (r *Registry) Reset(ctx context.Context) {
	if r == nil {
		return
	}
	for _, app := range r.List(ctx) {
		_ = r.Delete(ctx, app)
	}
}

func (r *Registry) ensureRegistered(app *App) error {
	if r == nil || app == nil {
		return invalidAppError()
	}
	r.mu.RLock()
	registered, ok := r.apps[app.name]
	r.mu.RUnlock()
	switch {
	case ok && registered == app:
		return nil
	case app.Deleted():
		return r.mapError(deletedAppError(app.name))
	case ok:
		return r.mapError(instanceMismatchError(app.name))
	default:
		return r.mapError(notFoundError(app.name))
	}
}

func (r *Registry) closeServices(ctx context.Context, app *App, services []any) {
	for _, service := range services {
		if err := closeService(service); err != nil {
			r.logError(ctx, "app service close failed", map[string]any{
				"app_name": app.name,
				"app_id":   app.id,
				"error":    err.Error(),
			})
		}
	}
}

func (r *Registry) mapError(err error) error {
	if err == nil {
		return nil
	}
	if r == nil || r.errorMapper == nil {
		return err
	}
	mapped := r.errorMapper(err)
	if mapped == nil {
		return err
	}
	return mapped
}
