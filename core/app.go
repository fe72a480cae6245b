package core

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

// ServiceFactory builds the service stored under a key of an App's service
// cache. It must not request the same key from the same App.
type ServiceFactory func(app *App) (any, error)

// App bundles a name, a credential and resolved options. Everything but the
// service cache is fixed at construction.
type App struct {
	name       string
	id         string
	credential Credential
	options    Options
	projectID  string

	mu       sync.RWMutex
	services map[string]any
	deleted  bool
	group    singleflight.Group
}

// NewApp builds an App that is not registered anywhere. Apps obtained this
// way are rejected by Registry.Delete and AppService; use Registry.Create to
// get a live App.
func NewApp(name string, credential Credential, options Options) (*App, error) {
	return newApp(name, credential, options, OSEnvironment{}, DefaultConfig().ProjectIDEnvVars)
}

func newApp(name string, credential Credential, options Options, env Environment, projectEnvVars []string) (*App, error) {
	if strings.TrimSpace(name) == "" {
		return nil, invalidNameError(name)
	}
	snapshot := options.Clone()
	if snapshot == nil {
		snapshot = Options{}
	}
	if value, ok := snapshot[OptionProjectID]; ok && value != nil {
		if _, isString := value.(string); !isString {
			return nil, invalidOptionsError(fmt.Sprintf("%s must be a string, got %T", OptionProjectID, value))
		}
	}
	return &App{
		name:       name,
		id:         uuid.NewString(),
		credential: credential,
		options:    snapshot,
		projectID:  resolveProjectID(snapshot, credential, env, projectEnvVars),
		services:   map[string]any{},
	}, nil
}

// resolveProjectID picks the project id from options, then the credential,
// then the environment.
func resolveProjectID(options Options, credential Credential, env Environment, envVars []string) string {
	if pid := strings.TrimSpace(options.String(OptionProjectID)); pid != "" {
		return pid
	}
	if provider, ok := credential.(ProjectIDProvider); ok && !isNilValue(provider) {
		if pid := strings.TrimSpace(provider.ProjectID()); pid != "" {
			return pid
		}
	}
	for _, key := range envVars {
		if pid := lookupTrimmed(env, key); pid != "" {
			return pid
		}
	}
	return ""
}

func (a *App) Name() string {
	if a == nil {
		return ""
	}
	return a.name
}

// ID is unique per App value, including apps later created under the same
// name.
func (a *App) ID() string {
	if a == nil {
		return ""
	}
	return a.id
}

func (a *App) Credential() Credential {
	if a == nil {
		return nil
	}
	return a.credential
}

// Options returns a copy of the resolved options.
func (a *App) Options() Options {
	if a == nil {
		return Options{}
	}
	return a.options.Clone()
}

func (a *App) Option(key string) (any, bool) {
	if a == nil {
		return nil, false
	}
	value, ok := a.options.Get(key)
	if !ok {
		return nil, false
	}
	copied := Options{key: value}.Clone()
	return copied[key], true
}

// ProjectID is empty when neither options, credential nor environment name
// a project.
func (a *App) ProjectID() string {
	if a == nil {
		return ""
	}
	return a.projectID
}

func (a *App) Config() (AppConfig, error) {
	if a == nil {
		return AppConfig{}, nil
	}
	return decodeAppConfig(a.options)
}

func (a *App) Deleted() bool {
	if a == nil {
		return true
	}
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.deleted
}

// ServiceKeys lists the keys currently cached, sorted.
func (a *App) ServiceKeys() []string {
	if a == nil {
		return nil
	}
	a.mu.RLock()
	keys := make([]string, 0, len(a.services))
	for key := range a.services {
		keys = append(keys, key)
	}
	a.mu.RUnlock()
	sort.Strings(keys)
	return keys
}

// GetOrCreateService returns the service cached under key, building it with
// factory on first use. Concurrent callers for the same key share a single
// factory invocation. Failed builds are not cached.
func (a *App) GetOrCreateService(key string, factory ServiceFactory) (any, error) {
	if a == nil {
		return nil, invalidAppError()
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, invalidServiceKeyError()
	}
	if factory == nil {
		return nil, serviceFactoryError(a.name, key, errNilServiceFactory)
	}

	if value, ok, err := a.cachedService(key); err != nil || ok {
		return value, err
	}

	value, err, _ := a.group.Do(key, func() (any, error) {
		if cached, ok, err := a.cachedService(key); err != nil || ok {
			return cached, err
		}
		built, err := factory(a)
		if err != nil {
			return nil, serviceFactoryError(a.name, key, err)
		}

		a.mu.Lock()
		defer a.mu.Unlock()
		if a.deleted {
			_ = closeService(built)
			return nil, deletedAppError(a.name)
		}
		a.services[key] = built
		return built, nil
	})
	if err != nil {
		return nil, err
	}
	return value, nil
}

func (a *App) cachedService(key string) (any, bool, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.deleted {
		return nil, false, deletedAppError(a.name)
	}
	value, ok := a.services[key]
	return value, ok, nil
}

// markDeleted drops the service cache and returns the services that were in
// it. It reports false if the app was already deleted.
func (a *App) markDeleted() ([]any, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.deleted {
		return nil, false
	}
	a.deleted = true
	keys := make([]string, 0, len(a.services))
	for key := range a.services {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	released := make([]any, 0, len(keys))
	for _, key := range keys {
		released = append(released, a.services[key])
	}
	a.services = nil
	return released, true
}

func closeService(service any) error {
	closer, ok := service.(io.Closer)
	if !ok || isNilValue(closer) {
		return nil
	}
	return closer.Close()
}
