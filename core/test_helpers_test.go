package core

import (
	"context"
	"sync"
	"testing"

	"golang.org/x/oauth2"
)

type testCredential struct {
	kind      string
	projectID string
	invalid   error
}

func newTestCredential() *testCredential {
	return &testCredential{kind: "test"}
}

func (c *testCredential) Kind() string { return c.kind }

func (c *testCredential) ProjectID() string { return c.projectID }

func (c *testCredential) Validate() error { return c.invalid }

func (c *testCredential) TokenSource(context.Context) (oauth2.TokenSource, error) {
	return oauth2.StaticTokenSource(&oauth2.Token{AccessToken: "test-token"}), nil
}

// bareCredential implements neither ProjectIDProvider nor CredentialValidator.
type bareCredential struct{}

func (bareCredential) Kind() string { return "bare" }

func (bareCredential) TokenSource(context.Context) (oauth2.TokenSource, error) {
	return oauth2.StaticTokenSource(&oauth2.Token{AccessToken: "bare-token"}), nil
}

type closableService struct {
	mu     sync.Mutex
	closed int
}

func (s *closableService) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed++
	return nil
}

func (s *closableService) closeCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

func newTestRegistry(t *testing.T, env MapEnvironment, opts ...Option) *Registry {
	t.Helper()
	if env == nil {
		env = MapEnvironment{}
	}
	base := []Option{WithEnvironment(env), WithLogger(stubLogger{})}
	registry, err := NewRegistry(DefaultConfig(), append(base, opts...)...)
	if err != nil {
		t.Fatalf("new registry: %v", err)
	}
	return registry
}

func mustCreate(t *testing.T, registry *Registry, cred Credential, options Options, appOpts ...AppOption) *App {
	t.Helper()
	app, err := registry.Create(context.Background(), cred, options, appOpts...)
	if err != nil {
		t.Fatalf("create app: %v", err)
	}
	return app
}

func expectTextCode(t *testing.T, err error, code string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got nil", code)
	}
	if !HasTextCode(err, code) {
		t.Fatalf("expected %s error, got %v", code, err)
	}
}

type stubLogger struct{}

func (stubLogger) Trace(string, ...any) {}
func (stubLogger) Debug(string, ...any) {}
func (stubLogger) Info(string, ...any)  {}
func (stubLogger) Warn(string, ...any)  {}
func (stubLogger) Error(string, ...any) {}
func (stubLogger) Fatal(string, ...any) {}
func (s stubLogger) WithContext(context.Context) Logger {
	return s
}

type stubLoggerProvider struct {
	logger Logger
}

func (s stubLoggerProvider) GetLogger(string) Logger {
	return s.logger
}

type mapRawLoader struct {
	values map[string]any
}

func (l mapRawLoader) LoadRaw(context.Context) (map[string]any, error) {
	if len(l.values) == 0 {
		return map[string]any{}, nil
	}
	out := make(map[string]any, len(l.values))
	for key, value := range l.values {
		out[key] = value
	}
	return out, nil
}
