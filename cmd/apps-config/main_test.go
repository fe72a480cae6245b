package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func testdataPath(t *testing.T, parts ...string) string {
	t.Helper()
	path, err := filepath.Abs(filepath.Join(append([]string{"..", ".."}, parts...)...))
	if err != nil {
		t.Fatalf("abs path: %v", err)
	}
	return path
}

func TestResolve_FromEnvFile(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), ".env")
	content := strings.Join([]string{
		"FIREBASE_CONFIG=" + testdataPath(t, "core", "testdata", "firebase_config_partial.json"),
		"GOOGLE_APPLICATION_CREDENTIALS=" + testdataPath(t, "auth", "testdata", "service_account.json"),
	}, "\n")
	if err := os.WriteFile(envFile, []byte(content), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}

	raw, err := runCLI(t, "resolve", "--env-file", envFile, "--name", "cli")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	var out resolveOutput
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		t.Fatalf("decode output %q: %v", raw, err)
	}
	if out.Name != "cli" {
		t.Fatalf("expected app name cli, got %q", out.Name)
	}
	if out.ProjectID != "hipster-chat-mock" {
		t.Fatalf("expected project id from config file, got %q", out.ProjectID)
	}
	if out.CredentialKind != "application_default" {
		t.Fatalf("expected application default credential, got %q", out.CredentialKind)
	}
	if out.Options["databaseURL"] != "https://hipster-chat.firebaseio.mock" {
		t.Fatalf("unexpected options %#v", out.Options)
	}
}

func TestResolve_InvalidConfig(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(envFile, []byte("FIREBASE_CONFIG="+testdataPath(t, "core", "testdata", "firebase_config_invalid.json")), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	if _, err := runCLI(t, "resolve", "--env-file", envFile); err == nil {
		t.Fatalf("expected invalid config to fail")
	}
}

func TestResolve_MissingEnvFile(t *testing.T) {
	_, err := runCLI(t, "resolve", "--env-file", filepath.Join(t.TempDir(), "missing.env"))
	if err == nil || !strings.Contains(err.Error(), "load env files") {
		t.Fatalf("expected env file error, got %v", err)
	}
}

func TestValidateCredential(t *testing.T) {
	raw, err := runCLI(t, "validate-credential", testdataPath(t, "auth", "testdata", "service_account.json"))
	if err != nil {
		t.Fatalf("validate credential: %v", err)
	}
	var out credentialOutput
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		t.Fatalf("decode output %q: %v", raw, err)
	}
	if out.Kind != "certificate" || out.ProjectID != "mock-project-id" {
		t.Fatalf("unexpected output %#v", out)
	}
	if out.ServiceAccountEmail == "" {
		t.Fatalf("expected service account email")
	}

	raw, err = runCLI(t, "validate-credential", testdataPath(t, "auth", "testdata", "refresh_token.json"))
	if err != nil {
		t.Fatalf("validate refresh token: %v", err)
	}
	if !strings.Contains(raw, `"client_id": "mock.apps.googleusercontent.com"`) {
		t.Fatalf("expected client id in output, got %s", raw)
	}

	if _, err := runCLI(t, "validate-credential", testdataPath(t, "auth", "testdata", "service_account_missing_email.json")); err == nil {
		t.Fatalf("expected invalid key to fail")
	}
}
