package auth

import (
	"context"
	"testing"
)

func TestStatic_TokenSource(t *testing.T) {
	cred := NewStatic(" token-1 ", "emulator-project")
	if cred.ProjectID() != "emulator-project" {
		t.Fatalf("unexpected project id %q", cred.ProjectID())
	}
	source, err := cred.TokenSource(context.Background())
	if err != nil {
		t.Fatalf("token source: %v", err)
	}
	token, err := source.Token()
	if err != nil {
		t.Fatalf("token: %v", err)
	}
	if token.AccessToken != "token-1" {
		t.Fatalf("expected trimmed access token, got %q", token.AccessToken)
	}
}

func TestStatic_RequiresToken(t *testing.T) {
	cred := NewStatic("", "")
	if err := cred.Validate(); err == nil {
		t.Fatalf("expected empty token to fail validation")
	}
	if _, err := cred.TokenSource(context.Background()); err == nil {
		t.Fatalf("expected token source error")
	}
}
