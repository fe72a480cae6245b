package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const (
	KindRefreshToken = "refresh_token"

	authorizedUserType      = "authorized_user"
	refreshTokenDescription = "refresh token credential"
)

type refreshTokenKey struct {
	Type         string `json:"type"`
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
	RefreshToken string `json:"refresh_token"`
}

// RefreshToken authenticates as an end user with an OAuth2 refresh token,
// as written by gcloud for authorized users.
type RefreshToken struct {
	key    refreshTokenKey
	scopes []string
}

func NewRefreshTokenFromFile(path string, opts ...Option) (*RefreshToken, error) {
	data, err := readCredentialFile(refreshTokenDescription, path)
	if err != nil {
		return nil, err
	}
	return NewRefreshToken(data, opts...)
}

func NewRefreshToken(data []byte, opts ...Option) (*RefreshToken, error) {
	var key refreshTokenKey
	if err := json.Unmarshal(data, &key); err != nil {
		return nil, fmt.Errorf("auth: invalid %s JSON: %w", refreshTokenDescription, err)
	}
	settings := resolveOptions(opts)
	cred := &RefreshToken{key: key, scopes: settings.scopes}
	if err := cred.Validate(); err != nil {
		return nil, err
	}
	return cred, nil
}

func (*RefreshToken) Kind() string {
	return KindRefreshToken
}

func (r *RefreshToken) Validate() error {
	if r == nil {
		return fmt.Errorf("auth: %s is nil", refreshTokenDescription)
	}
	if r.key.Type != authorizedUserType {
		return fmt.Errorf("auth: %s must be of type %q, got %q", refreshTokenDescription, authorizedUserType, r.key.Type)
	}
	missing := missingFields(map[string]string{
		"client_id":     r.key.ClientID,
		"client_secret": r.key.ClientSecret,
		"refresh_token": r.key.RefreshToken,
	})
	if len(missing) > 0 {
		return fmt.Errorf("auth: %s is missing %s", refreshTokenDescription, strings.Join(missing, ", "))
	}
	return nil
}

func (r *RefreshToken) ClientID() string {
	if r == nil {
		return ""
	}
	return r.key.ClientID
}

// TokenSource refreshes access tokens against the Google token endpoint on
// demand.
func (r *RefreshToken) TokenSource(ctx context.Context) (oauth2.TokenSource, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	cfg := &oauth2.Config{
		ClientID:     r.key.ClientID,
		ClientSecret: r.key.ClientSecret,
		Endpoint:     google.Endpoint,
		Scopes:       append([]string(nil), r.scopes...),
	}
	return cfg.TokenSource(ctx, &oauth2.Token{RefreshToken: r.key.RefreshToken}), nil
}
