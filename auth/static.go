package auth

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/oauth2"
)

const KindStatic = "static"

// Static always hands out the same access token. It is meant for tests and
// emulators.
type Static struct {
	token     string
	projectID string
}

func NewStatic(token string, projectID string) *Static {
	return &Static{token: strings.TrimSpace(token), projectID: strings.TrimSpace(projectID)}
}

func (*Static) Kind() string {
	return KindStatic
}

func (s *Static) Validate() error {
	if s == nil || s.token == "" {
		return fmt.Errorf("auth: static credential token is required")
	}
	return nil
}

func (s *Static) ProjectID() string {
	if s == nil {
		return ""
	}
	return s.projectID
}

func (s *Static) TokenSource(context.Context) (oauth2.TokenSource, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: s.token,
		TokenType:   "Bearer",
	}), nil
}
