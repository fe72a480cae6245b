package query

import "strings"

const (
	TypeGetApp   = "apps.query.app.get"
	TypeListApps = "apps.query.app.list"
)

// GetAppMessage looks up an app by name. An empty Name selects the default
// app.
type GetAppMessage struct {
	Name string
}

func (GetAppMessage) Type() string { return TypeGetApp }

func (m GetAppMessage) Validate() error {
	if m.Name != "" && strings.TrimSpace(m.Name) == "" {
		return queryValidationError("name", "app name must not be blank")
	}
	return nil
}

type ListAppsMessage struct{}

func (ListAppsMessage) Type() string { return TypeListApps }

func (ListAppsMessage) Validate() error { return nil }
