package command

import (
	"strings"

	"github.com/goliatone/go-apps/core"
)

const (
	TypeCreateApp = "apps.command.app.create"
	TypeDeleteApp = "apps.command.app.delete"
)

// CreateAppMessage asks for a new app. An empty Name selects the registry's
// default app name and a nil Credential selects its default credential.
// Credential and Options are untyped so decoded payloads can carry them;
// values that are not a core.Credential or a string keyed map are rejected.
type CreateAppMessage struct {
	Name       string
	Credential any
	Options    any
}

func (CreateAppMessage) Type() string { return TypeCreateApp }

func (m CreateAppMessage) Validate() error {
	if m.Name != "" && strings.TrimSpace(m.Name) == "" {
		return commandValidationError("name", "app name must not be blank", core.AppErrorInvalidName)
	}
	if _, err := core.ValidateCredentialValue(m.Credential); err != nil {
		return commandValidationError("credential", err.Error(), core.AppErrorInvalidCredential)
	}
	if _, err := core.OptionsFromValue(m.Options); err != nil {
		return commandValidationError("options", err.Error(), core.AppErrorInvalidOptions)
	}
	return nil
}

// DeleteAppMessage deletes App when set, otherwise the app registered under
// Name.
type DeleteAppMessage struct {
	Name string
	App  *core.App
}

func (DeleteAppMessage) Type() string { return TypeDeleteApp }

func (m DeleteAppMessage) Validate() error {
	if m.App == nil && strings.TrimSpace(m.Name) == "" {
		return commandValidationError("name", "app or app name is required", core.AppErrorInvalidName)
	}
	return nil
}
