package command

import (
	"context"

	"github.com/goliatone/go-apps/core"
	gocmd "github.com/goliatone/go-command"
)

type AppLifecycle interface {
	Create(ctx context.Context, credential core.Credential, options core.Options, appOpts ...core.AppOption) (*core.App, error)
	Get(ctx context.Context, name string) (*core.App, error)
	Delete(ctx context.Context, app *core.App) error
}

type CreateAppCommand struct {
	registry AppLifecycle
}

func NewCreateAppCommand(registry AppLifecycle) *CreateAppCommand {
	return &CreateAppCommand{registry: registry}
}

// Ready reports whether the command has an app registry to work with.
func (c *CreateAppCommand) Ready() error {
	if c == nil || c.registry == nil {
		return commandDependencyError("command: app registry is required")
	}
	return nil
}

func (c *CreateAppCommand) Execute(ctx context.Context, msg CreateAppMessage) error {
	if err := c.Ready(); err != nil {
		return err
	}
	if err := msg.Validate(); err != nil {
		return err
	}
	cred, err := core.ValidateCredentialValue(msg.Credential)
	if err != nil {
		return err
	}
	options, err := core.OptionsFromValue(msg.Options)
	if err != nil {
		return err
	}
	var appOpts []core.AppOption
	if msg.Name != "" {
		appOpts = append(appOpts, core.WithAppName(msg.Name))
	}
	app, err := c.registry.Create(ctx, cred, options, appOpts...)
	if err != nil {
		return err
	}
	storeResult(ctx, app)
	return nil
}

type DeleteAppCommand struct {
	registry AppLifecycle
}

func NewDeleteAppCommand(registry AppLifecycle) *DeleteAppCommand {
	return &DeleteAppCommand{registry: registry}
}

func (c *DeleteAppCommand) Ready() error {
	if c == nil || c.registry == nil {
		return commandDependencyError("command: app registry is required")
	}
	return nil
}

func (c *DeleteAppCommand) Execute(ctx context.Context, msg DeleteAppMessage) error {
	if err := c.Ready(); err != nil {
		return err
	}
	if err := msg.Validate(); err != nil {
		return err
	}
	app := msg.App
	if app == nil {
		found, err := c.registry.Get(ctx, msg.Name)
		if err != nil {
			return err
		}
		app = found
	}
	return c.registry.Delete(ctx, app)
}

func storeResult[T any](ctx context.Context, value T) {
	collector := gocmd.ResultFromContext[T](ctx)
	if collector == nil {
		return
	}
	collector.Store(value)
}
