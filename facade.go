package apps

import (
	"fmt"

	"github.com/goliatone/go-apps/adapters/gocommand"
	appscommand "github.com/goliatone/go-apps/command"
	appsquery "github.com/goliatone/go-apps/query"
)

type CommandQueryRegistry interface {
	appscommand.AppLifecycle
	appsquery.AppReader
}

type Commands struct {
	CreateApp *appscommand.CreateAppCommand
	DeleteApp *appscommand.DeleteAppCommand
}

type Queries struct {
	GetApp   *appsquery.GetAppQuery
	ListApps *appsquery.ListAppsQuery
}

type Facade struct {
	registry CommandQueryRegistry
	commands Commands
	queries  Queries
}

func NewFacade(registry CommandQueryRegistry) (*Facade, error) {
	if registry == nil {
		return nil, fmt.Errorf("apps: command/query registry is required")
	}
	return &Facade{
		registry: registry,
		commands: Commands{
			CreateApp: appscommand.NewCreateAppCommand(registry),
			DeleteApp: appscommand.NewDeleteAppCommand(registry),
		},
		queries: Queries{
			GetApp:   appsquery.NewGetAppQuery(registry),
			ListApps: appsquery.NewListAppsQuery(registry),
		},
	}, nil
}

func (f *Facade) Commands() Commands {
	if f == nil {
		return Commands{}
	}
	return f.commands
}

func (f *Facade) Queries() Queries {
	if f == nil {
		return Queries{}
	}
	return f.queries
}

func (f *Facade) Registry() CommandQueryRegistry {
	if f == nil {
		return nil
	}
	return f.registry
}

// Subscribe registers the facade handlers with adapter and subscribes them to
// the go-command dispatcher. Callers release them with Unsubscribe.
func (f *Facade) Subscribe(adapter *gocommand.RegistryAdapter) (gocommand.Subscriptions, error) {
	if f == nil {
		return nil, fmt.Errorf("apps: facade is required")
	}
	return gocommand.RegisterAppHandlers(adapter, gocommand.AppHandlers{
		CreateApp: f.commands.CreateApp,
		DeleteApp: f.commands.DeleteApp,
		GetApp:    f.queries.GetApp,
		ListApps:  f.queries.ListApps,
	})
}
