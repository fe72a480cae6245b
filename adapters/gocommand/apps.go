package gocommand

import (
	"context"
	"fmt"

	appscommand "github.com/goliatone/go-apps/command"
	"github.com/goliatone/go-apps/core"
	appsquery "github.com/goliatone/go-apps/query"
	"github.com/goliatone/go-command"
	commanddispatcher "github.com/goliatone/go-command/dispatcher"
	"github.com/goliatone/go-command/runner"
)

// AppHandlers are the app lifecycle handlers exposed through the dispatcher.
// Nil handlers are skipped.
type AppHandlers struct {
	CreateApp *appscommand.CreateAppCommand
	DeleteApp *appscommand.DeleteAppCommand
	GetApp    *appsquery.GetAppQuery
	ListApps  *appsquery.ListAppsQuery
}

// ReadinessResolverKey names the registry resolver that checks every
// registered app handler has its dependencies.
const ReadinessResolverKey = "apps.handlers.ready"

type readinessChecker interface {
	Ready() error
}

func readinessResolver(handler any, _ command.CommandMeta, _ *command.Registry) error {
	checker, ok := handler.(readinessChecker)
	if !ok {
		return nil
	}
	if err := checker.Ready(); err != nil {
		return fmt.Errorf("gocommand: %T is not ready: %w", handler, err)
	}
	return nil
}

// RegisterAppHandlers registers and subscribes every handler, then
// initializes the adapter's registry, which runs the readiness resolver over
// them. On failure the subscriptions made so far are released.
func RegisterAppHandlers(adapter *RegistryAdapter, handlers AppHandlers, runnerOpts ...runner.Option) (Subscriptions, error) {
	if _, err := adapter.configured(); err != nil {
		return nil, err
	}
	subs := Subscriptions{}
	register := func(subscribe func() (commanddispatcher.Subscription, error)) error {
		sub, err := subscribe()
		if err != nil {
			subs.Unsubscribe()
			return err
		}
		subs = append(subs, sub)
		return nil
	}

	if handlers.CreateApp != nil {
		if err := register(func() (commanddispatcher.Subscription, error) {
			return RegisterAndSubscribe[appscommand.CreateAppMessage](adapter, handlers.CreateApp, runnerOpts...)
		}); err != nil {
			return nil, err
		}
	}
	if handlers.DeleteApp != nil {
		if err := register(func() (commanddispatcher.Subscription, error) {
			return RegisterAndSubscribe[appscommand.DeleteAppMessage](adapter, handlers.DeleteApp, runnerOpts...)
		}); err != nil {
			return nil, err
		}
	}
	if handlers.GetApp != nil {
		if err := register(func() (commanddispatcher.Subscription, error) {
			return RegisterAndSubscribeQuery[appsquery.GetAppMessage, *core.App](adapter, handlers.GetApp, runnerOpts...)
		}); err != nil {
			return nil, err
		}
	}
	if handlers.ListApps != nil {
		if err := register(func() (commanddispatcher.Subscription, error) {
			return RegisterAndSubscribeQuery[appsquery.ListAppsMessage, []appsquery.AppSummary](adapter, handlers.ListApps, runnerOpts...)
		}); err != nil {
			return nil, err
		}
	}
	if !adapter.HasResolver(ReadinessResolverKey) {
		if err := adapter.AddResolver(ReadinessResolverKey, readinessResolver); err != nil {
			subs.Unsubscribe()
			return nil, err
		}
	}
	if err := adapter.Initialize(); err != nil {
		subs.Unsubscribe()
		return nil, err
	}
	return subs, nil
}

// CreateApp checks the message contract, dispatches msg and returns the app
// stored by the handler.
func CreateApp(ctx context.Context, msg appscommand.CreateAppMessage) (*core.App, error) {
	if err := ValidateMessageContract(msg); err != nil {
		return nil, err
	}
	collector := command.NewResult[*core.App]()
	if err := Dispatch(command.ContextWithResult(ctx, collector), msg); err != nil {
		return nil, err
	}
	app, ok := collector.Load()
	if !ok {
		return nil, fmt.Errorf("gocommand: create app handler stored no result")
	}
	return app, nil
}

func DeleteApp(ctx context.Context, msg appscommand.DeleteAppMessage) error {
	if err := ValidateMessageContract(msg); err != nil {
		return err
	}
	return Dispatch(ctx, msg)
}

func GetApp(ctx context.Context, msg appsquery.GetAppMessage) (*core.App, error) {
	if err := ValidateMessageContract(msg); err != nil {
		return nil, err
	}
	return Query[appsquery.GetAppMessage, *core.App](ctx, msg)
}

func ListApps(ctx context.Context) ([]appsquery.AppSummary, error) {
	if err := ValidateMessageContract(appsquery.ListAppsMessage{}); err != nil {
		return nil, err
	}
	return Query[appsquery.ListAppsMessage, []appsquery.AppSummary](ctx, appsquery.ListAppsMessage{})
}
