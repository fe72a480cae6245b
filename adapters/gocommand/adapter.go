package gocommand

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-command"
	commanddispatcher "github.com/goliatone/go-command/dispatcher"
	"github.com/goliatone/go-command/runner"
)

var errRegistryNotConfigured = errors.New("gocommand: registry is not configured")

// ValidateMessageContract checks that msg names a message type and passes
// its own Validate method, if it has one.
func ValidateMessageContract(msg any) error {
	typed, ok := msg.(command.Message)
	if !ok {
		return fmt.Errorf("gocommand: %T must implement Type() string", msg)
	}
	if strings.TrimSpace(typed.Type()) == "" {
		return fmt.Errorf("gocommand: %T has an empty message type", msg)
	}
	return command.ValidateMessage(msg)
}

// RegistryAdapter owns the go-command registry the app handlers are
// registered in.
type RegistryAdapter struct {
	registry *command.Registry
}

func NewRegistryAdapter(registry *command.Registry) *RegistryAdapter {
	if registry == nil {
		registry = command.NewRegistry()
	}
	return &RegistryAdapter{registry: registry}
}

func (a *RegistryAdapter) Registry() *command.Registry {
	if a == nil {
		return nil
	}
	return a.registry
}

func (a *RegistryAdapter) configured() (*command.Registry, error) {
	if a == nil || a.registry == nil {
		return nil, errRegistryNotConfigured
	}
	return a.registry, nil
}

// RegisterCommand adds a command or query handler to the registry.
func (a *RegistryAdapter) RegisterCommand(handler any) error {
	registry, err := a.configured()
	if err != nil {
		return err
	}
	return registry.RegisterCommand(handler)
}

func (a *RegistryAdapter) AddResolver(key string, resolver command.Resolver) error {
	registry, err := a.configured()
	if err != nil {
		return err
	}
	return registry.AddResolver(strings.TrimSpace(key), resolver)
}

func (a *RegistryAdapter) HasResolver(key string) bool {
	registry, err := a.configured()
	if err != nil {
		return false
	}
	return registry.HasResolver(strings.TrimSpace(key))
}

// Initialize runs the registered resolvers over every registered handler.
func (a *RegistryAdapter) Initialize() error {
	registry, err := a.configured()
	if err != nil {
		return err
	}
	return registry.Initialize()
}

// Subscriptions collects dispatcher subscriptions so they can be released
// together.
type Subscriptions []commanddispatcher.Subscription

func (s Subscriptions) Unsubscribe() {
	for _, subscription := range s {
		if subscription != nil {
			subscription.Unsubscribe()
		}
	}
}

func SubscribeCommand[T any](cmd command.Commander[T], runnerOpts ...runner.Option) commanddispatcher.Subscription {
	return commanddispatcher.SubscribeCommand(cmd, runnerOpts...)
}

func SubscribeQuery[T any, R any](qry command.Querier[T, R], runnerOpts ...runner.Option) commanddispatcher.Subscription {
	return commanddispatcher.SubscribeQuery(qry, runnerOpts...)
}

func Dispatch[T any](ctx context.Context, msg T) error {
	return commanddispatcher.Dispatch(ctx, msg)
}

func Query[T any, R any](ctx context.Context, msg T) (R, error) {
	return commanddispatcher.Query[T, R](ctx, msg)
}

// RegisterAndSubscribe subscribes cmd to the dispatcher and registers it. A
// failed registration drops the subscription.
func RegisterAndSubscribe[T any](adapter *RegistryAdapter, cmd command.Commander[T], runnerOpts ...runner.Option) (commanddispatcher.Subscription, error) {
	if cmd == nil {
		return nil, fmt.Errorf("gocommand: command is required")
	}
	return registerSubscription(adapter, cmd, func() commanddispatcher.Subscription {
		return SubscribeCommand(cmd, runnerOpts...)
	})
}

func RegisterAndSubscribeQuery[T any, R any](adapter *RegistryAdapter, qry command.Querier[T, R], runnerOpts ...runner.Option) (commanddispatcher.Subscription, error) {
	if qry == nil {
		return nil, fmt.Errorf("gocommand: query is required")
	}
	return registerSubscription(adapter, qry, func() commanddispatcher.Subscription {
		return SubscribeQuery(qry, runnerOpts...)
	})
}

func registerSubscription(adapter *RegistryAdapter, handler any, subscribe func() commanddispatcher.Subscription) (commanddispatcher.Subscription, error) {
	if _, err := adapter.configured(); err != nil {
		return nil, err
	}
	subscription := subscribe()
	if err := adapter.RegisterCommand(handler); err != nil {
		if subscription != nil {
			subscription.Unsubscribe()
		}
		return nil, err
	}
	return subscription, nil
}
