package core

import (
	"context"
	"errors"
)

var errNilServiceFactory = errors.New("core: service factory is nil")

// Service is the typed form of App.GetOrCreateService. A cached value of a
// different type is reported as an error, not replaced.
func Service[T any](app *App, key string, factory func(*App) (T, error)) (T, error) {
	var zero T
	if factory == nil {
		return zero, serviceFactoryError(app.Name(), key, errNilServiceFactory)
	}
	value, err := app.GetOrCreateService(key, func(a *App) (any, error) {
		return factory(a)
	})
	if err != nil {
		return zero, err
	}
	typed, ok := value.(T)
	if !ok {
		return zero, serviceTypeMismatchError(app.Name(), key, zero, value)
	}
	return typed, nil
}

// AppService is the accessor downstream service packages use: app must be
// the live instance registered in r under its name.
func AppService[T any](ctx context.Context, r *Registry, app *App, key string, factory func(*App) (T, error)) (T, error) {
	var zero T
	if err := r.ensureRegistered(app); err != nil {
		r.logError(ctx, "app service lookup rejected", map[string]any{
			"app_name":    app.Name(),
			"service_key": key,
			"error":       err.Error(),
		})
		return zero, err
	}
	return Service(app, key, factory)
}
