package core

import (
	"fmt"
	"net/http"
	"strings"

	goerrors "github.com/goliatone/go-errors"
)

const (
	AppErrorInvalidName          = "APP_INVALID_NAME"
	AppErrorInvalidCredential    = "APP_INVALID_CREDENTIAL"
	AppErrorInvalidOptions       = "APP_INVALID_OPTIONS"
	AppErrorInvalidConfig        = "APP_INVALID_CONFIG"
	AppErrorInvalidServiceKey    = "APP_INVALID_SERVICE_KEY"
	AppErrorInvalidApp           = "APP_INVALID_APP"
	AppErrorAlreadyExists        = "APP_ALREADY_EXISTS"
	AppErrorNotFound             = "APP_NOT_FOUND"
	AppErrorDeleted              = "APP_DELETED"
	AppErrorInstanceMismatch     = "APP_INSTANCE_MISMATCH"
	AppErrorServiceFactoryFailed = "APP_SERVICE_FACTORY_FAILED"
	AppErrorServiceTypeMismatch  = "APP_SERVICE_TYPE_MISMATCH"
	AppErrorInternal             = "APP_INTERNAL_ERROR"
)

// invalidArgumentCodes are the codes callers treat as programmer or
// configuration mistakes.
var invalidArgumentCodes = map[string]struct{}{
	AppErrorInvalidName:       {},
	AppErrorInvalidCredential: {},
	AppErrorInvalidOptions:    {},
	AppErrorInvalidConfig:     {},
	AppErrorInvalidServiceKey: {},
	AppErrorInvalidApp:        {},
	AppErrorAlreadyExists:     {},
	AppErrorNotFound:          {},
	AppErrorDeleted:           {},
	AppErrorInstanceMismatch:  {},
}

// IsInvalidArgument reports whether err was produced by rejecting a caller
// supplied argument or configuration value.
func IsInvalidArgument(err error) bool {
	var richErr *goerrors.Error
	if !goerrors.As(err, &richErr) {
		return false
	}
	_, ok := invalidArgumentCodes[richErr.TextCode]
	return ok
}

// HasTextCode reports whether err carries the given application text code.
func HasTextCode(err error, code string) bool {
	var richErr *goerrors.Error
	if !goerrors.As(err, &richErr) {
		return false
	}
	return richErr.TextCode == code
}

func invalidNameError(name string) error {
	return newAppError(
		fmt.Sprintf("app name must be a non-empty string, got %q", name),
		goerrors.CategoryBadInput,
		AppErrorInvalidName,
	)
}

func invalidCredentialError(reason string) error {
	return newAppError(
		"illegal credential argument: "+reason,
		goerrors.CategoryBadInput,
		AppErrorInvalidCredential,
	)
}

func invalidOptionsError(reason string) error {
	return newAppError(
		"illegal app options argument: "+reason,
		goerrors.CategoryBadInput,
		AppErrorInvalidOptions,
	)
}

func invalidConfigError(source string, cause error) error {
	message := fmt.Sprintf("unable to load app configuration from %s", source)
	if cause == nil {
		return newAppError(message, goerrors.CategoryBadInput, AppErrorInvalidConfig)
	}
	return ensureAppErrorEnvelope(
		goerrors.Wrap(cause, goerrors.CategoryBadInput, message).
			WithTextCode(AppErrorInvalidConfig),
	)
}

func alreadyExistsError(name string) error {
	return newAppError(
		fmt.Sprintf("app %q already exists; delete it before creating a new app with the same name", name),
		goerrors.CategoryConflict,
		AppErrorAlreadyExists,
	)
}

func notFoundError(name string) error {
	return newAppError(
		fmt.Sprintf("app %q does not exist: make sure it was created and has not been deleted", name),
		goerrors.CategoryNotFound,
		AppErrorNotFound,
	)
}

func deletedAppError(name string) error {
	return newAppError(
		fmt.Sprintf("app %q has already been deleted", name),
		goerrors.CategoryBadInput,
		AppErrorDeleted,
	)
}

func instanceMismatchError(name string) error {
	return newAppError(
		fmt.Sprintf("app %q is not the instance registered under that name", name),
		goerrors.CategoryBadInput,
		AppErrorInstanceMismatch,
	)
}

func invalidAppError() error {
	return newAppError(
		"app argument must be a non-nil app created by a registry",
		goerrors.CategoryBadInput,
		AppErrorInvalidApp,
	)
}

func invalidServiceKeyError() error {
	return newAppError(
		"service key must be a non-empty string",
		goerrors.CategoryBadInput,
		AppErrorInvalidServiceKey,
	)
}

func serviceFactoryError(app string, key string, cause error) error {
	return ensureAppErrorEnvelope(
		goerrors.Wrap(cause, goerrors.CategoryOperation, fmt.Sprintf("app %q: service %q factory failed", app, key)).
			WithTextCode(AppErrorServiceFactoryFailed),
	)
}

func serviceTypeMismatchError(app string, key string, want any, got any) error {
	return newAppError(
		fmt.Sprintf("app %q: service %q holds %T, expected %T", app, key, got, want),
		goerrors.CategoryOperation,
		AppErrorServiceTypeMismatch,
	)
}

func newAppError(message string, category goerrors.Category, textCode string) *goerrors.Error {
	return ensureAppErrorEnvelope(
		goerrors.New(message, category).
			WithTextCode(textCode),
	)
}

func appErrorMapper(err error) *goerrors.Error {
	if err == nil {
		return nil
	}

	var richErr *goerrors.Error
	if goerrors.As(err, &richErr) {
		return ensureAppErrorEnvelope(richErr)
	}

	msg := strings.ToLower(strings.TrimSpace(err.Error()))
	switch {
	case strings.Contains(msg, "already exists"):
		return newAppError(err.Error(), goerrors.CategoryConflict, AppErrorAlreadyExists)
	case strings.Contains(msg, "does not exist"), strings.Contains(msg, "not found"):
		return newAppError(err.Error(), goerrors.CategoryNotFound, AppErrorNotFound)
	case strings.Contains(msg, "required"), strings.Contains(msg, "invalid"), strings.Contains(msg, "must be"):
		return newAppError(err.Error(), goerrors.CategoryBadInput, AppErrorInvalidConfig)
	}

	mapped := goerrors.MapToError(err, goerrors.DefaultErrorMappers())
	return ensureAppErrorEnvelope(mapped)
}

func ensureAppErrorEnvelope(err *goerrors.Error) *goerrors.Error {
	if err == nil {
		return nil
	}
	if err.Code == 0 {
		err.Code = appHTTPStatus(err.Category)
	}
	if strings.TrimSpace(err.TextCode) == "" {
		err.TextCode = defaultAppTextCode(err.Category)
	}
	if err.Category == goerrors.CategoryInternal && strings.TrimSpace(err.Message) == "" {
		err.Message = "An unexpected error occurred"
	}
	return err
}

func defaultAppTextCode(category goerrors.Category) string {
	switch category {
	case goerrors.CategoryBadInput, goerrors.CategoryValidation:
		return AppErrorInvalidConfig
	case goerrors.CategoryNotFound:
		return AppErrorNotFound
	case goerrors.CategoryConflict:
		return AppErrorAlreadyExists
	case goerrors.CategoryOperation:
		return AppErrorServiceFactoryFailed
	default:
		return AppErrorInternal
	}
}

func appHTTPStatus(category goerrors.Category) int {
	switch category {
	case goerrors.CategoryBadInput, goerrors.CategoryValidation:
		return http.StatusBadRequest
	case goerrors.CategoryNotFound:
		return http.StatusNotFound
	case goerrors.CategoryConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
