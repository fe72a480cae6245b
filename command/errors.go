package command

import (
	"net/http"

	"github.com/goliatone/go-apps/core"
	goerrors "github.com/goliatone/go-errors"
)

func commandDependencyError(message string) error {
	return goerrors.New(message, goerrors.CategoryInternal).
		WithCode(http.StatusInternalServerError).
		WithTextCode(core.AppErrorInternal)
}

func commandValidationError(field string, message string, textCode string) error {
	return goerrors.NewValidation("command: validation failed", goerrors.FieldError{
		Field:   field,
		Message: message,
	}).
		WithCode(http.StatusBadRequest).
		WithTextCode(textCode).
		WithSeverity(goerrors.SeverityError)
}
