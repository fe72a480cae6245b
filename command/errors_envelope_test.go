package command

import (
	"context"
	"testing"

	"github.com/goliatone/go-apps/core"
	goerrors "github.com/goliatone/go-errors"
)

func TestDeleteAppMessage_ValidateReturnsRichError(t *testing.T) {
	err := (DeleteAppMessage{}).Validate()
	if err == nil {
		t.Fatalf("expected validation error")
	}

	var rich *goerrors.Error
	if !goerrors.As(err, &rich) {
		t.Fatalf("expected go-errors envelope, got %T", err)
	}
	if rich.Category != goerrors.CategoryValidation {
		t.Fatalf("expected validation category, got %q", rich.Category)
	}
	if rich.TextCode != core.AppErrorInvalidName {
		t.Fatalf("expected %q text code, got %q", core.AppErrorInvalidName, rich.TextCode)
	}
	if !core.IsInvalidArgument(err) {
		t.Fatalf("expected validation error to be an invalid argument")
	}
}

func TestCreateAppCommand_NilRegistryReturnsRichError(t *testing.T) {
	var cmd *CreateAppCommand
	err := cmd.Execute(context.Background(), CreateAppMessage{})
	if err == nil {
		t.Fatalf("expected command dependency error")
	}

	var rich *goerrors.Error
	if !goerrors.As(err, &rich) {
		t.Fatalf("expected go-errors envelope, got %T", err)
	}
	if rich.Category != goerrors.CategoryInternal {
		t.Fatalf("expected internal category, got %q", rich.Category)
	}
	if rich.TextCode != core.AppErrorInternal {
		t.Fatalf("expected %q text code, got %q", core.AppErrorInternal, rich.TextCode)
	}
}
