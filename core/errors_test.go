package core

import (
	stderrors "errors"
	"net/http"
	"testing"

	goerrors "github.com/goliatone/go-errors"
)

func TestAppErrorMapper_AssignsStableCodes(t *testing.T) {
	cases := []struct {
		err      error
		textCode string
		category goerrors.Category
		status   int
	}{
		{
			err:      stderrors.New(`app "x" already exists`),
			textCode: AppErrorAlreadyExists,
			category: goerrors.CategoryConflict,
			status:   http.StatusConflict,
		},
		{
			err:      stderrors.New("record not found"),
			textCode: AppErrorNotFound,
			category: goerrors.CategoryNotFound,
			status:   http.StatusNotFound,
		},
		{
			err:      stderrors.New("core: default_app_name is required"),
			textCode: AppErrorInvalidConfig,
			category: goerrors.CategoryBadInput,
			status:   http.StatusBadRequest,
		},
	}
	for _, tc := range cases {
		mapped := appErrorMapper(tc.err)
		if mapped.TextCode != tc.textCode {
			t.Fatalf("%v: expected text code %q, got %q", tc.err, tc.textCode, mapped.TextCode)
		}
		if mapped.Category != tc.category {
			t.Fatalf("%v: expected category %q, got %q", tc.err, tc.category, mapped.Category)
		}
		if mapped.Code != tc.status {
			t.Fatalf("%v: expected status %d, got %d", tc.err, tc.status, mapped.Code)
		}
	}

	if appErrorMapper(nil) != nil {
		t.Fatalf("expected nil error to map to nil")
	}
}

func TestAppErrorMapper_KeepsRichErrors(t *testing.T) {
	original := notFoundError("missing")
	mapped := appErrorMapper(original)
	if mapped.TextCode != AppErrorNotFound {
		t.Fatalf("expected not found code to survive mapping, got %q", mapped.TextCode)
	}

	bare := goerrors.New("unexpected", goerrors.CategoryInternal)
	mapped = appErrorMapper(bare)
	if mapped.TextCode != AppErrorInternal {
		t.Fatalf("expected internal fallback code, got %q", mapped.TextCode)
	}
	if mapped.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 status, got %d", mapped.Code)
	}
}

func TestIsInvalidArgument(t *testing.T) {
	invalid := []error{
		invalidNameError(""),
		invalidCredentialError("nil"),
		invalidOptionsError("bad"),
		invalidConfigError("env var FIREBASE_CONFIG", stderrors.New("bad json")),
		alreadyExistsError("a"),
		notFoundError("a"),
		deletedAppError("a"),
		instanceMismatchError("a"),
		invalidAppError(),
		invalidServiceKeyError(),
	}
	for _, err := range invalid {
		if !IsInvalidArgument(err) {
			t.Fatalf("expected %v to be an invalid argument", err)
		}
	}

	for _, err := range []error{
		serviceFactoryError("a", "k", stderrors.New("boom")),
		serviceTypeMismatchError("a", "k", "", 1),
		stderrors.New("plain"),
		nil,
	} {
		if IsInvalidArgument(err) {
			t.Fatalf("expected %v not to be an invalid argument", err)
		}
	}
}

func TestInvalidConfigError_WrapsCause(t *testing.T) {
	cause := stderrors.New("unexpected end of input")
	err := invalidConfigError("file \"x.json\"", cause)
	if !stderrors.Is(err, cause) {
		t.Fatalf("expected cause to be reachable, got %v", err)
	}
	expectTextCode(t, err, AppErrorInvalidConfig)
}
