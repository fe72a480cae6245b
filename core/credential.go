package core

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"golang.org/x/oauth2"
)

// ValidateCredential checks that cred can be attached to an App. A nil
// interface is accepted and means "use the default credential"; the caller
// resolves it. Typed nil values and credentials failing their own structural
// validation are rejected.
func ValidateCredential(cred Credential) (Credential, error) {
	if cred == nil {
		return nil, nil
	}
	if isNilValue(cred) {
		return nil, invalidCredentialError(fmt.Sprintf("%T is nil", cred))
	}
	if strings.TrimSpace(cred.Kind()) == "" {
		return nil, invalidCredentialError(fmt.Sprintf("%T does not report a credential kind", cred))
	}
	if validator, ok := cred.(CredentialValidator); ok {
		if err := validator.Validate(); err != nil {
			return nil, invalidCredentialError(err.Error())
		}
	}
	return cred, nil
}

// ValidateCredentialValue is ValidateCredential for untyped input, such as
// values decoded from command payloads. Anything that does not implement
// Credential is rejected.
func ValidateCredentialValue(value any) (Credential, error) {
	if value == nil {
		return nil, nil
	}
	cred, ok := value.(Credential)
	if !ok {
		return nil, invalidCredentialError(fmt.Sprintf("%T does not implement a credential", value))
	}
	return ValidateCredential(cred)
}

func isNilValue(value any) bool {
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Func, reflect.Interface, reflect.Chan:
		return rv.IsNil()
	default:
		return false
	}
}

// unresolvedCredential stands in when no default credential factory is
// configured. It fails on first use rather than at app creation.
type unresolvedCredential struct {
	err error
}

func (unresolvedCredential) Kind() string { return "unresolved" }

func (c unresolvedCredential) TokenSource(context.Context) (oauth2.TokenSource, error) {
	if c.err != nil {
		return nil, c.err
	}
	return nil, fmt.Errorf("core: no default credential configured")
}
