package auth

import (
	"fmt"

	"github.com/goliatone/go-apps/core"
	"github.com/tidwall/gjson"
)

// NewFromFile loads a service account key or an authorized user file,
// picking the credential type from the file's "type" field.
func NewFromFile(path string, opts ...Option) (core.Credential, error) {
	data, err := readCredentialFile("credential", path)
	if err != nil {
		return nil, err
	}
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("auth: credential file %q is not valid JSON", path)
	}
	switch kind := gjson.GetBytes(data, "type").String(); kind {
	case serviceAccountType:
		return NewCertificate(data, opts...)
	case authorizedUserType:
		return NewRefreshToken(data, opts...)
	default:
		return nil, fmt.Errorf("auth: credential file %q has unsupported type %q", path, kind)
	}
}
