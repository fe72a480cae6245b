// Package auth provides the credential variants an App can be created with:
// service account certificates, refresh tokens, application default
// credentials and static tokens for tests.
package auth
