// Package core contains the app registry: named App instances, the
// resolution of their options from explicit values or the environment, the
// credential contract and the per-app service cache. Credential
// implementations live in the auth package; core must not depend on them.
package core
