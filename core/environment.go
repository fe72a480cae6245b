package core

import (
	"os"
	"strings"
)

// OSEnvironment reads from the process environment.
type OSEnvironment struct{}

func (OSEnvironment) Lookup(key string) (string, bool) {
	return os.LookupEnv(key)
}

// MapEnvironment is a fixed set of variables, used by tests and by callers
// that load variables from a dotenv file.
type MapEnvironment map[string]string

func (m MapEnvironment) Lookup(key string) (string, bool) {
	if m == nil {
		return "", false
	}
	value, ok := m[key]
	return value, ok
}

func lookupTrimmed(env Environment, key string) string {
	if env == nil {
		return ""
	}
	value, ok := env.Lookup(key)
	if !ok {
		return ""
	}
	return strings.TrimSpace(value)
}
