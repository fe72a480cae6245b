package core

import "strings"

const RedactedValue = "[REDACTED]"

// RedactOptions returns a deep copy of options with secret-looking values
// replaced by RedactedValue. Nested maps and slices are walked.
func RedactOptions(options Options) Options {
	if len(options) == 0 {
		return Options{}
	}
	return Options(redactSensitiveMap(options.Clone()))
}

func redactSensitiveMap(source map[string]any) map[string]any {
	target := make(map[string]any, len(source))
	for key, value := range source {
		if shouldRedactKey(key) {
			target[key] = RedactedValue
			continue
		}
		target[key] = redactSensitiveValue(value)
	}
	return target
}

func redactSensitiveValue(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		return redactSensitiveMap(typed)
	case Options:
		return Options(redactSensitiveMap(typed))
	case []any:
		out := make([]any, len(typed))
		for i := range typed {
			out[i] = redactSensitiveValue(typed[i])
		}
		return out
	default:
		return value
	}
}

func shouldRedactKey(key string) bool {
	key = strings.ToLower(strings.TrimSpace(key))
	if key == "" || isTraceabilityKey(key) {
		return false
	}
	sensitiveTokens := []string{
		"password",
		"secret",
		"token",
		"private_key",
		"privatekey",
		"api_key",
		"apikey",
		"credential",
		"authvariable",
		"auth_variable",
	}
	for _, token := range sensitiveTokens {
		if strings.Contains(key, token) {
			return true
		}
	}
	return false
}

func isTraceabilityKey(key string) bool {
	switch key {
	case "app_name",
		"app_id",
		"project_id",
		"credential_kind",
		"credentials_file",
		"error_text_code":
		return true
	default:
		return false
	}
}
