package core

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// ConfigResolver turns the options given to Registry.Create into the options
// attached to the App.
type ConfigResolver struct {
	EnvVar string
	Keys   []string
	Logger Logger
}

func NewConfigResolver(cfg Config, logger Logger) *ConfigResolver {
	return &ConfigResolver{
		EnvVar: strings.TrimSpace(cfg.ConfigEnvVar),
		Keys:   append([]string(nil), cfg.OptionKeys...),
		Logger: logger,
	}
}

// Resolve returns explicit unchanged when it is non-nil, even if empty.
// Otherwise options are read from the config env var, which holds either a
// JSON object literal or the path of a JSON file. Only a value whose first
// byte is '{' is a literal; " {...}" is read as a path. A blank value means
// no options. Keys outside the recognized set are dropped.
func (r *ConfigResolver) Resolve(explicit Options, env Environment) (Options, error) {
	if explicit != nil {
		return explicit.Clone(), nil
	}
	if r == nil || r.EnvVar == "" {
		return Options{}, nil
	}

	if lookupTrimmed(env, r.EnvVar) == "" {
		return Options{}, nil
	}
	value, _ := env.Lookup(r.EnvVar)

	source := fmt.Sprintf("env var %s", r.EnvVar)
	var data []byte
	if strings.HasPrefix(value, "{") {
		data = []byte(value)
	} else {
		source = fmt.Sprintf("file %q (env var %s)", value, r.EnvVar)
		raw, err := os.ReadFile(value)
		if err != nil {
			return nil, invalidConfigError(source, err)
		}
		data = raw
	}

	parsed, err := parseConfigObject(data)
	if err != nil {
		return nil, invalidConfigError(source, err)
	}

	resolved := parsed.filter(r.Keys)
	if dropped := len(parsed) - len(resolved); dropped > 0 && r.Logger != nil {
		r.Logger.Debug("ignored unrecognized app options",
			"source", source,
			"dropped", dropped,
		)
	}
	return resolved, nil
}

func parseConfigObject(data []byte) (Options, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, fmt.Errorf("core: configuration is empty")
	}
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("core: configuration is not valid JSON")
	}
	result := gjson.ParseBytes(data)
	if !result.IsObject() {
		return nil, fmt.Errorf("core: configuration must be a JSON object")
	}
	values, ok := jsonValue(result).(map[string]any)
	if !ok {
		return nil, fmt.Errorf("core: configuration must be a JSON object")
	}
	return Options(values), nil
}

// jsonValue converts a parsed value into Go values. Integers that fit int64
// stay integers; any other number that float64 cannot hold exactly is kept as
// a json.Number.
func jsonValue(result gjson.Result) any {
	switch {
	case result.IsObject():
		out := map[string]any{}
		result.ForEach(func(key, value gjson.Result) bool {
			out[key.String()] = jsonValue(value)
			return true
		})
		return out
	case result.IsArray():
		out := []any{}
		result.ForEach(func(_, value gjson.Result) bool {
			out = append(out, jsonValue(value))
			return true
		})
		return out
	}
	switch result.Type {
	case gjson.Null:
		return nil
	case gjson.Number:
		return jsonNumber(strings.TrimSpace(result.Raw))
	default:
		return result.Value()
	}
}

func jsonNumber(raw string) any {
	if !strings.ContainsAny(raw, ".eE") {
		if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
			return n
		}
		return json.Number(raw)
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return f
	}
	return json.Number(raw)
}
