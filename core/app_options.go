package core

import (
	"fmt"
	"reflect"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/mitchellh/copystructure"
)

const (
	OptionDatabaseURL                  = "databaseURL"
	OptionStorageBucket                = "storageBucket"
	OptionProjectID                    = "projectId"
	OptionDatabaseAuthVariableOverride = "databaseAuthVariableOverride"
	OptionServiceAccountID             = "serviceAccountId"
	OptionHTTPTimeout                  = "httpTimeout"
)

// RecognizedOptionKeys lists the option keys honored when options are read
// from the environment.
var RecognizedOptionKeys = []string{
	OptionDatabaseAuthVariableOverride,
	OptionDatabaseURL,
	OptionHTTPTimeout,
	OptionProjectID,
	OptionServiceAccountID,
	OptionStorageBucket,
}

// Options configures an App. A nil Options means no options were given and
// the environment should be consulted; a non-nil empty Options is explicit.
type Options map[string]any

// Clone returns a copy of the options. JSON shaped containers (maps, []any)
// and slices or maps of plain scalars are copied; every other value, such as
// a struct or a pointer, is kept as given.
func (o Options) Clone() Options {
	if o == nil {
		return nil
	}
	return Options(cloneOptionMap(o))
}

func cloneOptionMap(source map[string]any) map[string]any {
	if source == nil {
		return nil
	}
	out := make(map[string]any, len(source))
	for key, value := range source {
		out[key] = cloneOptionValue(value)
	}
	return out
}

func cloneOptionValue(value any) any {
	switch typed := value.(type) {
	case Options:
		return typed.Clone()
	case map[string]any:
		return cloneOptionMap(typed)
	case []any:
		if typed == nil {
			return typed
		}
		out := make([]any, len(typed))
		for i := range typed {
			out[i] = cloneOptionValue(typed[i])
		}
		return out
	}
	if isScalarContainer(reflect.TypeOf(value)) {
		if copied, err := copystructure.Copy(value); err == nil {
			return copied
		}
	}
	return value
}

// isScalarContainer reports whether t is a slice or map whose keys and
// elements are, recursively, scalars. Such values copy without loss.
func isScalarContainer(t reflect.Type) bool {
	if t == nil {
		return false
	}
	switch t.Kind() {
	case reflect.Slice:
		return isScalarType(t.Elem())
	case reflect.Map:
		return isScalarType(t.Key()) && isScalarType(t.Elem())
	default:
		return false
	}
}

func isScalarType(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	case reflect.Slice, reflect.Map:
		return isScalarContainer(t)
	default:
		return false
	}
}

// OptionsFromValue converts untyped input, such as a decoded command payload,
// into Options. nil stays nil and means "read the environment". Anything but
// a string keyed map is rejected.
func OptionsFromValue(value any) (Options, error) {
	switch typed := value.(type) {
	case nil:
		return nil, nil
	case Options:
		return typed.Clone(), nil
	case map[string]any:
		return Options(typed).Clone(), nil
	default:
		return nil, invalidOptionsError(fmt.Sprintf("%T is not a string keyed map", value))
	}
}

// Get returns the value for key and whether it is present.
func (o Options) Get(key string) (any, bool) {
	if o == nil {
		return nil, false
	}
	value, ok := o[key]
	return value, ok
}

// String returns the value for key when it is a non-empty string.
func (o Options) String(key string) string {
	value, ok := o.Get(key)
	if !ok {
		return ""
	}
	typed, ok := value.(string)
	if !ok {
		return ""
	}
	return typed
}

func (o Options) filter(keys []string) Options {
	out := Options{}
	for _, key := range keys {
		if value, ok := o[key]; ok {
			out[key] = value
		}
	}
	return out
}

// AppConfig is a typed view over the recognized options of an App.
type AppConfig struct {
	DatabaseURL                  string  `mapstructure:"databaseURL"`
	StorageBucket                string  `mapstructure:"storageBucket"`
	ProjectID                    string  `mapstructure:"projectId"`
	ServiceAccountID             string  `mapstructure:"serviceAccountId"`
	DatabaseAuthVariableOverride any     `mapstructure:"databaseAuthVariableOverride"`
	HTTPTimeoutSeconds           float64 `mapstructure:"httpTimeout"`
}

// HTTPTimeout converts the configured timeout into a duration. Zero means
// no timeout was configured.
func (c AppConfig) HTTPTimeout() time.Duration {
	if c.HTTPTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(c.HTTPTimeoutSeconds * float64(time.Second))
}

func decodeAppConfig(options Options) (AppConfig, error) {
	var cfg AppConfig
	if len(options) == 0 {
		return cfg, nil
	}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  &cfg,
		TagName: "mapstructure",
	})
	if err != nil {
		return AppConfig{}, fmt.Errorf("core: build options decoder: %w", err)
	}
	if err := decoder.Decode(map[string]any(options)); err != nil {
		return AppConfig{}, invalidOptionsError(err.Error())
	}
	return cfg, nil
}
