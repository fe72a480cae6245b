package core

import (
	"context"
	"encoding/json"
	"reflect"
	"testing"
)

var fullConfigOptions = Options{
	OptionDatabaseAuthVariableOverride: map[string]any{"some_key": "some_val"},
	OptionDatabaseURL:                  "https://hipster-chat.firebaseio.mock",
	OptionProjectID:                    "hipster-chat-mock",
	OptionStorageBucket:                "hipster-chat.appspot.mock",
}

func TestRegistry_CreateResolvesOptions(t *testing.T) {
	cases := []struct {
		name     string
		env      MapEnvironment
		explicit Options
		want     Options
	}{
		{
			name: "no config env var",
			env:  MapEnvironment{},
			want: Options{},
		},
		{
			name: "empty config env var",
			env:  MapEnvironment{DefaultConfigEnvVar: ""},
			want: Options{},
		},
		{
			name: "blank config env var",
			env:  MapEnvironment{DefaultConfigEnvVar: "   "},
			want: Options{},
		},
		{
			name: "config file",
			env:  MapEnvironment{DefaultConfigEnvVar: "testdata/firebase_config.json"},
			want: fullConfigOptions,
		},
		{
			name: "partial config file",
			env:  MapEnvironment{DefaultConfigEnvVar: "testdata/firebase_config_partial.json"},
			want: Options{
				OptionDatabaseURL: "https://hipster-chat.firebaseio.mock",
				OptionProjectID:   "hipster-chat-mock",
			},
		},
		{
			name: "unrecognized keys dropped",
			env:  MapEnvironment{DefaultConfigEnvVar: "testdata/firebase_config_invalid_key.json"},
			want: Options{OptionProjectID: "hipster-chat-mock"},
		},
		{
			name: "json literal",
			env:  MapEnvironment{DefaultConfigEnvVar: ` {"databaseURL": "https://literal.firebaseio.mock", "unknown": 1}`},
			want: Options{OptionDatabaseURL: "https://literal.firebaseio.mock"},
		},
		{
			name:     "explicit options win over config file",
			env:      MapEnvironment{DefaultConfigEnvVar: "testdata/firebase_config.json"},
			explicit: Options{OptionStorageBucket: "explicit.appspot.mock"},
			want:     Options{OptionStorageBucket: "explicit.appspot.mock"},
		},
		{
			name:     "explicit empty options skip config file",
			env:      MapEnvironment{DefaultConfigEnvVar: "testdata/firebase_config.json"},
			explicit: Options{},
			want:     Options{},
		},
		{
			name:     "explicit options keep unrecognized keys",
			env:      MapEnvironment{},
			explicit: Options{"custom": "value"},
			want:     Options{"custom": "value"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			registry := newTestRegistry(t, tc.env)
			app := mustCreate(t, registry, newTestCredential(), tc.explicit)
			if got := app.Options(); !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("expected options %#v, got %#v", tc.want, got)
			}
		})
	}
}

func TestRegistry_CreateRejectsInvalidConfig(t *testing.T) {
	cases := map[string]string{
		"empty file":   "testdata/firebase_config_empty.json",
		"invalid file": "testdata/firebase_config_invalid.json",
		"array file":   "testdata/firebase_config_array.json",
		"missing file": "testdata/does_not_exist.json",
		"bad literal":  "{,,",
	}
	for name, value := range cases {
		t.Run(name, func(t *testing.T) {
			registry := newTestRegistry(t, MapEnvironment{DefaultConfigEnvVar: value})
			_, err := registry.Create(context.Background(), newTestCredential(), nil)
			expectTextCode(t, err, AppErrorInvalidConfig)
			if !IsInvalidArgument(err) {
				t.Fatalf("expected invalid config to be an invalid argument")
			}
			if len(registry.List(context.Background())) != 0 {
				t.Fatalf("expected failed create to register nothing")
			}
		})
	}
}

func TestConfigResolver_KeepsJSONNumbersExact(t *testing.T) {
	resolver := NewConfigResolver(DefaultConfig(), stubLogger{})
	env := MapEnvironment{DefaultConfigEnvVar: `{"databaseAuthVariableOverride":{"uid":12345678901234567,"huge":123456789012345678901234567890,"ratio":0.25,"tags":[1,null]},"httpTimeout":30}`}

	got, err := resolver.Resolve(nil, env)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	override := got[OptionDatabaseAuthVariableOverride].(map[string]any)
	if uid, ok := override["uid"].(int64); !ok || uid != 12345678901234567 {
		t.Fatalf("expected exact int64 uid, got %T %v", override["uid"], override["uid"])
	}
	if huge, ok := override["huge"].(json.Number); !ok || huge.String() != "123456789012345678901234567890" {
		t.Fatalf("expected out of range integer as json.Number, got %T %v", override["huge"], override["huge"])
	}
	if ratio, ok := override["ratio"].(float64); !ok || ratio != 0.25 {
		t.Fatalf("expected float ratio, got %T %v", override["ratio"], override["ratio"])
	}
	if tags := override["tags"].([]any); tags[0] != int64(1) || tags[1] != nil {
		t.Fatalf("unexpected array values %#v", tags)
	}
	if got[OptionHTTPTimeout] != int64(30) {
		t.Fatalf("expected integer timeout, got %T %v", got[OptionHTTPTimeout], got[OptionHTTPTimeout])
	}

	app, err := NewApp("numbers", newTestCredential(), got)
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	cfg, err := app.Config()
	if err != nil {
		t.Fatalf("decode config: %v", err)
	}
	if cfg.HTTPTimeoutSeconds != 30 {
		t.Fatalf("expected 30s timeout, got %v", cfg.HTTPTimeoutSeconds)
	}
}

func TestConfigResolver_LiteralMustStartWithBrace(t *testing.T) {
	resolver := NewConfigResolver(DefaultConfig(), stubLogger{})

	_, err := resolver.Resolve(nil, MapEnvironment{DefaultConfigEnvVar: ` {"projectId":"spaced"}`})
	expectTextCode(t, err, AppErrorInvalidConfig)

	got, err := resolver.Resolve(nil, MapEnvironment{DefaultConfigEnvVar: "   "})
	if err != nil || len(got) != 0 {
		t.Fatalf("expected blank env var to mean no options, got %#v, %v", got, err)
	}
}

func TestConfigResolver_CustomEnvVarAndKeys(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ConfigEnvVar = "APP_CONFIG"
	cfg.OptionKeys = []string{OptionStorageBucket}
	resolver := NewConfigResolver(cfg, stubLogger{})

	env := MapEnvironment{
		"APP_CONFIG":        "testdata/firebase_config.json",
		DefaultConfigEnvVar: "testdata/firebase_config_invalid.json",
	}
	got, err := resolver.Resolve(nil, env)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	want := Options{OptionStorageBucket: "hipster-chat.appspot.mock"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %#v, got %#v", want, got)
	}
}

func TestConfigResolver_ExplicitOptionsAreCopied(t *testing.T) {
	resolver := NewConfigResolver(DefaultConfig(), nil)
	nested := map[string]any{"uid": "a"}
	explicit := Options{OptionDatabaseAuthVariableOverride: nested}

	got, err := resolver.Resolve(explicit, MapEnvironment{})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	nested["uid"] = "b"
	override := got[OptionDatabaseAuthVariableOverride].(map[string]any)
	if override["uid"] != "a" {
		t.Fatalf("expected resolved options not to share nested maps, got %v", override["uid"])
	}
}
