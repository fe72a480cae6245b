package core

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"
)

const (
	DefaultAppName           = "[DEFAULT]"
	DefaultConfigEnvVar      = "FIREBASE_CONFIG"
	DefaultCredentialsEnvVar = "GOOGLE_APPLICATION_CREDENTIALS"
)

// Config controls how a Registry names apps and where it looks for ambient
// configuration.
type Config struct {
	DefaultAppName   string   `koanf:"default_app_name" mapstructure:"default_app_name"`
	ConfigEnvVar     string   `koanf:"config_env_var" mapstructure:"config_env_var"`
	ProjectIDEnvVars []string `koanf:"project_id_env_vars" mapstructure:"project_id_env_vars"`
	OptionKeys       []string `koanf:"option_keys" mapstructure:"option_keys"`
}

func DefaultConfig() Config {
	return Config{
		DefaultAppName:   DefaultAppName,
		ConfigEnvVar:     DefaultConfigEnvVar,
		ProjectIDEnvVars: []string{"GOOGLE_CLOUD_PROJECT", "GCLOUD_PROJECT"},
		OptionKeys:       append([]string(nil), RecognizedOptionKeys...),
	}
}

func (c Config) Validate() error {
	var result *multierror.Error
	if strings.TrimSpace(c.DefaultAppName) == "" {
		result = multierror.Append(result, fmt.Errorf("core: default_app_name is required"))
	}
	if strings.TrimSpace(c.ConfigEnvVar) == "" {
		result = multierror.Append(result, fmt.Errorf("core: config_env_var is required"))
	}
	if len(c.OptionKeys) == 0 {
		result = multierror.Append(result, fmt.Errorf("core: option_keys must list at least one key"))
	}
	for idx, key := range c.OptionKeys {
		if strings.TrimSpace(key) == "" {
			result = multierror.Append(result, fmt.Errorf("core: option_keys[%d] must be a non-empty string", idx))
		}
	}
	return result.ErrorOrNil()
}
