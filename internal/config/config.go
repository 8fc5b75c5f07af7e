// Package config loads the movers command configuration.
//
// Values are resolved from, in increasing priority: built-in defaults, an
// optional YAML file, a .env file and MOVERS_* environment variables.
// Command line flags are applied on top by the caller.
package config

import (
	"encoding/json"
	stdErrors "errors"
	"io/fs"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/invopop/jsonschema"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/rxtech-lab/argo-movers/pkg/errors"
	"github.com/rxtech-lab/argo-movers/pkg/marketdata/provider"
)

const (
	// EnvPrefix prefixes every environment variable read by Load.
	EnvPrefix = "MOVERS"
	// DefaultTimeout bounds a single request to the market data endpoint.
	DefaultTimeout = 10 * time.Second
	// SchemaFileName is referenced from the sample YAML header.
	SchemaFileName = "movers-config.json"
)

const (
	keyEndpoint = "endpoint"
	keyAPIKey   = "api_key"
	keyTimeout  = "timeout"
)

// Config holds the settings needed to reach the market data endpoint.
type Config struct {
	Endpoint string        `mapstructure:"endpoint" json:"endpoint" yaml:"endpoint" jsonschema:"title=Endpoint,description=Most active stocks endpoint,format=uri" validate:"required,url"`
	APIKey   string        `mapstructure:"api_key" json:"api_key" yaml:"api_key" jsonschema:"title=API Key,description=Financial Modeling Prep API key,required" validate:"required"`
	Timeout  time.Duration `mapstructure:"timeout" json:"timeout" yaml:"timeout" jsonschema:"title=Timeout,description=Request timeout such as 10s or 1m,type=string,default=10s" validate:"gt=0"`
}

// sampleConfig mirrors Config with the timeout written as a duration string.
type sampleConfig struct {
	Endpoint string `yaml:"endpoint"`
	APIKey   string `yaml:"api_key"`
	Timeout  string `yaml:"timeout"`
}

// Default returns the configuration used when nothing else is provided.
func Default() Config {
	return Config{
		Endpoint: provider.DefaultFMPEndpoint,
		APIKey:   "",
		Timeout:  DefaultTimeout,
	}
}

// Load resolves the configuration. An empty path skips the YAML file. The
// dotenv files default to ".env"; missing dotenv files are ignored. Load does
// not validate; call Validate once flag overrides have been applied.
func Load(path string, dotenvFiles ...string) (*Config, error) {
	if len(dotenvFiles) == 0 {
		dotenvFiles = []string{".env"}
	}

	for _, file := range dotenvFiles {
		if err := godotenv.Load(file); err != nil && !stdErrors.Is(err, fs.ErrNotExist) {
			return nil, errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "failed to load env file %s", file)
		}
	}

	v := viper.New()

	defaults := Default()
	v.SetDefault(keyEndpoint, defaults.Endpoint)
	v.SetDefault(keyAPIKey, defaults.APIKey)
	v.SetDefault(keyTimeout, defaults.Timeout)

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")

		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "failed to read config file %s", path)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := bindEnv(v, keyEndpoint, keyAPIKey, keyTimeout); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfiguration, "unable to decode config", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration can be used to build a provider.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid configuration", err)
	}

	return nil
}

// Schema returns the JSON schema describing the YAML config file.
func Schema() (string, error) {
	r := new(jsonschema.Reflector)
	r.DoNotReference = true
	schema := r.Reflect(&Config{})

	schemaBytes, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeUnknown, "failed to marshal config schema", err)
	}

	return string(schemaBytes), nil
}

// SampleYAML returns a config file populated with the defaults.
func SampleYAML() (string, error) {
	defaults := Default()

	yamlBytes, err := yaml.Marshal(sampleConfig{
		Endpoint: defaults.Endpoint,
		APIKey:   defaults.APIKey,
		Timeout:  defaults.Timeout.String(),
	})
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeUnknown, "failed to marshal sample config", err)
	}

	return "# yaml-language-server: $schema=" + SchemaFileName + "\n" + string(yamlBytes), nil
}

func bindEnv(v *viper.Viper, keys ...string) error {
	for _, key := range keys {
		if err := v.BindEnv(key); err != nil {
			return errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "could not bind env var for key %s", key)
		}
	}

	return nil
}
