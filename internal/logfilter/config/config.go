package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/haukened/lognamefilter/internal/logfilter/filter"
)

// envPrefix is the prefix for every environment variable read by Load.
const envPrefix = "LOGFILTER_"

// AppConfig holds configuration values parsed from an optional file and environment variables.
type AppConfig struct {
	// ConfigFile is an optional YAML, JSON or TOML file read before the environment.
	ConfigFile string `koanf:"config_file"`

	// Env is the runtime environment, either "dev" or "prod".
	Env string `koanf:"env" validate:"required,oneof=dev prod"`

	// LogLevel controls log verbosity: "debug", "info", "warn", or "error".
	LogLevel string `koanf:"log_level" validate:"required,oneof=debug info warn error"`

	// MarkerSubstring denies log events whose logger name contains this text.
	MarkerSubstring string `koanf:"marker_substring" validate:"required"`
}

// DEFAULT_APP_CONFIG defines the default application configuration settings.
var DEFAULT_APP_CONFIG = AppConfig{
	Env:             "prod",
	LogLevel:        "info",
	MarkerSubstring: filter.DefaultMarker,
}

// envLoader is a function that loads environment variables with the prefix "LOGFILTER_",
// lowercasing the keys and removing the prefix, and can be mocked in tests.
// Values are kept verbatim so a marker may carry leading or trailing spaces.
var envLoader = func(k *koanf.Koanf) error {
	return k.Load(env.Provider(".", env.Opt{
		Prefix: envPrefix,
		TransformFunc: func(key, value string) (string, any) {
			return strings.ToLower(strings.TrimPrefix(key, envPrefix)), value
		},
	}), nil)
}

// defaultLoader loads default configuration values into the provided Koanf instance
// using the structs provider and the DEFAULT_APP_CONFIG struct.
var defaultLoader = func(k *koanf.Koanf) error {
	return k.Load(structs.Provider(DEFAULT_APP_CONFIG, "koanf"), nil)
}

// fileLoader loads the file named by LOGFILTER_CONFIG_FILE, if set.
// The parser is picked from the file extension.
var fileLoader = func(k *koanf.Koanf) error {
	path := strings.TrimSpace(os.Getenv(envPrefix + "CONFIG_FILE"))
	if path == "" {
		return nil
	}
	return loadFile(k, path)
}

// loadFile reads a single config file into k.
func loadFile(k *koanf.Koanf, path string) error {
	var parser koanf.Parser
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	case ".toml":
		parser = toml.Parser()
	default:
		return fmt.Errorf("unsupported config file extension: %q", filepath.Ext(path))
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return fmt.Errorf("error reading %s: %w", path, err)
	}
	return nil
}

// Load reads defaults, then the optional config file, then environment variables,
// and returns a validated AppConfig. Later sources override earlier ones.
func Load() (*AppConfig, error) {
	k := koanf.New(".")

	err := defaultLoader(k)
	if err != nil {
		return nil, fmt.Errorf("error loading default config: %w", err)
	}

	err = fileLoader(k)
	if err != nil {
		return nil, fmt.Errorf("error loading config file: %w", err)
	}

	err = envLoader(k)
	if err != nil {
		return nil, fmt.Errorf("error loading env: %w", err)
	}

	var cfg AppConfig

	// Unmarshal the loaded configuration into AppConfig struct.
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	validate := validator.New(validator.WithRequiredStructEnabled())

	err = validate.Struct(&cfg)
	if err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	return &cfg, nil
}
