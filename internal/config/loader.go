package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Environment variable prefix for astrild configuration.
const envPrefix = "ASTRILD"

// ConfigFileName is the project configuration file, at the project root.
const ConfigFileName = "astrild.yaml"

// Loader handles loading and merging configuration from multiple sources.
type Loader struct {
	v *viper.Viper
}

// NewLoader creates a new configuration loader.
func NewLoader() *Loader {
	v := viper.New()

	// Set up environment variable bindings
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Bind specific environment variables
	_ = v.BindEnv("output", "ASTRILD_OUTPUT")
	_ = v.BindEnv("site", "ASTRILD_SITE")
	_ = v.BindEnv("srcdir", "ASTRILD_SRCDIR")
	_ = v.BindEnv("outdir", "ASTRILD_OUTDIR")

	return &Loader{v: v}
}

// Load loads configuration from the given file path.
// A missing file is not an error: the project then runs on defaults plus
// environment variables. Environment variables take precedence over file values.
func (l *Loader) Load(configFile string) (*Project, error) {
	expandedPath, err := ExpandPath(configFile)
	if err != nil {
		return nil, fmt.Errorf("expanding config path: %w", err)
	}

	l.v.SetConfigFile(expandedPath)
	l.v.SetConfigType("yaml")

	if err := l.v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("reading config file: %w", err)
			}
		}
		// Config file not found is OK, we'll use defaults + env vars
	}

	var cfg Project
	if err := l.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}

// LoadWithDefaults loads configuration, applies defaults, and validates.
func (l *Loader) LoadWithDefaults(configFile string) (*Project, error) {
	cfg, err := l.Load(configFile)
	if err != nil {
		return nil, err
	}

	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ConfigFileExists checks if the config file exists.
func ConfigFileExists(configFile string) (bool, error) {
	expandedPath, err := ExpandPath(configFile)
	if err != nil {
		return false, err
	}

	_, err = os.Stat(expandedPath)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}

	return true, nil
}
