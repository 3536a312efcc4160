package config

import (
	"os"
	"time"

	"blackjack-server/internal/util"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

const defaultConfigFile = "config.yaml"

// Config provides configuration for the blackjack server
type Config struct {
	loaded bool
	// Port is the TCP port seats connect to
	Port int `yaml:"port" envconfig:"port"`
	// Seats is the table capacity
	Seats int `yaml:"seats" envconfig:"seats"`
	// TurnTimeout is how many seconds a seat has to answer a prompt before it stands
	// automatically. Zero waits forever.
	TurnTimeout int `yaml:"turnTimeout" envconfig:"turn_timeout"`
	// Shuffler is either "math" (seeded once per process) or "crypto"
	Shuffler string `yaml:"shuffler" envconfig:"shuffler"`
	HTTP     struct {
		// Addr enables the status API and websocket seats when set
		Addr string `yaml:"addr" envconfig:"addr"`
	} `yaml:"http"`
	PGDSN          string `yaml:"pgDsn" envconfig:"pg_dsn"`
	MigrationsPath string `yaml:"migrationsPath" envconfig:"migrations_path"`
	Log            struct {
		Level             string `yaml:"level" envconfig:"level"`
		DisableAccessLogs bool   `yaml:"disableAccessLogs" envconfig:"disable_access_logs"`
	} `yaml:"log"`
}

// TurnTimeoutDuration returns TurnTimeout as a duration
func (c Config) TurnTimeoutDuration() time.Duration {
	return time.Duration(c.TurnTimeout) * time.Second
}

var config Config

// DefaultConfig returns the defaults applied before the file and environment
func DefaultConfig() Config {
	c := Config{
		Port:           12345,
		Seats:          5,
		TurnTimeout:    0,
		Shuffler:       "math",
		MigrationsPath: "./sql",
	}
	c.Log.Level = "info"

	return c
}

// Instance returns a singleton instance
// If the config hasn't been loaded, it will be loaded
func Instance() Config {
	if !config.loaded {
		if err := Load(); err != nil {
			panic(err)
		}
	}

	return config
}

// Load will load the configuration
// Defaults are overridden by the YAML file, which is overridden by BJS_* environment variables.
// A missing config.yaml is fine; a missing file named by BJS_CONFIG_FILE is not.
func Load() error {
	cfg := DefaultConfig()

	configFile := util.Getenv("BJS_CONFIG_FILE", defaultConfigFile)
	file, err := os.Open(configFile)
	switch {
	case err == nil:
		defer file.Close()
		if err := yaml.NewDecoder(file).Decode(&cfg); err != nil {
			return err
		}
	case os.IsNotExist(err) && configFile == defaultConfigFile:
	default:
		return err
	}

	if err := envconfig.Process("bjs", &cfg); err != nil {
		return err
	}

	cfg.loaded = true
	config = cfg
	return nil
}
