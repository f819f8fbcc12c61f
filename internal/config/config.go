package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the top-level funnelplan configuration.
type Config struct {
	DBPath string `mapstructure:"db_path"`
	Draft  Draft  `mapstructure:"draft"`
	Calc   Calc   `mapstructure:"calc"`
	Output Output `mapstructure:"output"`
	Log    Log    `mapstructure:"log"`
}

// Draft selects and configures the wizard draft store.
type Draft struct {
	Backend       string `mapstructure:"backend"`
	RedisAddr     string `mapstructure:"redis_addr"`
	RedisPassword string `mapstructure:"redis_password"`
	RedisDB       int    `mapstructure:"redis_db"`
	KeyPrefix     string `mapstructure:"key_prefix"`

	// TTL expires untouched redis drafts; 0 keeps them.
	TTL time.Duration `mapstructure:"ttl"`
}

// Calc configures batch metric calculation.
type Calc struct {
	Workers int `mapstructure:"workers"`
}

// Output defines output preferences.
type Output struct {
	Color bool `mapstructure:"color"`
	Width int  `mapstructure:"width"`
}

// Log configures the CLI logger.
type Log struct {
	Level string `mapstructure:"level"`
}

// expandPath replaces a leading ~ with the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// Load reads configuration from the given path (or the default location)
// and returns a Config with all defaults applied. Environment variables
// prefixed with FUNNELPLAN_ override file values.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()

	v.SetDefault("db_path", filepath.Join(DefaultConfigDir, DefaultDBName))
	v.SetDefault("draft.backend", DefaultDraft.Backend)
	v.SetDefault("draft.redis_addr", DefaultDraft.RedisAddr)
	v.SetDefault("draft.redis_password", DefaultDraft.RedisPassword)
	v.SetDefault("draft.redis_db", DefaultDraft.RedisDB)
	v.SetDefault("draft.key_prefix", DefaultDraft.KeyPrefix)
	v.SetDefault("draft.ttl", DefaultDraft.TTL)
	v.SetDefault("calc.workers", DefaultCalc.Workers)
	v.SetDefault("output.color", DefaultOutput.Color)
	v.SetDefault("output.width", DefaultOutput.Width)
	v.SetDefault("log.level", DefaultLogLevel)

	v.SetEnvPrefix("funnelplan")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(expandPath(cfgFile))
	} else {
		configDir := expandPath(DefaultConfigDir)
		v.AddConfigPath(configDir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	// Read config file if it exists; missing file is not an error.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			if !os.IsNotExist(err) {
				return nil, err
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	cfg.DBPath = expandPath(cfg.DBPath)
	if cfg.Calc.Workers < 1 {
		cfg.Calc.Workers = 1
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports configuration values that cannot be used.
func (c *Config) Validate() error {
	switch c.Draft.Backend {
	case BackendSQLite, BackendRedis, BackendMemory:
	default:
		return fmt.Errorf("unknown draft backend %q (want sqlite, redis or memory)", c.Draft.Backend)
	}
	return nil
}

// DBPath returns the full path to the default SQLite database.
func DBPath() string {
	return filepath.Join(expandPath(DefaultConfigDir), DefaultDBName)
}

// ConfigDir returns the expanded configuration directory.
func ConfigDir() string {
	return expandPath(DefaultConfigDir)
}
