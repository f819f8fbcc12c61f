// Package config provides configuration loading and defaults for funnelplan.
package config

// DefaultConfigDir is the default location for funnelplan configuration.
const DefaultConfigDir = "~/.config/funnelplan"

// DefaultDBName is the filename for the SQLite database.
const DefaultDBName = "funnelplan.db"

// DefaultConfigFile is the filename for the YAML config.
const DefaultConfigFile = "config.yaml"

// Draft backends.
const (
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// DefaultDraft holds the default draft store settings.
var DefaultDraft = Draft{
	Backend:   BackendSQLite,
	RedisAddr: "localhost:6379",
	RedisDB:   0,
	KeyPrefix: "funnelplan:",
}

// DefaultCalc holds the default batch calculation settings.
var DefaultCalc = Calc{
	Workers: 4,
}

// DefaultOutput holds the default output preferences.
var DefaultOutput = Output{
	Color: true,
	Width: 80,
}

// DefaultLogLevel is the zerolog level used when none is configured.
const DefaultLogLevel = "warn"
