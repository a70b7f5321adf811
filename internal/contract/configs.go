package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/recruitready/compscore/schema"
)

// Default values for configuration.
const (
	DefaultConfigKey = "competitiveness"
	DefaultPrecision = 1
	DefaultMaxRules  = 500
	MaxBatchWorkers  = 64
)

// DefaultWorkers is the default number of concurrent workers for batch runs.
var DefaultWorkers = runtime.GOMAXPROCS(0)

// ProfileConfig holds profiling settings.
type ProfileConfig struct {
	Enabled bool
	Prefix  string
}

// Config holds the runtime configuration for the CLI.
// This struct remains the "final, validated" config.
type Config struct {
	ConfigKey        string // Key under which the rule set is stored
	EngineConfigPath string // Local rule-set file; bypasses the config store when set

	Output     schema.OutputMode
	OutputFile string
	Precision  int
	Explain    bool
	Width      int // Terminal width override (0 = auto-detect)

	Workers  int
	MaxRules int

	EditorID string
	Note     string

	MemoBackend   schema.DatabaseBackend
	MemoDBConnect string // Please use env var as this is plaintext

	StoreBackend   schema.DatabaseBackend
	StoreDBConnect string // Please use env var as this is plaintext

	UseEmojis bool // Enable emojis in output headers
	UseColors bool // Enable colored labels in table output
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	ConfigKey        string `mapstructure:"config-key"`
	EngineConfigPath string `mapstructure:"engine-config"`

	Output     string `mapstructure:"output"`
	OutputFile string `mapstructure:"output-file"`
	Precision  int    `mapstructure:"precision"`
	Explain    bool   `mapstructure:"explain"`
	Width      int    `mapstructure:"width"`

	Workers  int `mapstructure:"workers"`
	MaxRules int `mapstructure:"max-rules"`

	Editor string `mapstructure:"editor"`
	Note   string `mapstructure:"note"`

	MemoBackend   string `mapstructure:"memo-backend"`
	MemoDBConnect string `mapstructure:"memo-db-connect"`

	StoreBackend   string `mapstructure:"store-backend"`
	StoreDBConnect string `mapstructure:"store-db-connect"`

	Emoji string `mapstructure:"emoji"`
	Color string `mapstructure:"color"`
}

// Clone returns a copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// ProcessProfilingConfig handles the profiling flag and sets up profiling configuration.
func ProcessProfilingConfig(profile *ProfileConfig, profilePrefix string) error {
	if profilePrefix != "" {
		profile.Enabled = true
		profile.Prefix = profilePrefix
	}
	return nil
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := validateBackendConfigs(cfg, input); err != nil {
		return err
	}
	return nil
}

// validateSimpleInputs processes and validates all non-backend fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.ConfigKey = strings.TrimSpace(input.ConfigKey)
	if cfg.ConfigKey == "" {
		cfg.ConfigKey = DefaultConfigKey
	}
	cfg.EngineConfigPath = strings.TrimSpace(input.EngineConfigPath)
	cfg.OutputFile = input.OutputFile
	cfg.Explain = input.Explain
	cfg.Width = input.Width
	cfg.EditorID = strings.TrimSpace(input.Editor)
	cfg.Note = strings.TrimSpace(input.Note)

	emojis, err := ParseBoolString(input.Emoji)
	if err != nil {
		return fmt.Errorf("invalid --emoji value: %w", err)
	}
	cfg.UseEmojis = emojis

	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	if input.Precision < 1 || input.Precision > 2 {
		return fmt.Errorf("precision must be 1 or 2 (received %d)", input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, parquet", input.Output)
	}

	if input.Workers <= 0 || input.Workers > MaxBatchWorkers {
		return fmt.Errorf("workers must be between 1 and %d (received %d)", MaxBatchWorkers, input.Workers)
	}
	cfg.Workers = input.Workers

	if input.MaxRules <= 0 {
		return fmt.Errorf("max-rules must be greater than 0 (received %d)", input.MaxRules)
	}
	cfg.MaxRules = input.MaxRules

	return nil
}

// validateBackendConfigs validates memo and config store backend settings.
func validateBackendConfigs(cfg *Config, input *ConfigRawInput) error {
	cfg.MemoBackend = schema.DatabaseBackend(strings.ToLower(input.MemoBackend))
	if _, ok := schema.ValidDatabaseBackends[cfg.MemoBackend]; !ok {
		return fmt.Errorf("invalid memo backend '%s'. must be sqlite, mysql, postgresql, none", input.MemoBackend)
	}
	cfg.MemoDBConnect = input.MemoDBConnect
	if err := ValidateDatabaseConnectionString(cfg.MemoBackend, cfg.MemoDBConnect); err != nil {
		return err
	}

	cfg.StoreBackend = schema.DatabaseBackend(strings.ToLower(input.StoreBackend))
	if _, ok := schema.ValidDatabaseBackends[cfg.StoreBackend]; !ok {
		return fmt.Errorf("invalid store backend '%s'. must be sqlite, mysql, postgresql, none", input.StoreBackend)
	}
	cfg.StoreDBConnect = input.StoreDBConnect
	if err := ValidateDatabaseConnectionString(cfg.StoreBackend, cfg.StoreDBConnect); err != nil {
		return err
	}

	// Memo and store must not share a SQLite file: both layers create their
	// own schema and SQLite is limited to one writer.
	if cfg.MemoBackend == schema.SQLiteBackend && cfg.StoreBackend == schema.SQLiteBackend {
		memoPath := cfg.MemoDBConnect
		if memoPath == "" {
			memoPath = GetMemoDBFilePath()
		}
		storePath := cfg.StoreDBConnect
		if storePath == "" {
			storePath = GetStoreDBFilePath()
		}
		if memoPath == storePath {
			return fmt.Errorf("memo and config store must use different SQLite database files. Both resolve to %q", memoPath)
		}
	}

	return nil
}

// ValidateDatabaseConnectionString validates the format of database connection
// strings for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("connection string is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("connection string is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// ParseBoolString interprets yes/no style flag values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "no", "false", "off", "0":
		return false, nil
	case "yes", "true", "on", "1":
		return true, nil
	default:
		return false, fmt.Errorf("expected yes/no (received %q)", s)
	}
}

// appDir returns the per-user compscore data directory, creating it on demand.
func appDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	dir := filepath.Join(home, ".compscore")
	_ = os.MkdirAll(dir, 0o755)
	return dir
}

// GetMemoDBFilePath returns the default SQLite file for the memo store.
func GetMemoDBFilePath() string {
	return filepath.Join(appDir(), "memo.db")
}

// GetStoreDBFilePath returns the default SQLite file for the config store.
func GetStoreDBFilePath() string {
	return filepath.Join(appDir(), "store.db")
}
