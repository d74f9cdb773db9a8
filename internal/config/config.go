package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/Veraticus/dompet/internal/common"
)

// Config keys shared by the config file, DOMPET_ environment variables and flags.
const (
	KeyDatabasePath   = "database.path"
	KeyAllowOverdraft = "wallet.allow_overdraft"
	KeyPageSize       = "history.page_size"
	KeyTheme          = "history.theme"
	KeyLogLevel       = "logging.level"
	KeyLogFormat      = "logging.format"
)

// DefaultDatabasePath is used when no database path is configured.
const DefaultDatabasePath = "$HOME/.local/share/dompet/dompet.db"

// Logging holds the slog settings.
type Logging struct {
	Level  string
	Format string
}

// Config is the resolved application configuration.
type Config struct {
	Logging        Logging
	DatabasePath   string
	Theme          string
	PageSize       int
	AllowOverdraft bool
}

// EnvPrefix namespaces environment overrides, e.g. DOMPET_DATABASE_PATH.
const EnvPrefix = "DOMPET"

// BindEnv makes every key overridable from the environment.
func BindEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyDatabasePath, DefaultDatabasePath)
	v.SetDefault(KeyAllowOverdraft, false)
	v.SetDefault(KeyPageSize, 20)
	v.SetDefault(KeyTheme, "default")
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "console")
}

// Load reads the configuration from v, expanding paths and validating values.
func Load(v *viper.Viper) (*Config, error) {
	SetDefaults(v)

	cfg := &Config{
		DatabasePath:   ExpandPath(strings.TrimSpace(v.GetString(KeyDatabasePath))),
		AllowOverdraft: v.GetBool(KeyAllowOverdraft),
		PageSize:       v.GetInt(KeyPageSize),
		Theme:          strings.ToLower(strings.TrimSpace(v.GetString(KeyTheme))),
		Logging: Logging{
			Level:  strings.ToLower(strings.TrimSpace(v.GetString(KeyLogLevel))),
			Format: strings.ToLower(strings.TrimSpace(v.GetString(KeyLogFormat))),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports every problem with the configuration at once.
func (c *Config) Validate() error {
	var problems []string

	if c.DatabasePath == "" {
		problems = append(problems, KeyDatabasePath+" is required")
	}
	if c.PageSize <= 0 {
		problems = append(problems, fmt.Sprintf("%s must be positive, got %d", KeyPageSize, c.PageSize))
	}
	if _, err := common.ParseLevel(c.Logging.Level); err != nil {
		problems = append(problems, fmt.Sprintf("%s: %v", KeyLogLevel, err))
	}
	switch c.Logging.Format {
	case "", "console", "json":
	default:
		problems = append(problems, fmt.Sprintf("%s must be console or json, got %q", KeyLogFormat, c.Logging.Format))
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", common.ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}
