package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/dompet/internal/common"
)

func TestLoad_Defaults(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	t.Setenv("HOME", home)

	cfg, err := Load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, ".local/share/dompet/dompet.db"), cfg.DatabasePath)
	assert.False(t, cfg.AllowOverdraft)
	assert.Equal(t, 20, cfg.PageSize)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.Equal(t, "default", cfg.Theme)
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
database:
  path: ` + filepath.Join(dir, "wallet.db") + `
wallet:
  allow_overdraft: true
history:
  page_size: 50
logging:
  level: DEBUG
  format: json
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	v := viper.New()
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())

	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "wallet.db"), cfg.DatabasePath)
	assert.True(t, cfg.AllowOverdraft)
	assert.Equal(t, 50, cfg.PageSize)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoad_Environment(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("DOMPET_DATABASE_PATH", filepath.Join(dir, "env.db"))
	t.Setenv("DOMPET_WALLET_ALLOW_OVERDRAFT", "true")
	t.Setenv("DOMPET_HISTORY_PAGE_SIZE", "5")

	v := viper.New()
	BindEnv(v)

	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "env.db"), cfg.DatabasePath)
	assert.True(t, cfg.AllowOverdraft)
	assert.Equal(t, 5, cfg.PageSize)
}

func TestValidate_CollectsEveryProblem(t *testing.T) {
	cfg := &Config{
		PageSize: 0,
		Logging:  Logging{Level: "loud", Format: "xml"},
	}

	err := cfg.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrInvalidConfig)

	msg := err.Error()
	for _, want := range []string{KeyDatabasePath, KeyPageSize, KeyLogLevel, KeyLogFormat} {
		assert.True(t, strings.Contains(msg, want), "error %q should mention %s", msg, want)
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	t.Setenv("DOMPET_TEST_DIR", "/var/lib/dompet")

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty", input: "", want: ""},
		{name: "home only", input: "~", want: home},
		{name: "home prefix", input: "~/wallet.db", want: filepath.Join(home, "wallet.db")},
		{name: "environment variable", input: "$DOMPET_TEST_DIR/wallet.db", want: "/var/lib/dompet/wallet.db"},
		{name: "tilde inside path untouched", input: "/tmp/~/x", want: "/tmp/~/x"},
		{name: "cleaned", input: " ~/data//dompet/../wallet.db ", want: filepath.Join(home, "data", "wallet.db")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandPath(tt.input))
		})
	}
}
