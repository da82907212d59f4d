package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testConfig struct {
	App      App      `mapstructure:"app"`
	Logger   Logger   `mapstructure:"logger"`
	Database Database `mapstructure:"database"`
	API      API      `mapstructure:"api"`
	Extra    string   `mapstructure:"extra"`
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte(`
app:
  name: sentiment-api
logger:
  level: debug
database:
  host: db.internal
  port: 6543
api:
  port: 9090
`)
	require.NoError(t, os.WriteFile(path, content, 0o600))

	var cfg testConfig
	require.NoError(t, Load(path, &cfg))

	assert.Equal(t, "sentiment-api", cfg.App.Name)
	assert.Equal(t, "debug", cfg.Logger.Level)
	assert.Equal(t, "json", cfg.Logger.Encoding)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 6543, cfg.Database.Port)
	assert.Equal(t, 9090, cfg.API.Port)
}

func TestLoadEnvironmentOnly(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://u:p@localhost:5432/sentiment")
	t.Setenv("EXTRA", "from-env")

	var cfg testConfig
	err := Load(filepath.Join(t.TempDir(), "missing.yaml"), &cfg, func(v *viper.Viper) {
		v.SetDefault("extra", "")
	})
	require.NoError(t, err)

	assert.Equal(t, "postgres://u:p@localhost:5432/sentiment", cfg.Database.URL)
	assert.Equal(t, "from-env", cfg.Extra)
	assert.Equal(t, 8000, cfg.API.Port)
}
