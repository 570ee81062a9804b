package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func Test_Load_Defaults(t *testing.T) {
	// given
	dir := t.TempDir()
	src := Sources{
		ConfigFile: filepath.Join(dir, "config.yaml"),
		EnvFile:    filepath.Join(dir, ".env"),
	}
	// when
	cfg, err := Load("inventory", src)
	// then
	require.NoError(t, err)
	assert.Equal(t, DefaultCatalogPath, cfg.Catalog.Path)
	assert.Equal(t, DefaultLogLevel, cfg.Log.Level)
}

func Test_Load_Precedence(t *testing.T) {
	testCases := []struct {
		name          string
		yaml          string
		envFile       string
		env           map[string]string
		expectedPath  string
		expectedLevel string
	}{
		{
			name:          "yaml overrides defaults",
			yaml:          "catalog:\n  path: from-yaml.json\nlog:\n  level: debug\n",
			expectedPath:  "from-yaml.json",
			expectedLevel: "debug",
		},
		{
			name:          ".env overrides yaml",
			yaml:          "catalog:\n  path: from-yaml.json\n",
			envFile:       "INVENTORY_CATALOG_PATH=from-dotenv.json\nOTHER_SETTING=ignored\n",
			expectedPath:  "from-dotenv.json",
			expectedLevel: DefaultLogLevel,
		},
		{
			name:          "environment overrides .env",
			envFile:       "INVENTORY_CATALOG_PATH=from-dotenv.json\n",
			env:           map[string]string{"INVENTORY_CATALOG_PATH": "from-env.json", "INVENTORY_LOG_LEVEL": "warn"},
			expectedPath:  "from-env.json",
			expectedLevel: "warn",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			dir := t.TempDir()
			src := Sources{
				ConfigFile: filepath.Join(dir, "config.yaml"),
				EnvFile:    filepath.Join(dir, ".env"),
			}
			if tc.yaml != "" {
				writeFile(t, dir, "config.yaml", tc.yaml)
			}
			if tc.envFile != "" {
				writeFile(t, dir, ".env", tc.envFile)
			}
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			// when
			cfg, err := Load("inventory", src)
			// then
			require.NoError(t, err)
			assert.Equal(t, tc.expectedPath, cfg.Catalog.Path)
			assert.Equal(t, tc.expectedLevel, cfg.Log.Level)
		})
	}
}

func Test_Load_Invalid(t *testing.T) {
	testCases := []struct {
		name string
		yaml string
	}{
		{name: "unknown log level", yaml: "log:\n  level: verbose\n"},
		{name: "empty catalog path", yaml: "catalog:\n  path: \"\"\n"},
		{name: "catalog path is a directory", yaml: "catalog:\n  path: data/\n"},
		{name: "malformed yaml", yaml: "catalog: [unterminated\n"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			dir := t.TempDir()
			src := Sources{ConfigFile: writeFile(t, dir, "config.yaml", tc.yaml)}
			// when
			cfg, err := Load("inventory", src)
			// then
			assert.Error(t, err)
			assert.Nil(t, cfg)
		})
	}
}

func Test_Config_String(t *testing.T) {
	cfg := Config{
		Catalog: CatalogConfig{Path: "inventario.json"},
		Log:     LogConfig{Level: "info"},
	}
	out := cfg.String()
	assert.Contains(t, out, "path: inventario.json")
	assert.Contains(t, out, "level: info")
}
