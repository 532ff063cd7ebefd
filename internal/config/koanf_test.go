// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv(ConfigPathEnvVar, "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/etc/servmgmtd/servMgmtSetting.xml", cfg.SettingFile)
	assert.Equal(t, 3, cfg.DefaultMaxRetryCount)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Empty(t, cfg.Admin.ListenAddr)
	assert.Equal(t, 5*time.Second, cfg.ShutdownTimeout)
}

func TestLoad_EnvOverridesDefaults(t *testing.T) {
	t.Setenv(ConfigPathEnvVar, "")
	t.Setenv("SETTING_FILE", "/tmp/servMgmtSetting.xml")
	t.Setenv("DEFAULT_MAX_RETRY_COUNT", "7")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("ADMIN_LISTEN_ADDR", "127.0.0.1:9090")
	t.Setenv("ADMIN_CORS_ORIGINS", "http://a.test, http://b.test")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/tmp/servMgmtSetting.xml", cfg.SettingFile)
	assert.Equal(t, 7, cfg.DefaultMaxRetryCount)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "127.0.0.1:9090", cfg.Admin.ListenAddr)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.Admin.CORSOrigins)
}

func TestLoad_ConfigFileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("setting_file: /srv/setting.xml\nlogging:\n  level: warn\n"), 0o644))

	t.Setenv(ConfigPathEnvVar, path)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/srv/setting.xml", cfg.SettingFile)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestLoad_RejectsUnknownEnvKeys(t *testing.T) {
	t.Setenv(ConfigPathEnvVar, "")
	t.Setenv("SOME_RANDOM_VAR", "whatever")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/etc/servmgmtd/servMgmtSetting.xml", cfg.SettingFile)
}
