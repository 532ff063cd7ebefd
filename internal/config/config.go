// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

// Package config loads servmgmtd's own bootstrap configuration: the
// daemon's log level, admin HTTP listen address and the path to the XML
// service catalogue it manages. It is distinct from the XML setting file
// itself, which is a separate persistent document owned by the setting
// store.
package config

import "time"

// Config is servmgmtd's bootstrap configuration, loaded once at startup.
type Config struct {
	// SettingFile is the path to the XML service catalogue
	// (servMgmtSetting.xml equivalent) that the setting store reads and
	// rewrites.
	SettingFile string `koanf:"setting_file"`

	// DefaultMaxRetryCount is written as globalSetting.maxFailureRetryCount
	// into a newly generated setting file when SettingFile does not exist
	// yet. It plays no role once a file exists: an existing file must carry
	// its own maxFailureRetryCount.
	DefaultMaxRetryCount int `koanf:"default_max_retry_count"`

	Logging LoggingConfig `koanf:"logging"`
	Admin   AdminConfig   `koanf:"admin"`

	// ShutdownTimeout bounds how long stopService waits after SIGTERM
	// before escalating to SIGKILL.
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// LoggingConfig controls the zerolog sink.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// AdminConfig controls the optional local admin HTTP surface. An empty
// ListenAddr disables it entirely.
type AdminConfig struct {
	ListenAddr      string        `koanf:"listen_addr"`
	CORSOrigins     []string      `koanf:"cors_origins"`
	RateLimitReqs   int           `koanf:"rate_limit_reqs"`
	RateLimitWindow time.Duration `koanf:"rate_limit_window"`
}
