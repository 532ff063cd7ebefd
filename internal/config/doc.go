// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

/*
Package config provides servmgmtd's own bootstrap configuration: the few
values the daemon needs before it can even open its XML service catalogue:
where that catalogue lives, the default retry budget to stamp into it on
first bootstrap, how to log, and whether to start the optional local admin
HTTP surface.

# Configuration Sources

Layered in increasing priority:

  - Built-in defaults
  - An optional YAML file, found via DefaultConfigPaths or CONFIG_PATH
  - Environment variables

# Environment Variables

  - SETTING_FILE: path to the XML service catalogue (required)
  - DEFAULT_MAX_RETRY_COUNT: retry budget written into a newly generated catalogue
  - LOG_LEVEL / LOG_FORMAT
  - ADMIN_LISTEN_ADDR: empty disables the admin HTTP surface
  - ADMIN_CORS_ORIGINS, ADMIN_RATE_LIMIT_REQS, ADMIN_RATE_LIMIT_WINDOW
  - SHUTDOWN_TIMEOUT: graceful-stop budget before SIGKILL escalation

# Usage

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

# Thread Safety

The Config struct is immutable after Load() returns.
*/
package config
