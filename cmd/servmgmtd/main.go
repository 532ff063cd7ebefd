// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

// Package main is the entry point for servmgmtd.
//
// servmgmtd launches, monitors, restarts and reconfigures the child
// processes declared in an XML service catalogue. It has no network
// protocol of its own beyond an optional local admin HTTP surface: its
// entire reason to exist is keeping a fixed set of local processes alive
// according to each one's declared startup policy and retry budget.
//
// # Application Architecture
//
// The daemon initializes components in the following order:
//
//  1. Configuration: load SETTING_FILE, retry defaults, logging and admin
//     HTTP settings from environment variables and an optional config file.
//  2. Setting Store: parse the XML service catalogue into a property tree
//     and build the in-memory Service Table from it.
//  3. Supervisor Engine: wire the table to a timer wheel (delayed retries)
//     and an event logger, then spawn every Automatic-startup service.
//  4. Supervisor Tree: a runtime layer (reap loop, timer wheel) and an
//     optional API layer (admin HTTP), run under suture.
//
// # Signal Handling
//
// servmgmtd handles graceful shutdown on SIGINT and SIGTERM: it stops
// accepting new admin HTTP requests, asks the engine to terminate every
// running service (SIGTERM, escalating to SIGKILL past the configured
// timeout), and waits for the supervisor tree to finish before exiting.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/ned0000/servmgmtd/internal/adminapi"
	"github.com/ned0000/servmgmtd/internal/config"
	"github.com/ned0000/servmgmtd/internal/logging"
	"github.com/ned0000/servmgmtd/internal/settingstore"
	"github.com/ned0000/servmgmtd/internal/supervisor"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})

	logging.Info().Str("setting_file", cfg.SettingFile).Msg("starting servmgmtd")

	doc, err := settingstore.Bootstrap(cfg.SettingFile, cfg.DefaultMaxRetryCount)
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to load setting file")
	}

	table, err := doc.BuildTable()
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to build service table")
	}
	logging.Info().Int("service_count", table.Len()).Msg("service table built")

	timers := supervisor.NewTimerWheel()
	events := logging.NewSupervisorEventLogger()
	engine := supervisor.NewEngine(table, doc.MaxFailureRetryCount, timers, events)
	facade := supervisor.NewFacade(engine, table, doc, cfg.ShutdownTimeout)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	slogLogger := logging.NewSlogLogger()
	tree, err := supervisor.NewSupervisorTree(slogLogger, supervisor.TreeConfig{
		ShutdownTimeout: cfg.ShutdownTimeout,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to create supervisor tree")
	}

	tree.AddRuntimeService(timers)
	tree.AddRuntimeService(supervisor.NewReaper(engine))

	if cfg.Admin.ListenAddr != "" {
		tree.AddAPIService(adminapi.NewServer(facade, cfg.Admin))
		logging.Info().Str("addr", cfg.Admin.ListenAddr).Msg("admin HTTP surface enabled")
	} else {
		logging.Info().Msg("admin HTTP surface disabled (ADMIN_LISTEN_ADDR empty)")
	}

	engine.StartAutomatic()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("received shutdown signal")
		cancel()
	}()

	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("shutting down")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("supervisor tree error")
		}
	}

	engine.Shutdown(cfg.ShutdownTimeout)

	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("supervisor shutdown error")
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	if len(unstopped) > 0 {
		logging.Warn().Int("count", len(unstopped)).Msg("services failed to stop within timeout")
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("service failed to stop")
		}
	}

	logging.Info().Msg("servmgmtd stopped")
}
