// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package adminapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/ned0000/servmgmtd/internal/config"
	"github.com/ned0000/servmgmtd/internal/logging"
	"github.com/ned0000/servmgmtd/internal/supervisor"
)

// Server is the admin HTTP surface as a suture.Service: Serve blocks until
// ctx is cancelled, then shuts the underlying http.Server down gracefully.
type Server struct {
	cfg    config.AdminConfig
	facade *supervisor.Facade
}

// NewServer creates a Server that will listen on cfg.ListenAddr once added
// to a supervisor tree. cfg.ListenAddr must be non-empty; the caller is
// responsible for checking that before wiring this service in at all.
func NewServer(facade *supervisor.Facade, cfg config.AdminConfig) *Server {
	return &Server{cfg: cfg, facade: facade}
}

// Serve implements suture.Service. It runs the admin HTTP server until ctx
// is cancelled, then gives in-flight requests up to five seconds to finish.
func (s *Server) Serve(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.ListenAddr,
		Handler:           NewRouter(s.facade, s.cfg),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logging.CtxErr(ctx, err).Msg("admin HTTP server did not shut down cleanly")
		}
		return nil
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}
