// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package adminapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ned0000/servmgmtd/internal/registry"
	"github.com/ned0000/servmgmtd/internal/servmgmterr"
	"github.com/ned0000/servmgmtd/internal/supervisor"
)

// handler adapts a *supervisor.Facade to chi's routing signature.
type handler struct {
	facade *supervisor.Facade
}

func newHandler(facade *supervisor.Facade) *handler {
	return &handler{facade: facade}
}

// listServices handles GET /services.
func (h *handler) listServices(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, h.facade.ListServices())
}

// getService handles GET /services/{name}.
func (h *handler) getService(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	info, err := h.facade.GetService(name)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, info)
}

// startService handles POST /services/{name}/start.
func (h *handler) startService(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if err := h.facade.StartService(name); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]string{"status": "start requested"})
}

// stopService handles POST /services/{name}/stop.
func (h *handler) stopService(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if err := h.facade.StopService(name); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]string{"status": "stop requested"})
}

// startupTypeRequest is the body of PUT /services/{name}/startup-type.
type startupTypeRequest struct {
	StartupType string `json:"startup_type"`
}

// setStartupType handles PUT /services/{name}/startup-type.
func (h *handler) setStartupType(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	var body startupTypeRequest
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, r, servmgmterr.NewForService(servmgmterr.InvalidParam, name, "malformed request body"))
		return
	}

	mode := registry.StartupType(body.StartupType)
	if err := h.facade.SetStartupType(name, mode); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]string{"status": "startup type updated"})
}
