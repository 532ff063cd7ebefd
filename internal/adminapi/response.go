// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package adminapi

import (
	"net/http"

	"github.com/goccy/go-json"

	"github.com/ned0000/servmgmtd/internal/logging"
	"github.com/ned0000/servmgmtd/internal/servmgmterr"
)

// apiResponse is the standardized response envelope for every admin
// endpoint.
type apiResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *apiError   `json:"error,omitempty"`
}

type apiError struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// writeJSON writes data as a successful response.
func writeJSON(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(apiResponse{Success: true, Data: data}); err != nil {
		logging.CtxErr(r.Context(), err).Msg("failed to encode admin API response")
	}
}

// writeError writes err as a failed response, choosing the HTTP status from
// its Kind. Kinds the taxonomy does not recognise map to 500.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, code := statusForKind(servmgmterr.KindOf(err))
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	body := apiResponse{
		Error: &apiError{
			Code:      code,
			Message:   err.Error(),
			RequestID: logging.RequestIDFromContext(r.Context()),
		},
	}
	if encErr := json.NewEncoder(w).Encode(body); encErr != nil {
		logging.CtxErr(r.Context(), encErr).Msg("failed to encode admin API error response")
	}
}

// decodeJSON decodes the request body into v using the same JSON codec
// writeJSON uses for encoding.
func decodeJSON(r *http.Request, v interface{}) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}

func statusForKind(kind servmgmterr.Kind) (int, string) {
	switch kind {
	case servmgmterr.ServiceNotFound:
		return http.StatusNotFound, "SERVICE_NOT_FOUND"
	case servmgmterr.InvalidParam, servmgmterr.InvalidSetting, servmgmterr.MalformedSetting:
		return http.StatusBadRequest, "BAD_REQUEST"
	case servmgmterr.AlreadyInTargetState:
		return http.StatusConflict, "CONFLICT"
	case servmgmterr.SpawnFailed, servmgmterr.PersistFailed:
		return http.StatusInternalServerError, "INTERNAL_ERROR"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR"
	}
}
