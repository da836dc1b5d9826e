package server

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

// Error codes surfaced to clients.
const (
	codeConfigMissing  = "CONFIG_MISSING"
	codeInternalError  = "INTERNAL_ERROR"
	codeUnauthorized   = "unauthorized"
	codeInvalidRequest = "INVALID_REQUEST"
	codeRateLimited    = "RATE_LIMITED"
)

type errorBody struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Error("server: encode response", zap.Error(err))
	}
}

func respondError(w http.ResponseWriter, status int, code, detail string) {
	respondJSON(w, status, errorBody{Error: code, Detail: detail})
}
