package handlers

import (
	"encoding/json"
	"net/http"
)

// baseResponse is the envelope every endpoint answers with.
type baseResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func respondJSON(w http.ResponseWriter, code int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(payload)
}

func respondSuccess(w http.ResponseWriter, code int, message string, data any) {
	respondJSON(w, code, baseResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func respondError(w http.ResponseWriter, code int, message string) {
	respondJSON(w, code, baseResponse{
		Success: false,
		Message: message,
	})
}
