// Package webjson writes JSON responses for the API handlers.
package webjson

import (
	"encoding/json"
	"net/http"
)

// ErrorBody is the payload for every error answer: {"error": "..."}.
type ErrorBody struct {
	Error string `json:"error"`
}

// Write sends v as JSON with the given status.
func Write(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Error sends {"error": msg} with the given status.
func Error(w http.ResponseWriter, status int, msg string) {
	Write(w, status, ErrorBody{Error: msg})
}
