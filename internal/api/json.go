package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/starford/saka/internal/apperr"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("json encode failed", slog.String("error", err.Error()))
	}
}

// writeError maps validation failures to 400 and everything else to 500.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	if apperr.IsValidation(err) {
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return
	}
	slog.Error("request failed", slog.String("path", r.URL.Path), slog.String("error", err.Error()))
	writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
}

type errResponse struct {
	Error string `json:"error"`
}

func errorBody(msg string) errResponse {
	return errResponse{Error: msg}
}
