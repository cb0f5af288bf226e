package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"inventra/internal/apperr"
	"inventra/internal/auth"
	"inventra/internal/services/audit"
)

// MyLogs returns the caller's recent audit entries.
func MyLogs(rec *audit.Recorder, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logs, err := rec.ForUser(r.Context(), auth.Subject(r.Context()))
		if err != nil {
			respondError(w, lg, "list logs", apperr.Internal(err))
			return
		}
		respondJSON(w, http.StatusOK, logs)
	}
}

// AllLogs returns recent audit entries for every account. Admin only.
func AllLogs(rec *audit.Recorder, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logs, err := rec.Recent(r.Context())
		if err != nil {
			respondError(w, lg, "list all logs", apperr.Internal(err))
			return
		}
		respondJSON(w, http.StatusOK, logs)
	}
}
