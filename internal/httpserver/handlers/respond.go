package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"inventra/internal/apperr"
)

func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}

func respondMessage(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"message": msg})
}

// respondError maps a tagged error to its status. Internal details are
// logged, never returned.
func respondError(w http.ResponseWriter, lg *zap.SugaredLogger, op string, err error) {
	kind := apperr.KindOf(err)
	switch kind {
	case apperr.KindInternal, apperr.KindUnavailable, apperr.KindMisconfigured:
		lg.Errorw(op+" failed", "kind", kind.String(), "error", err)
	default:
		lg.Debugw(op+" rejected", "kind", kind.String(), "error", err)
	}
	respondMessage(w, apperr.Status(kind), apperr.PublicMessage(err))
}

func decodeJSON(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return apperr.Validation(apperr.MsgInvalidBody)
	}
	return nil
}
