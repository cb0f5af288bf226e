package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"inventra/internal/apperr"
	"inventra/internal/assistant"
	"inventra/internal/auth"
)

type chatbotReq struct {
	Prompt *string `json:"prompt"`
}

func Chatbot(resp *assistant.Responder, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req chatbotReq
		if err := decodeJSON(r, &req); err != nil || req.Prompt == nil {
			respondMessage(w, http.StatusBadRequest, apperr.MsgPromptRequired)
			return
		}
		reply, err := resp.Ask(r.Context(), auth.Subject(r.Context()), *req.Prompt)
		if err != nil {
			respondError(w, lg, "chatbot", err)
			return
		}
		respondJSON(w, http.StatusOK, map[string]string{"reply": reply})
	}
}
