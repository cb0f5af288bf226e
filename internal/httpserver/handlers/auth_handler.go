package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"inventra/internal/apperr"
	"inventra/internal/auth"
	"inventra/internal/services/account"
)

func Register(svc *account.Service, cookies auth.Cookies, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req account.RegisterInput
		if err := decodeJSON(r, &req); err != nil {
			respondError(w, lg, "register", err)
			return
		}
		sess, err := svc.Register(r.Context(), req)
		if err != nil {
			respondError(w, lg, "register", err)
			return
		}
		cookies.Set(w, sess.Token)
		respondJSON(w, http.StatusCreated, sess.User)
	}
}

func Login(svc *account.Service, cookies auth.Cookies, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req account.LoginInput
		if err := decodeJSON(r, &req); err != nil {
			respondError(w, lg, "login", err)
			return
		}
		sess, err := svc.Login(r.Context(), req)
		if apperr.Is(err, apperr.KindAuthentication) {
			respondMessage(w, http.StatusBadRequest, apperr.PublicMessage(err))
			return
		}
		if err != nil {
			respondError(w, lg, "login", err)
			return
		}
		cookies.Set(w, sess.Token)
		respondJSON(w, http.StatusOK, sess.User)
	}
}

// Logout always succeeds; it only tells the client to drop its cookie.
func Logout(cookies auth.Cookies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cookies.Clear(w)
		respondMessage(w, http.StatusOK, "Logged out successfully")
	}
}

func Profile(svc *account.Service, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, err := svc.Profile(r.Context(), auth.Subject(r.Context()))
		if err != nil {
			respondError(w, lg, "profile", err)
			return
		}
		respondJSON(w, http.StatusOK, u)
	}
}

// CheckSession echoes the account the session middleware resolved.
func CheckSession() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, auth.UserFrom(r.Context()))
	}
}
