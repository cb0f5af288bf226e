package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"inventra/internal/apperr"
	"inventra/internal/models"
)

type fakeValidator struct {
	user *models.User
	err  error
	got  string
}

func (f *fakeValidator) ValidateSession(_ context.Context, token string) (*models.User, error) {
	f.got = token
	return f.user, f.err
}

func serve(h http.Handler, cookie string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: CookieName, Value: cookie})
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRequireSession(t *testing.T) {
	lg := zap.NewNop().Sugar()
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(Subject(r.Context())))
	})

	t.Run("valid", func(t *testing.T) {
		v := &fakeValidator{user: &models.User{ID: "u1"}}
		rec := serve(RequireSession(v, lg)(ok), "tok")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "u1", rec.Body.String())
		assert.Equal(t, "tok", v.got)
	})

	cases := []struct {
		name string
		err  error
		code int
	}{
		{"unauthenticated", apperr.Authentication(apperr.MsgNoToken), http.StatusUnauthorized},
		{"account gone", apperr.NotFound(apperr.MsgUserNotFound), http.StatusNotFound},
		{"store failure", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			called := false
			next := http.HandlerFunc(func(http.ResponseWriter, *http.Request) { called = true })
			rec := serve(RequireSession(&fakeValidator{err: tc.err}, lg)(next), "")
			assert.Equal(t, tc.code, rec.Code)
			assert.False(t, called)
			assert.NotContains(t, rec.Body.String(), "boom")
		})
	}
}

func TestRequireRole(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusNoContent) })
	h := RequireRole(models.RoleAdmin)(next)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req.WithContext(WithUser(req.Context(), &models.User{Role: models.RoleUser})))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req.WithContext(WithUser(req.Context(), &models.User{Role: models.RoleAdmin})))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestCookies(t *testing.T) {
	c := Cookies{Secure: true, TTL: 7 * 24 * time.Hour}

	rec := httptest.NewRecorder()
	c.Set(rec, "tok")
	res := rec.Result()
	require.Len(t, res.Cookies(), 1)
	ck := res.Cookies()[0]
	assert.Equal(t, CookieName, ck.Name)
	assert.Equal(t, "tok", ck.Value)
	assert.True(t, ck.HttpOnly)
	assert.True(t, ck.Secure)
	assert.Equal(t, http.SameSiteStrictMode, ck.SameSite)
	assert.Equal(t, 7*24*60*60, ck.MaxAge)

	rec = httptest.NewRecorder()
	c.Clear(rec)
	ck = rec.Result().Cookies()[0]
	assert.Equal(t, "", ck.Value)
	assert.True(t, ck.MaxAge < 0)
}

func TestTokenFrom(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Equal(t, "", TokenFrom(req))
	req.AddCookie(&http.Cookie{Name: CookieName, Value: "abc"})
	assert.Equal(t, "abc", TokenFrom(req))
}
