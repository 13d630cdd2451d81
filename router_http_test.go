package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goliatone/go-router"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	auth "github.com/goliatone/go-auth-session"
)

func newHTTPServer(t *testing.T) (http.Handler, *auth.Manager) {
	t.Helper()
	srv := router.NewHTTPServer()
	r := srv.Router()
	r.Use(auth.ErrorMiddleware())

	m, err := auth.Register(r, auth.Config{Secret: testSecret}, auth.WithLogger(quietLogger()))
	require.NoError(t, err)

	r.Get("/me", func(c router.Context) error {
		a, ok := auth.FromRouter(c)
		if !ok {
			return assert.AnError
		}
		if err := a.LoadSession(); err != nil {
			return err
		}
		userID, _ := auth.UserIDFromContext(c.Context())
		return c.Send([]byte(userID))
	})

	r.Get("/me/query", func(c router.Context) error {
		session, err := m.LoadSession(c, func(c router.Context) string {
			return c.Query("t", "")
		})
		if err != nil {
			return err
		}
		return c.Send([]byte(session.UserID()))
	})

	r.Get("/boom", func(c router.Context) error {
		return assert.AnError
	})

	return srv.WrappedRouter(), m
}

func TestHTTPServer_LoadSession(t *testing.T) {
	handler, m := newHTTPServer(t)
	token, err := m.GenerateJWT(auth.Session{"sub": "u1"})
	require.NoError(t, err)

	t.Run("loads the session", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("authorization", "Bearer "+token)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "u1", rec.Body.String())
	})

	t.Run("bad schema", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Token abc")
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		body := decodeError(t, rec.Body)
		assert.Equal(t, auth.TextCodeCredentialsBadSchema, body.Error.Kind)
		assert.Equal(t, http.StatusUnauthorized, body.Error.Status)
		assert.Equal(t, "Format is authorization: Bearer [token]", body.Error.Detail["message"])
	})

	t.Run("missing credentials", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/me", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, auth.TextCodeCredentialsRequired, decodeError(t, rec.Body).Error.Kind)
	})

	t.Run("extractor takes precedence", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/me/query?t="+token, nil)
		req.Header.Set("Authorization", "Token abc")
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "u1", rec.Body.String())
	})

	t.Run("unknown error", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "internal-error", decodeError(t, rec.Body).Error.Kind)
	})
}
