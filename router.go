package auth

import (
	"github.com/gofiber/fiber/v2"
	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-router"
)

const (
	// RequestAuthKey is the context store key holding *RequestAuth
	RequestAuthKey = "auth"
	// SessionKey is the context store key holding the loaded Session
	SessionKey = "session"
)

// TokenExtractor pulls a raw token out of a request, bypassing header parsing.
type TokenExtractor func(c router.Context) string

// RequestAuth exposes issuance and loading bound to one request.
type RequestAuth struct {
	manager *Manager
	c       router.Context
	session Session
}

// Register builds a Manager for cfg, makes it the process default, and
// installs a middleware that exposes a RequestAuth on every request.
// Routes must be added to app after Register for the middleware to apply.
func Register[T any](app router.Router[T], cfg Config, opts ...Option) (*Manager, error) {
	m, err := NewManager(cfg, opts...)
	if err != nil {
		return nil, err
	}
	SetDefault(m)
	app.Use(m.Middleware())
	return m, nil
}

// Middleware attaches a RequestAuth to the request and continues.
func (m *Manager) Middleware() router.MiddlewareFunc {
	return func(next router.HandlerFunc) router.HandlerFunc {
		return func(c router.Context) error {
			c.Set(RequestAuthKey, &RequestAuth{manager: m, c: c})
			return c.Next()
		}
	}
}

// LoadSession resolves the request session and stores it in the context
// store and in the request context.
func (m *Manager) LoadSession(c router.Context, getToken ...TokenExtractor) (Session, error) {
	var extract func() string
	if len(getToken) > 0 && getToken[0] != nil {
		extract = func() string { return getToken[0](c) }
	}

	session, err := m.Resolve(c.Header, extract)
	if err != nil {
		return nil, err
	}

	c.Set(SessionKey, session)
	c.SetContext(WithSession(c.Context(), session))
	return session, nil
}

// FromRouter returns the RequestAuth installed by the middleware.
func FromRouter(c router.Context) (*RequestAuth, bool) {
	a, ok := c.Get(RequestAuthKey, nil).(*RequestAuth)
	return a, ok && a != nil
}

// GenerateJWT issues a token with the bound configuration.
func (a *RequestAuth) GenerateJWT(session Session) (string, error) {
	return a.manager.GenerateJWT(session)
}

// LoadSession loads the session for the bound request.
func (a *RequestAuth) LoadSession(getToken ...TokenExtractor) error {
	session, err := a.manager.LoadSession(a.c, getToken...)
	if err != nil {
		return err
	}
	a.session = session
	return nil
}

// Session returns the session loaded by LoadSession.
func (a *RequestAuth) Session() (Session, bool) {
	return a.session, a.session != nil
}

// ErrorHandler renders err as {"error": {"kind", "status", "detail"}}.
// go-errors values use their text code, code and metadata. The message
// and source of an error are never written.
func ErrorHandler(c router.Context, err error) error {
	var richErr *goerrors.Error
	if goerrors.As(err, &richErr) {
		status := StatusCode(richErr)
		body := map[string]any{
			"kind":   richErr.TextCode,
			"status": status,
		}
		if len(richErr.Metadata) > 0 {
			body["detail"] = richErr.Metadata
		}
		return c.JSON(status, map[string]any{"error": body})
	}

	var fe *fiber.Error
	if goerrors.As(err, &fe) {
		return c.JSON(fe.Code, map[string]any{"error": map[string]any{
			"kind":   "http-error",
			"status": fe.Code,
			"detail": map[string]any{"message": fe.Message},
		}})
	}

	return c.JSON(fiber.StatusInternalServerError, map[string]any{"error": map[string]any{
		"kind":   "internal-error",
		"status": fiber.StatusInternalServerError,
	}})
}

// FiberErrorHandler adapts ErrorHandler to fiber.Config.ErrorHandler.
func FiberErrorHandler(c *fiber.Ctx, err error) error {
	return ErrorHandler(router.NewFiberContext(c), err)
}

// ErrorMiddleware renders errors returned further down the chain with
// ErrorHandler. Adapters without an error hook, like the httprouter one,
// need it installed before any route.
func ErrorMiddleware() router.MiddlewareFunc {
	return func(next router.HandlerFunc) router.HandlerFunc {
		return func(c router.Context) error {
			if err := c.Next(); err != nil {
				return ErrorHandler(c, err)
			}
			return nil
		}
	}
}
