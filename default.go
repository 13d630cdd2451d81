package auth

import (
	"sync/atomic"

	"github.com/goliatone/go-router"
)

var defaultManager atomic.Pointer[Manager]

// SetDefault publishes m as the process wide manager. Register calls it.
func SetDefault(m *Manager) {
	defaultManager.Store(m)
}

// Default returns the process wide manager, or nil before Register.
func Default() *Manager {
	return defaultManager.Load()
}

// GenerateJWT issues a token with the default manager.
func GenerateJWT(session Session) (string, error) {
	m := Default()
	if m == nil {
		return "", ErrNoManager
	}
	return m.GenerateJWT(session)
}

// SessionFromToken loads a session from a raw token with the default manager.
func SessionFromToken(token string) (Session, error) {
	m := Default()
	if m == nil {
		return nil, ErrNoManager
	}
	return m.SessionFromToken(token)
}

// LoadSession loads the request session with the default manager.
func LoadSession(c router.Context, getToken ...TokenExtractor) (Session, error) {
	m := Default()
	if m == nil {
		return nil, ErrNoManager
	}
	return m.LoadSession(c, getToken...)
}
