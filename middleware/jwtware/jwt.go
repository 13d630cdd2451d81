package jwtware

import (
	"net/http"
	"strings"

	"github.com/goliatone/go-router"

	auth "github.com/goliatone/go-auth-session"
)

// SessionLoader loads the request session. *auth.Manager satisfies it.
type SessionLoader interface {
	LoadSession(c router.Context, getToken ...auth.TokenExtractor) (auth.Session, error)
}

// ValidationListener is invoked after a session has been loaded.
type ValidationListener func(c router.Context, session auth.Session) error

// ErrorHandler renders a failed load. auth.ErrorHandler is the default.
type ErrorHandler func(c router.Context, err error) error

type Config struct {
	Filter         func(router.Context) bool
	SuccessHandler router.HandlerFunc
	ErrorHandler   ErrorHandler
	// Loader is required
	Loader SessionLoader
	// ContextKey stores the session in the context store, in addition to
	// auth.SessionKey.
	ContextKey string
	// TokenLookup is a comma separated list of "source:name" pairs, e.g.
	// "header:Authorization,query:token,cookie:jwt,param:token".
	// Header sources must carry "Bearer <token>".
	// Empty leaves the lookup to the loader, which parses its configured
	// header the same way.
	TokenLookup string
	// Extractor overrides TokenLookup.
	Extractor auth.TokenExtractor

	ValidationListeners []ValidationListener
}

// New returns a middleware that loads the session and stores it under
// cfg.ContextKey. It panics when no Loader is configured and no default
// manager is registered.
func New(config ...Config) router.MiddlewareFunc {
	cfg := GetDefaultConfig(config...)
	extractors := cfg.getExtractors()

	return func(next router.HandlerFunc) router.HandlerFunc {
		return func(c router.Context) error {
			if cfg.Filter != nil && cfg.Filter(c) {
				return c.Next()
			}

			var session auth.Session
			var err error
			switch {
			case cfg.Extractor != nil:
				session, err = cfg.Loader.LoadSession(c, cfg.Extractor)
			case len(extractors) > 0:
				token, extractErr := ExtractRawToken(c, extractors)
				if extractErr != nil {
					return cfg.ErrorHandler(c, extractErr)
				}
				session, err = cfg.Loader.LoadSession(c, func(router.Context) string {
					return token
				})
			default:
				session, err = cfg.Loader.LoadSession(c)
			}
			if err != nil {
				return cfg.ErrorHandler(c, err)
			}

			if err := cfg.runValidationListeners(c, session); err != nil {
				return cfg.ErrorHandler(c, err)
			}

			c.Set(cfg.ContextKey, session)

			return cfg.SuccessHandler(c)
		}
	}
}

func GetDefaultConfig(config ...Config) (cfg Config) {
	if len(config) > 0 {
		cfg = config[0]
	}

	if cfg.SuccessHandler == nil {
		cfg.SuccessHandler = func(c router.Context) error {
			return c.Next()
		}
	}

	if cfg.ErrorHandler == nil {
		cfg.ErrorHandler = auth.ErrorHandler
	}

	if cfg.Loader == nil {
		if m := auth.Default(); m != nil {
			cfg.Loader = m
		} else {
			panic("AUTH: jwtware configuration: Loader is required.")
		}
	}

	if cfg.ContextKey == "" {
		cfg.ContextKey = auth.SessionKey
	}

	return cfg
}

func (cfg *Config) getExtractors() []Extractor {
	if strings.TrimSpace(cfg.TokenLookup) == "" {
		return nil
	}
	return GetExtractors(cfg.TokenLookup)
}

func (cfg *Config) runValidationListeners(c router.Context, session auth.Session) error {
	for _, listener := range cfg.ValidationListeners {
		if listener == nil {
			continue
		}
		if err := listener(c, session); err != nil {
			return err
		}
	}
	return nil
}

// Extractor reads a token from one request source. A missing value is an
// empty token with no error.
type Extractor func(c router.Context) (string, error)

// ExtractRawToken returns the first token found. When none is found it
// returns the first extractor error, if any.
func ExtractRawToken(c router.Context, extractors []Extractor) (string, error) {
	var firstErr error
	for _, extractor := range extractors {
		token, err := extractor(c)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		if token != "" {
			return token, nil
		}
	}
	return "", firstErr
}

func GetExtractors(tokenLookup string) []Extractor {
	extractors := make([]Extractor, 0)

	// header:Authorization,cookie:jwt,query:auth_token,param:token
	rootParts := strings.Split(tokenLookup, ",")
	for _, rootPart := range rootParts {
		parts := strings.Split(strings.TrimSpace(rootPart), ":")
		if len(parts) != 2 {
			continue
		}

		for i, el := range parts {
			parts[i] = strings.TrimSpace(el)
		}

		switch parts[0] {
		case "header":
			extractors = append(extractors, FromHeader(parts[1]))
		case "query":
			extractors = append(extractors, FromQuery(parts[1]))
		case "param":
			extractors = append(extractors, FromParam(parts[1]))
		case "cookie":
			extractors = append(extractors, FromCookie(parts[1]))
		}
	}

	return extractors
}

// FromHeader parses the header as "Bearer <token>". Any other scheme is a
// credentials-bad-schema error.
func FromHeader(header string) Extractor {
	return func(c router.Context) (string, error) {
		return auth.ExtractBearer(header, strings.TrimSpace(c.Header(header)))
	}
}

// FromQuery extracts the token from the query string.
func FromQuery(param string) Extractor {
	return func(c router.Context) (string, error) {
		return c.Query(param, ""), nil
	}
}

// FromParam extracts the token from a route param.
func FromParam(param string) Extractor {
	return func(c router.Context) (string, error) {
		return c.Param(param, ""), nil
	}
}

// FromCookie extracts the token from the named cookie.
func FromCookie(name string) Extractor {
	return func(c router.Context) (string, error) {
		raw := c.Header("Cookie")
		if raw == "" {
			return "", nil
		}
		cookies, err := http.ParseCookie(raw)
		if err != nil {
			return "", nil
		}
		for _, cookie := range cookies {
			if cookie.Name == name {
				return cookie.Value, nil
			}
		}
		return "", nil
	}
}
