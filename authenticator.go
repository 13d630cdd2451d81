package auth

import (
	"strings"
)

// Manager issues and loads sessions for one Config.
type Manager struct {
	cfg    Config
	secret []byte
	codec  TokenCodec
	logger Logger
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the logger.
func WithLogger(logger Logger) Option {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithTokenCodec replaces the default HS256 codec.
func WithTokenCodec(codec TokenCodec) Option {
	return func(m *Manager) {
		if codec != nil {
			m.codec = codec
		}
	}
}

// NewManager validates cfg and returns a Manager bound to it.
func NewManager(cfg Config, opts ...Option) (*Manager, error) {
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	m := &Manager{
		cfg:    cfg,
		secret: []byte(cfg.Secret),
		codec:  NewHMACCodec(),
		logger: defLogger{},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// Config returns a copy of the bound configuration.
func (m *Manager) Config() Config {
	return m.cfg
}

// GenerateJWT signs session after making sure it resolves a user id.
// The caller's map is left untouched.
func (m *Manager) GenerateJWT(session Session) (string, error) {
	if len(session) == 0 {
		return "", ErrSessionIsEmpty
	}

	payload := session.Clone()
	if !resolveUserID(payload) {
		return "", ErrSessionHasNoUserID
	}

	token, err := m.codec.Sign(payload, m.secret, m.cfg.signOptions())
	if err != nil {
		m.logger.Error("generate token for user %s: %s", payload.UserID(), err)
		return "", err
	}
	return token, nil
}

// ExtractToken parses a raw value of the configured header. An empty value
// yields an empty token and no error; anything that is not "Bearer <token>"
// fails.
func (m *Manager) ExtractToken(headerValue string) (string, error) {
	return ExtractBearer(m.cfg.HeaderKey, headerValue)
}

// ExtractBearer parses value, read from header, as "Bearer <token>".
func ExtractBearer(header, value string) (string, error) {
	if value == "" {
		return "", nil
	}

	parts := strings.Split(value, " ")
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return parts[1], nil
	}

	return "", NewBadSchemaError(header)
}

// SessionFromToken verifies token and resolves the session user id.
func (m *Manager) SessionFromToken(token string) (Session, error) {
	token = sanitizeToken(token)
	if token == "" {
		return nil, ErrCredentialsRequired
	}

	session, err := m.codec.Verify(token, m.secret)
	if err != nil {
		m.logger.Debug("token verification failed: %s", err)
		return nil, invalidTokenError(err)
	}

	if !resolveUserID(session) {
		return nil, errSessionNoUserIDOnLoad
	}
	return session, nil
}

// Resolve runs the loading steps against a header lookup. When extract is
// given it replaces header parsing entirely.
func (m *Manager) Resolve(header func(key string) string, extract func() string) (Session, error) {
	var token string
	if extract != nil {
		token = extract()
	} else if header != nil {
		var err error
		token, err = m.ExtractToken(header(m.cfg.HeaderKey))
		if err != nil {
			return nil, err
		}
	}
	return m.SessionFromToken(token)
}

// sanitizeToken drops a leading "bearer" word that slipped through an
// extractor.
func sanitizeToken(token string) string {
	parts := strings.Split(token, " ")
	if strings.ToLower(parts[0]) == "bearer" {
		if len(parts) > 1 {
			return parts[1]
		}
		return ""
	}
	return token
}
