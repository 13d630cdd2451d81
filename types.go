package auth

import (
	"fmt"
	"time"
)

type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Error(format string, args ...any)
}

// SignOptions are the per-call options handed to a TokenCodec when signing
type SignOptions struct {
	ExpiresIn time.Duration
	Issuer    string
}

// TokenCodec signs and verifies session payloads. Implementations own the
// signature algorithm; callers only see opaque token strings.
type TokenCodec interface {
	Sign(payload Session, secret []byte, opts SignOptions) (string, error)
	Verify(token string, secret []byte) (Session, error)
}

// TokenCodecFunc pair adapts plain functions into a TokenCodec.
type TokenCodecFunc struct {
	SignFunc   func(payload Session, secret []byte, opts SignOptions) (string, error)
	VerifyFunc func(token string, secret []byte) (Session, error)
}

func (f TokenCodecFunc) Sign(payload Session, secret []byte, opts SignOptions) (string, error) {
	if f.SignFunc == nil {
		return "", fmt.Errorf("token codec: sign not configured")
	}
	return f.SignFunc(payload, secret, opts)
}

func (f TokenCodecFunc) Verify(token string, secret []byte) (Session, error) {
	if f.VerifyFunc == nil {
		return nil, fmt.Errorf("token codec: verify not configured")
	}
	return f.VerifyFunc(token, secret)
}

type defLogger struct{}

func (d defLogger) Error(format string, args ...any) {
	fmt.Printf("[ERR] AUTH "+newline(format), args...)
}

func (d defLogger) Info(format string, args ...any) {
	fmt.Printf("[INF] AUTH "+newline(format), args...)
}

func (d defLogger) Debug(format string, args ...any) {
	fmt.Printf("[DBG] AUTH "+newline(format), args...)
}

func newline(s string) string {
	if len(s) > 0 && s[len(s)-1] != '\n' {
		s += "\n"
	}
	return s
}
