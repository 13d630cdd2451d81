package auth

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
	goerrors "github.com/goliatone/go-errors"
)

const (
	TextCodeSessionIsEmpty       = "session-is-empty"
	TextCodeSessionHasNoUserID   = "session-has-no-userId"
	TextCodeCredentialsBadSchema = "credentials-bad-schema"
	TextCodeCredentialsRequired  = "credentials-required"
	TextCodeInvalidToken         = "invalid-token"
	TextCodeManagerNotRegistered = "manager-not-registered"
	TextCodeInvalidConfig        = "invalid-config"
)

// ErrSessionIsEmpty is returned when issuing a token for an empty session.
var ErrSessionIsEmpty = goerrors.New("session is empty", goerrors.CategoryBadInput).
	WithTextCode(TextCodeSessionIsEmpty).
	WithCode(goerrors.CodeBadRequest)

// ErrSessionHasNoUserID is returned by issuance. Loading reports the same
// text code with 401.
var ErrSessionHasNoUserID = goerrors.New("session has no userId", goerrors.CategoryBadInput).
	WithTextCode(TextCodeSessionHasNoUserID).
	WithCode(goerrors.CodeBadRequest)

// ErrCredentialsBadSchema is returned when the token header is not "Bearer <token>".
var ErrCredentialsBadSchema = goerrors.New("credentials bad schema", goerrors.CategoryAuth).
	WithTextCode(TextCodeCredentialsBadSchema).
	WithCode(goerrors.CodeUnauthorized)

// ErrCredentialsRequired is returned when no token could be resolved.
var ErrCredentialsRequired = goerrors.New("credentials required", goerrors.CategoryAuth).
	WithTextCode(TextCodeCredentialsRequired).
	WithCode(goerrors.CodeUnauthorized)

// ErrInvalidToken is returned when a token fails verification. The cause is
// kept as Source and never rendered.
var ErrInvalidToken = goerrors.New("invalid token", goerrors.CategoryAuth).
	WithTextCode(TextCodeInvalidToken).
	WithCode(goerrors.CodeUnauthorized)

var errSessionNoUserIDOnLoad = goerrors.New("session has no userId", goerrors.CategoryAuth).
	WithTextCode(TextCodeSessionHasNoUserID).
	WithCode(goerrors.CodeUnauthorized)

// ErrNoManager is returned by the package level helpers before Register ran.
var ErrNoManager = goerrors.New("auth session manager not registered", goerrors.CategoryInternal).
	WithTextCode(TextCodeManagerNotRegistered).
	WithCode(goerrors.CodeInternal)

// NewBadSchemaError reports a malformed value in header.
func NewBadSchemaError(header string) *goerrors.Error {
	return ErrCredentialsBadSchema.Clone().WithMetadata(map[string]any{
		"message": "Format is " + strings.ToLower(header) + ": Bearer [token]",
	})
}

func invalidTokenError(cause error) *goerrors.Error {
	e := ErrInvalidToken.Clone()
	e.Source = cause
	return e
}

// IsKind reports whether err carries the given text code.
func IsKind(err error, textCode string) bool {
	var e *goerrors.Error
	if goerrors.As(err, &e) {
		return e.TextCode == textCode
	}
	return false
}

// StatusCode returns the HTTP status carried by err, or 500.
func StatusCode(err error) int {
	var e *goerrors.Error
	if goerrors.As(err, &e) && e.Code != 0 {
		return e.Code
	}
	var fe *fiber.Error
	if goerrors.As(err, &fe) {
		return fe.Code
	}
	return http.StatusInternalServerError
}

// IsTokenError reports whether err comes from a failed token load.
func IsTokenError(err error) bool {
	return IsKind(err, TextCodeInvalidToken) ||
		IsKind(err, TextCodeCredentialsRequired) ||
		IsKind(err, TextCodeCredentialsBadSchema)
}
