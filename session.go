package auth

import (
	"fmt"
	"maps"
	"time"

	"github.com/google/uuid"
)

const (
	ClaimUserID    = "userId"
	ClaimSubject   = "sub"
	ClaimExpiresAt = "exp"
	ClaimIssuedAt  = "iat"
	ClaimTokenID   = "jti"
	ClaimIssuer    = "iss"
)

// Session is the decoded token payload. Beyond a resolvable user id it has
// no fixed schema.
type Session map[string]any

// UserID returns the userId claim as a string, or "" when it is missing.
func (s Session) UserID() string {
	if s == nil {
		return ""
	}
	return claimString(s[ClaimUserID])
}

// Subject returns the standard sub claim.
func (s Session) Subject() string {
	if s == nil {
		return ""
	}
	return claimString(s[ClaimSubject])
}

// GetUserUUID parses the user id as a UUID.
func (s Session) GetUserUUID() (uuid.UUID, error) {
	return uuid.Parse(s.UserID())
}

// ExpiresAt returns the exp claim, if any.
func (s Session) ExpiresAt() (time.Time, bool) {
	return s.numericDate(ClaimExpiresAt)
}

// IssuedAt returns the iat claim, if any.
func (s Session) IssuedAt() (time.Time, bool) {
	return s.numericDate(ClaimIssuedAt)
}

// Get returns the raw claim value.
func (s Session) Get(key string) (any, bool) {
	if s == nil {
		return nil, false
	}
	v, ok := s[key]
	return v, ok
}

// Clone returns a shallow copy of the session.
func (s Session) Clone() Session {
	if s == nil {
		return nil
	}
	return maps.Clone(s)
}

func (s Session) numericDate(key string) (time.Time, bool) {
	switch v := s[key].(type) {
	case float64:
		return time.Unix(int64(v), 0), true
	case int64:
		return time.Unix(v, 0), true
	case int:
		return time.Unix(int64(v), 0), true
	}
	return time.Time{}, false
}

func (s Session) String() string {
	return fmt.Sprintf("user=%s sub=%s claims=%d", s.UserID(), s.Subject(), len(s))
}

// resolveUserID copies sub into userId when userId is missing and reports
// whether the session ends up with a user id.
func resolveUserID(s Session) bool {
	if !hasClaim(s, ClaimUserID) && hasClaim(s, ClaimSubject) {
		s[ClaimUserID] = s[ClaimSubject]
	}
	return hasClaim(s, ClaimUserID)
}

func hasClaim(s Session, key string) bool {
	v, ok := s[key]
	if !ok || v == nil {
		return false
	}
	if str, ok := v.(string); ok {
		return str != ""
	}
	return true
}

func claimString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		// JSON numbers decode as float64; print integral ids without exponent
		if t == float64(int64(t)) {
			return fmt.Sprintf("%d", int64(t))
		}
		return fmt.Sprintf("%v", t)
	default:
		return fmt.Sprintf("%v", t)
	}
}
