package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var _ TokenCodec = &HMACCodec{}

// HMACCodec signs sessions as HS256 JWTs
type HMACCodec struct {
	method *jwt.SigningMethodHMAC
	now    func() time.Time
}

// NewHMACCodec creates a codec using HS256.
func NewHMACCodec() *HMACCodec {
	return &HMACCodec{
		method: jwt.SigningMethodHS256,
		now:    time.Now,
	}
}

// Sign stamps iat, exp and jti on a copy of payload and signs it.
func (c *HMACCodec) Sign(payload Session, secret []byte, opts SignOptions) (string, error) {
	if len(secret) == 0 {
		return "", fmt.Errorf("sign token: empty secret")
	}

	now := c.now()
	claims := jwt.MapClaims(payload.Clone())
	if claims == nil {
		claims = jwt.MapClaims{}
	}

	claims[ClaimIssuedAt] = now.Unix()
	if opts.ExpiresIn > 0 {
		claims[ClaimExpiresAt] = now.Add(opts.ExpiresIn).Unix()
	} else {
		delete(claims, ClaimExpiresAt)
	}
	if opts.Issuer != "" {
		claims[ClaimIssuer] = opts.Issuer
	}
	if !hasClaim(Session(claims), ClaimTokenID) {
		claims[ClaimTokenID] = uuid.NewString()
	}

	token := jwt.NewWithClaims(c.method, claims)
	signed, err := token.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks signature and expiry and returns the decoded payload.
func (c *HMACCodec) Verify(tokenString string, secret []byte) (Session, error) {
	token, err := jwt.ParseWithClaims(tokenString, jwt.MapClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secret, nil
	},
		jwt.WithValidMethods([]string{c.method.Alg()}),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("unable to decode token claims")
	}
	return Session(claims), nil
}
