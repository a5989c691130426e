package app

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionTTL is how long an issued session stays valid.
const SessionTTL = time.Hour

type sessionClaims struct {
	jwt.RegisteredClaims
	UserID string `json:"uid"`
}

// SessionGate issues and verifies stateless signed session tokens. The
// token is the sole carrier of session state: validity is a pure function
// of payload, secret and current time, so the server keeps no session
// table. The flip side is that logout cannot invalidate an unexpired token
// server-side; a replayed token verifies until expiry.
type SessionGate struct {
	secret []byte
	now    func() time.Time
}

// NewSessionGate creates a gate signing with the given process-wide secret.
// The secret is fixed for the process lifetime and never rotated.
func NewSessionGate(secret []byte) *SessionGate {
	return &SessionGate{secret: secret, now: time.Now}
}

// Issue produces a signed token bound to subjectID, valid for SessionTTL.
func (g *SessionGate) Issue(subjectID string) (string, error) {
	now := g.now()
	claims := sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(SessionTTL)),
		},
		UserID: subjectID,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(g.secret)
}

// Verify checks signature and expiry and returns the bound subject ID.
// Any failure collapses to ErrInvalidToken.
func (g *SessionGate) Verify(token string) (string, error) {
	claims := &sessionClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return g.secret, nil
	}, jwt.WithTimeFunc(g.now))
	if err != nil || !parsed.Valid {
		return "", ErrInvalidToken
	}
	return claims.UserID, nil
}
