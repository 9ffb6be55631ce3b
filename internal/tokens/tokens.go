// Package tokens issues and verifies the HS256 identity tokens handed out on
// login. Tokens are stateless: expiry is the only invalidation.
package tokens

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTTL is the lifetime of a login token.
const DefaultTTL = time.Hour

var (
	ErrInvalidSignature = errors.New("token signature is invalid")
	ErrExpired          = errors.New("token is expired")
	ErrMalformed        = errors.New("token is malformed")
)

type Claims struct {
	UserID  string `json:"id"`
	IsAdmin bool   `json:"isAdmin"`
	jwt.RegisteredClaims
}

// Service binds the process-wide signing secret and clock.
type Service struct {
	Secret []byte
	TTL    time.Duration
	Now    func() time.Time
}

func NewService(secret []byte, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Service{Secret: secret, TTL: ttl, Now: time.Now}
}

func (s *Service) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

func (s *Service) Issue(userID string, isAdmin bool) (string, time.Time, error) {
	return issueAt(Claims{UserID: userID, IsAdmin: isAdmin}, s.Secret, s.TTL, s.now())
}

func (s *Service) Verify(token string) (*Claims, error) {
	return verifyAt(token, s.Secret, s.now)
}

// Issue signs claims with secret and sets exp to now+ttl.
func Issue(claims Claims, secret []byte, ttl time.Duration) (string, error) {
	token, _, err := issueAt(claims, secret, ttl, time.Now())
	return token, err
}

// Verify checks the signature and expiry and returns the embedded claims.
func Verify(token string, secret []byte) (*Claims, error) {
	return verifyAt(token, secret, time.Now)
}

func issueAt(claims Claims, secret []byte, ttl time.Duration, now time.Time) (string, time.Time, error) {
	exp := now.Add(ttl)
	claims.IssuedAt = jwt.NewNumericDate(now)
	claims.ExpiresAt = jwt.NewNumericDate(exp)

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

func verifyAt(token string, secret []byte, now func() time.Time) (*Claims, error) {
	var claims Claims
	tkn, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		return secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(now),
	)
	switch {
	case err == nil && tkn.Valid:
		return &claims, nil
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return nil, ErrInvalidSignature
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, ErrExpired
	default:
		return nil, ErrMalformed
	}
}
