// Package token issues and verifies the HS256 bearer tokens handed out at
// login and registration.
//
// All read operations share one decode path: signature, algorithm and the
// presence of the sub and exp claims are checked there and nowhere else.
// Expiry is not a decode failure; it only makes Validate report false.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"userhub/internal/domain"
)

// MinSecretLength is the HS256 key size in bytes.
const MinSecretLength = 32

const DefaultTTL = 24 * time.Hour

type Codec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
	parser *jwt.Parser
}

type Option func(*Codec)

// WithClock replaces time.Now, mainly for tests that need to step past expiry.
func WithClock(now func() time.Time) Option {
	return func(c *Codec) {
		if now != nil {
			c.now = now
		}
	}
}

// NewCodec refuses secrets shorter than MinSecretLength. A zero ttl means DefaultTTL.
func NewCodec(secret []byte, ttl time.Duration, opts ...Option) (*Codec, error) {
	if len(secret) < MinSecretLength {
		return nil, fmt.Errorf("%w: need %d bytes, got %d", domain.ErrWeakSecret, MinSecretLength, len(secret))
	}
	if ttl == 0 {
		ttl = DefaultTTL
	}
	if ttl < 0 {
		return nil, errors.New("token ttl must be positive")
	}

	key := make([]byte, len(secret))
	copy(key, secret)

	c := &Codec{
		secret: key,
		ttl:    ttl,
		now:    time.Now,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithoutClaimsValidation(),
		),
	}
	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

func (c *Codec) TTL() time.Duration {
	return c.ttl
}

// Issue signs a token for subject. Extra claims are merged first so they can
// never override sub, iat or exp.
func (c *Codec) Issue(subject string, extraClaims map[string]any) (string, error) {
	if subject == "" {
		return "", errors.New("token subject is required")
	}

	now := c.now()

	claims := jwt.MapClaims{}
	for k, v := range extraClaims {
		claims[k] = v
	}
	claims["sub"] = subject
	claims["iat"] = jwt.NewNumericDate(now)
	claims["exp"] = jwt.NewNumericDate(now.Add(c.ttl))

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

func (c *Codec) ExtractSubject(tokenString string) (string, error) {
	claims, err := c.decode(tokenString)
	if err != nil {
		return "", err
	}
	return claims.Subject, nil
}

func (c *Codec) ExtractExpiry(tokenString string) (time.Time, error) {
	claims, err := c.decode(tokenString)
	if err != nil {
		return time.Time{}, err
	}
	return claims.ExpiresAt.Time, nil
}

// Validate reports whether the token belongs to expectedSubject and is not yet
// expired. Only undecodable tokens produce an error.
func (c *Codec) Validate(tokenString, expectedSubject string) (bool, error) {
	claims, err := c.decode(tokenString)
	if err != nil {
		return false, err
	}

	if claims.Subject != expectedSubject {
		return false, nil
	}

	return c.now().Before(claims.ExpiresAt.Time), nil
}

func (c *Codec) decode(tokenString string) (*jwt.RegisteredClaims, error) {
	claims := &jwt.RegisteredClaims{}

	token, err := c.parser.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return c.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, domain.ErrInvalidToken
	}

	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: missing sub claim", domain.ErrInvalidToken)
	}
	if claims.ExpiresAt == nil {
		return nil, fmt.Errorf("%w: missing exp claim", domain.ErrInvalidToken)
	}

	return claims, nil
}
