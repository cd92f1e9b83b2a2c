package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidToken covers bad signatures, expired tokens and missing or unknown subjects.
var ErrInvalidToken = errors.New("invalid token")

// DefaultTokenExpiration applies when no expiry is configured.
const DefaultTokenExpiration = 30 * time.Minute

// Credentials hashes passwords and issues/resolves bearer tokens.
// It is built once at startup and is safe for concurrent use.
type Credentials struct {
	secret     []byte
	method     *jwt.SigningMethodHMAC
	expiration time.Duration
	now        func() time.Time
}

// NewCredentials creates a credential store signing with the named HMAC
// algorithm (HS256, HS384 or HS512).
func NewCredentials(secret, algorithm string, expiration time.Duration) (*Credentials, error) {
	if secret == "" {
		return nil, errors.New("JWT secret cannot be empty")
	}
	if algorithm == "" {
		algorithm = jwt.SigningMethodHS256.Alg()
	}
	method, ok := jwt.GetSigningMethod(algorithm).(*jwt.SigningMethodHMAC)
	if !ok {
		return nil, fmt.Errorf("unsupported JWT algorithm %q", algorithm)
	}
	if expiration <= 0 {
		expiration = DefaultTokenExpiration
	}
	return &Credentials{
		secret:     []byte(secret),
		method:     method,
		expiration: expiration,
		now:        time.Now,
	}, nil
}

// HashPassword returns a salted bcrypt hash of password.
func (c *Credentials) HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// VerifyPassword reports whether password matches hash.
func (c *Credentials) VerifyPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// IssueToken signs a token whose subject is userID.
func (c *Credentials) IssueToken(userID string) (string, error) {
	now := c.now()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(now.Add(c.expiration)),
		IssuedAt:  jwt.NewNumericDate(now),
	}
	return jwt.NewWithClaims(c.method, claims).SignedString(c.secret)
}

// ResolveToken verifies token and returns its subject.
func (c *Credentials) ResolveToken(token string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return c.secret, nil
	}, jwt.WithValidMethods([]string{c.method.Alg()}))
	if err != nil || !parsed.Valid {
		return "", ErrInvalidToken
	}
	// Tokens are always issued with an expiry; one without it was not ours.
	if claims.Subject == "" || claims.ExpiresAt == nil {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}
