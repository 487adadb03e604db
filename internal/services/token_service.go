package services

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken covers every token failure: malformed, unsigned, expired.
// Callers never see the underlying parse error.
var ErrInvalidToken = errors.New("invalid or expired token")

type tokenClaims struct {
	UserID int64 `json:"userId"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies the signed bearer credential that asserts
// a user identity for a fixed window.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	return &TokenService{secret: []byte(secret), ttl: ttl}
}

func (s *TokenService) Issue(email string, userID int64) (string, error) {
	now := time.Now()
	claims := tokenClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func (s *TokenService) parse(token string) (*tokenClaims, error) {
	parsed, err := jwt.ParseWithClaims(token, &tokenClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}
	claims, ok := parsed.Claims.(*tokenClaims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// VerifySubject returns the subject email of a valid token.
func (s *TokenService) VerifySubject(token string) (string, error) {
	claims, err := s.parse(token)
	if err != nil {
		return "", err
	}
	return claims.Subject, nil
}

// Verify reports whether token is valid and carries the expected subject.
func (s *TokenService) Verify(token, expectedSubject string) bool {
	claims, err := s.parse(token)
	return err == nil && claims.Subject == expectedSubject
}

// ExtractUserID decodes the numeric user-id claim. A valid token without the
// claim yields 0, which upstream treats as an authorization failure.
func (s *TokenService) ExtractUserID(token string) (int64, error) {
	claims, err := s.parse(token)
	if err != nil {
		return 0, err
	}
	return claims.UserID, nil
}
