package authenticating

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/vfg2006/deal-mirror-api/internal/config"
	"github.com/vfg2006/deal-mirror-api/internal/domain"
)

const defaultTokenTTL = 24 * time.Hour

var (
	ErrAuthDisabled   = errors.New("admin authentication is not configured")
	ErrInvalidToken   = errors.New("invalid token")
	ErrExpiredToken   = errors.New("token expired")
	ErrNotAdmin       = errors.New("token does not grant admin access")
	ErrMissingSubject = errors.New("token subject is required")
)

type Authenticator interface {
	GenerateToken(subject string) (string, error)
	ValidateToken(tokenString string) (*domain.AdminClaims, error)
}

type Service struct {
	secret []byte
	ttl    time.Duration
}

func NewService(cfg config.Admin) Authenticator {
	ttl := cfg.TokenTTL
	if ttl == 0 {
		ttl = defaultTokenTTL
	}

	return &Service{
		secret: []byte(strings.TrimSpace(cfg.JWTSecret)),
		ttl:    ttl,
	}
}

// GenerateToken emite um token de administrador válido por ADMIN_TOKEN_TTL
func (s *Service) GenerateToken(subject string) (string, error) {
	if len(s.secret) == 0 {
		return "", ErrAuthDisabled
	}

	subject = strings.TrimSpace(subject)
	if subject == "" {
		return "", ErrMissingSubject
	}

	now := time.Now()
	claims := domain.AdminClaims{
		Role: domain.RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func (s *Service) ValidateToken(tokenString string) (*domain.AdminClaims, error) {
	if len(s.secret) == 0 {
		return nil, ErrAuthDisabled
	}

	token, err := jwt.ParseWithClaims(tokenString, &domain.AdminClaims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithExpirationRequired())
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*domain.AdminClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	if claims.Role != domain.RoleAdmin {
		return nil, ErrNotAdmin
	}

	return claims, nil
}
