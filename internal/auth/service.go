// Package auth implements the login contract of the AuWalk backend:
// credential checks and HS256 token issuance.
package auth

import (
	"context"
	"crypto/subtle"
	"fmt"
	"strings"
	"time"

	"auwalk/internal/domain"
	apperrors "auwalk/pkg/errors"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// Repository looks users up by email.
type Repository interface {
	FindByEmail(ctx context.Context, email string) (*domain.Usuario, error)
}

// Service checks credentials and issues tokens.
type Service struct {
	repo      Repository
	jwtSecret string
	jwtExpiry time.Duration
	now       func() time.Time
}

// NewService constructs a Service with the given repository and JWT settings.
func NewService(repo Repository, jwtSecret string, jwtExpiry time.Duration) *Service {
	return &Service{
		repo:      repo,
		jwtSecret: jwtSecret,
		jwtExpiry: jwtExpiry,
		now:       time.Now,
	}
}

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Email string `json:"email"`
	Senha string `json:"senha"`
}

// LoginResponse mirrors the legacy backend: Token is null when Success is false.
type LoginResponse struct {
	Success bool    `json:"success"`
	Token   *string `json:"token"`
}

// Login authenticates req. Unknown emails and wrong passwords both yield
// ErrInvalidCredentials; any other error comes from the repository.
func (s *Service) Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error) {
	user, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !checkSenha(user.Senha, req.Senha) {
		return nil, apperrors.ErrInvalidCredentials
	}

	token, err := s.generateToken(user.Email)
	if err != nil {
		return nil, err
	}
	return &LoginResponse{Success: true, Token: &token}, nil
}

// ValidateToken verifies signature and expiry and returns the subject email.
func (s *Service) ValidateToken(tokenString string) (string, error) {
	claims := jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(s.jwtSecret), nil
	}, jwt.WithTimeFunc(s.now), jwt.WithExpirationRequired())
	if err != nil {
		return "", apperrors.Wrap(err, "invalid token")
	}
	if !token.Valid {
		return "", fmt.Errorf("invalid token")
	}
	if claims.Subject == "" {
		return "", fmt.Errorf("invalid token: missing subject")
	}
	return claims.Subject, nil
}

func (s *Service) generateToken(email string) (string, error) {
	now := s.now()
	claims := jwt.RegisteredClaims{
		Subject:   email,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.jwtExpiry)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// checkSenha accepts bcrypt hashes and, for legacy rows, plaintext.
func checkSenha(stored, given string) bool {
	if strings.HasPrefix(stored, "$2") {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(given)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(given)) == 1
}

// HashSenha returns a bcrypt hash suitable for the usuario table.
func HashSenha(senha string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(senha), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
