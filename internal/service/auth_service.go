package service

import (
	"context"
	"crypto/subtle"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/pedrobenicio2014-boop/UrroVendas/internal/config"
	"github.com/pedrobenicio2014-boop/UrroVendas/internal/dto"
	"github.com/pedrobenicio2014-boop/UrroVendas/internal/ledger"
)

// AuthService is the access gate: it maps a register access code to an
// operator identity and issues the session token every engine call is
// authorized with. Codes live in configuration — either plain (the legacy
// four-digit crew codes) or bcrypt-hashed (cmd/genhash) for production.
type AuthService interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	// ResolveOperator maps an access code to an operator name.
	ResolveOperator(code string) (string, error)
}

type authService struct {
	operators map[string]string // configured code (plain or bcrypt hash) → name
	cfg       *config.Config
}

func NewAuthService(cfg *config.Config) AuthService {
	return &authService{operators: cfg.Operators(), cfg: cfg}
}

func (s *authService) ResolveOperator(code string) (string, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return "", fmt.Errorf("%w: access code is required", ledger.ErrInvalidInput)
	}
	for stored, name := range s.operators {
		if strings.HasPrefix(stored, "$2") {
			if bcrypt.CompareHashAndPassword([]byte(stored), []byte(code)) == nil {
				return name, nil
			}
			continue
		}
		if subtle.ConstantTimeCompare([]byte(stored), []byte(code)) == 1 {
			return name, nil
		}
	}
	return "", fmt.Errorf("%w: unknown access code", ledger.ErrNotFound)
}

func (s *authService) Login(_ context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	operator, err := s.ResolveOperator(req.AccessCode)
	if err != nil {
		return nil, err
	}

	expiry := time.Duration(s.cfg.JWTExpirationHours) * time.Hour
	claims := jwt.MapClaims{
		"operator": operator,
		"iat":      time.Now().Unix(),
		"exp":      time.Now().Add(expiry).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		AccessToken: signed,
		TokenType:   "bearer",
		ExpiresIn:   int(expiry.Seconds()),
		Operator:    operator,
	}, nil
}
