package service

import (
	"context"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/pedrobenicio2014-boop/UrroVendas/internal/config"
	"github.com/pedrobenicio2014-boop/UrroVendas/internal/dto"
	"github.com/pedrobenicio2014-boop/UrroVendas/internal/ledger"
)

func testAuthConfig(accessCodes string) *config.Config {
	return &config.Config{
		JWTSecret:          "test-secret",
		JWTExpirationHours: 12,
		AccessCodes:        accessCodes,
	}
}

func TestResolveOperator_PlainCodes(t *testing.T) {
	svc := NewAuthService(testAuthConfig("0802:Pedro Reino,3105:Lucas Saboia,0405:Gabriel Gomes"))

	name, err := svc.ResolveOperator("0802")
	require.NoError(t, err)
	assert.Equal(t, "Pedro Reino", name)

	name, err = svc.ResolveOperator("0405")
	require.NoError(t, err)
	assert.Equal(t, "Gabriel Gomes", name)

	_, err = svc.ResolveOperator("9999")
	assert.ErrorIs(t, err, ledger.ErrNotFound)

	_, err = svc.ResolveOperator("  ")
	assert.ErrorIs(t, err, ledger.ErrInvalidInput)
}

func TestResolveOperator_BcryptCodes(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("0802"), bcrypt.MinCost)
	require.NoError(t, err)

	svc := NewAuthService(testAuthConfig(string(hash) + ":Pedro Reino"))

	name, err := svc.ResolveOperator("0802")
	require.NoError(t, err)
	assert.Equal(t, "Pedro Reino", name)

	_, err = svc.ResolveOperator("0803")
	assert.ErrorIs(t, err, ledger.ErrNotFound)
}

func TestLogin_IssuesVerifiableToken(t *testing.T) {
	cfg := testAuthConfig("0802:Pedro Reino")
	svc := NewAuthService(cfg)

	resp, err := svc.Login(context.Background(), dto.LoginRequest{AccessCode: "0802"})
	require.NoError(t, err)
	assert.Equal(t, "bearer", resp.TokenType)
	assert.Equal(t, "Pedro Reino", resp.Operator)
	assert.Equal(t, 12*3600, resp.ExpiresIn)

	tok, err := jwt.Parse(resp.AccessToken, func(*jwt.Token) (interface{}, error) {
		return []byte(cfg.JWTSecret), nil
	})
	require.NoError(t, err)
	require.True(t, tok.Valid)
	claims := tok.Claims.(jwt.MapClaims)
	assert.Equal(t, "Pedro Reino", claims["operator"])
}

func TestLogin_RejectsUnknownCode(t *testing.T) {
	svc := NewAuthService(testAuthConfig("0802:Pedro Reino"))

	_, err := svc.Login(context.Background(), dto.LoginRequest{AccessCode: "1111"})
	assert.ErrorIs(t, err, ledger.ErrNotFound)
}
