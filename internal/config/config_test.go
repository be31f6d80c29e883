package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8000, cfg.Port)
	assert.Equal(t, "sqlite", cfg.StoreDriver)
	assert.Equal(t, 3, cfg.RetryAttempts)
	assert.Equal(t, 12, cfg.JWTExpirationHours)
	assert.Equal(t, 5, cfg.LowStockThreshold)
	assert.Empty(t, cfg.RedisURL)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9100")
	t.Setenv("STORE_DRIVER", "csv")
	t.Setenv("LOW_STOCK_THRESHOLD", "10")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 9100, cfg.Port)
	assert.Equal(t, "csv", cfg.StoreDriver)
	assert.Equal(t, 10, cfg.LowStockThreshold)
}

func TestLoad_RejectsUnknownStoreDriver(t *testing.T) {
	t.Setenv("STORE_DRIVER", "oracle")

	_, err := Load()
	assert.Error(t, err)
}

func TestOperators_Parsing(t *testing.T) {
	cfg := &Config{AccessCodes: "0802:Pedro Reino,3105:Lucas Saboia,0405:Gabriel Gomes"}

	ops := cfg.Operators()
	require.Len(t, ops, 3)
	assert.Equal(t, "Pedro Reino", ops["0802"])
	assert.Equal(t, "Gabriel Gomes", ops["0405"])
}

func TestOperators_SkipsMalformedFragments(t *testing.T) {
	cfg := &Config{AccessCodes: "0802:Pedro Reino, badfragment ,:NoCode,1234: , 3105 : Lucas Saboia"}

	ops := cfg.Operators()
	assert.Equal(t, "Pedro Reino", ops["0802"])
	assert.NotContains(t, ops, "badfragment")
	assert.NotContains(t, ops, "")
	assert.NotContains(t, ops, "1234")
}

func TestOperators_EmptyIsInvalid(t *testing.T) {
	t.Setenv("ACCESS_CODES", "nonsense-without-colon")

	_, err := Load()
	assert.Error(t, err)
}
