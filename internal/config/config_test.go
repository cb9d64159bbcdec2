package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/backend-kantin/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.LoadForTests(map[string]string{
		"APP_ENV":            "",
		"PORT":               "",
		"TAX_RATE_BPS":       "",
		"CURRENCY_CODE":      "",
		"ORDER_TTL":          "",
		"ORDER_MAX_SESSIONS": "",
	})
	require.NoError(t, err)
	require.Equal(t, "development", cfg.AppEnv)
	require.Equal(t, ":8080", cfg.HTTPAddr())
	require.Equal(t, 800, cfg.TaxRateBps)
	require.Equal(t, "USD", cfg.CurrencyCode)
	require.Equal(t, 2*time.Hour, cfg.OrderTTL)
}

func TestLoadOverrides(t *testing.T) {
	cfg, err := config.LoadForTests(map[string]string{
		"PORT":                 "9090",
		"TAX_RATE_BPS":         "1000",
		"CURRENCY_CODE":        "IDR",
		"ORDER_TTL":            "30m",
		"CORS_ALLOWED_ORIGINS": "https://a.example, https://b.example",
	})
	require.NoError(t, err)
	require.Equal(t, ":9090", cfg.HTTPAddr())
	require.Equal(t, 1000, cfg.TaxRateBps)
	require.Equal(t, "IDR", cfg.CurrencyCode)
	require.Equal(t, 30*time.Minute, cfg.OrderTTL)
	require.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
}

func TestLoadRejectsBadTaxRate(t *testing.T) {
	_, err := config.LoadForTests(map[string]string{"TAX_RATE_BPS": "20000"})
	require.Error(t, err)
}
