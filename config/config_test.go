package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.AppPort)
	assert.Equal(t, 20*time.Second, cfg.AdvisorTimeout)
	assert.Equal(t, 5*time.Minute, cfg.DuplicateWindow)
	assert.Equal(t, "CNY", cfg.SettlementCurrency)
	assert.Equal(t, 0.06, cfg.ServiceFeeMedical)
	assert.Equal(t, 50.0, cfg.ServiceFeeMinHotel)
	assert.False(t, cfg.ServiceFeeWaiveZero)
	assert.Empty(t, cfg.TrustedProxies)
	assert.Equal(t, 1, cfg.RedisQueueDB)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("DUPLICATE_WINDOW", "90s")
	t.Setenv("USD_EXCHANGE_RATE", "7.05")
	t.Setenv("ENV", "production")
	t.Setenv("TRUSTED_PROXIES", "10.0.0.0/8,192.168.1.1")

	cfg, err := Load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, 90*time.Second, cfg.DuplicateWindow)
	assert.Equal(t, 7.05, cfg.USDExchangeRate)
	assert.Equal(t, "production", cfg.Env)
	assert.Equal(t, []string{"10.0.0.0/8", "192.168.1.1"}, cfg.TrustedProxies)
}

func TestLocation_FallsBackToUTC(t *testing.T) {
	assert.Equal(t, time.UTC, Config{Timezone: "Not/AZone"}.Location())
	assert.Equal(t, time.UTC, Config{}.Location())
}
