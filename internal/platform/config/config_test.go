package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestFromViper_Defaults(t *testing.T) {
	v := viper.New()
	setDefaults(v)

	cfg := fromViper(v)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "session", cfg.SessionCookieName)
	assert.Equal(t, 24*time.Hour, cfg.JWTExpiryDuration)
	assert.Equal(t, 48*time.Hour, cfg.ActivationTokenTTL)
	assert.Equal(t, "5-M", cfg.SignInRateLimit)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, int64(14), cfg.StripeTrialDays)
	assert.False(t, cfg.EmailEnabled())
	assert.Equal(t, cfg.ResendFromEmail, cfg.ContactEmail)
}

func TestFromViper_Overrides(t *testing.T) {
	v := viper.New()
	setDefaults(v)
	v.Set("RESEND_ENABLED", true)
	v.Set("RESEND_API_KEY", "re_123")
	v.Set("JWT_EXPIRY_DURATION", "not-a-duration")
	v.Set("CORS_ALLOWED_ORIGINS", "https://a.io, https://b.io,")
	v.Set("FRONTEND_BASE_URL", "https://app.io/")

	cfg := fromViper(v)

	assert.True(t, cfg.EmailEnabled())
	assert.Equal(t, 24*time.Hour, cfg.JWTExpiryDuration)
	assert.Equal(t, []string{"https://a.io", "https://b.io"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, "https://app.io", cfg.FrontendBaseURL)
}

func TestEmailEnabled_RequiresKey(t *testing.T) {
	cfg := &Config{ResendEnabled: true}
	assert.False(t, cfg.EmailEnabled())
}
