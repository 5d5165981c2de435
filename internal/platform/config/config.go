package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const defaultJWTSecret = "a-very-secret-key-should-be-longer-and-random"

// Config holds application configuration.
type Config struct {
	DatabaseURL    string
	Port           string
	IsProduction   bool
	EnableDBCheck  bool
	MigrationsPath string

	JWTSecret          string
	JWTExpiryDuration  time.Duration
	JWTIssuer          string
	SessionCookieName  string
	ActivationTokenTTL time.Duration

	FrontendBaseURL    string
	BaseURL            string
	CORSAllowedOrigins []string
	SignInRateLimit    string

	// Transactional email (Resend)
	ResendEnabled   bool
	ResendAPIKey    string
	ResendFromEmail string
	ContactEmail    string

	// Billing (Stripe)
	StripeSecretKey     string
	StripeWebhookSecret string
	StripeTrialDays     int64

	// External OAuth Providers
	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string

	PosthogAPIKey   string
	PosthogEndpoint string
}

// EmailEnabled reports whether transactional email is switched on and has credentials.
func (c *Config) EmailEnabled() bool {
	return c.ResendEnabled && c.ResendAPIKey != ""
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	return fromViper(v), nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("ENABLE_DB_CHECK", false)
	v.SetDefault("MIGRATIONS_PATH", "file://migrations")
	v.SetDefault("JWT_SECRET", defaultJWTSecret)
	v.SetDefault("JWT_EXPIRY_DURATION", "24h")
	v.SetDefault("JWT_ISSUER", "orgdash")
	v.SetDefault("SESSION_COOKIE_NAME", "session")
	v.SetDefault("ACTIVATION_TOKEN_TTL", "48h")
	v.SetDefault("FRONTEND_BASE_URL", "http://localhost:3000")
	v.SetDefault("BASE_URL", "http://localhost:8080")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("SIGN_IN_RATE_LIMIT", "5-M")
	v.SetDefault("RESEND_ENABLED", false)
	v.SetDefault("RESEND_API_KEY", "")
	v.SetDefault("RESEND_FROM_EMAIL", "noreply@example.com")
	v.SetDefault("CONTACT_EMAIL", "")
	v.SetDefault("STRIPE_SECRET_KEY", "")
	v.SetDefault("STRIPE_WEBHOOK_SECRET", "")
	v.SetDefault("STRIPE_TRIAL_DAYS", 14)
	v.SetDefault("GOOGLE_CLIENT_ID", "")
	v.SetDefault("GOOGLE_CLIENT_SECRET", "")
	v.SetDefault("GOOGLE_REDIRECT_URL", "")
	v.SetDefault("POSTHOG_API_KEY", "")
	v.SetDefault("POSTHOG_ENDPOINT", "https://eu.i.posthog.com")
}

func fromViper(v *viper.Viper) *Config {
	cfg := &Config{
		DatabaseURL:         v.GetString("PGSQL_URL"),
		Port:                v.GetString("PORT"),
		IsProduction:        v.GetBool("IS_PRODUCTION"),
		EnableDBCheck:       v.GetBool("ENABLE_DB_CHECK"),
		MigrationsPath:      v.GetString("MIGRATIONS_PATH"),
		JWTSecret:           v.GetString("JWT_SECRET"),
		JWTIssuer:           v.GetString("JWT_ISSUER"),
		SessionCookieName:   v.GetString("SESSION_COOKIE_NAME"),
		FrontendBaseURL:     strings.TrimRight(v.GetString("FRONTEND_BASE_URL"), "/"),
		BaseURL:             strings.TrimRight(v.GetString("BASE_URL"), "/"),
		CORSAllowedOrigins:  splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		SignInRateLimit:     v.GetString("SIGN_IN_RATE_LIMIT"),
		ResendEnabled:       v.GetBool("RESEND_ENABLED"),
		ResendAPIKey:        v.GetString("RESEND_API_KEY"),
		ResendFromEmail:     v.GetString("RESEND_FROM_EMAIL"),
		ContactEmail:        v.GetString("CONTACT_EMAIL"),
		StripeSecretKey:     v.GetString("STRIPE_SECRET_KEY"),
		StripeWebhookSecret: v.GetString("STRIPE_WEBHOOK_SECRET"),
		StripeTrialDays:     v.GetInt64("STRIPE_TRIAL_DAYS"),
		GoogleClientID:      v.GetString("GOOGLE_CLIENT_ID"),
		GoogleClientSecret:  v.GetString("GOOGLE_CLIENT_SECRET"),
		GoogleRedirectURL:   v.GetString("GOOGLE_REDIRECT_URL"),
		PosthogAPIKey:       v.GetString("POSTHOG_API_KEY"),
		PosthogEndpoint:     v.GetString("POSTHOG_ENDPOINT"),
	}

	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}
	if cfg.JWTSecret == "" || cfg.JWTSecret == defaultJWTSecret {
		cfg.JWTSecret = defaultJWTSecret // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}
	cfg.JWTExpiryDuration = parseDuration(v, "JWT_EXPIRY_DURATION", 24*time.Hour)
	cfg.ActivationTokenTTL = parseDuration(v, "ACTIVATION_TOKEN_TTL", 48*time.Hour)
	if cfg.SessionCookieName == "" {
		cfg.SessionCookieName = "session"
	}
	if cfg.SignInRateLimit == "" {
		cfg.SignInRateLimit = "5-M"
	}
	if cfg.ContactEmail == "" {
		cfg.ContactEmail = cfg.ResendFromEmail
	}

	if cfg.ResendEnabled && cfg.ResendAPIKey == "" {
		log.Println("Warning: RESEND_ENABLED is true but RESEND_API_KEY is not set. Email will not be sent.")
	}
	if cfg.StripeSecretKey == "" {
		log.Println("Warning: STRIPE_SECRET_KEY not set. Billing will not function.")
	}
	if cfg.GoogleClientID == "" || cfg.GoogleClientSecret == "" || cfg.GoogleRedirectURL == "" {
		log.Println("Warning: Google OAuth variables not fully set. Google sign-in will not function.")
	}

	return cfg
}

func parseDuration(v *viper.Viper, key string, fallback time.Duration) time.Duration {
	raw := v.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, fallback.String())
		}
		return fallback
	}
	return d
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
