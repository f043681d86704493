package config

import (
	"log/slog"
	"time"
)

type LogLeveler string

func (l LogLeveler) Level() slog.Level {
	var level slog.Level

	_ = level.UnmarshalText([]byte(l))

	return level
}

// Config holds the server configuration.
type Config struct {
	LogLevel       LogLeveler     `mapstructure:"LOG_LEVEL"`
	HTTP           HTTP           `mapstructure:",squash"`
	Redis          Redis          `mapstructure:",squash"`
	SeatsAero      SeatsAero      `mapstructure:",squash"`
	Amadeus        Amadeus        `mapstructure:",squash"`
	Token          Token          `mapstructure:",squash"`
	Recommendation Recommendation `mapstructure:",squash"`
	Transfer       Transfer       `mapstructure:",squash"`
}

type HTTP struct {
	Port           int           `mapstructure:"HTTP_PORT"`
	Timeout        time.Duration `mapstructure:"HTTP_TIMEOUT"`
	AllowedOrigins []string      `mapstructure:"HTTP_ALLOWED_ORIGINS"`
	RateLimitRPS   int           `mapstructure:"RATE_LIMIT_RPS"`
}

type Redis struct {
	Addr     string        `mapstructure:"REDIS_ADDR"`
	Password string        `mapstructure:"REDIS_PASSWORD"`
	DB       int           `mapstructure:"REDIS_DB"`
	Timeout  time.Duration `mapstructure:"REDIS_TIMEOUT"`
}

// SeatsAero holds the award inventory source configuration.
type SeatsAero struct {
	BaseURL    string        `mapstructure:"SEATS_AERO_BASE_URL"`
	APIKey     string        `mapstructure:"SEATS_AERO_API_KEY"`
	Timeout    time.Duration `mapstructure:"SEATS_AERO_TIMEOUT"`
	MaxRetries int           `mapstructure:"SEATS_AERO_MAX_RETRIES"`
	MaxPages   int           `mapstructure:"SEATS_AERO_MAX_PAGES"`
	CADToUSD   float64       `mapstructure:"CAD_TO_USD_RATE"`
}

// Amadeus holds the cash fare source configuration.
type Amadeus struct {
	BaseURL           string        `mapstructure:"AMADEUS_BASE_URL"`
	TokenURL          string        `mapstructure:"AMADEUS_TOKEN_URL"`
	ClientID          string        `mapstructure:"AMADEUS_CLIENT_ID"`
	ClientSecret      string        `mapstructure:"AMADEUS_CLIENT_SECRET"`
	Timeout           time.Duration `mapstructure:"AMADEUS_TIMEOUT"`
	MaxRetries        int           `mapstructure:"AMADEUS_MAX_RETRIES"`
	MaxResults        int           `mapstructure:"AMADEUS_MAX_RESULTS"`
	RelaxNonstopRetry bool          `mapstructure:"AMADEUS_RELAX_NONSTOP_RETRY"`
	OneWayFallback    bool          `mapstructure:"AMADEUS_ONE_WAY_FALLBACK"`
}

type Token struct {
	RefreshSkew time.Duration `mapstructure:"TOKEN_REFRESH_SKEW"`
	LockTimeout time.Duration `mapstructure:"TOKEN_LOCK_TIMEOUT"`
}

type Recommendation struct {
	TaxCapRatio           float64 `mapstructure:"TAX_CAP_RATIO"`
	UnmatchedCashPolicy   string  `mapstructure:"UNMATCHED_CASH_POLICY"`
	Limit                 int     `mapstructure:"RECOMMENDATION_LIMIT"`
	ApplyPreferenceFilter bool    `mapstructure:"APPLY_PREFERENCE_FILTER"`
}

// Transfer configures which points currency an offer is transferred from.
type Transfer struct {
	PrimarySource   string   `mapstructure:"TRANSFER_PRIMARY_SOURCE"`
	SecondarySource string   `mapstructure:"TRANSFER_SECONDARY_SOURCE"`
	PrimaryPrograms []string `mapstructure:"TRANSFER_PRIMARY_PROGRAMS"`
	PrimaryAirlines []string `mapstructure:"TRANSFER_PRIMARY_AIRLINES"`
}

const redacted = "[REDACTED]"

// LogValue hides credentials when the config is logged.
func (c Config) LogValue() slog.Value {
	type plain Config

	masked := c
	masked.Redis.Password = mask(masked.Redis.Password)
	masked.SeatsAero.APIKey = mask(masked.SeatsAero.APIKey)
	masked.Amadeus.ClientSecret = mask(masked.Amadeus.ClientSecret)

	return slog.AnyValue(plain(masked))
}

func mask(secret string) string {
	if secret == "" {
		return ""
	}

	return redacted
}
