package config

import (
	"encoding/json"
	"log/slog"
	"reflect"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// MustInitConfig initializes configuration from .env file or environment variables.
// If configFile exists, it loads from the file. Otherwise, it automatically binds
// environment variables based on the Config struct's mapstructure tags.
func MustInitConfig(configFile string) Config {
	var (
		vpr = viper.New()
		cfg Config
	)

	setDefaults(vpr)

	vpr.AutomaticEnv()

	vpr.SetConfigFile(configFile)
	vpr.SetConfigType("env")

	if err := vpr.ReadInConfig(); err != nil {
		slog.Warn("config file not found or cannot be read, using environment variables",
			slog.String("file", configFile),
			slog.String("error", err.Error()))
	} else {
		slog.Info("config file loaded successfully", slog.String("file", configFile))

		vpr.WatchConfig()
	}

	// Automatically bind all environment variables from Config struct
	bindEnvFromStruct(vpr)

	// Unmarshal configuration into struct
	if err := vpr.Unmarshal(&cfg); err != nil {
		slog.Error("cannot unmarshal config", slog.String("error", err.Error()))
		panic(err)
	}

	return cfg
}

func setDefaults(vpr *viper.Viper) {
	vpr.SetDefault("LOG_LEVEL", "info")

	vpr.SetDefault("HTTP_PORT", 8080)
	vpr.SetDefault("HTTP_TIMEOUT", 30*time.Second)
	vpr.SetDefault("HTTP_ALLOWED_ORIGINS", []string{"*"})
	vpr.SetDefault("RATE_LIMIT_RPS", 0)

	vpr.SetDefault("REDIS_ADDR", "localhost:6379")
	vpr.SetDefault("REDIS_DB", 0)
	vpr.SetDefault("REDIS_TIMEOUT", 3*time.Second)

	vpr.SetDefault("SEATS_AERO_BASE_URL", "https://seats.aero")
	vpr.SetDefault("SEATS_AERO_TIMEOUT", 10*time.Second)
	vpr.SetDefault("SEATS_AERO_MAX_RETRIES", 2)
	vpr.SetDefault("SEATS_AERO_MAX_PAGES", 3)
	vpr.SetDefault("CAD_TO_USD_RATE", 0.72)

	vpr.SetDefault("AMADEUS_BASE_URL", "https://test.api.amadeus.com")
	vpr.SetDefault("AMADEUS_TOKEN_URL", "https://test.api.amadeus.com/v1/security/oauth2/token")
	vpr.SetDefault("AMADEUS_TIMEOUT", 15*time.Second)
	vpr.SetDefault("AMADEUS_MAX_RETRIES", 2)
	vpr.SetDefault("AMADEUS_MAX_RESULTS", 50)
	vpr.SetDefault("AMADEUS_RELAX_NONSTOP_RETRY", false)
	vpr.SetDefault("AMADEUS_ONE_WAY_FALLBACK", true)

	vpr.SetDefault("TOKEN_REFRESH_SKEW", 60*time.Second)
	vpr.SetDefault("TOKEN_LOCK_TIMEOUT", 5*time.Second)

	vpr.SetDefault("TAX_CAP_RATIO", 0.1)
	vpr.SetDefault("UNMATCHED_CASH_POLICY", "drop")
	vpr.SetDefault("RECOMMENDATION_LIMIT", 5)
	vpr.SetDefault("APPLY_PREFERENCE_FILTER", true)

	vpr.SetDefault("TRANSFER_PRIMARY_SOURCE", "chase")
	vpr.SetDefault("TRANSFER_SECONDARY_SOURCE", "amex")
	vpr.SetDefault("TRANSFER_PRIMARY_PROGRAMS", []string{"united"})
	vpr.SetDefault("TRANSFER_PRIMARY_AIRLINES", []string{"UA", "AC", "LH", "NH"})
}

// bindEnvFromStruct automatically binds environment variables based on mapstructure tags using reflection
func bindEnvFromStruct(vpr *viper.Viper) {
	bindEnvFromType(vpr, reflect.TypeOf(Config{}))
}

func bindEnvFromType(vpr *viper.Viper, t reflect.Type) {
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	if t.Kind() != reflect.Struct {
		return
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")

		if tag == "" || tag == "-" {
			// If it's an embedded struct without a tag, recurse
			if field.Anonymous && field.Type.Kind() == reflect.Struct {
				bindEnvFromType(vpr, field.Type)
			}
			continue
		}

		parts := strings.Split(tag, ",")
		envVar := parts[0]
		isSquash := false
		for _, p := range parts {
			if strings.TrimSpace(p) == "squash" {
				isSquash = true
				break
			}
		}

		if isSquash && field.Type.Kind() == reflect.Struct {
			bindEnvFromType(vpr, field.Type)
			continue
		}

		if envVar != "" {
			_ = vpr.BindEnv(envVar)

			// If it's an array of struct, check if the value is a JSON string and unmarshal it
			if (field.Type.Kind() == reflect.Slice && field.Type.Elem().Kind() == reflect.Struct) ||
				field.Type.Kind() == reflect.Struct {
				val := vpr.Get(envVar)
				if s, ok := val.(string); ok && s != "" {
					var jsonVal interface{}
					if err := json.Unmarshal([]byte(s), &jsonVal); err == nil {
						vpr.Set(envVar, jsonVal)
					}
				}
			}
		}
	}
}
