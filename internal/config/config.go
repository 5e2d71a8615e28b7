package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	DatabaseURL        string
	RedisAddress       string
	RedisPassword      string
	RedisDB            int
	AccessTokenSecret  string
	RefreshTokenSecret string
	AccessTokenTTL     time.Duration
	RefreshTokenTTL    time.Duration
	JWTIssuer          string
	PasswordPepper     string
	HTTPAddress        string
	AllowedOrigins     []string
	AllowCredentials   bool
	CookieDomain       string
	LogLevel           string
}

var required = []string{
	"DATABASE_URL",
	"REDIS_ADDRESS",
	"ACCESS_TOKEN_SECRET",
	"REFRESH_TOKEN_SECRET",
	"ACCESS_TOKEN_TTL",
	"REFRESH_TOKEN_TTL",
	"JWT_ISSUER",
	"PASSWORD_PEPPER",
}

// Load reads configuration from an optional config.json plus the
// environment. Environment variables win. The two signing secrets and the
// two token lifetimes are mandatory: the service refuses to start without
// them rather than falling back to something guessable.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(".")

	v.AutomaticEnv()
	for _, key := range append(append([]string{}, required...),
		"REDIS_PASSWORD", "REDIS_DB", "HTTP_ADDRESS",
		"ALLOWED_ORIGINS", "ALLOW_CREDENTIALS", "COOKIE_DOMAIN", "LOG_LEVEL",
	) {
		if err := v.BindEnv(key); err != nil {
			return nil, err
		}
	}

	v.SetDefault("HTTP_ADDRESS", ":8080")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	for _, key := range required {
		if v.GetString(key) == "" {
			return nil, fmt.Errorf("required config key %s is not set", key)
		}
	}

	accessTTL, err := time.ParseDuration(v.GetString("ACCESS_TOKEN_TTL"))
	if err != nil {
		return nil, fmt.Errorf("invalid ACCESS_TOKEN_TTL: %w", err)
	}
	refreshTTL, err := time.ParseDuration(v.GetString("REFRESH_TOKEN_TTL"))
	if err != nil {
		return nil, fmt.Errorf("invalid REFRESH_TOKEN_TTL: %w", err)
	}
	if accessTTL >= refreshTTL {
		return nil, fmt.Errorf("ACCESS_TOKEN_TTL (%s) must be shorter than REFRESH_TOKEN_TTL (%s)", accessTTL, refreshTTL)
	}

	return &Config{
		DatabaseURL:        v.GetString("DATABASE_URL"),
		RedisAddress:       v.GetString("REDIS_ADDRESS"),
		RedisPassword:      v.GetString("REDIS_PASSWORD"),
		RedisDB:            v.GetInt("REDIS_DB"),
		AccessTokenSecret:  v.GetString("ACCESS_TOKEN_SECRET"),
		RefreshTokenSecret: v.GetString("REFRESH_TOKEN_SECRET"),
		AccessTokenTTL:     accessTTL,
		RefreshTokenTTL:    refreshTTL,
		JWTIssuer:          v.GetString("JWT_ISSUER"),
		PasswordPepper:     v.GetString("PASSWORD_PEPPER"),
		HTTPAddress:        v.GetString("HTTP_ADDRESS"),
		AllowedOrigins:     v.GetStringSlice("ALLOWED_ORIGINS"),
		AllowCredentials:   v.GetBool("ALLOW_CREDENTIALS"),
		CookieDomain:       v.GetString("COOKIE_DOMAIN"),
		LogLevel:           v.GetString("LOG_LEVEL"),
	}, nil
}
