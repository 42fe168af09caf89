package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/alumni/internal/flagx"
	"github.com/dmitrijs2005/alumni/internal/timex"
)

// JsonConfig is the on-disk shape of the optional JSON config file.
// Durations accept both "168h"-style strings and integer nanoseconds.
type JsonConfig struct {
	EndpointAddrHTTP        string         `json:"endpoint_addr_http"`
	StorageBackend          string         `json:"storage_backend"`
	DatabaseDSN             string         `json:"database_dsn"`
	SessionBackend          string         `json:"session_backend"`
	RedisAddr               string         `json:"redis_addr"`
	RedisPassword           string         `json:"redis_password"`
	SecretKey               string         `json:"secret_key"`
	SessionValidityDuration timex.Duration `json:"session_validity_duration"`
	CookieSecure            bool           `json:"cookie_secure"`
	AdminEmail              string         `json:"admin_email"`
	AdminPassword           string         `json:"admin_password"`
	AllowedOrigins          []string       `json:"allowed_origins"`
	RateLimitPerMinute      int            `json:"rate_limit_per_minute"`
	LogBackend              string         `json:"log_backend"`
	LogFormat               string         `json:"log_format"`
}

// parseJson overlays values from the file named by -c/-config onto config.
// Keys missing from the file keep their current values. No flag, no change.
func parseJson(config *Config) error {
	path := flagx.JsonConfigFlags()
	if path == "" {
		return nil
	}

	file, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	c := toJson(config)
	if err := json.Unmarshal(file, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	fromJson(config, c)
	return nil
}

func toJson(c *Config) *JsonConfig {
	return &JsonConfig{
		EndpointAddrHTTP:        c.EndpointAddrHTTP,
		StorageBackend:          c.StorageBackend,
		DatabaseDSN:             c.DatabaseDSN,
		SessionBackend:          c.SessionBackend,
		RedisAddr:               c.RedisAddr,
		RedisPassword:           c.RedisPassword,
		SecretKey:               c.SecretKey,
		SessionValidityDuration: timex.Duration{Duration: c.SessionValidityDuration},
		CookieSecure:            c.CookieSecure,
		AdminEmail:              c.AdminEmail,
		AdminPassword:           c.AdminPassword,
		AllowedOrigins:          c.AllowedOrigins,
		RateLimitPerMinute:      c.RateLimitPerMinute,
		LogBackend:              c.LogBackend,
		LogFormat:               c.LogFormat,
	}
}

func fromJson(dst *Config, c *JsonConfig) {
	dst.EndpointAddrHTTP = c.EndpointAddrHTTP
	dst.StorageBackend = c.StorageBackend
	dst.DatabaseDSN = c.DatabaseDSN
	dst.SessionBackend = c.SessionBackend
	dst.RedisAddr = c.RedisAddr
	dst.RedisPassword = c.RedisPassword
	dst.SecretKey = c.SecretKey
	dst.SessionValidityDuration = c.SessionValidityDuration.Duration
	dst.CookieSecure = c.CookieSecure
	dst.AdminEmail = c.AdminEmail
	dst.AdminPassword = c.AdminPassword
	dst.AllowedOrigins = c.AllowedOrigins
	dst.RateLimitPerMinute = c.RateLimitPerMinute
	dst.LogBackend = c.LogBackend
	dst.LogFormat = c.LogFormat
}
