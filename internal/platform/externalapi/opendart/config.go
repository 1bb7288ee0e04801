// Package opendart provides a client for the OpenDART (금융감독원 전자공시) API.
package opendart

import (
	"os"
	"strconv"
	"time"
)

// DefaultBaseURL は OpenDART API のベースURLです。
const DefaultBaseURL = "https://opendart.fss.or.kr"

// Config holds configuration for the OpenDART API client.
type Config struct {
	APIKey            string        // crtfc_key
	BaseURL           string        // e.g. "https://opendart.fss.or.kr"
	Timeout           time.Duration // HTTP request timeout
	RequestsPerSecond float64       // client-side rate limit
	MaxRetries        uint64        // retries for transient failures
}

// LoadConfig loads OpenDART configuration from environment variables.
func LoadConfig() Config {
	cfg := Config{
		APIKey:            os.Getenv("OPENDART_API_KEY"),
		BaseURL:           os.Getenv("OPENDART_BASE_URL"),
		Timeout:           30 * time.Second,
		RequestsPerSecond: 5,
		MaxRetries:        3,
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if v, err := strconv.ParseFloat(os.Getenv("OPENDART_RPS"), 64); err == nil && v > 0 {
		cfg.RequestsPerSecond = v
	}
	return cfg
}

// Configured はAPIキーが設定されているかどうかを返します。
func (c Config) Configured() bool {
	return c.APIKey != ""
}
