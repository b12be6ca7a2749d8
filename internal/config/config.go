package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort string

	// Remote loan platform endpoints.
	APIBaseURL string
	SocketURL  string

	RedisAddr string
	RedisDB   int

	SessionSecret string
	SessionTTL    time.Duration

	// LoanPolicy selects the live intake revision: "micro" or "standard".
	LoanPolicy string
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func Load() *Config {
	// a missing .env is fine; real deployments set the environment directly
	_ = godotenv.Load()

	c := &Config{
		AppPort:    getenv("APP_PORT", "8080"),
		APIBaseURL: getenv("API_BASE_URL", "http://localhost:5000"),
		SocketURL:  getenv("SOCKET_URL", ""),

		RedisAddr: getenv("REDIS_ADDR", "redis:6379"),

		SessionSecret: getenv("SESSION_SECRET", ""),
		SessionTTL:    24 * time.Hour,

		LoanPolicy: getenv("LOAN_POLICY", "micro"),
	}
	if c.SocketURL == "" {
		c.SocketURL = c.APIBaseURL
	}
	if v := os.Getenv("REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.RedisDB = n
		}
	}
	if v := os.Getenv("SESSION_TTL_HOURS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.SessionTTL = time.Duration(n) * time.Hour
		}
	}
	return c
}

func (c *Config) Validate() error {
	if c.AppPort == "" {
		return errors.New("missing APP_PORT")
	}
	if _, err := net.LookupPort("tcp", c.AppPort); err != nil {
		return fmt.Errorf("invalid APP_PORT %q: %w", c.AppPort, err)
	}
	u, err := url.Parse(c.APIBaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid API_BASE_URL %q", c.APIBaseURL)
	}
	if c.SessionSecret == "" {
		return errors.New("missing SESSION_SECRET")
	}
	return nil
}
