package config

import (
	"testing"
	"time"
)

func valid() *Config {
	return &Config{
		AppPort:       "8080",
		APIBaseURL:    "http://localhost:5000",
		SocketURL:     "http://localhost:5000",
		RedisAddr:     "localhost:6379",
		SessionSecret: "s3cret",
		SessionTTL:    24 * time.Hour,
		LoanPolicy:    "micro",
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"ok", func(*Config) {}, false},
		{"missing port", func(c *Config) { c.AppPort = "" }, true},
		{"bad port", func(c *Config) { c.AppPort = "not-a-port" }, true},
		{"missing base url", func(c *Config) { c.APIBaseURL = "" }, true},
		{"relative base url", func(c *Config) { c.APIBaseURL = "localhost:5000" }, true},
		{"missing secret", func(c *Config) { c.SessionSecret = "" }, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := valid()
			tc.mutate(c)
			err := c.Validate()
			if tc.wantErr && err == nil {
				t.Fatal("want error, got nil")
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("want nil, got %v", err)
			}
		})
	}
}

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"APP_PORT", "API_BASE_URL", "SOCKET_URL", "LOAN_POLICY", "SESSION_TTL_HOURS"} {
		t.Setenv(k, "")
	}
	c := Load()
	if c.AppPort != "8080" {
		t.Fatalf("AppPort = %q, want 8080", c.AppPort)
	}
	if c.LoanPolicy != "micro" {
		t.Fatalf("LoanPolicy = %q, want micro", c.LoanPolicy)
	}
	if c.SocketURL == "" {
		t.Fatal("SocketURL should fall back to APIBaseURL")
	}
	if c.SessionTTL != 24*time.Hour {
		t.Fatalf("SessionTTL = %v, want 24h", c.SessionTTL)
	}
}
