package monitor

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validConfig() Config {
	return Config{
		AppID:     "TESTAPP",
		IndexName: "products",
		Delay:     30 * time.Second,
		Delta:     1000,
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid defaults", func(c *Config) {}, ""},
		{"zero delta is allowed", func(c *Config) { c.Delta = 0 }, ""},
		{"missing app id", func(c *Config) { c.AppID = "" }, "application ID"},
		{"missing index", func(c *Config) { c.IndexName = "" }, "index name"},
		{"zero delay", func(c *Config) { c.Delay = 0 }, "delay"},
		{"negative delay", func(c *Config) { c.Delay = -time.Second }, "delay"},
		{"negative delta", func(c *Config) { c.Delta = -5 }, "delta"},
		{"negative expected records", func(c *Config) { c.ExpectedRecords = -1 }, "expected records"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.ErrorContains(t, err, tt.wantErr)
			}
		})
	}
}
