// Package config handles configuration for the client component,
// including defaults, JSON overlay, and command-line flags.
package config

import "time"

// Config holds runtime settings for the pastelog client.
//
// Fields:
//   - ServerEndpointAddr: base URL of the pastelog server HTTP API.
//   - MirrorPath: path to the local SQLite mirror database.
//   - RequestTimeout: per-request timeout for remote calls.
//   - OnlineCheckInterval: how often connectivity to the server is probed.
//   - GistToken: optional GitHub token for gist imports.
//   - SummaryAPIKey: optional Gemini API key for summaries.
type Config struct {
	ServerEndpointAddr  string
	MirrorPath          string
	RequestTimeout      time.Duration
	OnlineCheckInterval time.Duration
	GistToken           string
	SummaryAPIKey       string
}

// LoadDefaults populates Config with sensible development defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "http://127.0.0.1:8080"
	c.MirrorPath = "pastelog.db"
	c.RequestTimeout = 10 * time.Second
	c.OnlineCheckInterval = 5 * time.Second
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file and finally from command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
