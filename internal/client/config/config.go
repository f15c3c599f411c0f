// Package config assembles the client runtime settings from defaults, an
// optional JSON file and command-line flags, in that order of precedence.
package config

// Config holds runtime settings for the vetdesk client.
//
// Fields:
//   - ServerBaseURL: base URL of the clinic backend, e.g. "http://localhost:8080".
//   - DatabasePath: path of the local sqlite database holding the
//     persisted session credential.
type Config struct {
	ServerBaseURL string
	DatabasePath  string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://localhost:8080"
	c.DatabasePath = "vetdesk.db"
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from JSON (if present) and command-line flags (if present). Later
// sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
