package config

// Config holds runtime settings for the journal CLI.
//
// Fields:
//   - DBPath: path of the sqlite file holding the journal.
//   - Locale: BCP 47 tag selecting the language for distortion labels.
type Config struct {
	DBPath string
	Locale string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DBPath = "journal.db"
	c.Locale = "en"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
