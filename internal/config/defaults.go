package config

// DefaultPath is where init writes and every command reads configuration.
const DefaultPath = ".kaftar.yml"

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		APIBaseURL:     "http://localhost:8000",
		Port:           8080,
		PageSize:       10,
		RequestTimeout: "15s",
		DataDir:        ".kaftar",
		Environment:    EnvDevelopment,
		LogLevel:       "info",
		AllowedOrigins: []string{"*"},
		SiteName:       "Kaf Tar",
	}
}
