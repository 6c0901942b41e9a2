package config

// Environment selects logging format and other deployment defaults.
type Environment string

const (
	EnvDevelopment Environment = "development"
	EnvProduction  Environment = "production"
)

// Config is the top-level kaftar configuration, corresponding to .kaftar.yml.
type Config struct {
	APIBaseURL     string      `yaml:"api_base_url" koanf:"api_base_url"`
	Port           int         `yaml:"port" koanf:"port"`
	PageSize       int         `yaml:"page_size" koanf:"page_size"`
	RequestTimeout string      `yaml:"request_timeout" koanf:"request_timeout"`
	DataDir        string      `yaml:"data_dir" koanf:"data_dir"`
	Environment    Environment `yaml:"environment" koanf:"environment"`
	LogLevel       string      `yaml:"log_level" koanf:"log_level"`
	AllowedOrigins []string    `yaml:"allowed_origins" koanf:"allowed_origins"`
	SiteName       string      `yaml:"site_name" koanf:"site_name"`
	Webhooks       []string    `yaml:"webhooks,omitempty" koanf:"webhooks"`
}
