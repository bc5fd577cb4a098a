package config

// ServerConfig groups HTTP listener settings.
type ServerConfig struct {
	Port             int      `yaml:"port"`
	AllowedOrigins   []string `yaml:"allowed_origins"`
	ReadTimeoutSecs  int      `yaml:"read_timeout_seconds"`
	WriteTimeoutSecs int      `yaml:"write_timeout_seconds"`
}

// DefaultServerConfig returns the built-in HTTP server defaults.
func DefaultServerConfig() *ServerConfig {
	return &ServerConfig{
		Port:             8080,
		AllowedOrigins:   []string{"*"},
		ReadTimeoutSecs:  30,
		WriteTimeoutSecs: 60,
	}
}
