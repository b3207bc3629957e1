package config

import "time"

// Config exposes the client's runtime configuration. All values are read
// from environment variables with sensible defaults, so a zero-config run
// points at a local development backend.
type Config interface {
	GetAppName() string
	GetBaseURL() string
	GetAPIPrefix() string
	GetHTTPTimeout() time.Duration
	GetDataFolder() string
	GetEnv() string
}

type mainConfig struct {
	EnvVars
}

func New() Config {
	return mainConfig{}
}
