package apitest

import (
	"time"

	"github.com/sentirsebien/go-client/internal/config"
)

// Config points a rest.Client at the fake backend.
type Config struct {
	BaseURL string
}

var _ config.Config = Config{}

func (c Config) GetAppName() string              { return "apitest" }
func (c Config) GetBaseURL() string              { return c.BaseURL }
func (c Config) GetAPIPrefix() string            { return apiPrefix }
func (c Config) GetHTTPTimeout() time.Duration   { return 5 * time.Second }
func (c Config) GetDataFolder() string           { return "" }
func (c Config) GetEnv() string                  { return "TEST" }

// ClientConfig returns a config for this server instance.
func (s *Server) ClientConfig() Config {
	return Config{BaseURL: s.HTTP.URL}
}
