package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	appNameVar     = "APP_NAME"
	baseURLVar     = "BASE_URL"
	apiPrefixVar   = "API_PREFIX"
	httpTimeoutVar = "HTTP_TIMEOUT_SECONDS"
	folderEnvVar   = "FOLDER"
)

const defaultHTTPTimeout = 15 * time.Second

type EnvVars struct{}

var _ Config = EnvVars{}

func (EnvVars) GetAppName() string {
	return GetEnv(appNameVar, "Sentirse Bien")
}

// GetBaseURL returns the API origin (e.g. "https://api.sentirsebien.example").
// All request paths are resolved relative to it plus the API prefix.
func (EnvVars) GetBaseURL() string {
	return strings.TrimRight(GetEnv(baseURLVar, "http://localhost:8000"), "/")
}

func (EnvVars) GetAPIPrefix() string {
	prefix := GetEnv(apiPrefixVar, "/sentirseBien/api/v1")
	if !strings.HasPrefix(prefix, "/") {
		prefix = "/" + prefix
	}
	return strings.TrimRight(prefix, "/")
}

// GetHTTPTimeout returns the per-request timeout. The transport default is
// no timeout at all, which leaves the UI hanging on a dead network, so a
// finite value is always returned.
func (EnvVars) GetHTTPTimeout() time.Duration {
	secs, err := strconv.Atoi(GetEnv(httpTimeoutVar, ""))
	if err != nil || secs <= 0 {
		return defaultHTTPTimeout
	}
	return time.Duration(secs) * time.Second
}

// GetDataFolder returns the folder for durable client state (token files).
// Empty means "use the platform user-config directory".
func (EnvVars) GetDataFolder() string {
	return GetEnv(folderEnvVar, "")
}

func (EnvVars) GetEnv() string {
	env := os.Getenv("ENV")
	if env == "" {
		return "DEV"
	}
	return env
}

func GetEnv(envVar, defaultValue string) string {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	return value
}
