package server

import "time"

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// ApiKey is the secret key required to access the API. Empty disables the check.
	ApiKey string `mapstructure:"api_key" default:""`
	// SyncTimeoutSeconds bounds a sync triggered over HTTP.
	SyncTimeoutSeconds int `mapstructure:"sync_timeout_seconds" default:"300"`
}

// Address returns the listen address for Port.
func (c Config) Address() string {
	return ":" + c.Port
}

// SyncTimeout returns SyncTimeoutSeconds as a duration, or zero for no limit.
func (c Config) SyncTimeout() time.Duration {
	if c.SyncTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(c.SyncTimeoutSeconds) * time.Second
}
