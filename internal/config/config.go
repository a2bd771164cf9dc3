// Package config provides configuration helpers for the relay commands.
// Everything is an environment variable with a sane default, matching how
// the relay is deployed alongside its frontend.
package config

import (
	"os"
	"strconv"
	"time"
)

// Defaults for a single-controller relay.
const (
	DefaultPort             = "7878"
	DefaultListenerQueue    = 64
	DefaultHeartbeatTimeout = 60 * time.Second
	DefaultFrontendDir      = "./frontend"
)

// Port returns the HTTP listen port from the PORT env var.
func Port() string {
	if p := os.Getenv("PORT"); p != "" {
		return p
	}
	return DefaultPort
}

// LogLevel returns the log level from LOG_LEVEL, defaulting to info.
func LogLevel() string {
	if lvl := os.Getenv("LOG_LEVEL"); lvl != "" {
		return lvl
	}
	return "info"
}

// ListenerQueue returns the per-listener outbound queue capacity from
// LISTENER_QUEUE. Falls back to the default on absent or bad values.
func ListenerQueue() int {
	if q := os.Getenv("LISTENER_QUEUE"); q != "" {
		if n, err := strconv.Atoi(q); err == nil && n > 0 {
			return n
		}
	}
	return DefaultListenerQueue
}

// HeartbeatTimeout returns how long a controller may stay silent before its
// connection is considered dead, from HEARTBEAT_TIMEOUT (seconds).
func HeartbeatTimeout() time.Duration {
	if t := os.Getenv("HEARTBEAT_TIMEOUT"); t != "" {
		if secs, err := strconv.Atoi(t); err == nil && secs > 0 {
			return time.Duration(secs) * time.Second
		}
	}
	return DefaultHeartbeatTimeout
}

// FrontendDir returns the static frontend directory from FRONTEND_DIR.
func FrontendDir() string {
	if dir := os.Getenv("FRONTEND_DIR"); dir != "" {
		return dir
	}
	return DefaultFrontendDir
}
