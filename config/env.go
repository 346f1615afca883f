// Package config reads flag defaults from SNEK_-prefixed environment
// variables, so every command-line flag can also be set from the
// environment. Unparseable values fall back to the default.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

const Prefix = "SNEK_"

func lookup(key string) (string, bool) {
	val := os.Getenv(Prefix + strings.ToUpper(key))
	return val, val != ""
}

func GetEnvOrDefault(key, defaultVal string) string {
	if val, ok := lookup(key); ok {
		return val
	}
	return defaultVal
}

func GetEnvIntOrDefault(key string, defaultVal int) int {
	if val, ok := lookup(key); ok {
		var i int
		if _, err := fmt.Sscanf(val, "%d", &i); err == nil {
			return i
		}
	}
	return defaultVal
}

func GetEnvFloatOrDefault(key string, defaultVal float64) float64 {
	if val, ok := lookup(key); ok {
		var f float64
		if _, err := fmt.Sscanf(val, "%g", &f); err == nil {
			return f
		}
	}
	return defaultVal
}

func GetEnvDurationOrDefault(key string, defaultVal time.Duration) time.Duration {
	if val, ok := lookup(key); ok {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultVal
}

func GetEnvBoolOrDefault(key string, defaultVal bool) bool {
	if val, ok := lookup(key); ok {
		switch strings.ToLower(val) {
		case "true", "1", "yes":
			return true
		case "false", "0", "no":
			return false
		}
	}
	return defaultVal
}
