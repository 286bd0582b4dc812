// Package util provides shared utilities for sysstatus.
package util

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// lookupEnv returns the trimmed value of key, or false when it is unset
// or blank.
func lookupEnv(key string) (string, bool) {
	value := strings.TrimSpace(os.Getenv(key))
	return value, value != ""
}

// envAs converts the value of key with conv. Unset, blank and
// unconvertible values yield def.
func envAs[T any](key string, def T, conv func(string) (T, error)) T {
	value, ok := lookupEnv(key)
	if !ok {
		return def
	}
	v, err := conv(value)
	if err != nil {
		Debug("ignoring %s=%q: %v", key, value, err)
		return def
	}
	return v
}

// GetEnv returns an environment variable value with a default fallback.
func GetEnv(key, defaultValue string) string {
	if value, ok := lookupEnv(key); ok {
		return value
	}
	return defaultValue
}

// GetEnvBool reads key as a boolean. Accepted forms are 1/0, true/false,
// yes/no and on/off in any case.
func GetEnvBool(key string, defaultValue bool) bool {
	return envAs(key, defaultValue, parseEnvBool)
}

// GetEnvInt reads key as a base-10 integer.
func GetEnvInt(key string, defaultValue int) int {
	return envAs(key, defaultValue, strconv.Atoi)
}

func parseEnvBool(value string) (bool, error) {
	switch strings.ToLower(value) {
	case "1", "true", "yes", "on":
		return true, nil
	case "0", "false", "no", "off":
		return false, nil
	}
	return false, fmt.Errorf("not a boolean")
}
