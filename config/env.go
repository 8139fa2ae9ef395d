package config

import "os"

// GetEnv reads an environment variable, empty when unset.
func GetEnv(key string) string {
	return os.Getenv(key)
}

// GetEnvOr reads an environment variable with a fallback for local runs.
func GetEnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
