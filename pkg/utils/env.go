package utils

import (
	"log"
	"os"
)

func GetEnv(key string) string {
	val, ok := os.LookupEnv(key)
	if !ok {
		log.Printf("env var %s is not set", key)
		return ""
	}
	return val
}

// GetEnvOr is for settings with a sensible local default, where an
// unset variable is not worth a log line.
func GetEnvOr(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}
