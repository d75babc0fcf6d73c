package utils

import (
	"os"
	"testing"
)

func TestGetEnvReturnsValue(t *testing.T) {
	os.Setenv("FOO", "bar")
	defer os.Unsetenv("FOO")

	got := GetEnv("FOO")
	if got != "bar" {
		t.Errorf("Expected 'bar', got '%s'", got)
	}
}

func TestGetEnvReturnsEmptyIfNotSet(t *testing.T) {
	got := GetEnv("DOES_NOT_EXIST")
	if got != "" {
		t.Errorf("Expected empty string, got '%s'", got)
	}
}

func TestGetEnvOrFallsBack(t *testing.T) {
	if got := GetEnvOr("DOES_NOT_EXIST", "fallback"); got != "fallback" {
		t.Errorf("Expected 'fallback', got '%s'", got)
	}

	os.Setenv("BAR", "baz")
	defer os.Unsetenv("BAR")
	if got := GetEnvOr("BAR", "fallback"); got != "baz" {
		t.Errorf("Expected 'baz', got '%s'", got)
	}
}
