package env

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// GetString returns the value of key or fallback when it is unset or empty.
func GetString(key, fallback string) string {
	val, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(val) == "" {
		return fallback
	}
	return val
}

// GetInt parses key as an integer. Invalid values fall back and are reported on stdout,
// the same way the rate limiter settings have always been read.
func GetInt(key string, fallback int) int {
	val, ok := os.LookupEnv(key)
	if !ok || val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		fmt.Printf("Invalid %s, defaulting to %d\n", key, fallback)
		return fallback
	}
	return parsed
}

func GetBool(key string, fallback bool) bool {
	val, ok := os.LookupEnv(key)
	if !ok || val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		fmt.Printf("Invalid %s, defaulting to %t\n", key, fallback)
		return fallback
	}
	return parsed
}

func GetDuration(key string, fallback time.Duration) time.Duration {
	val, ok := os.LookupEnv(key)
	if !ok || val == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(val)
	if err != nil {
		fmt.Printf("Invalid %s, defaulting to %s\n", key, fallback)
		return fallback
	}
	return parsed
}

// GetList splits a comma separated value, dropping blanks.
func GetList(key string) []string {
	val := os.Getenv(key)
	if val == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(val, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
