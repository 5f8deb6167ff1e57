package config

import "os"

// Get returns the environment variable for key, or fallback when unset
// or empty. .env loading happens in the mains via godotenv before any
// Get call.
func Get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
