package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Settings holds the process-level configuration read once at startup and
// passed into the API client. Nothing here is mutated after Load.
type Settings struct {
	APIKey      string
	BaseURL     string
	RetryCount  int
	RetryDelay  time.Duration
	HTTPTimeout time.Duration
	LogFile     string
}

const defaultBaseURL = "https://api.winnipegtransit.com/v3"

// FromEnv builds Settings from the environment, reading a .env file first if
// one exists. A missing API key is a fatal condition for the whole program,
// so it is reported as an error here rather than discovered mid-pipeline.
func FromEnv() (Settings, error) {
	// Ignore a missing .env file, variables may be set directly
	_ = godotenv.Load()

	apiKey := os.Getenv("API_KEY")
	if apiKey == "" {
		return Settings{}, errors.New("API key not found. Please set API_KEY in your environment or .env file")
	}

	s := Settings{
		APIKey:      apiKey,
		BaseURL:     getenvDefault("TRANSIT_BASE_URL", defaultBaseURL),
		RetryCount:  3,
		RetryDelay:  5 * time.Second,
		HTTPTimeout: 10 * time.Second,
		LogFile:     getenvDefault("LOG_FILE", "app.log"),
	}

	if v := os.Getenv("RETRY_COUNT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return Settings{}, fmt.Errorf("invalid RETRY_COUNT: %q", v)
		}
		s.RetryCount = n
	}

	if v := os.Getenv("RETRY_DELAY_SECONDS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return Settings{}, fmt.Errorf("invalid RETRY_DELAY_SECONDS: %q", v)
		}
		s.RetryDelay = time.Duration(n) * time.Second
	}

	return s, nil
}

func getenvDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
