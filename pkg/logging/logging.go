package logging

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Open returns a logger appending severity-leveled records to the given
// file, plus a close function for the caller to defer. If the file cannot
// be opened the program still runs, just without a diagnostic trail.
func Open(path string) (zerolog.Logger, func(), error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return zerolog.Nop(), func() {}, err
	}

	logger := zerolog.New(f).With().Timestamp().Logger()
	zerolog.TimeFieldFormat = time.RFC3339

	return logger, func() { _ = f.Close() }, nil
}
