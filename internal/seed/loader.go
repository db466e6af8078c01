package seed

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
)

// fileLoader implements Loader for fixture files on the local file system.
type fileLoader struct {
	logger zerolog.Logger
}

// NewFileLoader creates a new file-based fixture loader.
func NewFileLoader(logger zerolog.Logger) Loader {
	return &fileLoader{
		logger: logger.With().Str("component", "fixture-loader").Logger(),
	}
}

// Load reads a fixture file from disk.
func (l *fileLoader) Load(ctx context.Context, filePath string) (*Fixture, error) {
	l.logger.Info().Str("file", filePath).Msg("loading fixture file")

	file, err := os.Open(filePath)
	if err != nil {
		l.logger.Error().Err(err).Str("file", filePath).Msg("failed to open fixture file")
		return nil, fmt.Errorf("failed to open fixture file %s: %w", filePath, err)
	}
	defer file.Close()

	fixture, err := decode(ctx, file, filePath)
	if err != nil {
		l.logger.Error().Err(err).Str("file", filePath).Msg("error reading fixture file")
		return nil, err
	}

	l.logger.Info().
		Str("file", filePath).
		Int("customers", len(fixture.Customers)).
		Int("products", len(fixture.Products)).
		Int("orders", len(fixture.Orders)).
		Msg("fixture file loaded successfully")

	return fixture, nil
}
