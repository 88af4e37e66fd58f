package zoofile

import (
	"errors"

	"golang.org/x/exp/slog"
)

// MaxBufferSize is the number of bytes requested by the first read of a
// payload. Larger payloads are fetched with a second read sized to the
// length the store reported.
const MaxBufferSize = 262144

// DefaultMaxReadAttempts bounds how often File.Content starts over when a
// large payload keeps changing its length between reads.
const DefaultMaxReadAttempts = 16

// DefaultConcurrency is the number of children ReadDir and RemoveAll work on
// at the same time.
const DefaultConcurrency = 8

// Config provides a way to configure an FS depending on your needs.
type Config struct {
	// Session is the connection to the coordination store. It must not be nil.
	Session Session
	// Classifier holds the file and directory classifications. If nil,
	// DefaultClassifier is used, which is shared by the whole process.
	Classifier *Classifier
	// MaxReadAttempts limits the number of times File.Content reads a large
	// payload whose length changes under it. Zero selects
	// DefaultMaxReadAttempts, a negative value removes the limit so that only
	// the context can stop the loop.
	MaxReadAttempts int
	// Concurrency limits the goroutines used by ReadDir and RemoveAll. Zero
	// selects DefaultConcurrency.
	Concurrency int
	// Logger is the logger to use internally. Defaults to slog.Default().
	Logger *slog.Logger
}

func (config *Config) validate() error {
	if config.Session == nil {
		return errors.New("zoofile: Session must not be nil")
	}

	if config.Classifier == nil {
		config.Classifier = DefaultClassifier
	}

	if config.MaxReadAttempts == 0 {
		config.MaxReadAttempts = DefaultMaxReadAttempts
	}

	if config.Concurrency <= 0 {
		config.Concurrency = DefaultConcurrency
	}

	if config.Logger == nil {
		config.Logger = slog.Default()
	}

	return nil
}
