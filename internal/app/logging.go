package app

import (
	"io"
	"log"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"
)

// NewLogger builds the pipeline logger. With a log file configured it
// writes through a rotating file, otherwise to stderr. The returned
// closer is a no-op in the stderr case.
func NewLogger(cfg LogConfig) (*log.Logger, io.Closer) {
	if cfg.File == "" {
		return log.New(os.Stderr, "", log.LstdFlags), nopCloser{}
	}
	rotator := &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
	}
	return log.New(rotator, "", log.LstdFlags), rotator
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
