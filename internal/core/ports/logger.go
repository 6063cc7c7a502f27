package ports

import "go.trai.ch/wasmbuild/internal/core/domain"

// Logger defines the interface for logging.
//
//go:generate mockgen -source=logger.go -destination=mocks/mock_logger.go -package=mocks
type Logger interface {
	// Log writes a structured record. All other methods are shorthands for it.
	Log(rec domain.LogRecord)
	Info(msg string)
	Warn(msg string)
	Error(err error)
}
