package ports

// Logger defines the interface for logging.
//
//go:generate mockgen -source=logger.go -destination=mocks/mock_logger.go -package=mocks
type Logger interface {
	Info(msg string)
	Warn(msg string)
	Error(err error)
	// Debug logs msg when the named debug area is enabled.
	Debug(area, msg string)
	// DebugEnabled reports whether the named debug area is enabled.
	DebugEnabled(area string) bool
}
