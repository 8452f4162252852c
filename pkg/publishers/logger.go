package publishers

import "github.com/samvad-hq/city-pulse/internal/logger"

// Logger is the structured logger publishers report deliveries and failures to.
type Logger = logger.Logger

func ensureLogger(log Logger) Logger {
	return logger.Ensure(log)
}
