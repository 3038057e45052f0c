package event

import "go.uber.org/zap"

// BusOption configures a Bus.
type BusOption func(*busConfig)

type busConfig struct {
	logger   *zap.Logger
	reporter ErrorReporter
	failFast bool
}

// ErrorReporter receives isolated handler failures (*HandlerError or
// *PanicError). The default reporter logs them.
type ErrorReporter func(err error)

func defaultBusConfig() busConfig {
	return busConfig{logger: zap.NewNop()}
}

// WithLogger sets the logger used for handler failures.
func WithLogger(l *zap.Logger) BusOption {
	return func(c *busConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithErrorReporter replaces the logging reporter.
func WithErrorReporter(r ErrorReporter) BusOption {
	return func(c *busConfig) {
		c.reporter = r
	}
}

// WithFailFast makes Emit return the first handler failure. The remaining
// handlers still run.
func WithFailFast() BusOption {
	return func(c *busConfig) {
		c.failFast = true
	}
}
