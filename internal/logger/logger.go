/**
 * @description
 * Structured logger for the Scrimline backend.
 * Thin facade over logrus so callers never import the logging library directly.
 *
 * @dependencies
 * - github.com/sirupsen/logrus
 */

package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

var log = logrus.New()

func init() {
	// Everything goes to stdout so the platform doesn't mislabel info lines as errors
	log.SetOutput(os.Stdout)
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	log.SetLevel(logrus.InfoLevel)
}

// SetEnv adjusts verbosity for the given runtime environment
func SetEnv(env string) {
	if env == "development" {
		log.SetLevel(logrus.DebugLevel)
	}
}

// Debug logs a debug message
func Debug(format string, v ...interface{}) {
	log.Debugf(format, v...)
}

// Info logs an info message
func Info(format string, v ...interface{}) {
	log.Infof(format, v...)
}

// Warn logs a warning message
func Warn(format string, v ...interface{}) {
	log.Warnf(format, v...)
}

// Error logs an error message
func Error(format string, v ...interface{}) {
	log.Errorf(format, v...)
}

// Fatal logs an error and exits
func Fatal(format string, v ...interface{}) {
	log.Fatalf(format, v...)
}

// WithField returns an entry carrying a structured field
func WithField(key string, value interface{}) *logrus.Entry {
	return log.WithField(key, value)
}
