package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	APP        = "APP"
	CONFIG     = "CONFIG"
	GENERATE   = "GENERATE"
	HANDLER    = "HANDLER"
	MIDDLEWARE = "MIDDLEWARE"
	REDIS      = "REDIS"
	SERVICE    = "SERVICE"
	UPSTREAM   = "UPSTREAM"
)

// Init configures the global zerolog logger from LOG_LEVEL and LOG_FORMAT.
func Init() {
	InitWithWriter(os.Stdout)
}

// InitWithWriter is Init with an explicit sink, used by tests.
func InitWithWriter(w io.Writer) {
	zerolog.TimeFieldFormat = time.RFC3339Nano
	zerolog.SetGlobalLevel(getLogLevel())

	if strings.EqualFold(os.Getenv("LOG_FORMAT"), "console") {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}

	log.Logger = zerolog.New(w).With().Timestamp().Logger()
	// request handlers log through log.Ctx; fall back to the global logger
	zerolog.DefaultContextLogger = &log.Logger
}

func getLogLevel() zerolog.Level {
	level := strings.ToUpper(os.Getenv("LOG_LEVEL"))
	switch level {
	case "TRACE":
		return zerolog.TraceLevel
	case "DEBUG":
		return zerolog.DebugLevel
	case "INFO":
		return zerolog.InfoLevel
	case "WARN":
		return zerolog.WarnLevel
	case "ERROR":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

func Debug(namespace, format string, v ...interface{}) {
	log.Debug().Str("namespace", namespace).Msg(fmt.Sprintf(format, v...))
}

func Info(namespace, format string, v ...interface{}) {
	log.Info().Str("namespace", namespace).Msg(fmt.Sprintf(format, v...))
}

func Warn(namespace, format string, v ...interface{}) {
	log.Warn().Str("namespace", namespace).Msg(fmt.Sprintf(format, v...))
}

func Error(namespace, format string, v ...interface{}) {
	log.Error().Str("namespace", namespace).Msg(fmt.Sprintf(format, v...))
}

// Fatal logs and exits the process.
func Fatal(namespace, format string, v ...interface{}) {
	log.Fatal().Str("namespace", namespace).Msg(fmt.Sprintf(format, v...))
}
