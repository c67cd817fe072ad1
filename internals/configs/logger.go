package configs

import (
	"os"
	"time"

	"github.com/rollbar/rollbar-go"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// InitLogger sets the global zerolog logger. Console output outside production.
func InitLogger() {
	level, err := zerolog.ParseLevel(GetEnv("LOG_LEVEL", "info"))
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339

	if IsProduction() {
		log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
		return
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "2006-01-02 15:04:05"})
}

// InitRollbar enables error reporting when ROLLBAR_TOKEN is configured.
func InitRollbar(codeVersion string) bool {
	token := GetEnv("ROLLBAR_TOKEN")
	if token == "" {
		rollbar.SetEnabled(false)
		return false
	}
	rollbar.SetToken(token)
	rollbar.SetEnvironment(GetEnv("APP_ENV"))
	rollbar.SetCodeVersion(codeVersion)
	if host, err := os.Hostname(); err == nil {
		rollbar.SetServerHost(host)
	}
	rollbar.SetEnabled(true)
	log.Info().Msg("rollbar reporting enabled")
	return true
}

// ReportError sends err to Rollbar (no-op when disabled) with request context.
func ReportError(err error, extras map[string]interface{}) {
	if err == nil {
		return
	}
	rollbar.Error(err, extras)
}

// FlushReports waits for queued Rollbar items before shutdown.
func FlushReports() {
	rollbar.Wait()
}
