package configs

import (
	"context"
	"errors"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
	"gorm.io/gorm/utils"
)

var (
	Conf      = viper.New()
	JWTSecret string
)

// =======================
// ENV LOADER
// =======================
func init() {
	Conf.SetTypeByDefaultValue(true)
	Conf.SetDefault("APP_ENV", "development")
	Conf.SetDefault("LOG_LEVEL", "info")
	Conf.SetDefault("PORT", "3000")
	Conf.SetDefault("DB_DRIVER", "postgres")
	Conf.SetDefault("DB_SSLMODE", "require")
	Conf.SetDefault("DB_AUTO_MIGRATE", false)
	Conf.SetDefault("REDIS_DB", 0)
	Conf.SetDefault("SESSION_EXPIRY", 24*time.Hour)
	Conf.SetDefault("MEDIA_ROOT", "media")
	Conf.SetDefault("UPLOAD_MAX_BYTES", int64(5*1024*1024))
	Conf.SetDefault("CORS_ALLOW_ORIGINS", "http://localhost:3000,http://localhost:5173")
	Conf.AutomaticEnv()
}

func LoadEnv() {
	if os.Getenv("RAILWAY_ENVIRONMENT") == "" {
		if err := godotenv.Load(); err != nil {
			log.Warn().Msg("no .env file found, using system environment")
		} else {
			log.Info().Msg(".env file loaded")
		}
	} else {
		log.Info().Msg("running on Railway, using system environment")
	}

	JWTSecret = GetEnv("JWT_SECRET")
	if JWTSecret == "" {
		log.Error().Msg("JWT_SECRET is not set")
	}
}

func GetEnv(key string, defaultValue ...string) string {
	value := strings.TrimSpace(Conf.GetString(key))
	if value == "" && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}

func GetInt(key string) int                { return Conf.GetInt(key) }
func GetInt64(key string) int64            { return Conf.GetInt64(key) }
func GetBool(key string) bool              { return Conf.GetBool(key) }
func GetDuration(key string) time.Duration { return Conf.GetDuration(key) }

func IsProduction() bool {
	return strings.EqualFold(GetEnv("APP_ENV"), "production")
}

// =======================
// GORM LOGGER CUSTOM
// =======================
type GormLogger struct {
	SlowThreshold time.Duration
	LogLevel      gormLogger.LogLevel
}

func NewGormLogger() gormLogger.Interface {
	level := gormLogger.Warn
	if !IsProduction() {
		level = gormLogger.Info
	}
	return &GormLogger{
		SlowThreshold: 200 * time.Millisecond,
		LogLevel:      level,
	}
}

func (l *GormLogger) LogMode(level gormLogger.LogLevel) gormLogger.Interface {
	cp := *l
	cp.LogLevel = level
	return &cp
}

func (l *GormLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Info {
		log.Info().Msgf("[INFO] "+msg, data...)
	}
}

func (l *GormLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Warn {
		log.Warn().Msgf("[WARN] "+msg, data...)
	}
}

func (l *GormLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Error {
		log.Error().Msgf("[ERROR] "+msg, data...)
	}
}

func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.LogLevel <= gormLogger.Silent {
		return
	}
	elapsed := time.Since(begin)
	sql, rows := fc()
	file := utils.FileWithLineNum()

	switch {
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound) && l.LogLevel >= gormLogger.Error:
		log.Error().Err(err).Str("file", file).Dur("elapsed", elapsed).Int64("rows", rows).Msg("[ERROR] " + sql)
	case elapsed > l.SlowThreshold && l.LogLevel >= gormLogger.Warn:
		log.Warn().Str("file", file).Dur("elapsed", elapsed).Int64("rows", rows).Msg("[SLOW SQL] " + sql)
	case l.LogLevel >= gormLogger.Info:
		log.Debug().Str("file", file).Dur("elapsed", elapsed).Int64("rows", rows).Msg("[QUERY] " + sql)
	}
}
