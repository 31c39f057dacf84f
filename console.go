package renderengine

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewConsole builds the engine logger from logging options. The returned
// atomic level backs SetDebugMode, which flips the console between info and
// debug output. An unrecognized level name falls back to info; a logger
// that cannot be built falls back to a no-op logger.
func NewConsole(opts LoggingOptions) (*zap.Logger, zap.AtomicLevel) {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(opts.Level)); err != nil {
		lvl = zapcore.InfoLevel
	}
	level := zap.NewAtomicLevelAt(lvl)

	var cfg zap.Config
	if opts.Format == "json" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		cfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		cfg.EncoderConfig.ConsoleSeparator = "  "
		cfg.DisableCaller = true
		cfg.DisableStacktrace = true
	}
	cfg.Level = level

	log, err := cfg.Build()
	if err != nil {
		return zap.NewNop(), level
	}
	return log.Named("renderengine"), level
}
