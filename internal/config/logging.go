package config

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// InitLogger builds the zap logger described by cfg and installs it as the
// process-wide logger via zap.ReplaceGlobals. With file logging enabled the
// file gets JSON entries under rotation while the console keeps the
// human-readable encoder.
func InitLogger(cfg *Config) (*zap.Logger, error) {
	var zapConfig zap.Config
	if cfg.AppEnv == "production" {
		zapConfig = zap.NewProductionConfig()
	} else {
		zapConfig = zap.NewDevelopmentConfig()
	}

	level := zapConfig.Level
	if parsed, err := zapcore.ParseLevel(cfg.Logger.Level); err == nil {
		level = zap.NewAtomicLevelAt(parsed)
		zapConfig.Level = level
	}

	var logger *zap.Logger
	if cfg.Logger.FileEnable {
		fileSink := &lumberjack.Logger{
			Filename:   cfg.Logger.Filename,
			MaxSize:    64,
			MaxBackups: 7,
			MaxAge:     7,
		}
		core := zapcore.NewTee(
			zapcore.NewCore(
				zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
				zapcore.AddSync(fileSink),
				level,
			),
			zapcore.NewCore(
				zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
				zapcore.AddSync(os.Stdout),
				level,
			),
		)
		logger = zap.New(core, zap.AddCaller())
	} else {
		var err error
		logger, err = zapConfig.Build(zap.AddCaller())
		if err != nil {
			return nil, err
		}
	}

	zap.ReplaceGlobals(logger)
	return logger, nil
}
