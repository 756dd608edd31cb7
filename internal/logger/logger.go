package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const serviceName = "shophub"

func isProduction(env string) bool {
	return env == "production"
}

// buildConfig returns the zap configuration for env. Production logs are
// JSON; everything else is human-readable console output.
func buildConfig(env string) zap.Config {
	var config zap.Config
	if isProduction(env) {
		config = zap.NewProductionConfig()
		config.Encoding = "json"
		config.EncoderConfig.TimeKey = "timestamp"
		config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	} else {
		config = zap.NewDevelopmentConfig()
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	// containers collect stdout
	config.OutputPaths = []string{"stdout"}
	config.ErrorOutputPaths = []string{"stderr"}
	config.InitialFields = map[string]interface{}{
		"service": serviceName,
		"env":     env,
	}
	return config
}

// New creates a new structured logger for env
func New(env string) (*zap.Logger, error) {
	return buildConfig(env).Build(
		zap.AddCaller(),
		zap.AddStacktrace(zapcore.ErrorLevel),
	)
}

// Must is New for command entry points, falling back to a production
// logger if the configured one cannot be built
func Must(env string) *zap.Logger {
	logger, err := New(env)
	if err != nil {
		logger, _ = zap.NewProduction()
	}
	return logger
}
