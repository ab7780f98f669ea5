package logging

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// New builds the application logger. With a log directory configured it
// writes rotated files through lumberjack; otherwise it is a development
// logger on stdout.
func New(logsDirectory string) (*zap.Logger, error) {
	if logsDirectory == "" {
		return zap.NewDevelopment()
	}

	runTimestamp := time.Now().UTC().Format("2006-01-02T15-04-05")
	logFile := fmt.Sprintf("%s/courier-%s.log", logsDirectory, runTimestamp)

	lumberjackLogger := &lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    100, // MB before it rolls
		MaxBackups: 7,
		MaxAge:     30, // days
		Compress:   true,
	}

	writeSyncer := zapcore.AddSync(lumberjackLogger)
	encoder := zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
		TimeKey:      "ts",
		LevelKey:     "level",
		MessageKey:   "msg",
		CallerKey:    "caller",
		EncodeTime:   zapcore.ISO8601TimeEncoder,
		EncodeLevel:  zapcore.CapitalLevelEncoder,
		EncodeCaller: zapcore.ShortCallerEncoder,
	})

	core := zapcore.NewCore(encoder, writeSyncer, zap.InfoLevel)
	return zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel)), nil
}
