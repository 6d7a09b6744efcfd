package utils

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// LogConfig 日志配置
type LogConfig struct {
	Level      string `json:"level" yaml:"level" validate:"omitempty,oneof=trace debug info warn warning error fatal panic"`
	Format     string `json:"format" yaml:"format" validate:"omitempty,oneof=json text"`
	File       string `json:"file" yaml:"file"`
	MaxSize    int    `json:"maxSize" yaml:"maxSize" validate:"min=0"`
	MaxBackups int    `json:"maxBackups" yaml:"maxBackups" validate:"min=0"`
	MaxAge     int    `json:"maxAge" yaml:"maxAge" validate:"min=0"`
	Compress   bool   `json:"compress" yaml:"compress"`
}

// CustomFormatter 自定义日志格式
type CustomFormatter struct {
	logrus.JSONFormatter
}

// Format 实现自定义格式化
func (f *CustomFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	// 添加进程信息
	entry.Data["pid"] = os.Getpid()
	entry.Data["goroutine_id"] = getGoroutineID()

	return f.JSONFormatter.Format(entry)
}

var (
	defaultLogger *logrus.Logger
	once          sync.Once
)

// NewLogger builds a logger from cfg. Output always goes to stdout and,
// when cfg.File is set, to a rotated log file as well.
func NewLogger(cfg LogConfig) (*logrus.Logger, error) {
	logger := logrus.New()

	level := logrus.InfoLevel
	if cfg.Level != "" {
		parsed, err := logrus.ParseLevel(cfg.Level)
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
		}
		level = parsed
	}
	logger.SetLevel(level)

	switch strings.ToLower(cfg.Format) {
	case "text":
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: time.RFC3339,
		})
	default:
		logger.SetFormatter(&CustomFormatter{
			JSONFormatter: logrus.JSONFormatter{
				TimestampFormat: time.RFC3339,
				FieldMap: logrus.FieldMap{
					logrus.FieldKeyTime:  "@timestamp",
					logrus.FieldKeyLevel: "level",
					logrus.FieldKeyMsg:   "message",
				},
				CallerPrettyfier: func(frame *runtime.Frame) (string, string) {
					return filepath.Base(frame.Function), fmt.Sprintf("%s:%d", filepath.Base(frame.File), frame.Line)
				},
			},
		})
		logger.SetReportCaller(true)
	}

	if cfg.File == "" {
		logger.SetOutput(os.Stdout)
		return logger, nil
	}

	// 创建日志目录
	if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	logger.SetOutput(io.MultiWriter(os.Stdout, &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    orDefault(cfg.MaxSize, 10),
		MaxBackups: orDefault(cfg.MaxBackups, 5),
		MaxAge:     orDefault(cfg.MaxAge, 30),
		Compress:   cfg.Compress,
	}))

	return logger, nil
}

// GetLogger returns the lazily built default logger (stdout, info level).
func GetLogger() *logrus.Logger {
	once.Do(func() {
		logger, err := NewLogger(LogConfig{})
		if err != nil {
			panic(fmt.Sprintf("failed to build default logger: %v", err))
		}
		defaultLogger = logger
	})
	return defaultLogger
}

// LoggerOrDefault returns l, or the default logger when l is nil.
func LoggerOrDefault(l *logrus.Logger) *logrus.Logger {
	if l == nil {
		return GetLogger()
	}
	return l
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}

// getGoroutineID 获取当前协程ID
func getGoroutineID() uint64 {
	b := make([]byte, 64)
	b = b[:runtime.Stack(b, false)]
	var id uint64
	fmt.Sscanf(string(b), "goroutine %d", &id)
	return id
}
