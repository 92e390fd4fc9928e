// Package logger 基于 zap 构建服务日志
package logger

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"terminal-terrace/discussion-board/config"
)

// New 根据日志配置创建 zap.Logger
func New(conf config.LogConfig) (*zap.Logger, error) {
	level, err := ParseLevel(conf.Level)
	if err != nil {
		return nil, err
	}
	return Build(conf, level)
}

// ParseLevel 解析日志级别，返回可在运行时调整的级别
func ParseLevel(text string) (zap.AtomicLevel, error) {
	level, err := zap.ParseAtomicLevel(text)
	if err != nil {
		return level, fmt.Errorf("无效的日志级别 %q: %w", text, err)
	}
	return level, nil
}

// Build 使用给定级别创建 zap.Logger，级别变更立即生效
func Build(conf config.LogConfig, level zap.AtomicLevel) (*zap.Logger, error) {
	encoderConf := zap.NewProductionEncoderConfig()
	encoderConf.TimeKey = "time"
	encoderConf.EncodeTime = zapcore.ISO8601TimeEncoder

	var encoder zapcore.Encoder
	switch conf.Format {
	case "console", "text":
		encoderConf.EncodeLevel = zapcore.CapitalColorLevelEncoder
		encoder = zapcore.NewConsoleEncoder(encoderConf)
	default:
		encoder = zapcore.NewJSONEncoder(encoderConf)
	}

	sink, err := openSink(conf)
	if err != nil {
		return nil, err
	}

	core := zapcore.NewCore(encoder, sink, level)
	return zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel)), nil
}

// openSink 打开日志输出
func openSink(conf config.LogConfig) (zapcore.WriteSyncer, error) {
	if conf.Output != "file" {
		return zapcore.Lock(os.Stdout), nil
	}
	if conf.Path == "" {
		return nil, fmt.Errorf("日志输出为 file 时必须配置 path")
	}
	if err := os.MkdirAll(filepath.Dir(conf.Path), 0o755); err != nil {
		return nil, fmt.Errorf("创建日志目录失败: %w", err)
	}
	f, err := os.OpenFile(conf.Path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("打开日志文件失败: %w", err)
	}
	return zapcore.AddSync(f), nil
}
