// internal/pkg/logger/logger.go
package logger

import (
	"context"
	"io"
	"os"

	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
)

// Init 配置全局 zerolog logger 输出到 stdout，所有日志带上 service 字段。
func Init(service, level string) {
	InitTo(os.Stdout, service, level)
}

// InitTo 与 Init 相同，但输出到 w
func InitTo(w io.Writer, service, level string) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)

	zlog.Logger = zerolog.New(w).With().Timestamp().Str("service", service).Logger()
}

// Ctx 返回 context 里的 logger，没有时退回全局 logger。
func Ctx(ctx context.Context) *zerolog.Logger {
	l := zerolog.Ctx(ctx)
	if l.GetLevel() == zerolog.Disabled {
		return &zlog.Logger
	}
	return l
}

// WithTraceID 把带 trace_id 的 logger 放进 context。
func WithTraceID(ctx context.Context, traceID string) context.Context {
	l := Ctx(ctx).With().Str("trace_id", traceID).Logger()
	return l.WithContext(ctx)
}
