package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LoggingHooks writes every event to a logger at debug level.
// It implements ConvertHooks, CacheHooks and HTTPHooks.
type LoggingHooks struct {
	logger *log.Logger
}

// NewLoggingHooks returns hooks that log to l. A nil logger uses log.Default().
func NewLoggingHooks(l *log.Logger) *LoggingHooks {
	if l == nil {
		l = log.Default()
	}
	return &LoggingHooks{logger: l.WithPrefix("hooks")}
}

func (h *LoggingHooks) OnConvertStart(_ context.Context, inputBytes int) {
	h.logger.Debug("convert start", "bytes", inputBytes)
}

func (h *LoggingHooks) OnConvertComplete(_ context.Context, format string, cells int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("convert failed", "format", format, "duration", d, "err", err)
		return
	}
	h.logger.Debug("convert done", "format", format, "cells", cells, "duration", d)
}

func (h *LoggingHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h *LoggingHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h *LoggingHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "size", size)
}

func (h *LoggingHooks) OnRequest(_ context.Context, method, path, requestID string) {
	h.logger.Debug("request", "method", method, "path", path, "id", requestID)
}

func (h *LoggingHooks) OnResponse(_ context.Context, method, path, requestID string, status int, d time.Duration) {
	h.logger.Debug("response", "method", method, "path", path, "id", requestID, "status", status, "duration", d)
}

var (
	_ ConvertHooks = (*LoggingHooks)(nil)
	_ CacheHooks   = (*LoggingHooks)(nil)
	_ HTTPHooks    = (*LoggingHooks)(nil)
)
