package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks writes every event to a structured logger at debug level, and
// failures at error level. It implements all three hook interfaces.
type LogHooks struct {
	Logger *log.Logger
}

// Register installs h as the pipeline, cache and HTTP hooks.
func (h LogHooks) Register() {
	SetPipelineHooks(h)
	SetCacheHooks(h)
	SetHTTPHooks(h)
}

func (h LogHooks) logger() *log.Logger {
	if h.Logger == nil {
		return log.Default()
	}
	return h.Logger
}

func (h LogHooks) OnLayoutStart(_ context.Context, entries int) {
	h.logger().Debug("layout started", "entries", entries)
}

func (h LogHooks) OnLayoutComplete(_ context.Context, entries, external int, d time.Duration, err error) {
	if err != nil {
		h.logger().Error("layout failed", "entries", entries, "duration", d, "err", err)
		return
	}
	h.logger().Debug("layout complete", "entries", entries, "external", external, "duration", d)
}

func (h LogHooks) OnRenderStart(_ context.Context, formats []string) {
	h.logger().Debug("render started", "formats", formats)
}

func (h LogHooks) OnRenderComplete(_ context.Context, formats []string, d time.Duration, err error) {
	if err != nil {
		h.logger().Error("render failed", "formats", formats, "duration", d, "err", err)
		return
	}
	h.logger().Debug("render complete", "formats", formats, "duration", d)
}

func (h LogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger().Debug("cache hit", "type", keyType)
}

func (h LogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger().Debug("cache miss", "type", keyType)
}

func (h LogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger().Debug("cache set", "type", keyType, "bytes", size)
}

func (h LogHooks) OnRequest(_ context.Context, method, path string) {
	h.logger().Debug("request", "method", method, "path", path)
}

func (h LogHooks) OnResponse(_ context.Context, method, path string, status int, d time.Duration) {
	h.logger().Debug("response", "method", method, "path", path, "status", status, "duration", d)
}

func (h LogHooks) OnError(_ context.Context, method, path string, err error) {
	h.logger().Error("request failed", "method", method, "path", path, "err", err)
}

var (
	_ PipelineHooks = LogHooks{}
	_ CacheHooks    = LogHooks{}
	_ HTTPHooks     = LogHooks{}
)
