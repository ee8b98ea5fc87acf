package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// logHooks reports story, layout and cache events at debug level.
type logHooks struct {
	logger *log.Logger
}

func newLogHooks(l *log.Logger) *logHooks { return &logHooks{logger: l} }

func (h *logHooks) OnSave(_ context.Context, passage string, fields []string, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("save failed", "passage", passage, "fields", fields, "err", err)
		return
	}
	h.logger.Debug("saved", "passage", passage, "fields", fields, "took", d.Round(time.Microsecond))
}

func (h *logHooks) OnLinksRewritten(_ context.Context, passage, oldTarget, newTarget string) {
	h.logger.Debug("links rewritten", "passage", passage, "from", oldTarget, "to", newTarget)
}

func (h *logHooks) OnStartPassageMoved(_ context.Context, story, from, to string) {
	h.logger.Debug("start passage repointed", "story", story, "from", from, "to", to)
}

func (h *logHooks) OnDisplace(_ context.Context, anchor, passage, axis string, amount float64) {
	h.logger.Debug("displaced", "anchor", anchor, "passage", passage, "axis", axis, "amount", amount)
}

func (h *logHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h *logHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h *logHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}
