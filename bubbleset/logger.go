package bubbleset

import (
	"log/slog"
	"sync/atomic"

	"github.com/paulhankin/bubblesets/potential"
)

var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(slog.New(slog.DiscardHandler))
}

// SetLogger configures the logger of this package and of the outline
// engine. Cache decisions are logged at debug level; failures of
// throttled updates, which have no caller to return to, at warn level.
// Pass nil to disable logging.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(slog.DiscardHandler)
	}
	loggerPtr.Store(l)
	potential.SetLogger(l)
}

func logger() *slog.Logger { return loggerPtr.Load() }
