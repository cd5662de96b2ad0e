package cli

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/cloudweights/pkg/observability"
)

// logHooks reports pipeline and HTTP events at debug level.
type logHooks struct {
	logger *log.Logger
}

func (h logHooks) OnFetchStart(_ context.Context, corpus string) {
	h.logger.Debug("fetching counts", "corpus", corpus)
}

func (h logHooks) OnFetchComplete(_ context.Context, corpus string, terms int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("fetch failed", "corpus", corpus, "duration", d, "error", err)
		return
	}
	h.logger.Debug("fetch complete", "corpus", corpus, "terms", terms, "duration", d)
}

func (h logHooks) OnScaleComplete(_ context.Context, corpus string, terms int, d time.Duration) {
	h.logger.Debug("scaled weights", "corpus", corpus, "terms", terms, "duration", d)
}

func (h logHooks) OnRequest(_ context.Context, method, host, path string) {
	h.logger.Debug("http request", "method", method, "host", host, "path", path)
}

func (h logHooks) OnResponse(_ context.Context, method, host, path string, status int, d time.Duration) {
	h.logger.Debug("http response", "method", method, "host", host, "path", path, "status", status, "duration", d)
}

func (h logHooks) OnError(_ context.Context, method, host, path string, err error) {
	h.logger.Debug("http error", "method", method, "host", host, "path", path, "error", err)
}

var hooksOnce sync.Once

// installHooks registers logHooks once per process.
func installHooks(logger *log.Logger) {
	hooksOnce.Do(func() {
		h := logHooks{logger: logger}
		observability.SetPipelineHooks(h)
		observability.SetHTTPHooks(h)
	})
}
