package scorelens

import (
	"sync"

	"github.com/fairwaylab/scorelens/pkg/reconciler"
)

// ScanHook is called after a scan completes successfully. Hooks run
// synchronously on the scanning goroutine; keep them cheap.
type ScanHook func(result *reconciler.Result)

// hooks manages event callbacks for scan events
type hooks struct {
	mu             sync.RWMutex
	onScanComplete []ScanHook
}

// newHooks creates a new hooks instance
func newHooks() *hooks {
	return &hooks{}
}

// OnScanComplete registers a callback for completed scans
func (s *scorelens) OnScanComplete(fn ScanHook) {
	s.hooks.mu.Lock()
	defer s.hooks.mu.Unlock()
	s.hooks.onScanComplete = append(s.hooks.onScanComplete, fn)
}

func (h *hooks) fireScanComplete(result *reconciler.Result) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, hook := range h.onScanComplete {
		hook(result)
	}
}
