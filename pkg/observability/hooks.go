// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Hosts register hooks at startup to receive
// events about job scheduling, layout passes and scene reconciliation.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define a hook interface for the cloud's lifecycle events
//   - Provide a no-op default implementation
//   - Allow registration of a custom implementation at startup
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetCloudHooks(&myHooks{})
//	    // ... run application
//	}
//
// The cloud package calls hooks to emit events:
//
//	observability.Cloud().OnLayoutStart(ctx, jobID, len(words))
//	// ... place words ...
//	observability.Cloud().OnLayoutComplete(ctx, jobID, placed, dropped, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Cloud Hooks
// =============================================================================

// CloudHooks receives events from a word cloud's job pipeline.
type CloudHooks interface {
	// OnJobSubmitted records a submitted job. coalesced is true when the job
	// replaced an older pending job that never started.
	OnJobSubmitted(ctx context.Context, jobID string, words int, refreshLayout, coalesced bool)

	// Layout events
	OnLayoutStart(ctx context.Context, jobID string, words int)
	OnLayoutComplete(ctx context.Context, jobID string, placed, dropped int, duration time.Duration, err error)

	// Reconciliation events
	OnReconcileStart(ctx context.Context, jobID string, entering, updating, exiting int)
	OnReconcileComplete(ctx context.Context, jobID string, duration time.Duration, abandoned bool)

	// OnRenderComplete records the end of a drained batch of jobs.
	OnRenderComplete(ctx context.Context, jobID string, complete bool)
}

// =============================================================================
// No-op Implementation
// =============================================================================

// NoopCloudHooks is a no-op implementation of CloudHooks.
type NoopCloudHooks struct{}

func (NoopCloudHooks) OnJobSubmitted(context.Context, string, int, bool, bool) {}
func (NoopCloudHooks) OnLayoutStart(context.Context, string, int)              {}
func (NoopCloudHooks) OnLayoutComplete(context.Context, string, int, int, time.Duration, error) {
}
func (NoopCloudHooks) OnReconcileStart(context.Context, string, int, int, int)          {}
func (NoopCloudHooks) OnReconcileComplete(context.Context, string, time.Duration, bool) {}
func (NoopCloudHooks) OnRenderComplete(context.Context, string, bool)                   {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	cloudHooks CloudHooks = NoopCloudHooks{}
	hooksMu    sync.RWMutex
)

// SetCloudHooks registers custom cloud hooks.
// This should be called once at application startup before any cloud is created.
func SetCloudHooks(h CloudHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cloudHooks = h
	}
}

// Cloud returns the registered cloud hooks.
func Cloud() CloudHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cloudHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	cloudHooks = NoopCloudHooks{}
}
