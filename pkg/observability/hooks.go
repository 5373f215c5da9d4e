// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard
// dependencies on specific observability backends. Consumers register hooks
// at startup to receive events about passages being built.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetPipelineHooks(&myPipelineHooks{})
//	    // ... run application
//	}
//
// The pipeline calls hooks to emit events:
//
//	observability.Pipeline().OnPassageStart(ctx, id, tokens)
//	// ... apply actions, reporting each with OnAction ...
//	observability.Pipeline().OnFinalizeComplete(ctx, id, nodes, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Pipeline Hooks
// =============================================================================

// PipelineHooks receives events from the passage-building pipeline.
type PipelineHooks interface {
	// OnPassageStart is called once the initial configuration exists.
	OnPassageStart(ctx context.Context, passageID string, tokens int)

	// OnAction is called after every action, with the error that rejected
	// it if any.
	OnAction(ctx context.Context, passageID, action string, err error)

	// OnFinalizeComplete is called after finalization. nodes is the node
	// count of the resulting passage, or 0 on error.
	OnFinalizeComplete(ctx context.Context, passageID string, nodes int, duration time.Duration, err error)
}

// =============================================================================
// No-op Implementation
// =============================================================================

// NoopPipelineHooks is a no-op implementation of PipelineHooks.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnPassageStart(context.Context, string, int)        {}
func (NoopPipelineHooks) OnAction(context.Context, string, string, error)    {}
func (NoopPipelineHooks) OnFinalizeComplete(context.Context, string, int, time.Duration, error) {
}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	pipelineHooks PipelineHooks = NoopPipelineHooks{}
	hooksMu       sync.RWMutex
)

// SetPipelineHooks registers custom pipeline hooks.
// This should be called once at application startup before any passage is built.
func SetPipelineHooks(h PipelineHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		pipelineHooks = h
	}
}

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return pipelineHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	pipelineHooks = NoopPipelineHooks{}
}
