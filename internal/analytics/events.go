/*
Package analytics implements background tracking of tool-call events.

Events are queued without blocking the request path and flushed in
batches to the storage layer. The in-memory registry counters remain the
source of truth for resource views; this package only provides durable
analytics across restarts.
*/
package analytics

import (
	"time"

	"github.com/Sjking2025/Gadget-Spec-Scout/internal/storage"
)

// CallEvent is a tool invocation queued for persistence.
type CallEvent struct {
	// ToolName is the name of the tool that was invoked.
	ToolName string

	// QueryHash is the SHA256 hash of the triggering query for privacy.
	QueryHash string

	// Timestamp is when the tool was invoked.
	Timestamp time.Time

	// Success indicates whether the call was recorded as successful.
	Success bool
}

// NewCallEvent creates an event for tracking, hashing the raw query.
func NewCallEvent(toolName, query string, success bool) CallEvent {
	return CallEvent{
		ToolName:  toolName,
		QueryHash: storage.HashQuery(query),
		Timestamp: time.Now(),
		Success:   success,
	}
}

// ToStorage converts the event to its storage model.
func (e CallEvent) ToStorage() storage.CallEvent {
	return storage.CallEvent{
		ToolName:  e.ToolName,
		QueryHash: e.QueryHash,
		Timestamp: e.Timestamp,
		Success:   e.Success,
	}
}
