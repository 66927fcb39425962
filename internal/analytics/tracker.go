package analytics

import (
	"log"
	"sync"
	"time"

	"github.com/Sjking2025/Gadget-Spec-Scout/internal/storage"
)

const (
	// eventQueueSize is the buffer size for the event queue.
	// If full, events are dropped (non-blocking).
	eventQueueSize = 1000

	// batchFlushSize is the number of events that triggers an immediate flush.
	batchFlushSize = 10

	// flushInterval is how often pending events are flushed to disk.
	flushInterval = 50 * time.Millisecond
)

// Sink is the subset of the storage layer the tracker writes to.
type Sink interface {
	Init() error
	RecordCall(event storage.CallEvent) error
}

// Tracker records tool-call events in the background with non-blocking
// writes.
type Tracker struct {
	storage    Sink
	eventQueue chan CallEvent
	stopChan   chan struct{}
	stopOnce   sync.Once
	wg         sync.WaitGroup
	enabled    bool
	mu         sync.RWMutex
}

// NewTracker creates a tracker flushing to the given sink.
func NewTracker(sink Sink) *Tracker {
	t := &Tracker{
		storage:    sink,
		eventQueue: make(chan CallEvent, eventQueueSize),
		stopChan:   make(chan struct{}),
		enabled:    true,
	}

	if err := t.storage.Init(); err != nil {
		log.Printf("Warning: analytics storage initialization failed: %v", err)
		t.enabled = false
	}

	t.wg.Add(1)
	go t.processEvents()

	return t
}

// Track records a tool-call event (non-blocking).
// If the queue is full, the event is dropped and a warning is logged.
func (t *Tracker) Track(event CallEvent) {
	if !t.isEnabled() {
		return
	}

	select {
	case t.eventQueue <- event:
	default:
		log.Printf("Warning: analytics queue full, dropping event for tool: %s", event.ToolName)
	}
}

// Stop gracefully shuts down the tracker, flushing remaining events.
func (t *Tracker) Stop() {
	t.stopOnce.Do(func() {
		close(t.stopChan)
		t.wg.Wait()
	})
}

// Disable disables tracking (events are ignored).
func (t *Tracker) Disable() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.enabled = false
}

// IsEnabled returns whether tracking is enabled.
func (t *Tracker) IsEnabled() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.enabled
}

func (t *Tracker) isEnabled() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.enabled && t.storage != nil
}

// processEvents runs in the background, batching and flushing events.
func (t *Tracker) processEvents() {
	defer t.wg.Done()

	ticker := time.NewTicker(flushInterval)
	defer ticker.Stop()

	batch := make([]CallEvent, 0, batchFlushSize)

	for {
		select {
		case event := <-t.eventQueue:
			batch = append(batch, event)
			if len(batch) >= batchFlushSize {
				t.flush(batch)
				batch = make([]CallEvent, 0, batchFlushSize)
			}

		case <-ticker.C:
			if len(batch) > 0 {
				t.flush(batch)
				batch = make([]CallEvent, 0, batchFlushSize)
			}

		case <-t.stopChan:
			// Drain whatever is still queued, then flush and exit.
			for {
				select {
				case event := <-t.eventQueue:
					batch = append(batch, event)
					if len(batch) >= batchFlushSize {
						t.flush(batch)
						batch = make([]CallEvent, 0, batchFlushSize)
					}
				default:
					t.flush(batch)
					return
				}
			}
		}
	}
}

// flush writes a batch of events to storage.
func (t *Tracker) flush(events []CallEvent) {
	for _, event := range events {
		if err := t.storage.RecordCall(event.ToStorage()); err != nil {
			log.Printf("Warning: failed to record tool call: %v", err)
		}
	}
}

// QueueSize returns the current number of queued events.
func (t *Tracker) QueueSize() int {
	return len(t.eventQueue)
}
