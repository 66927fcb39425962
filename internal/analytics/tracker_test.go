package analytics

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Sjking2025/Gadget-Spec-Scout/internal/storage"
)

// mockSink is an in-memory Sink for tracker tests.
type mockSink struct {
	mu     sync.Mutex
	events []storage.CallEvent
}

func (m *mockSink) Init() error { return nil }

func (m *mockSink) RecordCall(event storage.CallEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
	return nil
}

func (m *mockSink) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.events)
}

// waitForEvents polls until the sink holds want events or the deadline
// passes.
func waitForEvents(t *testing.T, sink *mockSink, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if sink.count() >= want {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("expected %d events, got %d", want, sink.count())
}

func TestNewTracker(t *testing.T) {
	sink := &mockSink{}
	tracker := NewTracker(sink)
	defer tracker.Stop()

	if !tracker.IsEnabled() {
		t.Error("expected tracker to be enabled")
	}
}

func TestTracker_Track(t *testing.T) {
	sink := &mockSink{}
	tracker := NewTracker(sink)
	defer tracker.Stop()

	tracker.Track(NewCallEvent("get_price", "price of oneplus 12", true))

	waitForEvents(t, sink, 1)
	sink.mu.Lock()
	defer sink.mu.Unlock()
	if sink.events[0].ToolName != "get_price" {
		t.Errorf("unexpected event: %+v", sink.events[0])
	}
	if sink.events[0].QueryHash == "" {
		t.Error("expected query hash to be set")
	}
}

func TestTracker_TrackMultiple(t *testing.T) {
	sink := &mockSink{}
	tracker := NewTracker(sink)
	defer tracker.Stop()

	for i := 0; i < 25; i++ {
		tracker.Track(NewCallEvent("search_devices", "samsung phones", true))
	}

	waitForEvents(t, sink, 25)
}

func TestTracker_StopFlushesQueued(t *testing.T) {
	sink := &mockSink{}
	tracker := NewTracker(sink)

	for i := 0; i < 5; i++ {
		tracker.Track(NewCallEvent("get_reviews", "is it good", true))
	}
	tracker.Stop()

	if got := sink.count(); got != 5 {
		t.Errorf("expected 5 events after Stop, got %d", got)
	}
}

func TestTracker_Disable(t *testing.T) {
	sink := &mockSink{}
	tracker := NewTracker(sink)
	defer tracker.Stop()

	tracker.Disable()
	if tracker.IsEnabled() {
		t.Error("expected tracker to be disabled")
	}

	tracker.Track(NewCallEvent("get_specs", "specs", true))
	time.Sleep(150 * time.Millisecond)

	if got := sink.count(); got != 0 {
		t.Errorf("expected no events while disabled, got %d", got)
	}
}

func TestNewCallEvent_HashesQuery(t *testing.T) {
	event := NewCallEvent("compare_specs", "oneplus 12 vs xiaomi 14", true)

	if event.QueryHash == "" {
		t.Error("expected query hash")
	}
	if strings.Contains(event.QueryHash, "oneplus") {
		t.Error("raw query must not leak into the hash")
	}

	stored := event.ToStorage()
	if stored.ToolName != "compare_specs" || stored.QueryHash != event.QueryHash {
		t.Errorf("storage conversion mismatch: %+v", stored)
	}
}
