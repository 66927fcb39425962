/*
Package conversation tracks a rolling window of recent user queries and
derives preferences and themes from it.

State is session-scoped and in-memory only: switching the session id
clears the history buffer (but not the cumulative tool counters), and
nothing survives a process restart. History is capped at a configurable
window with FIFO eviction.
*/
package conversation

import (
	"sync"
	"time"
)

// Conversation themes, in detection priority order.
const (
	ThemeInitialExploration   = "initial_exploration"
	ThemeComparisonShopping   = "comparison_shopping"
	ThemePriceFocused         = "price_focused"
	ThemeReviewResearch       = "review_research"
	ThemeDiscoveryExploration = "discovery_exploration"
	ThemeGeneralInquiry       = "general_inquiry"
)

// QueryRecord is one tracked query. Records are immutable once appended.
type QueryRecord struct {
	Query         string   `json:"query"`
	ToolsCalled   []string `json:"tools_called"`
	ResultSummary string   `json:"result_summary"`
	Timestamp     string   `json:"timestamp"`
	SessionID     string   `json:"session_id"`
}

// Context is the consistent snapshot other components read.
type Context struct {
	SessionID           string         `json:"session_id"`
	QueryCount          int            `json:"query_count"`
	Last3Queries        []QueryRecord  `json:"last_3_queries"`
	InferredPreferences Preferences    `json:"inferred_preferences"`
	ConversationTheme   string         `json:"conversation_theme"`
	ToolUsageStats      map[string]int `json:"tool_usage_stats"`
}

// Tracker maintains the bounded query history and cumulative tool usage
// counters for the active session.
type Tracker struct {
	mu         sync.RWMutex
	maxHistory int
	history    []QueryRecord
	toolUsage  map[string]int
	sessionID  string

	// now is swappable for tests.
	now func() time.Time
}

// NewTracker creates a tracker keeping at most maxHistory queries.
// Values below 1 fall back to a window of 1.
func NewTracker(maxHistory int) *Tracker {
	if maxHistory < 1 {
		maxHistory = 1
	}
	return &Tracker{
		maxHistory: maxHistory,
		toolUsage:  make(map[string]int),
		now:        time.Now,
	}
}

// TrackQuery appends a query and its tool usage to the history.
//
// A session id different from the current one clears the history first:
// a new session discards prior context but keeps the cumulative tool
// counters. The oldest records are evicted once the window is full.
// Every entry in toolsCalled increments its counter, duplicates included.
func (t *Tracker) TrackQuery(query string, toolsCalled []string, resultSummary, sessionID string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.sessionID != sessionID {
		t.sessionID = sessionID
		t.history = nil
	}

	tools := make([]string, len(toolsCalled))
	copy(tools, toolsCalled)

	t.history = append(t.history, QueryRecord{
		Query:         query,
		ToolsCalled:   tools,
		ResultSummary: resultSummary,
		Timestamp:     t.now().Format(time.RFC3339),
		SessionID:     sessionID,
	})

	if len(t.history) > t.maxHistory {
		t.history = t.history[len(t.history)-t.maxHistory:]
	}

	for _, tool := range toolsCalled {
		t.toolUsage[tool]++
	}
}

// LastQueries returns the most recent n records, oldest first.
func (t *Tracker) LastQueries(n int) []QueryRecord {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.lastQueriesLocked(n)
}

func (t *Tracker) lastQueriesLocked(n int) []QueryRecord {
	if n <= 0 || len(t.history) == 0 {
		return []QueryRecord{}
	}
	start := len(t.history) - n
	if start < 0 {
		start = 0
	}
	out := make([]QueryRecord, len(t.history)-start)
	copy(out, t.history[start:])
	return out
}

// Theme identifies the overall conversation theme from tool usage across
// the current history. The first satisfied rule wins.
func (t *Tracker) Theme() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.themeLocked()
}

func (t *Tracker) themeLocked() string {
	if len(t.history) == 0 {
		return ThemeInitialExploration
	}

	counts := make(map[string]int)
	for _, record := range t.history {
		for _, tool := range record.ToolsCalled {
			counts[tool]++
		}
	}

	switch {
	case counts["compare_specs"] >= 2:
		return ThemeComparisonShopping
	case counts["get_price"] >= 3:
		return ThemePriceFocused
	case counts["get_reviews"] >= 2:
		return ThemeReviewResearch
	case counts["search_devices"] >= 2:
		return ThemeDiscoveryExploration
	default:
		return ThemeGeneralInquiry
	}
}

// Context returns a snapshot of the full conversation state. The snapshot
// is computed under one lock acquisition so it reflects a single coherent
// view of the history.
func (t *Tracker) Context() Context {
	t.mu.RLock()
	defer t.mu.RUnlock()

	usage := make(map[string]int, len(t.toolUsage))
	for tool, count := range t.toolUsage {
		usage[tool] = count
	}

	return Context{
		SessionID:           t.sessionID,
		QueryCount:          len(t.history),
		Last3Queries:        t.lastQueriesLocked(3),
		InferredPreferences: t.inferPreferencesLocked(),
		ConversationTheme:   t.themeLocked(),
		ToolUsageStats:      usage,
	}
}
