/*
Package registry holds the static catalog of smartphone-shopping tools
together with per-tool call statistics.

The catalog is fixed at process start: 5 tools (search_devices, get_specs,
get_price, get_reviews, compare_specs) with rich metadata describing when
to use each one. Statistics are in-memory and reset on process restart;
durable analytics live in the storage package.
*/
package registry

import (
	"sort"
	"sync"
)

// Tool cost levels.
const (
	CostLow    = "low"
	CostMedium = "medium"
	CostHigh   = "high"
)

// ToolDescriptor is the static metadata for a single tool.
type ToolDescriptor struct {
	Name               string      `json:"name"`
	Description        string      `json:"description"`
	Category           string      `json:"category"`
	WhenToUse          []string    `json:"when_to_use"`
	ExampleQueries     []string    `json:"example_queries"`
	TypicalNextTools   []string    `json:"typical_next_tools"`
	InputSchema        InputSchema `json:"input_schema"`
	OutputFormat       string      `json:"output_format"`
	AvgExecutionTimeMs int         `json:"avg_execution_time_ms"`
	Cost               string      `json:"cost"`
}

// InputSchema is a JSON-schema-shaped description of a tool's arguments.
type InputSchema struct {
	Type       string              `json:"type"`
	Properties map[string]Property `json:"properties"`
	Required   []string            `json:"required,omitempty"`
}

// Property describes a single schema property.
type Property struct {
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
}

// CallStats holds call counters for one tool.
type CallStats struct {
	Calls     int `json:"calls"`
	Successes int `json:"successes"`
	Failures  int `json:"failures"`
}

// ToolUsage is one entry in the most-used ranking.
type ToolUsage struct {
	Tool        string  `json:"tool"`
	Calls       int     `json:"calls"`
	SuccessRate float64 `json:"success_rate"`
}

// Export is the full registry view served as the tool-registry resource.
type Export struct {
	Tools           []ToolDescriptor     `json:"tools"`
	Stats           map[string]CallStats `json:"stats"`
	MostUsed        []ToolUsage          `json:"most_used"`
	CommonSequences [][]string           `json:"common_sequences"`
}

// Registry is the central registry for all tools with call statistics.
type Registry struct {
	mu    sync.RWMutex
	tools []ToolDescriptor
	stats map[string]*CallStats
	// order preserves catalog declaration order so most-used ties are
	// broken deterministically.
	order []string
}

// NewRegistry creates a registry populated with the static catalog and
// zeroed statistics.
func NewRegistry() *Registry {
	tools := catalog()
	stats := make(map[string]*CallStats, len(tools))
	order := make([]string, 0, len(tools))
	for _, t := range tools {
		stats[t.Name] = &CallStats{}
		order = append(order, t.Name)
	}
	return &Registry{
		tools: tools,
		stats: stats,
		order: order,
	}
}

// Tool returns the descriptor for name, or ok=false if unknown.
func (r *Registry) Tool(name string) (ToolDescriptor, bool) {
	for _, t := range r.tools {
		if t.Name == name {
			return t, true
		}
	}
	return ToolDescriptor{}, false
}

// AllTools returns every descriptor in declaration order.
func (r *Registry) AllTools() []ToolDescriptor {
	out := make([]ToolDescriptor, len(r.tools))
	copy(out, r.tools)
	return out
}

// RecordCall records a call against a tool. Unknown tool names are
// silently ignored; callers outside the catalog are not an error here.
func (r *Registry) RecordCall(name string, success bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stats, ok := r.stats[name]
	if !ok {
		return
	}
	stats.Calls++
	if success {
		stats.Successes++
	} else {
		stats.Failures++
	}
}

// SuccessRate returns successes/calls for a tool, or 0.0 when the tool
// is unknown or has never been called.
func (r *Registry) SuccessRate(name string) float64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.successRateLocked(name)
}

func (r *Registry) successRateLocked(name string) float64 {
	stats, ok := r.stats[name]
	if !ok || stats.Calls == 0 {
		return 0.0
	}
	return float64(stats.Successes) / float64(stats.Calls)
}

// MostUsed returns tools ranked by descending call count, truncated to
// limit. The sort is stable over catalog order.
func (r *Registry) MostUsed(limit int) []ToolUsage {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ranked := make([]ToolUsage, 0, len(r.order))
	for _, name := range r.order {
		ranked = append(ranked, ToolUsage{
			Tool:        name,
			Calls:       r.stats[name].Calls,
			SuccessRate: r.successRateLocked(name),
		})
	}

	// Stable sort keeps equal counts in catalog order.
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Calls > ranked[j].Calls
	})

	if limit >= 0 && limit < len(ranked) {
		ranked = ranked[:limit]
	}
	return ranked
}

// CommonSequences returns typical tool-call sequences (static data).
func (r *Registry) CommonSequences() [][]string {
	return commonSequences()
}

// StatsSnapshot returns a copy of the per-tool call statistics.
func (r *Registry) StatsSnapshot() map[string]CallStats {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]CallStats, len(r.stats))
	for name, stats := range r.stats {
		out[name] = *stats
	}
	return out
}

// Export builds the full registry view for the tool-registry resource.
func (r *Registry) Export() Export {
	return Export{
		Tools:           r.AllTools(),
		Stats:           r.StatsSnapshot(),
		MostUsed:        r.MostUsed(5),
		CommonSequences: r.CommonSequences(),
	}
}
