/*
Package client provides direct in-process access to the context
components, for callers that cannot speak the stdio transport.

It is pure delegation over the conversation tracker, the tool registry,
and the context generator; no logic lives here. The MCP server and the
one-shot CLI commands share these components through this package.
*/
package client

import (
	"github.com/Sjking2025/Gadget-Spec-Scout/internal/config"
	"github.com/Sjking2025/Gadget-Spec-Scout/internal/contextgen"
	"github.com/Sjking2025/Gadget-Spec-Scout/internal/conversation"
	"github.com/Sjking2025/Gadget-Spec-Scout/internal/registry"
)

// Client bundles the three context components behind a direct-call API.
type Client struct {
	tracker   *conversation.Tracker
	registry  *registry.Registry
	generator *contextgen.Generator
}

// New creates a client with fresh component state sized per cfg.
func New(cfg *config.Config) *Client {
	maxHistory := config.DefaultMaxHistory
	if cfg != nil && cfg.Settings != nil && cfg.Settings.MaxHistory > 0 {
		maxHistory = cfg.Settings.MaxHistory
	}

	tracker := conversation.NewTracker(maxHistory)
	reg := registry.NewRegistry()

	return &Client{
		tracker:   tracker,
		registry:  reg,
		generator: contextgen.NewGenerator(tracker, reg),
	}
}

// GetQueryContext returns the rendered context block for a query.
func (c *Client) GetQueryContext(query string) string {
	return c.generator.GenerateContext(query)
}

// GetConversationSummary returns the human-readable conversation digest.
func (c *Client) GetConversationSummary() string {
	return contextgen.FormatSummary(c.tracker.Context())
}

// TrackQuery records a query and its tool usage for future context.
func (c *Client) TrackQuery(query string, toolsCalled []string, resultSummary, sessionID string) {
	c.tracker.TrackQuery(query, toolsCalled, resultSummary, sessionID)
}

// Context returns the current conversation snapshot.
func (c *Client) Context() conversation.Context {
	return c.tracker.Context()
}

// Registry exposes the underlying tool registry.
func (c *Client) Registry() *registry.Registry {
	return c.registry
}

// Tracker exposes the underlying conversation tracker.
func (c *Client) Tracker() *conversation.Tracker {
	return c.tracker
}
