/*
Package mcp implements the MCP server that exposes the context components.

The server uses stdio transport and exposes:
  - 3 resources: tool registry, current conversation context, tool analytics
  - 5 tool listings (search_devices, get_specs, get_price, get_reviews,
    compare_specs) whose execution happens externally
  - 2 prompts: get_query_context and get_conversation_summary
*/
package mcp

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/Sjking2025/Gadget-Spec-Scout/internal/analytics"
	"github.com/Sjking2025/Gadget-Spec-Scout/internal/client"
	"github.com/Sjking2025/Gadget-Spec-Scout/internal/config"
	"github.com/Sjking2025/Gadget-Spec-Scout/internal/conversation"
	"github.com/Sjking2025/Gadget-Spec-Scout/internal/registry"
)

// Resource URIs served by this server.
const (
	URIToolRegistry        = "gadget-scout://tools/registry"
	URIConversationCurrent = "gadget-scout://conversation/current"
	URIToolAnalytics       = "gadget-scout://analytics/tools"
)

// Prompt names served by this server.
const (
	PromptQueryContext        = "get_query_context"
	PromptConversationSummary = "get_conversation_summary"
)

// Server represents the gadget-scout-mcp MCP server.
type Server struct {
	config    *config.Config
	client    *client.Client
	analytics *analytics.Tracker

	in  io.Reader
	out io.Writer
}

// NewServer creates a new MCP server over the given components.
// The analytics tracker may be nil when analytics are disabled.
func NewServer(cfg *config.Config, cl *client.Client, tracker *analytics.Tracker) *Server {
	return &Server{
		config:    cfg,
		client:    cl,
		analytics: tracker,
		in:        os.Stdin,
		out:       os.Stdout,
	}
}

// Run starts the MCP server using stdio transport.
// This blocks until stdin is closed.
func (s *Server) Run() error {
	scanner := bufio.NewScanner(s.in)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		response, err := s.handleRequest(line)
		if err != nil {
			s.sendError(err)
			continue
		}

		if response != nil {
			s.sendResponse(response)
		}
	}

	return scanner.Err()
}

// Close flushes and stops the analytics tracker.
func (s *Server) Close() error {
	if s.analytics != nil {
		s.analytics.Stop()
	}
	return nil
}

// MCPRequest represents an incoming MCP JSON-RPC request.
type MCPRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      interface{}     `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// MCPResponse represents an outgoing MCP JSON-RPC response.
type MCPResponse struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      interface{} `json:"id"`
	Result  interface{} `json:"result,omitempty"`
	Error   *MCPError   `json:"error,omitempty"`
}

// MCPError represents an MCP error.
type MCPError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// handleRequest processes an incoming MCP request.
func (s *Server) handleRequest(data []byte) (*MCPResponse, error) {
	var req MCPRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("invalid JSON-RPC request: %w", err)
	}

	switch req.Method {
	case "initialize":
		return s.handleInitialize(&req)
	case "resources/list":
		return s.handleResourcesList(&req)
	case "resources/read":
		return s.handleResourcesRead(&req)
	case "tools/list":
		return s.handleToolsList(&req)
	case "tools/call":
		return s.handleToolsCall(&req)
	case "prompts/list":
		return s.handlePromptsList(&req)
	case "prompts/get":
		return s.handlePromptsGet(&req)
	default:
		return &MCPResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Error:   &MCPError{Code: -32601, Message: "Method not found"},
		}, nil
	}
}

// handleInitialize handles the MCP initialize request.
func (s *Server) handleInitialize(req *MCPRequest) (*MCPResponse, error) {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"protocolVersion": "2024-11-05",
			"capabilities": map[string]interface{}{
				"resources": map[string]interface{}{},
				"tools":     map[string]interface{}{},
				"prompts":   map[string]interface{}{},
			},
			"serverInfo": map[string]interface{}{
				"name":    s.config.Server.Name,
				"version": s.config.Server.Version,
			},
		},
	}, nil
}

// ResourceDescriptor describes one listed resource.
type ResourceDescriptor struct {
	URI         string `json:"uri"`
	Name        string `json:"name"`
	Description string `json:"description"`
	MimeType    string `json:"mimeType"`
}

// handleResourcesList returns the available resources.
func (s *Server) handleResourcesList(req *MCPRequest) (*MCPResponse, error) {
	log.Printf("Listing resources")

	resources := []ResourceDescriptor{
		{
			URI:         URIToolRegistry,
			Name:        "Tool Registry",
			Description: "Complete registry of all available tools with metadata and usage patterns",
			MimeType:    "application/json",
		},
		{
			URI:         URIConversationCurrent,
			Name:        "Current Conversation Context",
			Description: "Context from current conversation including history and inferred preferences",
			MimeType:    "application/json",
		},
		{
			URI:         URIToolAnalytics,
			Name:        "Tool Analytics",
			Description: "Usage statistics and patterns for all tools",
			MimeType:    "application/json",
		},
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result:  map[string]interface{}{"resources": resources},
	}, nil
}

// ToolAnalytics is the payload served for the analytics resource.
type ToolAnalytics struct {
	MostUsedTools   []registry.ToolUsage          `json:"most_used_tools"`
	CommonSequences [][]string                    `json:"common_sequences"`
	ToolStats       map[string]registry.CallStats `json:"tool_stats"`
}

// handleResourcesRead serves a resource by URI. Unknown URIs are an
// explicit error to the caller.
func (s *Server) handleResourcesRead(req *MCPRequest) (*MCPResponse, error) {
	var params struct {
		URI string `json:"uri"`
	}
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return nil, fmt.Errorf("invalid params: %w", err)
	}

	log.Printf("Reading resource: %s", params.URI)

	var payload interface{}
	switch params.URI {
	case URIToolRegistry:
		payload = s.client.Registry().Export()
	case URIConversationCurrent:
		payload = s.client.Context()
	case URIToolAnalytics:
		reg := s.client.Registry()
		payload = ToolAnalytics{
			MostUsedTools:   reg.MostUsed(5),
			CommonSequences: reg.CommonSequences(),
			ToolStats:       reg.StatsSnapshot(),
		}
	default:
		return &MCPResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Error:   &MCPError{Code: -32002, Message: fmt.Sprintf("Unknown resource URI: %s", params.URI)},
		}, nil
	}

	text, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal resource: %w", err)
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"contents": []map[string]interface{}{
				{
					"uri":      params.URI,
					"mimeType": "application/json",
					"text":     string(text),
				},
			},
		},
	}, nil
}

// ToolListing is the reduced descriptor shape served by tools/list.
type ToolListing struct {
	Name        string               `json:"name"`
	Description string               `json:"description"`
	InputSchema registry.InputSchema `json:"inputSchema"`
}

// handleToolsList returns the catalog reduced to name, description, and
// input schema.
func (s *Server) handleToolsList(req *MCPRequest) (*MCPResponse, error) {
	log.Printf("Listing tools")

	all := s.client.Registry().AllTools()
	tools := make([]ToolListing, 0, len(all))
	for _, tool := range all {
		tools = append(tools, ToolListing{
			Name:        tool.Name,
			Description: tool.Description,
			InputSchema: tool.InputSchema,
		})
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result:  map[string]interface{}{"tools": tools},
	}, nil
}

// handleToolsCall records a tool call and returns the fixed placeholder.
// Actual tool execution happens in the notebook; this server only tracks
// metadata.
func (s *Server) handleToolsCall(req *MCPRequest) (*MCPResponse, error) {
	var params struct {
		Name      string                 `json:"name"`
		Arguments map[string]interface{} `json:"arguments"`
	}
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return nil, fmt.Errorf("invalid params: %w", err)
	}

	log.Printf("Tool call: %s with args: %v", params.Name, params.Arguments)

	s.client.Registry().RecordCall(params.Name, true)

	if s.analytics != nil {
		query, _ := params.Arguments["query"].(string)
		s.analytics.Track(analytics.NewCallEvent(params.Name, query, true))
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": fmt.Sprintf("Tool '%s' should be called by the notebook. MCP server tracks metadata only.", params.Name),
				},
			},
		},
	}, nil
}

// PromptArgument describes one argument of a listed prompt.
type PromptArgument struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Required    bool   `json:"required"`
}

// PromptDescriptor describes one listed prompt.
type PromptDescriptor struct {
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Arguments   []PromptArgument `json:"arguments"`
}

// handlePromptsList returns the available prompts.
func (s *Server) handlePromptsList(req *MCPRequest) (*MCPResponse, error) {
	log.Printf("Listing prompts")

	prompts := []PromptDescriptor{
		{
			Name:        PromptQueryContext,
			Description: "Generate intelligent context for a user query",
			Arguments: []PromptArgument{
				{
					Name:        "query",
					Description: "The user's query",
					Required:    true,
				},
			},
		},
		{
			Name:        PromptConversationSummary,
			Description: "Get a summary of the current conversation",
			Arguments:   []PromptArgument{},
		},
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result:  map[string]interface{}{"prompts": prompts},
	}, nil
}

// handlePromptsGet renders a prompt. An empty query for get_query_context
// returns an error string as the prompt text rather than a protocol
// error; unknown prompt names are a protocol error.
func (s *Server) handlePromptsGet(req *MCPRequest) (*MCPResponse, error) {
	var params struct {
		Name      string            `json:"name"`
		Arguments map[string]string `json:"arguments"`
	}
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return nil, fmt.Errorf("invalid params: %w", err)
	}

	log.Printf("Getting prompt: %s with args: %v", params.Name, params.Arguments)

	var text string
	switch params.Name {
	case PromptQueryContext:
		query := params.Arguments["query"]
		if query == "" {
			text = "Error: query argument is required"
		} else {
			text = s.client.GetQueryContext(query)
		}
	case PromptConversationSummary:
		text = s.client.GetConversationSummary()
	default:
		return &MCPResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Error:   &MCPError{Code: -32602, Message: fmt.Sprintf("Unknown prompt: %s", params.Name)},
		}, nil
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"messages": []map[string]interface{}{
				{
					"role": "user",
					"content": map[string]interface{}{
						"type": "text",
						"text": text,
					},
				},
			},
		},
	}, nil
}

// Snapshot returns the current conversation context (for tests and the
// CLI status output).
func (s *Server) Snapshot() conversation.Context {
	return s.client.Context()
}

// sendResponse writes a JSON-RPC response to stdout.
func (s *Server) sendResponse(resp *MCPResponse) {
	data, _ := json.Marshal(resp)
	fmt.Fprintln(s.out, string(data))
}

// sendError writes an error response to stdout.
func (s *Server) sendError(err error) {
	resp := &MCPResponse{
		JSONRPC: "2.0",
		ID:      nil,
		Error:   &MCPError{Code: -32700, Message: err.Error()},
	}
	s.sendResponse(resp)
}
