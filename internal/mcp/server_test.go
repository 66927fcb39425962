package mcp

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/Sjking2025/Gadget-Spec-Scout/internal/client"
	"github.com/Sjking2025/Gadget-Spec-Scout/internal/config"
)

func newTestServer() *Server {
	cfg := config.NewConfig()
	return NewServer(cfg, client.New(cfg), nil)
}

func request(t *testing.T, s *Server, method string, params interface{}) *MCPResponse {
	t.Helper()

	req := map[string]interface{}{
		"jsonrpc": "2.0",
		"id":      1,
		"method":  method,
	}
	if params != nil {
		req["params"] = params
	}

	data, err := json.Marshal(req)
	if err != nil {
		t.Fatalf("failed to marshal request: %v", err)
	}

	resp, err := s.handleRequest(data)
	if err != nil {
		t.Fatalf("handleRequest failed: %v", err)
	}
	return resp
}

func resultMap(t *testing.T, resp *MCPResponse) map[string]interface{} {
	t.Helper()
	result, ok := resp.Result.(map[string]interface{})
	if !ok {
		t.Fatalf("expected map result, got %T", resp.Result)
	}
	return result
}

func TestHandleInitialize(t *testing.T) {
	s := newTestServer()

	resp := request(t, s, "initialize", nil)
	if resp.Error != nil {
		t.Fatalf("unexpected error: %v", resp.Error)
	}

	result := resultMap(t, resp)
	info, ok := result["serverInfo"].(map[string]interface{})
	if !ok {
		t.Fatal("expected serverInfo in result")
	}
	if info["name"] != config.DefaultServerName {
		t.Errorf("server name = %v, want %s", info["name"], config.DefaultServerName)
	}
}

func TestHandleUnknownMethod(t *testing.T) {
	s := newTestServer()

	resp := request(t, s, "no/such/method", nil)
	if resp.Error == nil || resp.Error.Code != -32601 {
		t.Errorf("expected method-not-found error, got %+v", resp.Error)
	}
}

func TestHandleResourcesList(t *testing.T) {
	s := newTestServer()

	resp := request(t, s, "resources/list", nil)
	result := resultMap(t, resp)

	resources, ok := result["resources"].([]ResourceDescriptor)
	if !ok {
		t.Fatalf("expected resource descriptors, got %T", result["resources"])
	}
	if len(resources) != 3 {
		t.Fatalf("expected 3 resources, got %d", len(resources))
	}

	wantURIs := []string{URIToolRegistry, URIConversationCurrent, URIToolAnalytics}
	for i, uri := range wantURIs {
		if resources[i].URI != uri {
			t.Errorf("resources[%d].URI = %q, want %q", i, resources[i].URI, uri)
		}
	}
}

func TestHandleResourcesRead(t *testing.T) {
	s := newTestServer()

	for _, uri := range []string{URIToolRegistry, URIConversationCurrent, URIToolAnalytics} {
		resp := request(t, s, "resources/read", map[string]string{"uri": uri})
		if resp.Error != nil {
			t.Fatalf("unexpected error for %s: %v", uri, resp.Error)
		}

		result := resultMap(t, resp)
		contents, ok := result["contents"].([]map[string]interface{})
		if !ok || len(contents) != 1 {
			t.Fatalf("expected one content entry for %s", uri)
		}

		text, _ := contents[0]["text"].(string)
		if !json.Valid([]byte(text)) {
			t.Errorf("resource %s did not serve valid JSON", uri)
		}
	}
}

func TestHandleResourcesRead_UnknownURI(t *testing.T) {
	s := newTestServer()

	resp := request(t, s, "resources/read", map[string]string{"uri": "gadget-scout://no/such"})
	if resp.Error == nil {
		t.Fatal("expected explicit error for unknown resource URI")
	}
	if !strings.Contains(resp.Error.Message, "Unknown resource URI") {
		t.Errorf("unexpected error message: %q", resp.Error.Message)
	}
}

func TestHandleToolsList(t *testing.T) {
	s := newTestServer()

	resp := request(t, s, "tools/list", nil)
	result := resultMap(t, resp)

	tools, ok := result["tools"].([]ToolListing)
	if !ok {
		t.Fatalf("expected tool listings, got %T", result["tools"])
	}
	if len(tools) != 5 {
		t.Fatalf("expected 5 tools, got %d", len(tools))
	}
	if tools[0].Name != "search_devices" {
		t.Errorf("tools[0] = %q, want search_devices", tools[0].Name)
	}
	if tools[0].InputSchema.Type != "object" {
		t.Errorf("expected input schema in listing: %+v", tools[0].InputSchema)
	}
}

func TestHandleToolsCall(t *testing.T) {
	s := newTestServer()

	resp := request(t, s, "tools/call", map[string]interface{}{
		"name":      "get_price",
		"arguments": map[string]interface{}{"device_name": "OnePlus 12"},
	})
	if resp.Error != nil {
		t.Fatalf("unexpected error: %v", resp.Error)
	}

	// The call is recorded as a success against the registry.
	stats := s.client.Registry().StatsSnapshot()["get_price"]
	if stats.Calls != 1 || stats.Successes != 1 {
		t.Errorf("expected recorded success, got %+v", stats)
	}

	// The placeholder notes execution happens externally.
	result := resultMap(t, resp)
	content, ok := result["content"].([]map[string]interface{})
	if !ok || len(content) != 1 {
		t.Fatal("expected one content entry")
	}
	text, _ := content[0]["text"].(string)
	if !strings.Contains(text, "tracks metadata only") {
		t.Errorf("unexpected placeholder text: %q", text)
	}
}

func TestHandleToolsCall_UnknownToolStillPlaceholder(t *testing.T) {
	s := newTestServer()

	// Unknown tool names are not a protocol error; stats recording is
	// silently skipped.
	resp := request(t, s, "tools/call", map[string]interface{}{
		"name":      "no_such_tool",
		"arguments": map[string]interface{}{},
	})
	if resp.Error != nil {
		t.Errorf("expected permissive handling, got %v", resp.Error)
	}
	if _, exists := s.client.Registry().StatsSnapshot()["no_such_tool"]; exists {
		t.Error("unknown tool must not create stats")
	}
}

func TestHandlePromptsList(t *testing.T) {
	s := newTestServer()

	resp := request(t, s, "prompts/list", nil)
	result := resultMap(t, resp)

	prompts, ok := result["prompts"].([]PromptDescriptor)
	if !ok {
		t.Fatalf("expected prompt descriptors, got %T", result["prompts"])
	}
	if len(prompts) != 2 {
		t.Fatalf("expected 2 prompts, got %d", len(prompts))
	}
	if prompts[0].Name != PromptQueryContext || !prompts[0].Arguments[0].Required {
		t.Errorf("unexpected first prompt: %+v", prompts[0])
	}
	if prompts[1].Name != PromptConversationSummary {
		t.Errorf("unexpected second prompt: %+v", prompts[1])
	}
}

func promptText(t *testing.T, resp *MCPResponse) string {
	t.Helper()
	result := resultMap(t, resp)
	messages, ok := result["messages"].([]map[string]interface{})
	if !ok || len(messages) != 1 {
		t.Fatal("expected one prompt message")
	}
	content, ok := messages[0]["content"].(map[string]interface{})
	if !ok {
		t.Fatal("expected message content")
	}
	text, _ := content["text"].(string)
	return text
}

func TestHandlePromptsGet_QueryContext(t *testing.T) {
	s := newTestServer()

	resp := request(t, s, "prompts/get", map[string]interface{}{
		"name":      PromptQueryContext,
		"arguments": map[string]string{"query": "compare oneplus 12 vs xiaomi 14"},
	})
	if resp.Error != nil {
		t.Fatalf("unexpected error: %v", resp.Error)
	}

	text := promptText(t, resp)
	if !strings.Contains(text, "- Type: comparison") {
		t.Errorf("expected rendered context block, got:\n%s", text)
	}
}

func TestHandlePromptsGet_EmptyQuery(t *testing.T) {
	s := newTestServer()

	resp := request(t, s, "prompts/get", map[string]interface{}{
		"name":      PromptQueryContext,
		"arguments": map[string]string{},
	})

	// Missing query is reported in the prompt text, not as a protocol
	// error.
	if resp.Error != nil {
		t.Fatalf("expected in-band error string, got protocol error %v", resp.Error)
	}
	if got := promptText(t, resp); got != "Error: query argument is required" {
		t.Errorf("unexpected text: %q", got)
	}
}

func TestHandlePromptsGet_Summary(t *testing.T) {
	s := newTestServer()
	s.client.TrackQuery("best samsung camera phone", []string{"search_devices"}, "ok", "s1")

	resp := request(t, s, "prompts/get", map[string]interface{}{
		"name": PromptConversationSummary,
	})
	if resp.Error != nil {
		t.Fatalf("unexpected error: %v", resp.Error)
	}

	text := promptText(t, resp)
	if !strings.Contains(text, "Queries So Far: 1") {
		t.Errorf("expected summary digest, got:\n%s", text)
	}
}

func TestHandlePromptsGet_UnknownPrompt(t *testing.T) {
	s := newTestServer()

	resp := request(t, s, "prompts/get", map[string]interface{}{"name": "no_such_prompt"})
	if resp.Error == nil {
		t.Fatal("expected explicit error for unknown prompt")
	}
	if !strings.Contains(resp.Error.Message, "Unknown prompt") {
		t.Errorf("unexpected error message: %q", resp.Error.Message)
	}
}

func TestHandleRequest_InvalidJSON(t *testing.T) {
	s := newTestServer()

	if _, err := s.handleRequest([]byte("{not json")); err == nil {
		t.Error("expected error for invalid JSON-RPC payload")
	}
}
