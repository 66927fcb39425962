/*
Package contextgen renders query-specific context blocks for the
LLM-orchestration layer.

Given the current conversation snapshot and the tool catalog, it
classifies an incoming query into a fixed set of categories, flags
missing information, extracts known phone names, and renders a text
block suggesting which tools to call next. Classification is ordered
keyword matching with first-match-wins semantics; there is no NLU here.
*/
package contextgen

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Sjking2025/Gadget-Spec-Scout/internal/conversation"
	"github.com/Sjking2025/Gadget-Spec-Scout/internal/registry"
)

// Query categories, in classification priority order.
const (
	QueryComparison     = "comparison"
	QueryRecommendation = "recommendation"
	QuerySpecificInfo   = "specific_information"
	QueryBudgetSearch   = "budget_search"
	QueryFeatureSearch  = "feature_search"
	QueryGeneralInquiry = "general_inquiry"
)

// classificationRules are evaluated in order; the first rule whose
// keyword list matches wins. Order matters: "compare battery life" is a
// comparison, not a feature search.
var classificationRules = []struct {
	keywords []string
	category string
}{
	{[]string{"compare", "vs", "versus", "which is better", "difference between"}, QueryComparison},
	{[]string{"best", "recommend", "suggest", "should i", "which phone"}, QueryRecommendation},
	{[]string{"what is", "tell me about", "specs", "price", "cost", "review"}, QuerySpecificInfo},
	{[]string{"under", "below", "budget", "₹", "inr"}, QueryBudgetSearch},
	{[]string{"camera", "battery", "performance", "display"}, QueryFeatureSearch},
}

// knownPhones is the fixed catalog used for phone-name extraction. Longer
// variants come first so they are reported before their substrings;
// overlapping variants are intentionally not deduplicated.
var knownPhones = []string{
	"samsung galaxy s24 ultra", "samsung s24 ultra", "s24 ultra",
	"iphone 15 pro max", "iphone 15", "iphone",
	"oneplus 12", "oneplus",
	"pixel 8 pro", "pixel",
	"xiaomi 14", "xiaomi",
}

var digitPattern = regexp.MustCompile(`[0-9]`)

// Generator builds context blocks from the conversation tracker and the
// tool registry.
type Generator struct {
	tracker  *conversation.Tracker
	registry *registry.Registry
}

// NewGenerator creates a generator over the given tracker and registry.
func NewGenerator(tracker *conversation.Tracker, reg *registry.Registry) *Generator {
	return &Generator{
		tracker:  tracker,
		registry: reg,
	}
}

// GenerateContext renders the full context block for a query.
func (g *Generator) GenerateContext(query string) string {
	queryType := classify(query)
	history := g.tracker.Context()

	missing := g.identifyMissingInfo(query, history)
	if missing == "" {
		missing = "None - query is complete"
	}

	var b strings.Builder
	b.WriteString("🔍 QUERY ANALYSIS:\n")
	fmt.Fprintf(&b, "- Type: %s\n", queryType)
	fmt.Fprintf(&b, "- Missing Info: %s\n", missing)
	fmt.Fprintf(&b, "- User History: %s\n", summarizeHistory(history))
	fmt.Fprintf(&b, "- Conversation Theme: %s\n", history.ConversationTheme)
	b.WriteString("\n💡 SMART SUGGESTIONS:\n")
	b.WriteString(generateSuggestions(query, queryType, history))
	b.WriteString("\n\n📊 RELEVANT DATA:\n")
	b.WriteString(relevantData(history))
	b.WriteString("\n\n🎯 RECOMMENDED APPROACH:\n")
	b.WriteString(recommendApproach(query, queryType, history))

	return b.String()
}

// classify assigns a query to the first matching category.
func classify(query string) string {
	lower := strings.ToLower(query)
	for _, rule := range classificationRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.category
			}
		}
	}
	return QueryGeneralInquiry
}

// identifyMissingInfo flags information the query lacks. Multiple flags
// join with "; "; an empty string means the query is complete.
func (g *Generator) identifyMissingInfo(query string, history conversation.Context) string {
	lower := strings.ToLower(query)
	var missing []string

	if strings.Contains(lower, "compare") || strings.Contains(lower, "vs") {
		if len(extractPhoneNames(query)) < 2 {
			missing = append(missing, "Need two phone names to compare")
		}
	}

	if strings.Contains(lower, "better") && !containsAny(lower, []string{"camera", "battery", "performance", "price"}) {
		if len(history.Last3Queries) == 0 {
			missing = append(missing, "Need to know which phones to compare")
		}
	}

	if strings.Contains(lower, "budget") && !digitPattern.MatchString(query) {
		missing = append(missing, "Budget amount not specified")
	}

	return strings.Join(missing, "; ")
}

// extractPhoneNames finds known phone names by substring match.
func extractPhoneNames(query string) []string {
	lower := strings.ToLower(query)
	var found []string
	for _, phone := range knownPhones {
		if strings.Contains(lower, phone) {
			found = append(found, phone)
		}
	}
	return found
}

// summarizeHistory produces the one-line history summary.
func summarizeHistory(history conversation.Context) string {
	if history.QueryCount == 0 {
		return "This is the first query"
	}
	if len(history.Last3Queries) == 0 {
		return fmt.Sprintf("%d queries so far", history.QueryCount)
	}

	last := history.Last3Queries[len(history.Last3Queries)-1].Query
	return "Last query was about: " + truncate(last, 50) + "..."
}

// generateSuggestions renders numbered next-step suggestions for the
// query type.
func generateSuggestions(query, queryType string, history conversation.Context) string {
	var suggestions []string

	switch queryType {
	case QueryComparison:
		phones := extractPhoneNames(query)
		if len(phones) >= 2 {
			suggestions = append(suggestions,
				fmt.Sprintf("1. Call compare_specs('%s', '%s')", phones[0], phones[1]),
				"2. Call get_price for both to show price difference",
				"3. Call get_reviews for both to validate with user feedback",
			)
		} else if len(history.Last3Queries) > 0 {
			suggestions = append(suggestions,
				"1. User might be referring to previously discussed phones",
				"2. Ask clarifying question OR use context to infer phones",
			)
		}

	case QueryRecommendation:
		suggestions = append(suggestions,
			"1. Call search_devices to find matching phones",
			"2. Get specs, prices, and reviews for top matches",
			"3. Suggest 2-3 best options with clear reasoning",
		)

	case QueryBudgetSearch:
		suggestions = append(suggestions,
			"1. Extract budget amount from query",
			"2. Call search_devices to find phones",
			"3. Filter by price using get_price",
			"4. Recommend best value options",
		)

	default:
		suggestions = append(suggestions,
			"1. Understand user intent",
			"2. Call appropriate tools",
			"3. Provide helpful, conversational response",
		)
	}

	if len(suggestions) == 0 {
		return "No specific suggestions"
	}
	return strings.Join(suggestions, "\n")
}

// relevantData echoes preference data inferred from history.
func relevantData(history conversation.Context) string {
	prefs := history.InferredPreferences

	if len(prefs.BrandsInterested) > 0 {
		return "User has shown interest in: " + strings.Join(prefs.BrandsInterested, ", ")
	}
	if prefs.BudgetRange != "" {
		return "User's budget range: " + prefs.BudgetRange
	}
	return "No specific relevant data from history"
}

// recommendApproach renders the recommended-approach line for the query
// type.
func recommendApproach(query, queryType string, history conversation.Context) string {
	switch queryType {
	case QueryComparison:
		phones := extractPhoneNames(query)
		if len(phones) >= 2 {
			return fmt.Sprintf("Directly compare %s and %s using compare_specs, then enhance with pricing and reviews", phones[0], phones[1])
		}
		if len(history.Last3Queries) > 0 {
			last := history.Last3Queries[len(history.Last3Queries)-1].Query
			if strings.Contains(strings.ToLower(last), "compare") {
				return "User is likely continuing previous comparison - use context to infer phones"
			}
		}
		return "Ask clarifying question: 'Which phones would you like me to compare?'"

	case QueryRecommendation:
		return "Search database for matches, get full details (specs/price/reviews), then provide 2-3 personalized recommendations with reasoning"

	case QueryBudgetSearch:
		return "Filter phones by budget, rank by value (specs vs price), highlight best deals"

	default:
		return "Provide helpful, conversational response using appropriate tools"
	}
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

// truncate returns at most n bytes of s. Queries are ASCII-dominated, but
// cut on a rune boundary to avoid splitting multi-byte characters.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
