package contextgen

import (
	"fmt"
	"strings"

	"github.com/Sjking2025/Gadget-Spec-Scout/internal/conversation"
)

// FormatSummary renders a human-readable digest of a conversation
// snapshot: query count, recent queries with the tools they used,
// inferred preferences, and the conversation theme.
func FormatSummary(ctx conversation.Context) string {
	var b strings.Builder

	b.WriteString("CONVERSATION SUMMARY\n")
	b.WriteString(strings.Repeat("━", 44))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "📝 Queries So Far: %d\n\n", ctx.QueryCount)

	for i, record := range ctx.Last3Queries {
		fmt.Fprintf(&b, "%d️⃣ %q\n", i+1, record.Query)
		fmt.Fprintf(&b, "   Tools Used: %s\n\n", strings.Join(record.ToolsCalled, ", "))
	}

	prefs := ctx.InferredPreferences
	if prefs.BudgetRange != "" || len(prefs.PriorityFeatures) > 0 || len(prefs.BrandsInterested) > 0 {
		b.WriteString("🎯 Inferred Preferences:\n")
		if prefs.BudgetRange != "" {
			fmt.Fprintf(&b, "   Budget: %s\n", prefs.BudgetRange)
		}
		if len(prefs.PriorityFeatures) > 0 {
			fmt.Fprintf(&b, "   Features: %s\n", strings.Join(prefs.PriorityFeatures, ", "))
		}
		if len(prefs.BrandsInterested) > 0 {
			fmt.Fprintf(&b, "   Brands: %s\n", strings.Join(prefs.BrandsInterested, ", "))
		}
	}

	fmt.Fprintf(&b, "\n🔑 Conversation Theme: %s", ctx.ConversationTheme)

	return b.String()
}
