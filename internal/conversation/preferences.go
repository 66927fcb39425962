package conversation

import (
	"regexp"
	"strconv"
	"strings"
)

// Preferences are coarse user preferences derived from the current
// history on demand. They are never stored.
type Preferences struct {
	BudgetRange       string       `json:"budget_range,omitempty"`
	PriorityFeatures  []string     `json:"priority_features,omitempty"`
	BrandsInterested  []string     `json:"brands_interested,omitempty"`
	ComparisonHistory []Comparison `json:"comparison_history,omitempty"`
}

// Comparison is a past comparison query reduced to its essentials.
type Comparison struct {
	Query     string `json:"query"`
	Timestamp string `json:"timestamp"`
}

// budgetKeywords mark a query as budget-bearing.
var budgetKeywords = []string{"budget", "under", "below", "₹", "inr", "price"}

// amountPattern matches the first run of digits, optionally comma-grouped
// (e.g. "70,000").
var amountPattern = regexp.MustCompile(`[0-9]+(?:,[0-9]+)*`)

// featureGroups map feature tags to their trigger keywords. Evaluated in
// declaration order so derived lists are deterministic.
var featureGroups = []struct {
	tag      string
	keywords []string
}{
	{"camera", []string{"camera", "photography", "photo", "video"}},
	{"battery", []string{"battery", "charging", "power"}},
	{"performance", []string{"performance", "speed", "processor", "gaming"}},
	{"display", []string{"display", "screen", "amoled"}},
	{"storage", []string{"storage", "memory", "gb"}},
}

// brandTokens are the recognized brand substrings. "apple" and "iphone"
// are distinct tokens and can both match one phone mention.
var brandTokens = []string{"samsung", "apple", "iphone", "oneplus", "google", "pixel", "xiaomi"}

// InferPreferences derives budget, feature, brand, and comparison
// preferences from the current history. Empty history yields an empty
// structure.
func (t *Tracker) InferPreferences() Preferences {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.inferPreferencesLocked()
}

func (t *Tracker) inferPreferencesLocked() Preferences {
	if len(t.history) == 0 {
		return Preferences{}
	}

	return Preferences{
		BudgetRange:       t.extractBudgetRange(),
		PriorityFeatures:  t.extractFeatures(),
		BrandsInterested:  t.extractBrands(),
		ComparisonHistory: t.extractComparisons(),
	}
}

// extractBudgetRange scans newest-first for a budget keyword alongside an
// amount. A keyword-bearing record without digits does not stop the scan;
// older records are still considered.
func (t *Tracker) extractBudgetRange() string {
	for i := len(t.history) - 1; i >= 0; i-- {
		query := strings.ToLower(t.history[i].Query)
		if !containsAny(query, budgetKeywords) {
			continue
		}
		match := amountPattern.FindString(query)
		if match == "" {
			continue
		}
		amount, err := strconv.Atoi(strings.ReplaceAll(match, ",", ""))
		if err != nil {
			continue
		}
		return "Under ₹" + formatAmount(amount)
	}
	return ""
}

// extractFeatures unions feature tags matched across the whole history.
func (t *Tracker) extractFeatures() []string {
	matched := make(map[string]bool)
	for _, record := range t.history {
		query := strings.ToLower(record.Query)
		for _, group := range featureGroups {
			if containsAny(query, group.keywords) {
				matched[group.tag] = true
			}
		}
	}

	features := make([]string, 0, len(matched))
	for _, group := range featureGroups {
		if matched[group.tag] {
			features = append(features, group.tag)
		}
	}
	return features
}

// extractBrands collects brand tokens mentioned anywhere in the history,
// capitalized and deduplicated.
func (t *Tracker) extractBrands() []string {
	matched := make(map[string]bool)
	for _, record := range t.history {
		query := strings.ToLower(record.Query)
		for _, brand := range brandTokens {
			if strings.Contains(query, brand) {
				matched[brand] = true
			}
		}
	}

	brands := make([]string, 0, len(matched))
	for _, brand := range brandTokens {
		if matched[brand] {
			brands = append(brands, capitalize(brand))
		}
	}
	return brands
}

// extractComparisons returns the 3 most recent compare_specs queries,
// oldest first.
func (t *Tracker) extractComparisons() []Comparison {
	var comparisons []Comparison
	for _, record := range t.history {
		for _, tool := range record.ToolsCalled {
			if tool == "compare_specs" {
				comparisons = append(comparisons, Comparison{
					Query:     record.Query,
					Timestamp: record.Timestamp,
				})
				break
			}
		}
	}

	if len(comparisons) > 3 {
		comparisons = comparisons[len(comparisons)-3:]
	}
	return comparisons
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

// formatAmount renders an integer with thousands separators (70000 ->
// "70,000").
func formatAmount(n int) string {
	s := strconv.Itoa(n)
	if len(s) <= 3 {
		return s
	}

	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
