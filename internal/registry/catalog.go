package registry

// catalog returns the static metadata for the 5 smartphone-shopping tools.
//
// These descriptors are configuration data consumed by the notebook-side
// orchestrator; the server never executes the tools itself. Field values
// are part of the external contract and must not be edited casually.
func catalog() []ToolDescriptor {
	return []ToolDescriptor{
		{
			Name:        "search_devices",
			Description: "Search smartphone database by name, brand, or features",
			Category:    "discovery",
			WhenToUse: []string{
				"User asks for recommendations",
				"User mentions budget or specific features",
				"User wants to explore options",
				"User asks 'what phones...' or 'show me...'",
			},
			ExampleQueries: []string{
				"Best phone under ₹70,000",
				"Phones with good camera",
				"Show me Samsung phones",
				"What phones have 5000mAh battery?",
			},
			TypicalNextTools: []string{"get_specs", "get_price", "get_reviews"},
			InputSchema: InputSchema{
				Type: "object",
				Properties: map[string]Property{
					"query": {
						Type:        "string",
						Description: "Search query (brand, model, or keywords)",
					},
				},
				Required: []string{"query"},
			},
			OutputFormat:       "List of matching device names",
			AvgExecutionTimeMs: 12,
			Cost:               CostLow,
		},
		{
			Name:        "get_specs",
			Description: "Get detailed technical specifications for a specific device",
			Category:    "information",
			WhenToUse: []string{
				"User asks about specific phone features",
				"User wants technical details",
				"After search_devices to get details",
				"For comparison preparation",
			},
			ExampleQueries: []string{
				"What are the specs of Samsung S24 Ultra?",
				"Tell me about iPhone 15 Pro Max camera",
				"How much RAM does OnePlus 12 have?",
			},
			TypicalNextTools: []string{"get_price", "get_reviews", "compare_specs"},
			InputSchema: InputSchema{
				Type: "object",
				Properties: map[string]Property{
					"device_name": {
						Type:        "string",
						Description: "Exact device name",
					},
				},
				Required: []string{"device_name"},
			},
			OutputFormat:       "Device specifications (processor, RAM, camera, etc.)",
			AvgExecutionTimeMs: 8,
			Cost:               CostLow,
		},
		{
			Name:        "get_price",
			Description: "Get pricing information from multiple retailers (Amazon, Flipkart, Croma)",
			Category:    "pricing",
			WhenToUse: []string{
				"User asks about price",
				"User mentions budget",
				"User wants to know cheapest option",
				"For value comparison",
			},
			ExampleQueries: []string{
				"How much does iPhone 15 Pro Max cost?",
				"What's the cheapest place to buy Samsung S24?",
				"Price of OnePlus 12?",
				"Where can I get the best deal?",
			},
			TypicalNextTools: []string{"get_reviews", "compare_specs"},
			InputSchema: InputSchema{
				Type: "object",
				Properties: map[string]Property{
					"device_name": {
						Type:        "string",
						Description: "Exact device name",
					},
				},
				Required: []string{"device_name"},
			},
			OutputFormat:       "Prices from Amazon, Flipkart, Croma with lowest price highlighted",
			AvgExecutionTimeMs: 10,
			Cost:               CostLow,
		},
		{
			Name:        "get_reviews",
			Description: "Get aggregated user reviews, ratings, pros and cons",
			Category:    "social_proof",
			WhenToUse: []string{
				"User asks about user opinions",
				"User wants to know pros/cons",
				"User asks 'is it good?'",
				"For final decision validation",
			},
			ExampleQueries: []string{
				"What do users say about Samsung S24 Ultra?",
				"Is iPhone 15 Pro Max worth it?",
				"Pros and cons of OnePlus 12?",
				"User reviews for Pixel 8 Pro?",
			},
			TypicalNextTools: []string{"get_price", "compare_specs"},
			InputSchema: InputSchema{
				Type: "object",
				Properties: map[string]Property{
					"device_name": {
						Type:        "string",
						Description: "Exact device name",
					},
				},
				Required: []string{"device_name"},
			},
			OutputFormat:       "Rating, review count, pros list, cons list",
			AvgExecutionTimeMs: 15,
			Cost:               CostLow,
		},
		{
			Name:        "compare_specs",
			Description: "Side-by-side comparison of two devices",
			Category:    "comparison",
			WhenToUse: []string{
				"User explicitly asks to compare",
				"User mentions 'vs' or 'versus'",
				"User asks 'which is better'",
				"User is deciding between two phones",
			},
			ExampleQueries: []string{
				"Compare Samsung S24 Ultra and iPhone 15 Pro Max",
				"Samsung vs iPhone for photography",
				"Which is better: OnePlus 12 or Xiaomi 14?",
				"Pixel 8 Pro vs iPhone 15 Pro Max",
			},
			TypicalNextTools: []string{"get_price", "get_reviews"},
			InputSchema: InputSchema{
				Type: "object",
				Properties: map[string]Property{
					"device1": {
						Type:        "string",
						Description: "First device name",
					},
					"device2": {
						Type:        "string",
						Description: "Second device name",
					},
				},
				Required: []string{"device1", "device2"},
			},
			OutputFormat:       "Side-by-side spec comparison for all features",
			AvgExecutionTimeMs: 18,
			Cost:               CostLow,
		},
	}
}

// commonSequences returns typical tool-call sequences.
//
// Static placeholder data, not derived from recorded usage.
func commonSequences() [][]string {
	return [][]string{
		{"search_devices", "get_specs", "get_price"},
		{"search_devices", "get_price", "get_reviews"},
		{"compare_specs", "get_price", "get_reviews"},
		{"get_specs", "get_reviews"},
		{"search_devices", "compare_specs"},
	}
}
