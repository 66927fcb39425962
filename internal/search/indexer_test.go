package search

import (
	"testing"

	"github.com/Sjking2025/Gadget-Spec-Scout/internal/registry"
)

func newTestIndexer(t *testing.T) *Indexer {
	t.Helper()
	indexer, err := NewIndexer(registry.NewRegistry().AllTools())
	if err != nil {
		t.Fatalf("NewIndexer failed: %v", err)
	}
	t.Cleanup(func() { indexer.Close() })
	return indexer
}

func TestNewIndexer_IndexesCatalog(t *testing.T) {
	indexer := newTestIndexer(t)

	count, err := indexer.Count()
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 5 {
		t.Errorf("expected 5 indexed tools, got %d", count)
	}
}

func TestSearch_FindsReviewTool(t *testing.T) {
	indexer := newTestIndexer(t)

	results, err := indexer.Search("aggregated user reviews ratings pros cons", 5)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(results) == 0 {
		t.Fatal("expected results")
	}
	if results[0].Name != "get_reviews" {
		t.Errorf("expected get_reviews as top hit, got %q", results[0].Name)
	}
	if results[0].Description == "" || results[0].Category == "" {
		t.Errorf("expected descriptor fields populated: %+v", results[0])
	}
}

func TestSearch_FindsComparisonTool(t *testing.T) {
	indexer := newTestIndexer(t)

	results, err := indexer.Search("side-by-side comparison of two devices", 5)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}

	found := false
	for _, r := range results {
		if r.Name == "compare_specs" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected compare_specs among results: %+v", results)
	}
}

func TestSearch_LimitApplied(t *testing.T) {
	indexer := newTestIndexer(t)

	results, err := indexer.Search("phone device specs price reviews", 2)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(results) > 2 {
		t.Errorf("expected at most 2 results, got %d", len(results))
	}
}
