package search

import (
	"fmt"
	"strings"
	"sync"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/mapping"

	"github.com/Sjking2025/Gadget-Spec-Scout/internal/registry"
)

// Indexer manages the search index over the tool catalog.
type Indexer struct {
	bleveIndex bleve.Index
	byName     map[string]registry.ToolDescriptor
	mu         sync.RWMutex
}

// NewIndexer creates an in-memory index populated with the given catalog.
func NewIndexer(tools []registry.ToolDescriptor) (*Indexer, error) {
	index, err := bleve.NewMemOnly(buildIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("failed to create bleve index: %w", err)
	}

	byName := make(map[string]registry.ToolDescriptor, len(tools))
	for _, tool := range tools {
		byName[tool.Name] = tool
	}

	i := &Indexer{bleveIndex: index, byName: byName}
	if err := i.indexCatalog(tools); err != nil {
		index.Close()
		return nil, err
	}
	return i, nil
}

// buildIndexMapping creates the Bleve index mapping for tool documents.
func buildIndexMapping() mapping.IndexMapping {
	toolMapping := bleve.NewDocumentMapping()

	textField := bleve.NewTextFieldMapping()
	toolMapping.AddFieldMappingsAt("name", textField)
	toolMapping.AddFieldMappingsAt("description", textField)
	toolMapping.AddFieldMappingsAt("category", textField)
	toolMapping.AddFieldMappingsAt("whenToUse", textField)
	toolMapping.AddFieldMappingsAt("exampleQueries", textField)

	indexMapping := bleve.NewIndexMapping()
	indexMapping.AddDocumentMapping("_default", toolMapping)

	return indexMapping
}

// indexCatalog indexes every descriptor in one batch.
func (i *Indexer) indexCatalog(tools []registry.ToolDescriptor) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	batch := i.bleveIndex.NewBatch()

	for _, tool := range tools {
		doc := map[string]interface{}{
			"name":           tool.Name,
			"description":    tool.Description,
			"category":       tool.Category,
			"whenToUse":      strings.Join(tool.WhenToUse, " "),
			"exampleQueries": strings.Join(tool.ExampleQueries, " "),
		}

		if err := batch.Index(tool.Name, doc); err != nil {
			return fmt.Errorf("failed to index tool %s: %w", tool.Name, err)
		}
	}

	if err := i.bleveIndex.Batch(batch); err != nil {
		return fmt.Errorf("failed to batch index tools: %w", err)
	}

	return nil
}

// Search runs a match query against the catalog and returns up to limit
// ranked results.
func (i *Indexer) Search(queryText string, limit int) ([]Result, error) {
	i.mu.RLock()
	defer i.mu.RUnlock()

	if limit <= 0 {
		limit = 5
	}

	query := bleve.NewMatchQuery(queryText)
	request := bleve.NewSearchRequestOptions(query, limit, 0, false)

	searchResults, err := i.bleveIndex.Search(request)
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}

	results := make([]Result, 0, len(searchResults.Hits))
	for _, hit := range searchResults.Hits {
		result := Result{Name: hit.ID, Score: hit.Score}
		if tool, ok := i.byName[hit.ID]; ok {
			result.Description = tool.Description
			result.Category = tool.Category
		}
		results = append(results, result)
	}

	return results, nil
}

// Count returns the total number of indexed tools.
func (i *Indexer) Count() (uint64, error) {
	i.mu.RLock()
	defer i.mu.RUnlock()

	docCount, err := i.bleveIndex.DocCount()
	if err != nil {
		return 0, fmt.Errorf("failed to get doc count: %w", err)
	}
	return docCount, nil
}

// Close closes the index and releases resources.
func (i *Indexer) Close() error {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.bleveIndex != nil {
		return i.bleveIndex.Close()
	}
	return nil
}
