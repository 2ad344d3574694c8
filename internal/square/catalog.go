package square

import (
	"context"
	"net/http"
)

// GetCatalogObject fetches one catalog object by id.
func (c *Client) GetCatalogObject(ctx context.Context, objectID string) (*CatalogObject, error) {
	var out struct {
		Object *CatalogObject `json:"object"`
	}
	if err := c.do(ctx, "catalog.object.get", http.MethodGet, "/v2/catalog/object/"+objectID, nil, &out); err != nil {
		return nil, err
	}
	return out.Object, nil
}

// CatalogSearchResult is one page of a catalog search.
type CatalogSearchResult struct {
	Objects        []CatalogObject `json:"objects"`
	RelatedObjects []CatalogObject `json:"related_objects"`
	Cursor         string          `json:"cursor"`
}

// SearchCatalog searches catalog objects of the given types. Square accepts at
// most 3 keywords; callers pass pre-trimmed keyword lists.
func (c *Client) SearchCatalog(ctx context.Context, objectTypes, keywords []string, cursor string, limit int) (*CatalogSearchResult, error) {
	body := map[string]any{
		"object_types":            objectTypes,
		"include_related_objects": true,
		"limit":                   limit,
	}
	if cursor != "" {
		body["cursor"] = cursor
	}
	if len(keywords) > 0 {
		body["query"] = map[string]any{
			"text_query": map[string]any{"keywords": keywords},
		}
	}
	var out CatalogSearchResult
	if err := c.do(ctx, "catalog.search", http.MethodPost, "/v2/catalog/search", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// BatchUpsertResult is the outcome of a catalog batch upsert.
type BatchUpsertResult struct {
	Objects    []CatalogObject    `json:"objects"`
	IDMappings []CatalogIDMapping `json:"id_mappings"`
}

// BatchUpsertCatalog upserts catalog objects in one batch. Temporary ids
// (prefixed "#") are resolved to real ids in the returned id mappings.
func (c *Client) BatchUpsertCatalog(ctx context.Context, idempotencyKey string, objects []map[string]any) (*BatchUpsertResult, error) {
	body := map[string]any{
		"idempotency_key": idempotencyKey,
		"batches":         []map[string]any{{"objects": objects}},
	}
	var out BatchUpsertResult
	if err := c.do(ctx, "catalog.batch_upsert", http.MethodPost, "/v2/catalog/batch-upsert", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
