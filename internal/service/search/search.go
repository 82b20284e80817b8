// Package search indexes catalog items into Elasticsearch and serves the
// item search endpoint. Index maintenance is best-effort: a failed index or
// delete is logged by the caller and never fails the catalog write.
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/elastic/go-elasticsearch/v9"

	"github.com/minipos/minipos/internal/models"
)

const ItemIndex = "items"

type Index struct {
	ES *elasticsearch.Client
}

func (ix *Index) Enabled() bool {
	return ix != nil && ix.ES != nil
}

func (ix *Index) IndexItem(ctx context.Context, item *models.Item) error {
	if !ix.Enabled() {
		return nil
	}
	doc, err := json.Marshal(item)
	if err != nil {
		return err
	}
	res, err := ix.ES.Index(
		ItemIndex,
		bytes.NewReader(doc),
		ix.ES.Index.WithDocumentID(item.ID),
		ix.ES.Index.WithContext(ctx),
	)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("index item %s: %s", item.ID, res.Status())
	}
	return nil
}

func (ix *Index) DeleteItem(ctx context.Context, id string) error {
	if !ix.Enabled() {
		return nil
	}
	res, err := ix.ES.Delete(ItemIndex, id, ix.ES.Delete.WithContext(ctx))
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.IsError() && res.StatusCode != 404 {
		return fmt.Errorf("delete item %s from index: %s", id, res.Status())
	}
	return nil
}

func (ix *Index) Search(ctx context.Context, query string, from, size int) (int64, []models.Item, error) {
	body := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":     query,
				"fields":    []string{"name"},
				"fuzziness": "AUTO",
			},
		},
		"from": from,
		"size": size,
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return 0, nil, err
	}

	res, err := ix.ES.Search(
		ix.ES.Search.WithContext(ctx),
		ix.ES.Search.WithIndex(ItemIndex),
		ix.ES.Search.WithBody(&buf),
	)
	if err != nil {
		return 0, nil, err
	}
	defer res.Body.Close()
	if res.IsError() {
		return 0, nil, fmt.Errorf("search: %s", res.Status())
	}

	var r struct {
		Hits struct {
			Total struct {
				Value int64 `json:"value"`
			} `json:"total"`
			Hits []struct {
				Source models.Item `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return 0, nil, err
	}

	items := make([]models.Item, len(r.Hits.Hits))
	for i, hit := range r.Hits.Hits {
		items[i] = hit.Source
	}
	return r.Hits.Total.Value, items, nil
}
