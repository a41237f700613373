package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/elastic/go-elasticsearch/v9/esapi"
)

const (
	FoodIndex   = "food_listings"
	VendorIndex = "vendors"
)

func NewClient(url, user, password string) (*elasticsearch.Client, error) {
	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{url},
		Username:  user,
		Password:  password,
	})
	if err != nil {
		return nil, fmt.Errorf("es client: %w", err)
	}

	res, err := client.Info()
	if err != nil {
		return nil, fmt.Errorf("es info: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		body, _ := io.ReadAll(res.Body)
		return nil, fmt.Errorf("es error: %s: %s", res.Status(), body)
	}
	return client, nil
}

// FoodDoc is the searchable projection of a food listing.
type FoodDoc struct {
	ID          uint    `json:"id"`
	VendorCode  string  `json:"vendor_id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	IsAvailable bool    `json:"is_available"`
}

// VendorDoc is the searchable projection of a vendor.
type VendorDoc struct {
	Code           string  `json:"vendor_id"`
	RestaurantName string  `json:"restaurant_name"`
	Address        string  `json:"address"`
	CuisineType    string  `json:"cuisine_type"`
	Rating         float64 `json:"rating"`
}

// Index upserts one document. Indexing is best-effort around catalog
// writes; callers log and continue on error.
func Index(ctx context.Context, es *elasticsearch.Client, index, id string, doc any) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return err
	}

	req := esapi.IndexRequest{
		Index:      index,
		DocumentID: id,
		Body:       bytes.NewReader(data),
	}
	res, err := req.Do(ctx, es)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("es index %s/%s: %s", index, id, res.Status())
	}
	return nil
}

// Delete removes one document, ignoring a missing one.
func Delete(ctx context.Context, es *elasticsearch.Client, index, id string) error {
	req := esapi.DeleteRequest{Index: index, DocumentID: id}
	res, err := req.Do(ctx, es)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.IsError() && res.StatusCode != 404 {
		return fmt.Errorf("es delete %s/%s: %s", index, id, res.Status())
	}
	return nil
}

func query(ctx context.Context, es *elasticsearch.Client, index, q string, fields []string, size int) ([]json.RawMessage, error) {
	body := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":     q,
				"fields":    fields,
				"fuzziness": "AUTO",
			},
		},
		"size": size,
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return nil, err
	}

	res, err := es.Search(
		es.Search.WithContext(ctx),
		es.Search.WithIndex(index),
		es.Search.WithBody(&buf),
	)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	if res.IsError() {
		return nil, fmt.Errorf("es search %s: %s", index, res.Status())
	}

	var r struct {
		Hits struct {
			Hits []struct {
				Source json.RawMessage `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return nil, err
	}

	out := make([]json.RawMessage, len(r.Hits.Hits))
	for i, hit := range r.Hits.Hits {
		out[i] = hit.Source
	}
	return out, nil
}

// Foods runs a fuzzy multi-match over food listings.
func Foods(ctx context.Context, es *elasticsearch.Client, q string, size int) ([]FoodDoc, error) {
	raw, err := query(ctx, es, FoodIndex, q, []string{"name^2", "description", "category"}, size)
	if err != nil {
		return nil, err
	}
	docs := make([]FoodDoc, 0, len(raw))
	for _, src := range raw {
		var d FoodDoc
		if err := json.Unmarshal(src, &d); err != nil {
			continue
		}
		docs = append(docs, d)
	}
	return docs, nil
}

// Vendors runs a fuzzy multi-match over vendors.
func Vendors(ctx context.Context, es *elasticsearch.Client, q string, size int) ([]VendorDoc, error) {
	raw, err := query(ctx, es, VendorIndex, q, []string{"restaurant_name^2", "address", "cuisine_type"}, size)
	if err != nil {
		return nil, err
	}
	docs := make([]VendorDoc, 0, len(raw))
	for _, src := range raw {
		var d VendorDoc
		if err := json.Unmarshal(src, &d); err != nil {
			continue
		}
		docs = append(docs, d)
	}
	return docs, nil
}

func FoodDocID(id uint) string { return strconv.FormatUint(uint64(id), 10) }
