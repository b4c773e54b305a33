package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"trucking-site/internal/common/database"
)

// ElasticStore persists documents in one Elasticsearch index per collection.
type ElasticStore struct {
	client *database.ElasticsearchClient
}

// NewElastic creates a document store backed by the given Elasticsearch client.
func NewElastic(client *database.ElasticsearchClient) *ElasticStore {
	return &ElasticStore{client: client}
}

func (s *ElasticStore) Add(ctx context.Context, collection string, doc Document) (string, error) {
	id := uuid.New().String()
	if err := s.Set(ctx, collection, id, doc); err != nil {
		return "", err
	}
	return id, nil
}

func (s *ElasticStore) Set(ctx context.Context, collection, id string, doc Document) error {
	payload, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal document: %w", err)
	}

	es := s.client.Client
	res, err := es.Index(
		collection,
		bytes.NewReader(payload),
		es.Index.WithDocumentID(id),
		es.Index.WithContext(ctx),
		es.Index.WithRefresh("true"),
	)
	if err != nil {
		return fmt.Errorf("index document %s/%s: %w", collection, id, err)
	}
	defer res.Body.Close()
	io.Copy(io.Discard, res.Body)

	if res.IsError() {
		return fmt.Errorf("index document %s/%s: %s", collection, id, res.Status())
	}
	return nil
}

func (s *ElasticStore) QueryRecent(ctx context.Context, collection, field, value string, since time.Time, limit int) ([]Document, error) {
	query := map[string]interface{}{
		"size": limit,
		"query": map[string]interface{}{
			"bool": map[string]interface{}{
				"filter": []map[string]interface{}{
					{"term": map[string]interface{}{field + ".keyword": value}},
					{"range": map[string]interface{}{
						"createdAt": map[string]interface{}{"gt": since.Format(time.RFC3339Nano)},
					}},
				},
			},
		},
	}

	body, err := json.Marshal(query)
	if err != nil {
		return nil, fmt.Errorf("marshal query: %w", err)
	}

	es := s.client.Client
	res, err := es.Search(
		es.Search.WithContext(ctx),
		es.Search.WithIndex(collection),
		es.Search.WithBody(bytes.NewReader(body)),
	)
	if err != nil {
		return nil, fmt.Errorf("search %s: %w", collection, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		// A collection never written to has no index yet.
		if res.StatusCode == 404 {
			return nil, nil
		}
		return nil, fmt.Errorf("search %s: %s", collection, res.Status())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				Source Document `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	docs := make([]Document, 0, len(parsed.Hits.Hits))
	for _, hit := range parsed.Hits.Hits {
		docs = append(docs, hit.Source)
	}
	return docs, nil
}

func (s *ElasticStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx)
}

func (s *ElasticStore) Close() error { return nil }
