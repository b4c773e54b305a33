// Package store abstracts the hosted document database behind a narrow
// capability interface so intake can run against Postgres, Elasticsearch,
// an in-memory fake, or an explicit unavailable gateway chosen once at
// process startup.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"trucking-site/internal/common/config"
	"trucking-site/internal/common/database"
	"trucking-site/internal/common/logger"
)

var (
	// ErrStoreUnavailable means no store is provisioned; distinct from a
	// write that was attempted and failed.
	ErrStoreUnavailable = errors.New("STORE_UNAVAILABLE")
)

// Document is a schemaless submission record as persisted.
type Document map[string]interface{}

// DocumentStore is the narrow persistence capability the intake pipeline
// consumes. Implementations are the sole writers of submission records.
type DocumentStore interface {
	// Add writes a document with a store-assigned id and returns that id.
	Add(ctx context.Context, collection string, doc Document) (string, error)
	// Set writes a document under a caller-chosen id.
	Set(ctx context.Context, collection, id string, doc Document) error
	// QueryRecent returns up to limit documents in the collection whose
	// field equals value and whose createdAt is after since.
	QueryRecent(ctx context.Context, collection, field, value string, since time.Time, limit int) ([]Document, error)
	Ping(ctx context.Context) error
	Close() error
}

// ToDocument converts a typed record into its persisted map form via its
// JSON encoding, so stored field names always match the wire contract.
func ToDocument(v interface{}) (Document, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal record: %w", err)
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("unmarshal record: %w", err)
	}
	return doc, nil
}

// NewFromConfig selects the store implementation from configuration, once.
// A missing or unconfigured driver yields the unavailable gateway rather
// than an error: the two intake pipelines decide how to surface that.
func NewFromConfig(cfg *config.Config, log logger.Logger) (DocumentStore, error) {
	if !cfg.StoreConfigured() {
		log.Warn("document store not configured, intake will run against the unavailable gateway", map[string]interface{}{
			"driver": cfg.Store.Driver,
		})
		return NewUnavailable(), nil
	}

	switch cfg.Store.Driver {
	case "postgres":
		pg, err := database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return nil, fmt.Errorf("init postgres store: %w", err)
		}
		return NewPostgres(pg), nil
	case "elasticsearch":
		es, err := database.NewElasticsearch(cfg.Database.Elasticsearch)
		if err != nil {
			return nil, fmt.Errorf("init elasticsearch store: %w", err)
		}
		return NewElastic(es), nil
	case "memory":
		return NewMemory(), nil
	default:
		return NewUnavailable(), nil
	}
}
