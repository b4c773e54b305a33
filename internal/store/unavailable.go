package store

import (
	"context"
	"time"
)

// unavailableStore is the gateway used when no document database is
// provisioned. Every operation fails with ErrStoreUnavailable.
type unavailableStore struct{}

// NewUnavailable returns a store that rejects all operations.
func NewUnavailable() DocumentStore {
	return unavailableStore{}
}

func (unavailableStore) Add(ctx context.Context, collection string, doc Document) (string, error) {
	return "", ErrStoreUnavailable
}

func (unavailableStore) Set(ctx context.Context, collection, id string, doc Document) error {
	return ErrStoreUnavailable
}

func (unavailableStore) QueryRecent(ctx context.Context, collection, field, value string, since time.Time, limit int) ([]Document, error) {
	return nil, ErrStoreUnavailable
}

func (unavailableStore) Ping(ctx context.Context) error { return ErrStoreUnavailable }

func (unavailableStore) Close() error { return nil }
