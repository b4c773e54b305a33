package intake

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	apperrors "trucking-site/internal/common/errors"
	"trucking-site/internal/common/logger"
	"trucking-site/internal/common/metrics"
	"trucking-site/internal/store"
)

// Guard rejects repeat submissions inside the dedup window. Matching is by
// normalized email or cleaned phone against the store; a Redis reservation
// can be layered in front to close the read-then-write race between
// concurrent duplicates.
type Guard struct {
	store  store.DocumentStore
	redis  *redis.Client
	window time.Duration
	clock  Clock
	logger logger.Logger
}

// NewGuard creates a guard backed by the document store. redisClient may be
// nil when reservations are disabled.
func NewGuard(docStore store.DocumentStore, redisClient *redis.Client, window time.Duration, clock Clock, log logger.Logger) *Guard {
	return &Guard{
		store:  docStore,
		redis:  redisClient,
		window: window,
		clock:  clock,
		logger: log,
	}
}

// Check returns a DUPLICATE_SUBMISSION error when a record with the same
// email or phone exists in the collection inside the window. Checks run in
// order, email first; either match suffices. The Redis reservation, when
// enabled, is only a fast reject path in front of the store lookups: a
// successful claim still falls through to the lookup, since the store may
// hold records Redis never saw. Store errors from lookups propagate as-is
// so the caller can classify them; claims made before such an error are
// released.
func (g *Guard) Check(ctx context.Context, collection, noun, email, phoneClean string) error {
	since := g.clock.Now().Add(-g.window)
	var claimed []string

	for _, ch := range guardChannels(email, phoneClean) {
		if g.redis != nil {
			key := reservationKey(collection, ch.name, ch.value)
			reserved, err := g.redis.SetNX(ctx, key, 1, g.window).Result()
			switch {
			case err != nil:
				g.logger.Warn("dedup reservation unavailable, falling back to store lookup", map[string]interface{}{
					"collection": collection,
					"channel":    ch.name,
					"error":      err.Error(),
				})
			case !reserved:
				return g.duplicateError(noun, ch.name)
			default:
				claimed = append(claimed, key)
			}
		}

		docs, err := g.store.QueryRecent(ctx, collection, ch.field, ch.value, since, 1)
		if err != nil {
			metrics.StoreCalls.WithLabelValues("query_recent", "error").Inc()
			g.releaseKeys(ctx, claimed)
			return err
		}
		metrics.StoreCalls.WithLabelValues("query_recent", "success").Inc()
		if len(docs) > 0 {
			return g.duplicateError(noun, ch.name)
		}
	}
	return nil
}

// Release frees the reservation keys for a submission whose write did not
// happen, so the sender's retry is not rejected against a record that was
// never persisted. Best effort; safe without Redis.
func (g *Guard) Release(ctx context.Context, collection, email, phoneClean string) {
	if g.redis == nil {
		return
	}
	keys := make([]string, 0, 2)
	for _, ch := range guardChannels(email, phoneClean) {
		keys = append(keys, reservationKey(collection, ch.name, ch.value))
	}
	g.releaseKeys(ctx, keys)
}

func (g *Guard) releaseKeys(ctx context.Context, keys []string) {
	if g.redis == nil || len(keys) == 0 {
		return
	}
	if err := g.redis.Del(ctx, keys...).Err(); err != nil {
		g.logger.Warn("dedup reservation release failed", map[string]interface{}{
			"keys":  keys,
			"error": err.Error(),
		})
	}
}

type guardChannel struct {
	name  string
	field string
	value string
}

func guardChannels(email, phoneClean string) []guardChannel {
	channels := make([]guardChannel, 0, 2)
	if email != "" {
		channels = append(channels, guardChannel{name: "email", field: "email", value: email})
	}
	if phoneClean != "" {
		channels = append(channels, guardChannel{name: "phone", field: "phoneClean", value: phoneClean})
	}
	return channels
}

func reservationKey(collection, channel, value string) string {
	return fmt.Sprintf("dedup:%s:%s:%s", collection, channel, value)
}

func (g *Guard) duplicateError(noun, channel string) error {
	article := "A"
	switch noun[0] {
	case 'a', 'e', 'i', 'o', 'u':
		article = "An"
	}
	message := fmt.Sprintf(
		"%s %s with this %s was recently submitted. Please wait %d hours.",
		article, noun, channel, int(g.window.Hours()),
	)
	return apperrors.NewDuplicateSubmissionError(message, channel)
}
