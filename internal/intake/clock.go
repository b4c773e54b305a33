package intake

import (
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"
)

// Clock supplies the current time. Injected so record timestamps and the
// dedup window are deterministic in tests.
type Clock interface {
	Now() time.Time
}

// SystemClock is the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now().UTC() }

// IDGenerator produces submission ids for records written under a
// caller-chosen key.
type IDGenerator interface {
	NewID(prefix string) string
}

// TimestampIDGenerator generates ids as {prefix}-{unix millis}-{9 random
// base36 characters}, sortable by submission time. One generator is shared
// across concurrent requests, so the rand state is mutex-guarded.
type TimestampIDGenerator struct {
	clock Clock
	mu    sync.Mutex
	rand  *rand.Rand
}

// NewIDGenerator creates a generator seeded from the clock.
func NewIDGenerator(clock Clock) *TimestampIDGenerator {
	return &TimestampIDGenerator{
		clock: clock,
		rand:  rand.New(rand.NewSource(clock.Now().UnixNano())),
	}
}

const base36 = "0123456789abcdefghijklmnopqrstuvwxyz"

func (g *TimestampIDGenerator) NewID(prefix string) string {
	g.mu.Lock()
	var sb strings.Builder
	for i := 0; i < 9; i++ {
		sb.WriteByte(base36[g.rand.Intn(len(base36))])
	}
	g.mu.Unlock()
	return fmt.Sprintf("%s-%d-%s", prefix, g.clock.Now().UnixMilli(), sb.String())
}
