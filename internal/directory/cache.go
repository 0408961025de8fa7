package directory

import (
	"sync"
	"time"
)

// snapshotCache holds one whole-directory snapshot with a lazy TTL. Writes
// replace or drop the snapshot as a unit, never mutate it in place, so
// readers always see either a fully valid or a fully absent snapshot.
// Participant has no reference fields, so value copies are deep copies.
type snapshotCache struct {
	mu    sync.Mutex
	ttl   time.Duration
	clock func() time.Time

	expiresAt time.Time
	entries   []Stored
	byID      map[int64]Stored
}

func newSnapshotCache(ttl time.Duration, clock func() time.Time) *snapshotCache {
	return &snapshotCache{ttl: ttl, clock: clock}
}

func (c *snapshotCache) set(entries []Stored) {
	if c.ttl <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	copied := append([]Stored(nil), entries...)
	byID := make(map[int64]Stored, len(copied))
	for _, e := range copied {
		if e.Participant.TelegramID != 0 {
			byID[e.Participant.TelegramID] = e
		}
	}
	c.entries = copied
	c.byID = byID
	c.expiresAt = c.clock().Add(c.ttl)
}

func (c *snapshotCache) list() ([]Stored, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.fresh() {
		return nil, false
	}
	return append([]Stored(nil), c.entries...), true
}

func (c *snapshotCache) get(telegramID int64) (Stored, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.fresh() {
		return Stored{}, false
	}
	e, ok := c.byID[telegramID]
	return e, ok
}

func (c *snapshotCache) invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = nil
	c.byID = nil
	c.expiresAt = time.Time{}
}

func (c *snapshotCache) fresh() bool {
	return c.byID != nil && c.clock().Before(c.expiresAt)
}
