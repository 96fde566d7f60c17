package sheet

import (
	"context"
	"sync"
	"time"

	"github.com/dalemusser/twindash/internal/domain/models"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Cached reuses the last table for up to TTL. Concurrent misses share one
// upstream fetch. Failed fetches are not cached.
//
// Returned tables are shared between callers and must not be modified.
type Cached struct {
	src Source
	ttl time.Duration
	log *zap.Logger
	now func() time.Time

	mu        sync.Mutex
	table     models.Table
	fetchedAt time.Time

	group singleflight.Group
}

// NewCached wraps src with a TTL cache. A ttl of zero or less returns src
// itself: every request goes to the sheet.
func NewCached(src Source, ttl time.Duration, logger *zap.Logger) Source {
	if ttl <= 0 {
		return src
	}
	return &Cached{src: src, ttl: ttl, log: logger, now: time.Now}
}

// Describe implements Source.
func (c *Cached) Describe() string {
	return c.src.Describe() + " (cached " + c.ttl.String() + ")"
}

// Fetch implements Source.
func (c *Cached) Fetch(ctx context.Context) (models.Table, error) {
	if t, ok := c.fresh(); ok {
		return t, nil
	}

	v, err, shared := c.group.Do("table", func() (any, error) {
		// A fetch that finished between our check and Do already filled the slot.
		if t, ok := c.fresh(); ok {
			return t, nil
		}
		t, err := c.src.Fetch(ctx)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.table = t
		c.fetchedAt = c.now()
		c.mu.Unlock()
		return t, nil
	})
	if err != nil {
		return nil, err
	}
	if shared {
		c.log.Debug("sheet fetch shared", zap.String("source", c.src.Describe()))
	}
	return v.(models.Table), nil
}

func (c *Cached) fresh() (models.Table, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.table != nil && c.now().Sub(c.fetchedAt) < c.ttl {
		return c.table, true
	}
	return nil, false
}
