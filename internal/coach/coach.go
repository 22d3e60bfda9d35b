// Package coach orchestrates dense-map comparison against the reference
// catalog, with optional result caching and a concurrent best-match
// search.
package coach

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/ayusman/sandow/internal/catalog"
	"github.com/ayusman/sandow/internal/compare"
	"github.com/ayusman/sandow/internal/densemap"
	"github.com/ayusman/sandow/internal/pose"
)

// ErrEmptyCatalog is returned when a best-match search finds no candidate
// reference poses.
var ErrEmptyCatalog = errors.New("no reference poses in catalog")

// cacheTTL bounds how long a comparison result stays cached. The key
// covers the user digest and the reference's last update time, so an
// entry can never serve a stale reference; the TTL only bounds memory.
const cacheTTL = 5 * time.Minute

// Catalog is the reference lookup surface the coach needs. Both the
// SQLite repository and the in-memory catalog satisfy it.
type Catalog interface {
	GetByID(id string) (*catalog.ReferencePose, error)
	List(category pose.Category) ([]*catalog.ReferencePose, error)
}

// Match pairs a reference pose with the comparison result against it.
type Match struct {
	Reference *catalog.ReferencePose
	Result    compare.Result
}

// Coach scores user dense maps against the reference catalog.
type Coach struct {
	catalog    Catalog
	comparator *compare.Comparator
	cache      Cache
	logger     *zap.Logger
}

// Option configures a Coach.
type Option func(*Coach)

// WithCache enables caching of comparison results.
func WithCache(cache Cache) Option {
	return func(c *Coach) { c.cache = cache }
}

// WithLogger sets the coach logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Coach) { c.logger = logger.Named("coach") }
}

// New creates a Coach backed by the given catalog and comparator.
func New(cat Catalog, cmp *compare.Comparator, opts ...Option) *Coach {
	c := &Coach{
		catalog:    cat,
		comparator: cmp,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CompareWithReference scores the user's dense map against one stored
// reference, using the reference's own category for the scoring weights.
// Missing references surface catalog.ErrNotFound.
func (c *Coach) CompareWithReference(ctx context.Context, userMap *densemap.Map, referenceID string) (compare.Result, error) {
	ref, err := c.catalog.GetByID(referenceID)
	if err != nil {
		return compare.Result{}, fmt.Errorf("failed to load reference %s: %w", referenceID, err)
	}

	// Empty user maps all share one digest and produce the sentinel
	// result anyway, so they bypass the cache.
	if c.cache == nil || userMap.Empty() {
		return c.comparator.Compare(userMap, ref.DenseMap, ref.Category)
	}

	key := fmt.Sprintf("compare:%s:%s:%d", userMap.Digest(), ref.ID, ref.UpdatedAt.UnixNano())

	if cached, err := c.cache.Get(ctx, key); err == nil {
		var result compare.Result
		if decodeErr := json.Unmarshal([]byte(cached), &result); decodeErr != nil {
			c.logger.Warn("failed to decode cached comparison", zap.String("key", key), zap.Error(decodeErr))
		} else {
			return result, nil
		}
	} else if !errors.Is(err, redis.Nil) {
		c.logger.Warn("failed to read comparison cache", zap.String("key", key), zap.Error(err))
	}

	result, err := c.comparator.Compare(userMap, ref.DenseMap, ref.Category)
	if err != nil {
		return compare.Result{}, err
	}

	serialized, err := json.Marshal(result)
	if err != nil {
		c.logger.Warn("failed to serialize comparison result", zap.Error(err))
		return result, nil
	}
	if err := c.cache.Set(ctx, key, string(serialized), cacheTTL); err != nil {
		c.logger.Warn("failed to cache comparison result", zap.String("key", key), zap.Error(err))
	}

	return result, nil
}

// FindBestMatch scores the user's dense map against every catalog entry,
// optionally filtered by category, and returns the best-scoring match.
// Candidates are evaluated concurrently; the winner is chosen by a
// sequential scan keeping the strictly greatest total, so ties always go
// to the earliest catalog entry regardless of goroutine scheduling.
func (c *Coach) FindBestMatch(ctx context.Context, userMap *densemap.Map, category pose.Category) (Match, error) {
	if category != "" && !category.Valid() {
		return Match{}, fmt.Errorf("%w: %q", pose.ErrUnknownCategory, category)
	}
	if err := ctx.Err(); err != nil {
		return Match{}, err
	}

	refs, err := c.catalog.List(category)
	if err != nil {
		return Match{}, fmt.Errorf("failed to list references: %w", err)
	}
	if len(refs) == 0 {
		return Match{}, ErrEmptyCatalog
	}

	c.logger.Debug("evaluating best-match candidates",
		zap.Int("candidates", len(refs)),
		zap.String("category", string(category)))

	results := make([]compare.Result, len(refs))
	errs := make([]error, len(refs))

	var wg sync.WaitGroup
	for i, ref := range refs {
		wg.Add(1)
		go func(i int, ref *catalog.ReferencePose) {
			defer wg.Done()
			results[i], errs[i] = c.comparator.Compare(userMap, ref.DenseMap, ref.Category)
		}(i, ref)
	}
	wg.Wait()

	// A candidate failure means a corrupt catalog entry, not missing
	// user data, so the whole search fails.
	for i, err := range errs {
		if err != nil {
			return Match{}, fmt.Errorf("failed to compare against %s: %w", refs[i].ID, err)
		}
	}

	best := 0
	for i := 1; i < len(results); i++ {
		if results[i].TotalScore > results[best].TotalScore {
			best = i
		}
	}

	return Match{Reference: refs[best], Result: results[best]}, nil
}
