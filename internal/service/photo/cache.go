package photo

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/kapu/busan-tour-bot-go/internal/constants"
	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// URLStore is an optional shared tier behind the in-process cache.
// SetIfAbsent must return the URL that ended up stored.
type URLStore interface {
	Get(ctx context.Context, name string) (string, bool, error)
	SetIfAbsent(ctx context.Context, name, url string) (string, error)
}

// KeywordFunc resolves the search keyword for an attraction.
type KeywordFunc func(name, category string) string

type CacheOption func(*ImageCache)

func WithStore(store URLStore) CacheOption {
	return func(c *ImageCache) { c.store = store }
}

func WithKeywordFunc(fn KeywordFunc) CacheOption {
	return func(c *ImageCache) { c.keyword = fn }
}

func WithBaseURL(baseURL string) CacheOption {
	return func(c *ImageCache) { c.baseURL = baseURL }
}

func WithRecorder(r CacheRecorder) CacheOption {
	return func(c *ImageCache) { c.recorder = r }
}

// CacheRecorder receives hit/miss observations (metrics).
type CacheRecorder interface {
	CacheHit()
	CacheMiss()
}

// ImageCache maps attraction name to photo URL for the life of the process.
// Entries never expire and the first stored URL for a name wins.
type ImageCache struct {
	mem      *gocache.Cache
	group    singleflight.Group
	store    URLStore
	keyword  KeywordFunc
	baseURL  string
	recorder CacheRecorder
	logger   *zap.Logger

	resolutions atomic.Int64
}

func NewImageCache(logger *zap.Logger, opts ...CacheOption) *ImageCache {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &ImageCache{
		mem:     gocache.New(gocache.NoExpiration, 0),
		keyword: ResolveKeyword,
		baseURL: constants.PhotoSource.BaseURL,
		logger:  logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Resolve returns the cached URL for name, computing and storing it on the
// first lookup. category only matters on a miss.
func (c *ImageCache) Resolve(ctx context.Context, name, category string) string {
	if cached, ok := c.mem.Get(name); ok {
		c.hit()
		return cached.(string)
	}

	v, _, _ := c.group.Do(name, func() (any, error) {
		if cached, ok := c.mem.Get(name); ok {
			c.hit()
			return cached.(string), nil
		}
		c.miss()
		return c.fill(ctx, name, category), nil
	})
	return v.(string)
}

func (c *ImageCache) fill(ctx context.Context, name, category string) string {
	if c.store != nil {
		storeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 2*time.Second)
		defer cancel()

		if shared, ok, err := c.store.Get(storeCtx, name); err != nil {
			c.logger.Warn("Photo URL store get failed", zap.String("name", name), zap.Error(err))
		} else if ok {
			return c.remember(name, shared)
		}

		url := c.build(name, category)
		winner, err := c.store.SetIfAbsent(storeCtx, name, url)
		if err != nil {
			c.logger.Warn("Photo URL store set failed", zap.String("name", name), zap.Error(err))
			return c.remember(name, url)
		}
		return c.remember(name, winner)
	}
	return c.remember(name, c.build(name, category))
}

func (c *ImageCache) build(name, category string) string {
	c.resolutions.Add(1)
	return BuildQueryURL(c.baseURL, c.keyword(name, category))
}

// remember stores url unless another writer got there first and returns the
// stored value.
func (c *ImageCache) remember(name, url string) string {
	if err := c.mem.Add(name, url, gocache.NoExpiration); err != nil {
		if existing, ok := c.mem.Get(name); ok {
			return existing.(string)
		}
	}
	return url
}

// Peek returns the cached URL without computing one.
func (c *ImageCache) Peek(name string) (string, bool) {
	v, ok := c.mem.Get(name)
	if !ok {
		return "", false
	}
	return v.(string), true
}

func (c *ImageCache) Len() int {
	return c.mem.ItemCount()
}

// Resolutions counts how many times a keyword was resolved into a new URL.
func (c *ImageCache) Resolutions() int64 {
	return c.resolutions.Load()
}

func (c *ImageCache) hit() {
	if c.recorder != nil {
		c.recorder.CacheHit()
	}
}

func (c *ImageCache) miss() {
	if c.recorder != nil {
		c.recorder.CacheMiss()
	}
}
