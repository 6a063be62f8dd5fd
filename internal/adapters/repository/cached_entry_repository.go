package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/comitanigiacomo/concentria/internal/core/domain"
)

var _ domain.EntryRepository = (*CachedEntryRepository)(nil)

const defaultCacheTTL = 30 * time.Minute

// CachedEntryRepository serves Load from redis and drops the cached snapshot on every Save.
// namespace separates caches of different session files sharing one redis.
type CachedEntryRepository struct {
	next      domain.EntryRepository
	cache     *redis.Client
	namespace string
	ttl       time.Duration
}

func NewCachedEntryRepository(next domain.EntryRepository, cache *redis.Client, namespace string) *CachedEntryRepository {
	return &CachedEntryRepository{
		next:      next,
		cache:     cache,
		namespace: namespace,
		ttl:       defaultCacheTTL,
	}
}

// OpenCachedEntryRepository starts from an empty cache: a snapshot left by an earlier process
// is dropped, since commands running without the cache may have rewritten the store since.
func OpenCachedEntryRepository(ctx context.Context, next domain.EntryRepository, cache *redis.Client, namespace string) (*CachedEntryRepository, error) {
	r := NewCachedEntryRepository(next, cache, namespace)
	if err := r.Invalidate(ctx); err != nil {
		return nil, fmt.Errorf("cached repository: drop stale snapshot: %w", err)
	}
	return r, nil
}

func (r *CachedEntryRepository) cacheKey() string {
	return fmt.Sprintf("entries:%s", r.namespace)
}

// Invalidate drops the cached snapshot.
func (r *CachedEntryRepository) Invalidate(ctx context.Context) error {
	if err := r.cache.Del(ctx, r.cacheKey()).Err(); err != nil {
		log.Printf("[CACHE] Failed to invalidate %s: %v", r.namespace, err)
		return err
	}
	return nil
}

func (r *CachedEntryRepository) Load(ctx context.Context) ([]domain.SessionEntry, error) {
	key := r.cacheKey()

	val, err := r.cache.Get(ctx, key).Result()
	if err == nil {
		var entries []domain.SessionEntry
		if err := json.Unmarshal([]byte(val), &entries); err == nil {
			return entries, nil
		}

		log.Printf("[CACHE] Corrupted data for %s, cleaning up key", r.namespace)
		r.cache.Del(ctx, key)
	} else if err != redis.Nil {
		log.Printf("[CACHE] Redis read error: %v", err)
	}

	entries, err := r.next.Load(ctx)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(entries); err == nil {
		if setErr := r.cache.Set(ctx, key, data, r.ttl).Err(); setErr != nil {
			log.Printf("[CACHE] Redis set error: %v", setErr)
		}
	}

	return entries, nil
}

func (r *CachedEntryRepository) Save(ctx context.Context, entries []domain.SessionEntry) error {
	if err := r.next.Save(ctx, entries); err != nil {
		return err
	}
	r.Invalidate(ctx)
	return nil
}
