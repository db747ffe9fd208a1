package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mikiasgoitom/airhost/internal/domain/contract"
	"github.com/mikiasgoitom/airhost/internal/domain/entity"
)

const (
	detailPrefix = "listing:id:"
	listPrefix   = "listings:list:"
)

// ListingCacheStore caches verified listings and index pages in Redis.
type ListingCacheStore struct {
	rdb       *redis.Client
	detailTTL time.Duration
	listTTL   time.Duration
}

var _ contract.IListingCache = (*ListingCacheStore)(nil)

// NewListingCacheStore caches details for ttl and index pages for half of it.
func NewListingCacheStore(rdb *redis.Client, ttl time.Duration) *ListingCacheStore {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &ListingCacheStore{
		rdb:       rdb,
		detailTTL: ttl,
		listTTL:   ttl / 2,
	}
}

func listingDetailKey(id string) string { return detailPrefix + id }
func listingsPageKey(key string) string { return listPrefix + key }

func (c *ListingCacheStore) GetListing(ctx context.Context, id string) (*entity.Listing, bool, error) {
	var listing entity.Listing
	found, err := c.get(ctx, listingDetailKey(id), &listing)
	if !found || err != nil {
		return nil, false, err
	}
	return &listing, true, nil
}

func (c *ListingCacheStore) SetListing(ctx context.Context, listing *entity.Listing) error {
	return c.set(ctx, listingDetailKey(listing.ID), listing, c.detailTTL)
}

func (c *ListingCacheStore) InvalidateListing(ctx context.Context, id string) error {
	return c.rdb.Del(ctx, listingDetailKey(id)).Err()
}

func (c *ListingCacheStore) GetListingsPage(ctx context.Context, key string) (*contract.CachedListingsPage, bool, error) {
	var page contract.CachedListingsPage
	found, err := c.get(ctx, listingsPageKey(key), &page)
	if !found || err != nil {
		return nil, false, err
	}
	return &page, true, nil
}

func (c *ListingCacheStore) SetListingsPage(ctx context.Context, key string, page *contract.CachedListingsPage) error {
	return c.set(ctx, listingsPageKey(key), page, c.listTTL)
}

func (c *ListingCacheStore) InvalidateListingPages(ctx context.Context) error {
	return c.deleteMatching(ctx, listPrefix+"*")
}

func (c *ListingCacheStore) InvalidateAll(ctx context.Context) error {
	if err := c.deleteMatching(ctx, detailPrefix+"*"); err != nil {
		return err
	}
	return c.deleteMatching(ctx, listPrefix+"*")
}

// get decodes the value at key into out. A missing or undecodable entry is a miss.
func (c *ListingCacheStore) get(ctx context.Context, key string, out interface{}) (bool, error) {
	b, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal(b, out); err != nil {
		return false, nil
	}
	return true, nil
}

func (c *ListingCacheStore) set(ctx context.Context, key string, v interface{}, ttl time.Duration) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode cache entry %s: %w", key, err)
	}
	return c.rdb.Set(ctx, key, data, ttl).Err()
}

func (c *ListingCacheStore) deleteMatching(ctx context.Context, pattern string) error {
	iter := c.rdb.Scan(ctx, 0, pattern, 1000).Iterator()
	pipe := c.rdb.Pipeline()
	n := 0
	for iter.Next(ctx) {
		pipe.Del(ctx, iter.Val())
		n++
		if n%200 == 0 {
			if _, err := pipe.Exec(ctx); err != nil {
				return err
			}
		}
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if n%200 != 0 {
		if _, err := pipe.Exec(ctx); err != nil {
			return err
		}
	}
	return nil
}
