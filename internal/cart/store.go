package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"

	"restobar/internal/models"
)

// SnapshotEntry is the durable form of one line item. Prices are not
// persisted: they are re-derived from the catalog on restore, so a product
// edit between sessions is always honored.
type SnapshotEntry struct {
	ProductID       string                  `json:"productId"`
	SelectedOptions []models.SelectedOption `json:"selectedOptions,omitempty"`
	Quantity        int                     `json:"quantity"`
}

// Snapshot returns the cart's durable form in insertion order.
func (c *Cart) Snapshot() []SnapshotEntry {
	entries := make([]SnapshotEntry, 0, len(c.entries))
	for _, item := range c.entries {
		entries = append(entries, SnapshotEntry{
			ProductID:       item.ProductID,
			SelectedOptions: item.SelectedOptions,
			Quantity:        item.Quantity,
		})
	}
	return entries
}

// ProductResolver looks a product up by its hex id. A nil product with a nil
// error means the product no longer exists.
type ProductResolver func(ctx context.Context, productID string) (*models.Product, error)

// Restore rebuilds a cart from a snapshot. Entries whose product is gone,
// unavailable or no longer accepts the stored selection are dropped
// silently; a stale row must never block the cart from loading.
func Restore(ctx context.Context, entries []SnapshotEntry, resolve ProductResolver) (*Cart, error) {
	c := New()
	for _, e := range entries {
		product, err := resolve(ctx, e.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil || !product.IsAvailable || product.IsDeleted {
			continue
		}
		if _, err := c.AddItem(*product, e.SelectedOptions, e.Quantity); err != nil {
			log.Printf("[CART] dropping stale entry for product %s: %v", e.ProductID, err)
			continue
		}
	}
	return c, nil
}

// Store persists cart snapshots across page loads, keyed by session id.
type Store interface {
	Save(ctx context.Context, sessionID string, entries []SnapshotEntry) error
	Load(ctx context.Context, sessionID string) ([]SnapshotEntry, error)
}

// RedisStore keeps snapshots in Redis with a per-session TTL.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) key(sessionID string) string {
	return "cart:" + sessionID
}

func (s *RedisStore) Save(ctx context.Context, sessionID string, entries []SnapshotEntry) error {
	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("marshal cart snapshot: %w", err)
	}
	return s.client.Set(ctx, s.key(sessionID), data, s.ttl).Err()
}

func (s *RedisStore) Load(ctx context.Context, sessionID string) ([]SnapshotEntry, error) {
	data, err := s.client.Get(ctx, s.key(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var entries []SnapshotEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		// a corrupt snapshot behaves like an empty cart
		log.Printf("[CART] discarding corrupt snapshot for session %s: %v", sessionID, err)
		return nil, nil
	}
	return entries, nil
}
