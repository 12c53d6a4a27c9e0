package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/lexnotes/storefront-service/internal/infrastructure/monitoring"
	"github.com/lexnotes/storefront-service/internal/pkg/logger"
)

// Cache holds the entitlement-set mirror and processed-event markers.
// Entitlement sets are union-only: SADD never removes or replaces members,
// so concurrent reconciliations cannot clobber each other.
type Cache struct {
	client *redis.Client
	logger *logger.Logger
}

func NewCache(conn *Connection, log *logger.Logger) *Cache {
	client := monitoring.InstrumentRedisClient(conn.GetClient())

	return &Cache{
		client: client,
		logger: log,
	}
}

func entitlementKey(userID string) string {
	return fmt.Sprintf("entitlements:%s", userID)
}

func eventKey(eventID string) string {
	return fmt.Sprintf("webhook:event:%s", eventID)
}

func (c *Cache) AddEntitlements(ctx context.Context, userID string, productIDs []string) error {
	if len(productIDs) == 0 {
		return nil
	}

	members := make([]interface{}, len(productIDs))
	for i, id := range productIDs {
		members[i] = id
	}

	return c.client.SAdd(ctx, entitlementKey(userID), members...).Err()
}

func (c *Cache) GetEntitlements(ctx context.Context, userID string) ([]string, error) {
	return c.client.SMembers(ctx, entitlementKey(userID)).Result()
}

func (c *Cache) MarkEventProcessed(ctx context.Context, eventID string, ttl time.Duration) error {
	return c.client.Set(ctx, eventKey(eventID), 1, ttl).Err()
}

func (c *Cache) EventProcessed(ctx context.Context, eventID string) (bool, error) {
	n, err := c.client.Exists(ctx, eventKey(eventID)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
