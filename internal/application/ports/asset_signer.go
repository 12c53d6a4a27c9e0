package ports

import (
	"context"
	"time"
)

// AssetSigner turns a stored object key into a time-limited retrieval URL.
// URLs are regenerated per request, never cached.
type AssetSigner interface {
	SignedURL(ctx context.Context, key string, ttl time.Duration) (string, error)
}
