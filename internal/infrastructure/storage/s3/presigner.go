package s3

import (
	"context"
	"fmt"
	"time"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/lexnotes/storefront-service/internal/config"
)

// Presigner issues time-limited GET URLs for stored note assets. URLs are
// generated fresh on every call; nothing is cached.
type Presigner struct {
	presign *s3.PresignClient
	bucket  string
}

func NewPresigner(ctx context.Context, cfg config.AssetsConfig) (*Presigner, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}

	if cfg.Region != "" {
		awsCfg.Region = cfg.Region
	}

	if cfg.Endpoint != "" {
		// S3-compatible stores (MinIO, LocalStack) need a fixed endpoint.
		endpoint := cfg.Endpoint
		awsCfg.EndpointResolverWithOptions = sdkaws.EndpointResolverWithOptionsFunc(
			func(service, region string, options ...interface{}) (sdkaws.Endpoint, error) {
				return sdkaws.Endpoint{
					URL:               endpoint,
					SigningRegion:     awsCfg.Region,
					HostnameImmutable: true,
				}, nil
			})
	}

	client := s3.NewFromConfig(awsCfg)

	return &Presigner{
		presign: s3.NewPresignClient(client),
		bucket:  cfg.Bucket,
	}, nil
}

func (p *Presigner) SignedURL(ctx context.Context, key string, ttl time.Duration) (string, error) {
	input := &s3.GetObjectInput{
		Bucket: &p.bucket,
		Key:    &key,
	}

	presigned, err := p.presign.PresignGetObject(ctx, input, func(o *s3.PresignOptions) {
		o.Expires = ttl
	})
	if err != nil {
		return "", fmt.Errorf("failed to presign get object: %w", err)
	}

	return presigned.URL, nil
}
