package objectstore

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Provider represents the S3-compatible storage provider
type Provider string

const (
	ProviderAWS    Provider = "aws"
	ProviderWasabi Provider = "wasabi"
)

// Config holds configuration for S3-compatible storage
type Config struct {
	Provider        Provider
	AccessKeyID     string
	SecretAccessKey string
	Region          string
	Bucket          string

	// Endpoint overrides the provider default, e.g. "s3.ap-southeast-1.wasabisys.com"
	// or a local MinIO host
	Endpoint string
}

// WasabiEndpoints maps regions to Wasabi endpoints
var WasabiEndpoints = map[string]string{
	"us-east-1":      "s3.us-east-1.wasabisys.com",
	"us-east-2":      "s3.us-east-2.wasabisys.com",
	"us-west-1":      "s3.us-west-1.wasabisys.com",
	"eu-central-1":   "s3.eu-central-1.wasabisys.com",
	"eu-west-1":      "s3.eu-west-1.wasabisys.com",
	"eu-west-2":      "s3.eu-west-2.wasabisys.com",
	"ap-northeast-1": "s3.ap-northeast-1.wasabisys.com",
	"ap-northeast-2": "s3.ap-northeast-2.wasabisys.com",
	"ap-southeast-1": "s3.ap-southeast-1.wasabisys.com",
	"ap-southeast-2": "s3.ap-southeast-2.wasabisys.com",
}

const defaultWasabiEndpoint = "s3.ap-southeast-1.wasabisys.com"

// ResolveEndpoint returns the host to use for cfg, or "" for the AWS default
func ResolveEndpoint(cfg Config) string {
	if cfg.Endpoint != "" {
		return cfg.Endpoint
	}
	if cfg.Provider != ProviderWasabi {
		return ""
	}
	if endpoint, ok := WasabiEndpoints[cfg.Region]; ok {
		return endpoint
	}
	return defaultWasabiEndpoint
}

// NewClient creates an S3 client with the given config.
// Supports both AWS S3 and Wasabi.
func NewClient(ctx context.Context, cfg Config) (*s3.Client, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("s3: bucket not configured")
	}

	awsCfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(cfg.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	endpoint := ResolveEndpoint(cfg)
	if endpoint == "" {
		return s3.NewFromConfig(awsCfg), nil
	}

	// Custom endpoints (Wasabi, MinIO) require path-style addressing
	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String("https://" + endpoint)
		o.UsePathStyle = true
	}), nil
}

// Ping checks that the bucket is reachable with the configured credentials
func Ping(ctx context.Context, client *s3.Client, bucket string) error {
	_, err := client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(bucket),
	})
	if err != nil {
		return fmt.Errorf("failed to access bucket %s: %w", bucket, err)
	}
	return nil
}
