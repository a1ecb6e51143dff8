package objectstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveEndpoint(t *testing.T) {
	t.Run("AWS uses the SDK default", func(t *testing.T) {
		assert.Empty(t, ResolveEndpoint(Config{Provider: ProviderAWS, Region: "us-east-1"}))
	})

	t.Run("Wasabi resolves by region", func(t *testing.T) {
		got := ResolveEndpoint(Config{Provider: ProviderWasabi, Region: "eu-west-2"})
		assert.Equal(t, "s3.eu-west-2.wasabisys.com", got)
	})

	t.Run("Wasabi falls back for unknown regions", func(t *testing.T) {
		got := ResolveEndpoint(Config{Provider: ProviderWasabi, Region: "mars-1"})
		assert.Equal(t, defaultWasabiEndpoint, got)
	})

	t.Run("explicit endpoint wins", func(t *testing.T) {
		got := ResolveEndpoint(Config{Provider: ProviderWasabi, Region: "us-east-1", Endpoint: "minio.local:9000"})
		assert.Equal(t, "minio.local:9000", got)
	})
}

func TestNewClientRequiresBucket(t *testing.T) {
	_, err := NewClient(context.Background(), Config{Region: "us-east-1"})
	assert.Error(t, err)
}
