package storage

import (
	"context"
	"testing"
	"time"

	"bookmark-sync/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	_ Client = (*minioClient)(nil)
	_ Client = (*mocks.Client)(nil)
)

func TestEndpointHost(t *testing.T) {
	tests := []struct {
		endpoint string
		want     string
	}{
		{"localhost:9000", "localhost:9000"},
		{"http://localhost:9000", "localhost:9000"},
		{"https://s3.amazonaws.com/", "s3.amazonaws.com"},
		{" minio.internal:9000 ", "minio.internal:9000"},
	}
	for _, tt := range tests {
		t.Run(tt.endpoint, func(t *testing.T) {
			assert.Equal(t, tt.want, endpointHost(tt.endpoint))
		})
	}
}

func TestConfig_Timeout(t *testing.T) {
	assert.Equal(t, DefaultTimeout, Config{}.Timeout())
	assert.Equal(t, DefaultTimeout, Config{TimeoutSeconds: -1}.Timeout())
	assert.Equal(t, 5*time.Second, Config{TimeoutSeconds: 5}.Timeout())

	transport := newTransport(5 * time.Second)
	assert.Equal(t, 5*time.Second, transport.TLSHandshakeTimeout)
	assert.Equal(t, 5*time.Second, transport.ResponseHeaderTimeout)
}

func TestNewClient(t *testing.T) {
	client, err := NewClient(Config{
		Endpoint:  "https://s3.amazonaws.com",
		AccessKey: "key",
		SecretKey: "secret",
		UseSSL:    true,
		Region:    "us-east-1",
	})
	require.NoError(t, err)

	t.Run("GetObject opens lazily", func(t *testing.T) {
		reader, err := client.GetObject(context.Background(), "bookmark-sync", "bookmark-sync/state.json", minio.GetObjectOptions{})
		require.NoError(t, err)
		require.NotNil(t, reader)
		assert.NoError(t, reader.Close())
	})

	t.Run("GetObject rejects an invalid bucket name", func(t *testing.T) {
		reader, err := client.GetObject(context.Background(), "", "state.json", minio.GetObjectOptions{})
		assert.Error(t, err)
		assert.Nil(t, reader)
	})
}
