package storage

import (
	"context"
	"io"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tcminio "github.com/testcontainers/testcontainers-go/modules/minio"
)

const (
	minioUser     = "minioadmin"
	minioPassword = "minioadmin"
)

func TestPresetKey(t *testing.T) {
	assert.Equal(t, "presets/abc/Main_L.rcp", PresetKey("abc", "Main_L"))
}

func TestNewS3Store_RequiresBucket(t *testing.T) {
	_, err := NewS3Store(context.Background(), S3Config{Endpoint: "localhost:9000"})
	assert.Error(t, err)
}

// setupMinio starts a MinIO container and creates an empty bucket in it
func setupMinio(t *testing.T) S3Config {
	t.Helper()
	ctx := context.Background()

	container, err := tcminio.Run(ctx,
		"minio/minio:RELEASE.2024-10-29T16-01-48Z",
		tcminio.WithUsername(minioUser),
		tcminio.WithPassword(minioPassword),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, container.Terminate(context.Background()))
	})

	endpoint, err := container.ConnectionString(ctx)
	require.NoError(t, err)

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(minioUser, minioPassword, ""),
		Secure: false,
	})
	require.NoError(t, err)

	bucket := "crossr1-test-" + uuid.New().String()[:8]
	require.NoError(t, client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}))

	return S3Config{
		Bucket:    bucket,
		Endpoint:  endpoint,
		AccessKey: minioUser,
		SecretKey: minioPassword,
	}
}

func TestS3Store_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()
	store, err := NewS3Store(ctx, setupMinio(t))
	require.NoError(t, err)

	key := PresetKey(uuid.New().String(), "Main_L")
	xml := "<R1EQSETTINGS_20><EQ></EQ></R1EQSETTINGS_20>"

	require.NoError(t, store.PutPreset(ctx, key, xml))

	got, err := store.GetPreset(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, xml, got)

	url, err := store.GenerateDownloadURL(ctx, key)
	require.NoError(t, err)

	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, xml, string(body))

	require.NoError(t, store.DeletePreset(ctx, key))
	_, err = store.GetPreset(ctx, key)
	assert.Error(t, err)
}
