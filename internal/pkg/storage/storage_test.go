package storage_test

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hoteldesk/hotel-booking-backend/internal/pkg/storage"
)

func TestLocalStorageRoundTrip(t *testing.T) {
	ctx := context.Background()
	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	const path = "photos/ab/test.jpg"
	const content = "not really a jpeg"

	require.NoError(t, store.Save(ctx, path, strings.NewReader(content)))

	reader, err := store.Get(ctx, path)
	require.NoError(t, err)
	defer reader.Close()

	data, err := io.ReadAll(reader)
	require.NoError(t, err)
	assert.Equal(t, content, string(data))

	require.NoError(t, store.Delete(ctx, path))

	_, err = store.Get(ctx, path)
	assert.Error(t, err)
}

func TestLocalStorageDeleteMissing(t *testing.T) {
	ctx := context.Background()
	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	assert.NoError(t, store.Delete(ctx, "does/not/exist.jpg"))
}

func TestGenerateThumbnail(t *testing.T) {
	proc := storage.NewImageProcessor()

	// A large solid image; the thumbnail must fit the bounding box while
	// keeping aspect ratio.
	src := image.NewRGBA(image.Rect(0, 0, 1600, 1200))
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, src))

	thumbReader, err := proc.GenerateThumbnail(&buf, 320, 240)
	require.NoError(t, err)

	thumb, format, err := image.Decode(thumbReader)
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
	assert.Equal(t, 320, thumb.Bounds().Dx())
	assert.Equal(t, 240, thumb.Bounds().Dy())
}

func TestGenerateThumbnailRejectsGarbage(t *testing.T) {
	proc := storage.NewImageProcessor()

	_, err := proc.GenerateThumbnail(strings.NewReader("definitely not an image"), 320, 240)
	assert.Error(t, err)
}
