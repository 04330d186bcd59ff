package photo_test

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hoteldesk/hotel-booking-backend/internal/photo"
	"github.com/hoteldesk/hotel-booking-backend/internal/pkg/storage"
	"github.com/hoteldesk/hotel-booking-backend/internal/room"
)

func newPhotoService(t *testing.T) (photo.Service, room.Service) {
	t.Helper()
	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	roomService := room.NewService(room.NewMemoryRepository())
	svc := photo.NewService(photo.NewMemoryRepository(), roomService, store)
	return svc, roomService
}

func createRoom(t *testing.T, roomService room.Service) *room.Room {
	t.Helper()
	rm, err := roomService.Create(context.Background(), room.CreateRequest{
		RoomType:   "Double",
		RoomNumber: "201",
		PriceCents: 150_00,
	})
	require.NoError(t, err)
	return rm
}

// makeFileHeader builds a *multipart.FileHeader the way gin hands it to the
// service, by round-tripping a multipart form through an HTTP request.
func makeFileHeader(t *testing.T, filename, contentType string, content []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, filename))
	h.Set("Content-Type", contentType)
	part, err := w.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(32<<20))

	_, header, err := req.FormFile("file")
	require.NoError(t, err)
	return header
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 640, 480))
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestUploadPhoto(t *testing.T) {
	ctx := context.Background()
	svc, roomService := newPhotoService(t)
	rm := createRoom(t, roomService)

	t.Run("valid image gets a thumbnail", func(t *testing.T) {
		header := makeFileHeader(t, "lobby.png", "image/png", pngBytes(t))

		p, err := svc.Upload(ctx, header, rm.ID)
		require.NoError(t, err)
		assert.NotEmpty(t, p.ID)
		assert.Equal(t, rm.ID, p.RoomID)
		assert.Equal(t, "lobby.png", p.Filename)
		assert.NotNil(t, p.ThumbnailPath)

		stream, got, err := svc.Download(ctx, p.ID)
		require.NoError(t, err)
		defer stream.Close()
		data, err := io.ReadAll(stream)
		require.NoError(t, err)
		assert.Equal(t, got.Size, int64(len(data)))
	})

	t.Run("non-image content type", func(t *testing.T) {
		header := makeFileHeader(t, "notes.txt", "text/plain", []byte("hello"))
		_, err := svc.Upload(ctx, header, rm.ID)
		assert.ErrorIs(t, err, photo.ErrNotAnImage)
	})

	t.Run("unknown room", func(t *testing.T) {
		header := makeFileHeader(t, "lobby.png", "image/png", pngBytes(t))
		_, err := svc.Upload(ctx, header, "44444444-4444-4444-4444-444444444444")
		assert.ErrorIs(t, err, photo.ErrRoomNotFound)
	})

	t.Run("undecodable image still uploads without thumbnail", func(t *testing.T) {
		header := makeFileHeader(t, "broken.png", "image/png", []byte("not a real png"))
		p, err := svc.Upload(ctx, header, rm.ID)
		require.NoError(t, err)
		assert.Nil(t, p.ThumbnailPath)
	})
}

func TestListAndDeletePhotos(t *testing.T) {
	ctx := context.Background()
	svc, roomService := newPhotoService(t)
	rm := createRoom(t, roomService)

	header := makeFileHeader(t, "lobby.png", "image/png", pngBytes(t))
	p, err := svc.Upload(ctx, header, rm.ID)
	require.NoError(t, err)

	photos, err := svc.ListByRoom(ctx, rm.ID)
	require.NoError(t, err)
	require.Len(t, photos, 1)
	assert.Equal(t, p.ID, photos[0].ID)

	require.NoError(t, svc.Delete(ctx, p.ID))

	photos, err = svc.ListByRoom(ctx, rm.ID)
	require.NoError(t, err)
	assert.Empty(t, photos)

	_, _, err = svc.Download(ctx, p.ID)
	assert.ErrorIs(t, err, photo.ErrNotFound)
}
