package service

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vsconnect/vsconnect-backend/internal/domain"
)

// mockStorage captures uploaded objects in memory
type mockStorage struct {
	objects map[string][]byte
	err     error
}

func newMockStorage() *mockStorage {
	return &mockStorage{objects: make(map[string][]byte)}
}

func (m *mockStorage) Upload(ctx context.Context, objectPath string, data io.Reader, contentType string, size int64) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	buf, err := io.ReadAll(data)
	if err != nil {
		return "", err
	}
	m.objects[objectPath] = buf
	return "https://storage.test/" + objectPath, nil
}

func (m *mockStorage) Delete(ctx context.Context, objectPath string) error {
	delete(m.objects, objectPath)
	return nil
}

func pngBytes(t *testing.T, width, height int) []byte {
	t.Helper()
	var buf bytes.Buffer
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestImageService_Upload_Success(t *testing.T) {
	store := newMockStorage()
	svc := NewImageService(store)

	url, err := svc.Upload(context.Background(), pngBytes(t, 100, 100), "avatar.png")

	require.NoError(t, err)
	assert.Contains(t, url, "https://storage.test/users/")
	assert.Len(t, store.objects, 1)
}

func TestImageService_Upload_ResizesWideImages(t *testing.T) {
	store := newMockStorage()
	svc := NewImageService(store)

	_, err := svc.Upload(context.Background(), pngBytes(t, 1600, 400), "wide.png")
	require.NoError(t, err)

	for _, data := range store.objects {
		img, _, err := image.Decode(bytes.NewReader(data))
		require.NoError(t, err)
		assert.Equal(t, MaxImageWidth, img.Bounds().Dx())
		// Aspect ratio preserved
		assert.Equal(t, 200, img.Bounds().Dy())
	}
}

func TestImageService_Upload_RejectsOversizedFile(t *testing.T) {
	svc := NewImageService(newMockStorage())

	_, err := svc.Upload(context.Background(), make([]byte, MaxImageSize+1), "big.png")
	assert.ErrorIs(t, err, ErrImageTooLarge)
}

func TestImageService_Upload_RejectsUnknownExtension(t *testing.T) {
	svc := NewImageService(newMockStorage())

	_, err := svc.Upload(context.Background(), pngBytes(t, 100, 100), "avatar.gif")
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestImageService_Upload_RejectsNonImageBytes(t *testing.T) {
	svc := NewImageService(newMockStorage())

	_, err := svc.Upload(context.Background(), []byte("definitely not an image"), "avatar.png")
	assert.ErrorIs(t, err, ErrInvalidImageData)
}

func TestImageService_Upload_StorageFailure(t *testing.T) {
	store := newMockStorage()
	store.err = fmt.Errorf("connection reset")
	svc := NewImageService(store)

	_, err := svc.Upload(context.Background(), pngBytes(t, 100, 100), "avatar.png")
	assert.ErrorIs(t, err, domain.ErrUploadFailed)
}

func TestImageService_Upload_StorageNotConfigured(t *testing.T) {
	svc := NewImageService(nil)

	assert.False(t, svc.IsEnabled())

	_, err := svc.Upload(context.Background(), pngBytes(t, 100, 100), "avatar.png")
	assert.ErrorIs(t, err, domain.ErrImageStorageNotConfigured)
}

func TestGetContentType(t *testing.T) {
	assert.Equal(t, "image/jpeg", GetContentType("photo.JPG"))
	assert.Equal(t, "image/png", GetContentType("photo.png"))
	assert.Equal(t, "application/octet-stream", GetContentType("notes.txt"))
}
