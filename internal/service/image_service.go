package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"github.com/vsconnect/vsconnect-backend/internal/domain"
	"github.com/vsconnect/vsconnect-backend/internal/repository/storage"
)

const (
	MaxImageSize  = 5 * 1024 * 1024 // 5MB
	MaxImageWidth = 800
	JPEGQuality   = 85
)

var (
	ErrImageTooLarge    = errors.New("file too large. Maximum size is 5MB")
	ErrInvalidFormat    = errors.New("invalid format. Supported: JPEG, PNG")
	ErrInvalidImageData = errors.New("invalid image data")
)

// AllowedExtensions maps extensions to content types
var AllowedExtensions = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
}

// ImageService validates, normalizes and stores profile images
type ImageService struct {
	storage storage.ImageRepository
}

// NewImageService creates a new ImageService
func NewImageService(storage storage.ImageRepository) *ImageService {
	return &ImageService{storage: storage}
}

// IsEnabled indicates whether uploads are supported (storage configured).
func (s *ImageService) IsEnabled() bool {
	return s != nil && s.storage != nil
}

// Upload validates raw image bytes, normalizes them to JPEG and stores a
// single object, returning its URL. Implements domain.ImageUploader.
func (s *ImageService) Upload(ctx context.Context, data []byte, filename string) (string, error) {
	if !s.IsEnabled() {
		return "", domain.ErrImageStorageNotConfigured
	}

	img, err := s.validateAndDecode(data, filename)
	if err != nil {
		return "", err
	}

	// Resize maintaining aspect ratio; smaller images pass through untouched
	if img.Bounds().Dx() > MaxImageWidth {
		img = imaging.Resize(img, MaxImageWidth, 0, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: JPEGQuality}); err != nil {
		return "", fmt.Errorf("failed to encode image: %w", err)
	}

	objectPath := fmt.Sprintf("users/%s.jpg", uuid.New().String())

	url, err := s.storage.Upload(ctx, objectPath, bytes.NewReader(buf.Bytes()), "image/jpeg", int64(buf.Len()))
	if err != nil {
		return "", fmt.Errorf("%w: %s", domain.ErrUploadFailed, err)
	}

	return url, nil
}

// validateAndDecode validates the image and returns the decoded image
func (s *ImageService) validateAndDecode(data []byte, filename string) (image.Image, error) {
	if len(data) > MaxImageSize {
		return nil, ErrImageTooLarge
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if _, ok := AllowedExtensions[ext]; !ok {
		return nil, ErrInvalidFormat
	}

	// Decode to verify the bytes really are an image
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, ErrInvalidImageData
	}

	return img, nil
}

// GetContentType returns the content type for a file extension
func GetContentType(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if ct, ok := AllowedExtensions[ext]; ok {
		return ct
	}
	return "application/octet-stream"
}
