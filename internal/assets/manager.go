package assets

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/profilehub/profile-hub/storage"
	"golang.org/x/image/draw"
)

// ErrUnsupportedType is returned when the uploaded file is not an
// allowed image type.
var ErrUnsupportedType = errors.New("unsupported image type")

// allowedExtensions is the case-insensitive upload allow-list.
var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
}

// Manager validates, stores and deletes avatar assets. Stored names
// are uuid + original extension, so concurrent uploads never collide
// and identical bytes always get distinct references.
type Manager struct {
	provider    storage.Provider
	maxDim      int
	jpegQuality int
}

// NewManager creates an asset manager on top of a storage provider.
func NewManager(provider storage.Provider, maxDim, jpegQuality int) *Manager {
	if jpegQuality <= 0 || jpegQuality > 100 {
		jpegQuality = 85
	}
	return &Manager{
		provider:    provider,
		maxDim:      maxDim,
		jpegQuality: jpegQuality,
	}
}

// Store validates the upload, re-encodes it and writes it to storage,
// returning the generated reference. The extension check happens
// before anything touches the provider, so a rejected upload performs
// no write at all.
func (m *Manager) Store(ctx context.Context, file io.Reader, originalFilename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalFilename))
	if !allowedExtensions[ext] {
		return "", fmt.Errorf("file extension %q: %w", ext, ErrUnsupportedType)
	}

	img, _, err := image.Decode(file)
	if err != nil {
		return "", fmt.Errorf("failed to decode image: %w", ErrUnsupportedType)
	}

	img = m.downscale(img)

	// Re-encoding normalizes size and strips any embedded metadata.
	var buf bytes.Buffer
	switch ext {
	case ".jpg", ".jpeg":
		err = jpeg.Encode(&buf, img, &jpeg.Options{Quality: m.jpegQuality})
	case ".png":
		encoder := png.Encoder{CompressionLevel: png.BestCompression}
		err = encoder.Encode(&buf, img)
	case ".gif":
		err = gif.Encode(&buf, img, nil)
	}
	if err != nil {
		return "", fmt.Errorf("failed to encode image: %w", err)
	}

	identifier := uuid.New().String() + ext
	if err := m.provider.SaveWithContext(ctx, identifier, &buf); err != nil {
		return "", fmt.Errorf("failed to store asset: %w", err)
	}

	return identifier, nil
}

// Delete removes a stored asset. Idempotent: a missing asset or an
// empty reference is a no-op.
func (m *Manager) Delete(ctx context.Context, reference string) error {
	if reference == "" {
		return nil
	}

	if err := m.provider.DeleteWithContext(ctx, reference); err != nil {
		if errors.Is(err, storage.ErrNotExist) {
			return nil
		}
		return err
	}
	return nil
}

// Open opens a stored asset for reading.
func (m *Manager) Open(ctx context.Context, reference string) (io.ReadCloser, error) {
	return m.provider.GetWithContext(ctx, reference)
}

// PublicURL maps a stored reference to its externally servable path.
// Only the generated filename leaks, never the storage layout.
func (m *Manager) PublicURL(reference string) string {
	if reference == "" {
		return ""
	}
	return "/media/" + reference
}

// downscale shrinks the image if either dimension exceeds the
// configured maximum, preserving aspect ratio.
func (m *Manager) downscale(img image.Image) image.Image {
	if m.maxDim <= 0 {
		return img
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	if width <= m.maxDim && height <= m.maxDim {
		return img
	}

	scale := float64(m.maxDim) / float64(width)
	if height > width {
		scale = float64(m.maxDim) / float64(height)
	}

	dstWidth := int(float64(width) * scale)
	dstHeight := int(float64(height) * scale)
	if dstWidth < 1 {
		dstWidth = 1
	}
	if dstHeight < 1 {
		dstHeight = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, dstWidth, dstHeight))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	return dst
}
