package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/profilehub/profile-hub/config"
	"github.com/studio-b12/gowebdav"
)

// WebDAVStorage stores assets on a remote WebDAV share.
type WebDAVStorage struct {
	client   *gowebdav.Client
	rootPath string
}

// NewWebDAVStorage creates a WebDAV storage provider and verifies the
// connection.
func NewWebDAVStorage(cfg *config.Config) (*WebDAVStorage, error) {
	if cfg.WebDAVURL == "" {
		return nil, fmt.Errorf("webdav URL is required")
	}

	rootPath := strings.Trim(cfg.WebDAVRootPath, "/")
	if rootPath != "" {
		rootPath = "/" + rootPath
	}

	client := gowebdav.NewClient(cfg.WebDAVURL, cfg.WebDAVUsername, cfg.WebDAVPassword)

	if err := client.Connect(); err != nil {
		return nil, fmt.Errorf("webdav connection test failed: %w", err)
	}

	if rootPath != "" {
		if err := client.MkdirAll(rootPath, 0755); err != nil {
			return nil, fmt.Errorf("failed to create webdav root path '%s': %w", rootPath, err)
		}
	}

	return &WebDAVStorage{
		client:   client,
		rootPath: rootPath,
	}, nil
}

// fullPath joins the identifier under the configured root.
func (s *WebDAVStorage) fullPath(identifier string) string {
	if s.rootPath != "" {
		return s.rootPath + "/" + identifier
	}
	return "/" + identifier
}

// SaveWithContext uploads the asset to the share.
func (s *WebDAVStorage) SaveWithContext(ctx context.Context, identifier string, file io.Reader) error {
	if !IsValidIdentifier(identifier) {
		return fmt.Errorf("invalid file identifier: %s", identifier)
	}

	if err := s.client.WriteStream(s.fullPath(identifier), file, 0644); err != nil {
		return fmt.Errorf("failed to upload '%s' to webdav: %w", identifier, err)
	}
	return nil
}

// GetWithContext opens the asset for reading.
func (s *WebDAVStorage) GetWithContext(ctx context.Context, identifier string) (io.ReadCloser, error) {
	if !IsValidIdentifier(identifier) {
		return nil, fmt.Errorf("invalid file identifier: %s", identifier)
	}

	if _, err := s.client.Stat(s.fullPath(identifier)); err != nil {
		return nil, fmt.Errorf("asset '%s': %w", identifier, ErrNotExist)
	}

	stream, err := s.client.ReadStream(s.fullPath(identifier))
	if err != nil {
		return nil, fmt.Errorf("failed to read '%s' from webdav: %w", identifier, err)
	}
	return stream, nil
}

// DeleteWithContext removes the asset.
func (s *WebDAVStorage) DeleteWithContext(ctx context.Context, identifier string) error {
	if !IsValidIdentifier(identifier) {
		return fmt.Errorf("invalid file identifier: %s", identifier)
	}

	if _, err := s.client.Stat(s.fullPath(identifier)); err != nil {
		return fmt.Errorf("asset '%s': %w", identifier, ErrNotExist)
	}

	if err := s.client.Remove(s.fullPath(identifier)); err != nil {
		return fmt.Errorf("failed to delete '%s' from webdav: %w", identifier, err)
	}
	return nil
}

// Exists reports whether the asset is present.
func (s *WebDAVStorage) Exists(ctx context.Context, identifier string) (bool, error) {
	if !IsValidIdentifier(identifier) {
		return false, fmt.Errorf("invalid file identifier: %s", identifier)
	}

	if _, err := s.client.Stat(s.fullPath(identifier)); err != nil {
		return false, nil
	}
	return true, nil
}

// Health checks that the share is reachable.
func (s *WebDAVStorage) Health(ctx context.Context) error {
	return s.client.Connect()
}

// Name returns the backend name.
func (s *WebDAVStorage) Name() string {
	return "webdav"
}
