package storage

import (
	"fmt"
	"log"

	"github.com/profilehub/profile-hub/config"
)

// NewProvider creates the storage provider selected by configuration.
func NewProvider(cfg *config.Config) (Provider, error) {
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = "local"
	}

	var provider Provider
	var err error

	switch storageType {
	case "local":
		provider, err = NewLocalStorage(cfg.StorageLocalPath)
	case "minio":
		provider, err = NewMinioStorage(cfg)
	case "webdav":
		provider, err = NewWebDAVStorage(cfg)
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", storageType)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to initialize '%s' storage provider: %w", storageType, err)
	}

	log.Printf("Initialized '%s' storage provider", provider.Name())
	return provider, nil
}
