// Package storage keeps uploaded documents on local disk and serves them by
// URL. The Store interface keeps the rest of the service ignorant of where
// bytes actually live.
package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

//go:generate mockgen -source=storage.go -destination=mock/storage_mock.go -package=mock
type Store interface {
	// Save writes the object and returns the public URL it is served from.
	Save(ctx context.Context, objectPath string, r io.Reader) (string, error)
	DeletePrefix(ctx context.Context, prefix string) error
}

type diskStore struct {
	root    string
	baseURL string
	logger  *zap.Logger
}

func NewDiskStore(root, baseURL string, logger ...*zap.Logger) (Store, error) {
	l := zap.L().Named("storage.disk")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("storage.disk")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create storage root: %w", err)
	}
	return &diskStore{root: root, baseURL: strings.TrimRight(baseURL, "/"), logger: l}, nil
}

// cleanPath rejects anything that would escape the storage root.
func (s *diskStore) cleanPath(objectPath string) (string, error) {
	cleaned := path.Clean("/" + objectPath)
	if cleaned == "/" {
		return "", fmt.Errorf("empty object path")
	}
	return filepath.Join(s.root, filepath.FromSlash(cleaned)), nil
}

func (s *diskStore) Save(ctx context.Context, objectPath string, r io.Reader) (string, error) {
	target, err := s.cleanPath(objectPath)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return "", err
	}

	f, err := os.Create(target)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(target)
		return "", err
	}

	url := s.baseURL + "/" + strings.TrimLeft(path.Clean("/"+objectPath), "/")
	s.logger.Debug("object stored", zap.String("path", objectPath), zap.String("url", url))
	return url, nil
}

func (s *diskStore) DeletePrefix(ctx context.Context, prefix string) error {
	target, err := s.cleanPath(prefix)
	if err != nil {
		return err
	}
	if err := os.RemoveAll(target); err != nil {
		return err
	}
	s.logger.Info("objects removed", zap.String("prefix", prefix))
	return nil
}
