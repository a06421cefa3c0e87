package stores

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"outlog/internal/models"
	"outlog/internal/shared/filestorages"
)

var (
	ErrOutlogNotFound = errors.New("outlog not found")
	ErrInvalidGlob    = errors.New("invalid glob")
)

// OutlogStore reads raw frame logs and publishes their compacted versions. Compacted output is
// written to a temp file and renamed into place, so readers never observe a half written log
// and re-running a compaction simply replaces the previous output.
//
//go:generate mockgen -source=outlog_store.go -destination=./mocks/outlog_store_mock.go -package=mocks
type OutlogStore interface {
	List(ctx context.Context, glob string) ([]string, error)
	Open(ctx context.Context, name string) (io.ReadCloser, error)
	PutCompacted(ctx context.Context, result *models.CompactionResult) error
	Root() string
}

type outlogStore struct {
	fileStorage filestorages.FileStorage
}

func NewOutlogStore(fileStorage filestorages.FileStorage) OutlogStore {
	return &outlogStore{fileStorage: fileStorage}
}

func (s *outlogStore) List(ctx context.Context, glob string) ([]string, error) {
	names, err := s.fileStorage.List(ctx, glob)
	if err != nil {
		if errors.Is(err, filestorages.ErrInvalidPattern) {
			return nil, fmt.Errorf("%w: %w", ErrInvalidGlob, err)
		}
		return nil, fmt.Errorf("failed to list outlogs: %w", err)
	}
	return names, nil
}

func (s *outlogStore) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	rc, err := s.fileStorage.Get(ctx, name)
	if err != nil {
		if errors.Is(err, filestorages.ErrFileNotFound) || errors.Is(err, filestorages.ErrInvalidKey) {
			return nil, fmt.Errorf("%w: %q", ErrOutlogNotFound, name)
		}
		return nil, fmt.Errorf("failed to open outlog %q: %w", name, err)
	}
	return rc, nil
}

func (s *outlogStore) PutCompacted(ctx context.Context, result *models.CompactionResult) error {
	var sb strings.Builder
	for _, line := range result.Lines {
		sb.WriteString(line)
		sb.WriteByte('\n')
	}

	_, err := s.fileStorage.Put(ctx, result.OutputName, strings.NewReader(sb.String()), filestorages.PutOptions{AllowOverwrite: true})
	if err != nil {
		return fmt.Errorf("failed to put compacted outlog %q: %w", result.OutputName, err)
	}
	return nil
}

func (s *outlogStore) Root() string {
	return s.fileStorage.Root()
}
