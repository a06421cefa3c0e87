package filestorages

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"

	"github.com/bmatcuk/doublestar/v4"
)

var (
	ErrFileNotFound      = errors.New("file not found")
	ErrFileAlreadyExists = errors.New("file already exists")
	ErrInvalidKey        = errors.New("invalid file key")
	ErrInvalidRootDir    = errors.New("invalid root directory")
	ErrInvalidPattern    = errors.New("invalid glob pattern")
)

// tempPattern never matches an outlog glob such as *.log, so a listing taken mid-write
// does not pick up half written files.
const tempPattern = ".outlog-*.tmp"

type PutResult struct {
	FileKey string
	Bytes   int64
}

type PutOptions struct {
	// AllowOverwrite replaces an existing file (compacted logs). Without it a key is written
	// once and a second Put fails with ErrFileAlreadyExists (run reports).
	AllowOverwrite bool
}

// FileStorage stores files under one root directory, addressed by slash or OS separated keys
// relative to it. Every Put goes through a temp file in the target directory, so a key is
// either absent or complete.
//
//go:generate mockgen -source=file_storage.go -destination=./mocks/file_storage_mock.go -package=mocks
type FileStorage interface {
	Put(ctx context.Context, key string, r io.Reader, opts PutOptions) (*PutResult, error)
	Get(ctx context.Context, key string) (io.ReadCloser, error)
	// List returns the keys of regular files matching a doublestar glob, sorted lexically.
	List(ctx context.Context, pattern string) ([]string, error)
	// Root returns the absolute directory all keys are relative to.
	Root() string
}

type fileStorage struct {
	dir string
}

func NewFileStorage(rootDir string) (FileStorage, error) {
	if rootDir == "" {
		return nil, fmt.Errorf("%w: root directory cannot be empty", ErrInvalidRootDir)
	}
	abs, err := filepath.Abs(rootDir)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRootDir, err)
	}
	return &fileStorage{dir: abs}, nil
}

func (s *fileStorage) Root() string {
	return s.dir
}

func (s *fileStorage) Put(ctx context.Context, key string, r io.Reader, opts PutOptions) (*PutResult, error) {
	path, err := s.path(key)
	if err != nil {
		return nil, err
	}

	publish := publishExclusive
	if opts.AllowOverwrite {
		publish = os.Rename
	}
	n, err := writeAtomic(ctx, path, r, publish)
	if err != nil {
		return nil, err
	}
	return &PutResult{FileKey: key, Bytes: n}, nil
}

func (s *fileStorage) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	path, err := s.path(key)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, key)
	}
	return f, err
}

func (s *fileStorage) List(ctx context.Context, pattern string) ([]string, error) {
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPattern, pattern)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// a missing root simply has no outlogs yet
	if _, err := os.Stat(s.dir); errors.Is(err, os.ErrNotExist) {
		return []string{}, nil
	}

	matches, err := doublestar.Glob(os.DirFS(s.dir), filepath.ToSlash(pattern), doublestar.WithFilesOnly())
	if err != nil {
		return nil, err
	}
	keys := make([]string, len(matches))
	for i, m := range matches {
		keys[i] = filepath.FromSlash(m)
	}
	slices.Sort(keys)
	return keys, nil
}

// path resolves key below the root. Keys must stay inside it: no absolute paths, no "..".
func (s *fileStorage) path(key string) (string, error) {
	if !filepath.IsLocal(key) {
		return "", fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	clean := filepath.Clean(key)
	if clean == "." {
		return "", fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return filepath.Join(s.dir, clean), nil
}

// publishExclusive links tmp to final only if final does not exist yet.
func publishExclusive(tmp, final string) error {
	if err := os.Link(tmp, final); err != nil {
		if errors.Is(err, os.ErrExist) {
			return ErrFileAlreadyExists
		}
		return err
	}
	return nil
}

// writeAtomic copies r into a temp file next to path and hands both names to publish.
// The temp file is always removed; after a link publish the final name keeps the inode.
func writeAtomic(ctx context.Context, path string, r io.Reader, publish func(tmp, final string) error) (int64, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, err
	}

	tmp, err := os.CreateTemp(dir, tempPattern)
	if err != nil {
		return 0, err
	}
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
	}()

	n, err := io.Copy(tmp, ctxReader{ctx: ctx, r: r})
	if err != nil {
		return n, err
	}
	if err := tmp.Sync(); err != nil {
		return n, err
	}
	if err := tmp.Close(); err != nil {
		return n, err
	}
	return n, publish(tmp.Name(), path)
}

// ctxReader stops a long copy once ctx is done.
type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (cr ctxReader) Read(p []byte) (int, error) {
	if err := cr.ctx.Err(); err != nil {
		return 0, err
	}
	return cr.r.Read(p)
}
