package bundle

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/dmitrymomot/userflow-bootstrap/pkg/target"
)

// LocalStore serves bundles from a directory laid out as <root>/<tier>/<name>.
type LocalStore struct {
	root string
}

// NewLocalStore returns a store rooted at dir, which must exist.
func NewLocalStore(dir string) (*LocalStore, error) {
	if dir == "" {
		return nil, ErrInvalidConfig
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	st, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if !st.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrInvalidConfig, abs)
	}
	return &LocalStore{root: abs}, nil
}

// Open implements Store.
func (s *LocalStore) Open(ctx context.Context, tier target.Tier, name string) (io.ReadCloser, Info, error) {
	if err := ctx.Err(); err != nil {
		return nil, Info{}, err
	}
	key, err := Key(tier, name)
	if err != nil {
		return nil, Info{}, err
	}

	full := filepath.Join(s.root, filepath.FromSlash(key))
	f, err := os.Open(full)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, Info{}, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	if err != nil {
		return nil, Info{}, fmt.Errorf("%w: %v", ErrFailedToOpen, err)
	}

	st, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, Info{}, fmt.Errorf("%w: %v", ErrFailedToOpen, err)
	}
	if st.IsDir() {
		_ = f.Close()
		return nil, Info{}, fmt.Errorf("%w: %s", ErrNotFound, key)
	}

	return f, Info{
		Name:        name,
		Size:        st.Size(),
		ContentType: contentType(name),
		ETag:        fmt.Sprintf(`"%x-%x"`, st.ModTime().UnixNano(), st.Size()),
		ModTime:     st.ModTime(),
	}, nil
}
