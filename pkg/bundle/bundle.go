package bundle

import (
	"context"
	"fmt"
	"io"
	"mime"
	"path"
	"strings"
	"time"

	"github.com/dmitrymomot/userflow-bootstrap/pkg/target"
)

// Info describes an opened bundle file.
type Info struct {
	Name        string
	Size        int64
	ContentType string
	ETag        string
	ModTime     time.Time
}

// Store reads published bundle files, one directory per tier.
type Store interface {
	// Open returns the content of name within tier. The caller closes it.
	Open(ctx context.Context, tier target.Tier, name string) (io.ReadCloser, Info, error)
}

// Key returns the store-relative path of name within tier.
// It rejects unknown tiers and names that are not a single path element.
func Key(tier target.Tier, name string) (string, error) {
	t, err := target.ParseTier(string(tier))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidPath, err)
	}
	if name == "" || name == "." || strings.Contains(name, "..") ||
		strings.ContainsAny(name, `/\`) || path.Clean(name) != name {
		return "", fmt.Errorf("%w: %q", ErrInvalidPath, name)
	}
	return string(t) + "/" + name, nil
}

func contentType(name string) string {
	if ct := mime.TypeByExtension(path.Ext(name)); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
