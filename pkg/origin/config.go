package origin

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrymomot/userflow-bootstrap/pkg/bundle"
	"github.com/dmitrymomot/userflow-bootstrap/pkg/loader"
)

// Config is the environment configuration of the origin service.
type Config struct {
	// URLPrefix is where selected bundle URLs point, usually this service's
	// public address or a CDN in front of it.
	URLPrefix string        `env:"ORIGIN_URL_PREFIX" envDefault:"https://js.userflow.com/"`
	CacheSize int           `env:"ORIGIN_UA_CACHE_SIZE" envDefault:"4096"`
	MaxAge    time.Duration `env:"ORIGIN_MAX_AGE" envDefault:"5m"`
	// BundleDir serves bundles from disk. It wins over S3 when both are set.
	BundleDir string          `env:"ORIGIN_BUNDLE_DIR"`
	S3        bundle.S3Config `envPrefix:"ORIGIN_S3_"`

	Overrides loader.Overrides
}

// Validate checks the parts of cfg that have no usable default.
func (c Config) Validate() error {
	if c.CacheSize < 0 {
		return fmt.Errorf("%w: negative cache size", ErrInvalidConfig)
	}
	if c.MaxAge < 0 {
		return fmt.Errorf("%w: negative max age", ErrInvalidConfig)
	}
	return c.Overrides.Validate()
}

// OpenStore builds the store cfg describes. It returns nil and no error when
// neither a directory nor a bucket is configured.
func (c Config) OpenStore(ctx context.Context) (bundle.Store, error) {
	switch {
	case c.BundleDir != "":
		s, err := bundle.NewLocalStore(c.BundleDir)
		if err != nil {
			return nil, err
		}
		return s, nil
	case c.S3.Bucket != "":
		s, err := bundle.NewS3Store(ctx, c.S3)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, nil
	}
}
