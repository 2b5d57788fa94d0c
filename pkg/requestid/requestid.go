package requestid

import (
	"context"
	"log/slog"
	"net/http"
	"regexp"

	"github.com/google/uuid"

	"github.com/dmitrymomot/userflow-bootstrap/pkg/logger"
)

// Header is the default header a request ID is read from and echoed in.
const Header = "X-Request-ID"

const maxIDLength = 128

var validID = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

type contextKey struct{}

// WithContext returns a copy of ctx carrying id.
func WithContext(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

// FromContext returns the request ID stored in ctx, empty if none.
func FromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(contextKey{}).(string)
	return id
}

// LoggerExtractor adds the request ID of a record's context to the record.
func LoggerExtractor() logger.ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		id := FromContext(ctx)
		return logger.RequestID(id), id != ""
	}
}

// Option configures the middleware built by New.
type Option func(*options)

type options struct {
	header   string
	generate func() string
}

// WithHeader reads and writes the ID in header instead of X-Request-ID.
func WithHeader(header string) Option {
	return func(o *options) {
		if header != "" {
			o.header = header
		}
	}
}

// WithGenerator replaces the UUID generator.
func WithGenerator(gen func() string) Option {
	return func(o *options) {
		if gen != nil {
			o.generate = gen
		}
	}
}

// New returns middleware that stores a request ID in each request context
// and echoes it in the response. A client-supplied ID is reused only if it is
// at most 128 characters of letters, digits, '-' and '_'.
func New(opts ...Option) func(http.Handler) http.Handler {
	o := options{header: Header, generate: uuid.NewString}
	for _, opt := range opts {
		opt(&o)
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(o.header)
			if !valid(id) {
				id = o.generate()
			}
			w.Header().Set(o.header, id)
			next.ServeHTTP(w, r.WithContext(WithContext(r.Context(), id)))
		})
	}
}

// Middleware is New with default options.
func Middleware(next http.Handler) http.Handler {
	return New()(next)
}

func valid(id string) bool {
	return id != "" && len(id) <= maxIDLength && validID.MatchString(id)
}
