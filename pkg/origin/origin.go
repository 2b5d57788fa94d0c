package origin

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dmitrymomot/userflow-bootstrap/pkg/bundle"
	"github.com/dmitrymomot/userflow-bootstrap/pkg/httpserver"
	"github.com/dmitrymomot/userflow-bootstrap/pkg/loader"
	"github.com/dmitrymomot/userflow-bootstrap/pkg/logger"
	"github.com/dmitrymomot/userflow-bootstrap/pkg/requestid"
	"github.com/dmitrymomot/userflow-bootstrap/pkg/target"
)

// Decision is the body of GET /target.
type Decision struct {
	Target  target.Tier `json:"target" yaml:"target"`
	URL     string      `json:"url" yaml:"url"`
	Module  bool        `json:"module" yaml:"module"`
	Forced  bool        `json:"forced" yaml:"forced"`
	Rule    string      `json:"rule,omitempty" yaml:"rule,omitempty"`
	Version string      `json:"version,omitempty" yaml:"version,omitempty"`
}

// DecisionFrom converts a selected script to its wire form.
func DecisionFrom(s loader.Script) Decision {
	return Decision{
		Target:  s.Tier,
		URL:     s.URL,
		Module:  s.Module,
		Forced:  s.Forced,
		Rule:    s.Rule,
		Version: s.Version,
	}
}

// Server answers which build a browser should load and serves the builds.
type Server struct {
	store      bundle.Store
	classifier target.Detector
	overrides  loader.Overrides
	prefix     string
	maxAge     time.Duration
	log        *slog.Logger
	registry   *prometheus.Registry
	metrics    *Metrics
}

// Option configures a Server.
type Option func(*Server)

// WithStore serves bundle files from s. Without a store /{tier}/{file}
// answers 404.
func WithStore(s bundle.Store) Option {
	return func(o *Server) { o.store = s }
}

// WithClassifier replaces the built-in classifier.
func WithClassifier(c target.Detector) Option {
	return func(o *Server) {
		if c != nil {
			o.classifier = c
		}
	}
}

// WithOverrides forces a tier or bundle URLs for every request.
func WithOverrides(ov loader.Overrides) Option {
	return func(o *Server) { o.overrides = ov }
}

// WithURLPrefix sets where selected bundle URLs point.
func WithURLPrefix(prefix string) Option {
	return func(o *Server) { o.prefix = prefix }
}

// WithMaxAge sets the Cache-Control max-age of responses.
func WithMaxAge(d time.Duration) Option {
	return func(o *Server) {
		if d >= 0 {
			o.maxAge = d
		}
	}
}

// WithLogger sets the request logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *Server) {
		if l != nil {
			o.log = l
		}
	}
}

// WithRegistry registers the origin metrics in reg and exposes reg on /metrics.
func WithRegistry(reg *prometheus.Registry) Option {
	return func(o *Server) {
		if reg != nil {
			o.registry = reg
		}
	}
}

// New returns an origin server.
func New(opts ...Option) *Server {
	s := &Server{
		classifier: target.Default(),
		prefix:     loader.DefaultURLPrefix,
		maxAge:     5 * time.Minute,
		log:        logger.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.registry == nil {
		s.registry = prometheus.NewRegistry()
	}
	s.metrics = NewMetrics(s.registry)
	s.log = s.log.With(logger.Component("origin"))
	return s
}

// NewFromConfig builds a server from cfg and a store, using a cached
// classifier when cfg.CacheSize is positive.
func NewFromConfig(cfg Config, store bundle.Store, opts ...Option) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	base := []Option{
		WithStore(store),
		WithOverrides(cfg.Overrides),
		WithURLPrefix(cfg.URLPrefix),
		WithMaxAge(cfg.MaxAge),
	}
	if cfg.CacheSize > 0 {
		base = append(base, WithClassifier(target.NewCachedClassifier(target.Default(), cfg.CacheSize)))
	}
	return New(append(base, opts...)...), nil
}

// Routes returns the HTTP handler of the service.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestid.Middleware)
	r.Use(s.logRequests)

	r.Get("/target", s.handleTarget)
	r.Get("/bootstrap.js", s.handleBootstrap)
	r.Get("/{tier}/{file}", s.handleBundle)
	r.Get("/health", httpserver.HealthHandler(s.log))
	r.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	return r
}

// Select classifies ua with the configured classifier and overrides.
func (s *Server) Select(ua string) loader.Script {
	script := loader.Select(ua, s.overrides, s.classifier, s.prefix)
	s.metrics.observeClassification(string(script.Tier), script.Rule)
	return script
}

func (s *Server) handleTarget(w http.ResponseWriter, r *http.Request) {
	ua := r.URL.Query().Get("ua")
	if ua == "" {
		ua = r.UserAgent()
	}
	d := DecisionFrom(s.Select(ua))

	w.Header().Set("Vary", "User-Agent")
	w.Header().Set("Cache-Control", s.cacheControl("private"))
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(d); err != nil {
		s.log.ErrorContext(r.Context(), "write target decision", logger.Error(err))
	}
}

func (s *Server) handleBootstrap(w http.ResponseWriter, r *http.Request) {
	script := s.Select(r.UserAgent())

	w.Header().Set("Vary", "User-Agent")
	w.Header().Set("Cache-Control", s.cacheControl("private"))
	http.Redirect(w, r, script.URL, http.StatusFound)
}

func (s *Server) handleBundle(w http.ResponseWriter, r *http.Request) {
	tier := target.Tier(chi.URLParam(r, "tier"))
	name := chi.URLParam(r, "file")

	code := s.serveBundle(w, r, tier, name)
	label := unknownTier
	if t, err := target.ParseTier(string(tier)); err == nil {
		label = string(t)
	}
	s.metrics.observeBundle(label, code)
}

func (s *Server) serveBundle(w http.ResponseWriter, r *http.Request, tier target.Tier, name string) int {
	if s.store == nil {
		http.Error(w, ErrNoStore.Error(), http.StatusNotFound)
		return http.StatusNotFound
	}

	rc, info, err := s.store.Open(r.Context(), tier, name)
	if err != nil {
		code := statusFor(err)
		if code >= http.StatusInternalServerError {
			s.log.ErrorContext(r.Context(), "open bundle",
				logger.Tier(tier), slog.String("file", name), logger.Error(err))
		}
		http.Error(w, http.StatusText(code), code)
		return code
	}
	defer rc.Close()

	h := w.Header()
	h.Set("Content-Type", info.ContentType)
	h.Set("Cache-Control", s.cacheControl("public"))
	if info.ETag != "" {
		h.Set("ETag", info.ETag)
	}

	if rs, ok := rc.(io.ReadSeeker); ok {
		rw := &statusRecorder{ResponseWriter: w, code: http.StatusOK}
		http.ServeContent(rw, r, info.Name, info.ModTime, rs)
		return rw.code
	}

	if info.ETag != "" && r.Header.Get("If-None-Match") == info.ETag {
		w.WriteHeader(http.StatusNotModified)
		return http.StatusNotModified
	}
	if info.Size > 0 {
		h.Set("Content-Length", strconv.FormatInt(info.Size, 10))
	}
	if !info.ModTime.IsZero() {
		h.Set("Last-Modified", info.ModTime.UTC().Format(http.TimeFormat))
	}
	w.WriteHeader(http.StatusOK)
	if r.Method != http.MethodHead {
		if _, err := io.Copy(w, rc); err != nil {
			s.log.WarnContext(r.Context(), "copy bundle", logger.Tier(tier), logger.Error(err))
		}
	}
	return http.StatusOK
}

func (s *Server) cacheControl(scope string) string {
	return fmt.Sprintf("%s, max-age=%d", scope, int(s.maxAge.Seconds()))
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &statusRecorder{ResponseWriter: w, code: http.StatusOK}
		next.ServeHTTP(rw, r)
		s.log.DebugContext(r.Context(), "request",
			slog.String("http_method", r.Method),
			logger.URL(r.URL.Path),
			slog.Int("status", rw.code),
			logger.UserAgent(r.UserAgent()),
			logger.Duration(time.Since(start)),
			logger.RequestID(requestid.FromContext(r.Context())),
		)
	})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, bundle.ErrInvalidPath), errors.Is(err, bundle.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, bundle.ErrAccessDenied):
		return http.StatusForbidden
	case errors.Is(err, bundle.ErrServiceUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusBadGateway
	}
}

type statusRecorder struct {
	http.ResponseWriter
	code        int
	wroteHeader bool
}

func (r *statusRecorder) WriteHeader(code int) {
	if !r.wroteHeader {
		r.code = code
		r.wroteHeader = true
	}
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Unwrap() http.ResponseWriter { return r.ResponseWriter }
