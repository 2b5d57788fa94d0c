package origin_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/userflow-bootstrap/pkg/bundle"
	"github.com/dmitrymomot/userflow-bootstrap/pkg/loader"
	"github.com/dmitrymomot/userflow-bootstrap/pkg/origin"
	"github.com/dmitrymomot/userflow-bootstrap/pkg/target"
)

const (
	firefoxUA = "Mozilla/5.0 (X11; Linux x86_64; rv:125.0) Gecko/20100101 Firefox/125.0"
	oldEdgeUA = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/79.0.3945.74 Safari/537.36 Edg/79.0.309.43"
)

func newBundleDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	for _, tier := range []string{"es2020", "legacy"} {
		require.NoError(t, os.MkdirAll(filepath.Join(dir, tier), 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(dir, tier, "userflow.js"), []byte("// "+tier), 0o644))
	}
	return dir
}

func get(t *testing.T, h http.Handler, path, ua string, hdr ...string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if ua != "" {
		req.Header.Set("User-Agent", ua)
	}
	for i := 0; i+1 < len(hdr); i += 2 {
		req.Header.Set(hdr[i], hdr[i+1])
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestTarget(t *testing.T) {
	t.Parallel()

	h := origin.New(origin.WithURLPrefix("https://cdn.example.com/")).Routes()

	tests := []struct {
		name     string
		path     string
		ua       string
		expected origin.Decision
	}{
		{
			name: "modern firefox",
			path: "/target",
			ua:   firefoxUA,
			expected: origin.Decision{
				Target: target.ES2020, URL: "https://cdn.example.com/es2020/userflow.js",
				Module: true, Rule: "firefox", Version: "125",
			},
		},
		{
			name: "old edge decided by the edge rule",
			path: "/target",
			ua:   oldEdgeUA,
			expected: origin.Decision{
				Target: target.Legacy, URL: "https://cdn.example.com/legacy/userflow.js",
				Rule: "edge", Version: "79",
			},
		},
		{
			name: "query parameter wins over header",
			path: "/target?ua=" + url.QueryEscape(firefoxUA),
			ua:   "curl/8.0",
			expected: origin.Decision{
				Target: target.ES2020, URL: "https://cdn.example.com/es2020/userflow.js",
				Module: true, Rule: "firefox", Version: "125",
			},
		},
		{
			name: "unknown agent",
			path: "/target",
			ua:   "curl/8.0",
			expected: origin.Decision{
				Target: target.Legacy, URL: "https://cdn.example.com/legacy/userflow.js",
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			rec := get(t, h, tc.path, tc.ua)
			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, "User-Agent", rec.Header().Get("Vary"))
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

			var got origin.Decision
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestBootstrapRedirect(t *testing.T) {
	t.Parallel()

	h := origin.New(
		origin.WithOverrides(loader.Overrides{LegacyURL: "https://legacy.example.com/u.js"}),
		origin.WithMaxAge(time.Minute),
	).Routes()

	rec := get(t, h, "/bootstrap.js", firefoxUA)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "https://js.userflow.com/es2020/userflow.js", rec.Header().Get("Location"))
	assert.Equal(t, "User-Agent", rec.Header().Get("Vary"))
	assert.Equal(t, "private, max-age=60", rec.Header().Get("Cache-Control"))

	rec = get(t, h, "/bootstrap.js", "Mozilla/4.0 (compatible; MSIE 8.0)")
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "https://legacy.example.com/u.js", rec.Header().Get("Location"))
}

func TestBundleFiles(t *testing.T) {
	t.Parallel()

	store, err := bundle.NewLocalStore(newBundleDir(t))
	require.NoError(t, err)
	reg := prometheus.NewRegistry()
	h := origin.New(origin.WithStore(store), origin.WithRegistry(reg)).Routes()

	rec := get(t, h, "/legacy/userflow.js", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "// legacy", rec.Body.String())
	assert.Contains(t, rec.Header().Get("Content-Type"), "javascript")
	assert.Equal(t, "public, max-age=300", rec.Header().Get("Cache-Control"))

	etag := rec.Header().Get("ETag")
	require.NotEmpty(t, etag)
	rec = get(t, h, "/legacy/userflow.js", "", "If-None-Match", etag)
	assert.Equal(t, http.StatusNotModified, rec.Code)

	assert.Equal(t, http.StatusNotFound, get(t, h, "/legacy/missing.js", "").Code)
	assert.Equal(t, http.StatusNotFound, get(t, h, "/es5/userflow.js", "").Code)

	assert.Equal(t, 2.0, sumCounter(t, reg, "userflow_bootstrap_bundle_requests_total", "code", "4xx"))
	assert.Equal(t, 1.0, sumCounter(t, reg, "userflow_bootstrap_bundle_requests_total", "code", "3xx"))
	assert.Equal(t, 1.0, sumCounter(t, reg, "userflow_bootstrap_bundle_requests_total", "code", "2xx"))
}

func TestBundleFiles_UnknownTierLabel(t *testing.T) {
	t.Parallel()

	store, err := bundle.NewLocalStore(newBundleDir(t))
	require.NoError(t, err)
	reg := prometheus.NewRegistry()
	h := origin.New(origin.WithStore(store), origin.WithRegistry(reg)).Routes()

	for i := range 50 {
		assert.Equal(t, http.StatusNotFound, get(t, h, fmt.Sprintf("/junk%d/x.js", i), "").Code)
	}
	require.Equal(t, http.StatusOK, get(t, h, "/ES2020/userflow.js", "").Code)

	series, err := testutil.GatherAndCount(reg, "userflow_bootstrap_bundle_requests_total")
	require.NoError(t, err)
	assert.Equal(t, 2, series, "unknown tiers share one series")
	assert.Equal(t, 50.0, sumCounter(t, reg, "userflow_bootstrap_bundle_requests_total", "target", "unknown"))
	assert.Equal(t, 1.0, sumCounter(t, reg, "userflow_bootstrap_bundle_requests_total", "target", "es2020"))
}

// sumCounter adds up every sample of the named counter whose label matches.
func sumCounter(t *testing.T, reg *prometheus.Registry, name, label, value string) float64 {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	total := 0.0
	for _, f := range families {
		if f.GetName() != name {
			continue
		}
		for _, m := range f.GetMetric() {
			for _, l := range m.GetLabel() {
				if l.GetName() == label && l.GetValue() == value {
					total += m.GetCounter().GetValue()
				}
			}
		}
	}
	return total
}

// streamStore returns bodies that cannot seek, like S3 objects.
type streamStore struct{}

func (streamStore) Open(_ context.Context, tier target.Tier, name string) (io.ReadCloser, bundle.Info, error) {
	if _, err := bundle.Key(tier, name); err != nil {
		return nil, bundle.Info{}, err
	}
	body := "// streamed " + string(tier)
	return io.NopCloser(strings.NewReader(body)), bundle.Info{
		Name: name, Size: int64(len(body)), ContentType: "text/javascript", ETag: `"v1"`,
	}, nil
}

func TestBundleFiles_Stream(t *testing.T) {
	t.Parallel()

	h := origin.New(origin.WithStore(streamStore{})).Routes()

	rec := get(t, h, "/es2020/userflow.js", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "// streamed es2020", rec.Body.String())
	assert.Equal(t, "18", rec.Header().Get("Content-Length"))
	assert.Equal(t, `"v1"`, rec.Header().Get("ETag"))

	rec = get(t, h, "/es2020/userflow.js", "", "If-None-Match", `"v1"`)
	assert.Equal(t, http.StatusNotModified, rec.Code)
}

func TestBundleFiles_NoStore(t *testing.T) {
	t.Parallel()

	rec := get(t, origin.New().Routes(), "/es2020/userflow.js", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHealthAndMetrics(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	h := origin.New(origin.WithRegistry(reg)).Routes()

	rec := get(t, h, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	get(t, h, "/target", firefoxUA)
	get(t, h, "/target", firefoxUA)
	get(t, h, "/bootstrap.js", "curl/8.0")

	rec = get(t, h, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `userflow_bootstrap_classify_total{rule="firefox",target="es2020"} 2`)
	assert.Contains(t, body, `userflow_bootstrap_classify_total{rule="none",target="legacy"} 1`)
}

func TestNewFromConfig(t *testing.T) {
	t.Parallel()

	dir := newBundleDir(t)
	cfg := origin.Config{
		URLPrefix: "https://origin.example.com/",
		CacheSize: 16,
		MaxAge:    time.Hour,
		BundleDir: dir,
		Overrides: loader.Overrides{BrowserTarget: "legacy"},
	}
	store, err := cfg.OpenStore(context.Background())
	require.NoError(t, err)
	require.NotNil(t, store)

	srv, err := origin.NewFromConfig(cfg, store)
	require.NoError(t, err)

	s := srv.Select(firefoxUA)
	assert.Equal(t, target.Legacy, s.Tier)
	assert.True(t, s.Forced)
	assert.Equal(t, "https://origin.example.com/legacy/userflow.js", s.URL)

	rec := get(t, srv.Routes(), "/es2020/userflow.js", "")
	assert.Equal(t, "// es2020", rec.Body.String())
	assert.Equal(t, "public, max-age=3600", rec.Header().Get("Cache-Control"))

	_, err = origin.NewFromConfig(origin.Config{Overrides: loader.Overrides{BrowserTarget: "es6"}}, nil)
	assert.ErrorIs(t, err, target.ErrUnknownTier)
	_, err = origin.NewFromConfig(origin.Config{CacheSize: -1}, nil)
	assert.ErrorIs(t, err, origin.ErrInvalidConfig)

	none, err := origin.Config{}.OpenStore(context.Background())
	require.NoError(t, err)
	assert.Nil(t, none)
}
