package loader

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"slices"
	"sync"
	"time"
)

// Injector puts a script into the host environment.
//
// Inject blocks until the environment reports that the script loaded or
// failed. Remove undoes a failed Inject so a later attempt starts clean.
type Injector interface {
	Inject(ctx context.Context, s Script) error
	Remove(s Script)
}

// InjectorFunc adapts a function to Injector. Remove is a no-op.
type InjectorFunc func(ctx context.Context, s Script) error

func (f InjectorFunc) Inject(ctx context.Context, s Script) error { return f(ctx, s) }
func (f InjectorFunc) Remove(Script)                              {}

// Evaluator receives the body of a fetched script. It is how an embedder runs
// the script, whatever that means in its environment. Returning an error
// fails the load.
type Evaluator func(ctx context.Context, s Script, body []byte) error

const defaultMaxScriptSize = 8 << 20

// HTTPInjector fetches scripts over HTTP. Every script is recorded as attached
// from the moment Inject starts until Remove is called, mirroring a script
// element appended to the document head.
type HTTPInjector struct {
	client  *http.Client
	eval    Evaluator
	maxSize int64

	mu       sync.Mutex
	attached []Script
}

// HTTPOption configures an HTTPInjector.
type HTTPOption func(*HTTPInjector)

// WithHTTPClient sets the client used to fetch scripts.
func WithHTTPClient(c *http.Client) HTTPOption {
	return func(h *HTTPInjector) {
		if c != nil {
			h.client = c
		}
	}
}

// WithEvaluator sets the hook that runs fetched script bodies.
func WithEvaluator(e Evaluator) HTTPOption {
	return func(h *HTTPInjector) { h.eval = e }
}

// WithMaxScriptSize limits how many bytes of a script are accepted.
func WithMaxScriptSize(n int64) HTTPOption {
	return func(h *HTTPInjector) {
		if n > 0 {
			h.maxSize = n
		}
	}
}

// NewHTTPInjector returns an injector using a client with a 30s timeout
// unless WithHTTPClient says otherwise.
func NewHTTPInjector(opts ...HTTPOption) *HTTPInjector {
	h := &HTTPInjector{
		client:  &http.Client{Timeout: 30 * time.Second},
		maxSize: defaultMaxScriptSize,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *HTTPInjector) Inject(ctx context.Context, s Script) error {
	if s.URL == "" {
		return ErrEmptyURL
	}

	h.mu.Lock()
	h.attached = append(h.attached, s)
	h.mu.Unlock()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return fmt.Errorf("build request for %s: %w", s.URL, err)
	}
	req.Header.Set("Accept", "application/javascript, text/javascript, */*;q=0.1")

	resp, err := h.client.Do(req)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", s.URL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: %s returned %d", ErrUnexpectedStatus, s.URL, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, h.maxSize+1))
	if err != nil {
		return fmt.Errorf("read %s: %w", s.URL, err)
	}
	if int64(len(body)) > h.maxSize {
		return fmt.Errorf("%w: %s", ErrScriptTooLarge, s.URL)
	}

	if h.eval != nil {
		return h.eval(ctx, s, body)
	}
	return nil
}

func (h *HTTPInjector) Remove(s Script) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if i := slices.Index(h.attached, s); i >= 0 {
		h.attached = slices.Delete(h.attached, i, i+1)
	}
}

// Attached returns the scripts currently attached.
func (h *HTTPInjector) Attached() []Script {
	h.mu.Lock()
	defer h.mu.Unlock()
	return slices.Clone(h.attached)
}
