package loader

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/dmitrymomot/userflow-bootstrap/pkg/async"
	"github.com/dmitrymomot/userflow-bootstrap/pkg/logger"
	"github.com/dmitrymomot/userflow-bootstrap/pkg/target"
)

// Loader injects the deferred script at most once.
//
// Load may be called any number of times from any goroutine. Calls made while
// a load is in flight, or after it completed, get the same future back. A
// failed load resets the loader so the next call starts a fresh attempt.
type Loader struct {
	injector   Injector
	userAgent  string
	overrides  Overrides
	classifier target.Detector
	prefix     string
	log        *slog.Logger
	metrics    *Metrics

	mu      sync.Mutex
	state   State
	current *async.Future[struct{}]
	script  Script
}

// Option configures a Loader.
type Option func(*Loader)

// WithUserAgent sets the user agent used for detection.
func WithUserAgent(ua string) Option {
	return func(l *Loader) { l.userAgent = ua }
}

// WithOverrides sets the forced target and URLs.
func WithOverrides(o Overrides) Option {
	return func(l *Loader) { l.overrides = o }
}

// WithClassifier replaces the built-in classifier.
func WithClassifier(c target.Detector) Option {
	return func(l *Loader) {
		if c != nil {
			l.classifier = c
		}
	}
}

// WithURLPrefix sets where default bundle URLs are built from.
func WithURLPrefix(prefix string) Option {
	return func(l *Loader) { l.prefix = prefix }
}

// WithLogger sets the logger used for load diagnostics.
func WithLogger(log *slog.Logger) Option {
	return func(l *Loader) {
		if log != nil {
			l.log = log
		}
	}
}

// WithMetrics records attempts and failures in m.
func WithMetrics(m *Metrics) Option {
	return func(l *Loader) { l.metrics = m }
}

// New returns a loader that injects scripts with inj.
// It panics if inj is nil.
func New(inj Injector, opts ...Option) *Loader {
	if inj == nil {
		panic("loader: nil injector")
	}
	l := &Loader{
		injector:   inj,
		classifier: target.Default(),
		prefix:     DefaultURLPrefix,
		log:        logger.Discard(),
		state:      NotStarted,
	}
	for _, opt := range opts {
		opt(l)
	}
	l.log = l.log.With(logger.Component("loader"))
	return l
}

// Load starts the script injection unless one is in flight or already done,
// and returns the future of that single injection. Load never blocks.
func (l *Loader) Load() *async.Future[struct{}] {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.state != NotStarted {
		return l.current
	}

	script := Select(l.userAgent, l.overrides, l.classifier, l.prefix)
	if err := l.setState(InFlight); err != nil {
		return async.Rejected[struct{}](err)
	}
	l.script = script
	l.metrics.started(script)
	l.log.Debug("injecting script",
		logger.Tier(script.Tier),
		logger.URL(script.URL),
		slog.Bool("forced", script.Forced),
	)

	// Loads cannot be canceled; the injector's own error is the only way out.
	l.current = async.Async(context.Background(), script, l.inject)
	return l.current
}

func (l *Loader) inject(ctx context.Context, script Script) (struct{}, error) {
	start := time.Now()
	err := l.injector.Inject(ctx, script)
	elapsed := time.Since(start)
	l.metrics.finished(script, elapsed.Seconds(), err)

	if err != nil {
		l.injector.Remove(script)

		l.mu.Lock()
		stateErr := l.setState(NotStarted)
		l.current = nil
		l.mu.Unlock()

		l.log.Warn(ErrLoadFailed.Error(),
			logger.Tier(script.Tier),
			logger.URL(script.URL),
			logger.Duration(elapsed),
			logger.Error(err),
		)
		return struct{}{}, errors.Join(ErrLoadFailed, err, stateErr)
	}

	l.mu.Lock()
	stateErr := l.setState(Completed)
	l.mu.Unlock()
	if stateErr != nil {
		return struct{}{}, stateErr
	}

	l.log.Debug("script loaded", logger.Tier(script.Tier), logger.URL(script.URL), logger.Duration(elapsed))
	return struct{}{}, nil
}

// setState must be called with l.mu held.
func (l *Loader) setState(to State) error {
	if err := checkTransition(l.state, to); err != nil {
		l.log.Error("rejected load state change", logger.Error(err))
		return err
	}
	l.state = to
	return nil
}

// State returns the current load state.
func (l *Loader) State() State {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

// Script returns the variant chosen by the most recent attempt, and false if
// Load was never called.
func (l *Loader) Script() (Script, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.script, l.script.URL != ""
}
