package facade

import (
	"fmt"
	"log/slog"
	"reflect"
	"slices"
	"sync"

	"github.com/dmitrymomot/userflow-bootstrap/pkg/async"
	"github.com/dmitrymomot/userflow-bootstrap/pkg/loader"
	"github.com/dmitrymomot/userflow-bootstrap/pkg/logger"
)

// Backend is the real client that takes over once the script has loaded.
//
// A future returned by Call for a replayed command is awaited on its own
// goroutine until it settles. A future that never settles keeps that
// goroutine, and the queued handle it feeds, alive for the life of the
// process.
type Backend interface {
	Fire(method string, args ...any)
	Call(method string, args ...any) *async.Future[struct{}]
	Query(method string) any
}

// Client is anything that can sit in a Slot: a stub facade or the real
// implementation.
type Client interface {
	Invoke(method string, args ...any) (any, error)
	Stubbed() bool
}

// Facade stands in for the real client until it is handed off. Calls are
// queued and trigger the script load; deferred calls return futures that
// settle when the real client runs them.
type Facade struct {
	registry *Registry
	loader   *loader.Loader
	log      *slog.Logger
	queue    Queue

	mu         sync.Mutex
	backend    Backend
	handingOff bool
	overrides  map[string]Backend
}

// Option configures a Facade.
type Option func(*Facade)

// WithLoader sets the loader triggered by queued calls. Without one the
// facade is headless: calls are queued but nothing is ever loaded.
func WithLoader(l *loader.Loader) Option {
	return func(f *Facade) { f.loader = l }
}

// WithInjector builds the loader from an injector and loader options.
func WithInjector(inj loader.Injector, opts ...loader.Option) Option {
	return func(f *Facade) {
		if inj != nil {
			f.loader = loader.New(inj, opts...)
		}
	}
}

// WithRegistry replaces the default method registry.
func WithRegistry(r *Registry) Option {
	return func(f *Facade) {
		if r != nil {
			f.registry = r
		}
	}
}

// WithLogger sets the logger for queue diagnostics.
func WithLogger(log *slog.Logger) Option {
	return func(f *Facade) {
		if log != nil {
			f.log = log
		}
	}
}

// New returns a stubbed facade.
func New(opts ...Option) *Facade {
	f := &Facade{
		registry:  DefaultRegistry(),
		log:       logger.Discard(),
		overrides: make(map[string]Backend),
	}
	for _, opt := range opts {
		opt(f)
	}
	f.log = f.log.With(logger.Component("facade"))
	return f
}

// Stubbed reports whether calls are still being queued.
func (f *Facade) Stubbed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.backend == nil
}

// Queue exposes the pending commands to the consumer.
func (f *Facade) Queue() *Queue { return &f.queue }

// Registry returns the method set of the facade.
func (f *Facade) Registry() *Registry { return f.registry }

// Load starts loading the real client, or returns the load already under
// way. A headless facade returns a future rejected with ErrHeadless.
func (f *Facade) Load() *async.Future[struct{}] {
	if f.loader == nil {
		return async.Rejected[struct{}](ErrHeadless)
	}
	return f.loader.Load()
}

// Invoke calls a method by name. The result is nil for fire-and-forget
// methods, a *async.Future[struct{}] for deferred ones, and the answer for
// sync-default ones. Arguments are recorded as passed, explicit nils included.
func (f *Facade) Invoke(method string, args ...any) (any, error) {
	m, ok := f.registry.Lookup(method)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownMethod, method)
	}
	switch m.Category {
	case FireAndForget:
		f.fireArgs(method, args)
		return nil, nil
	case Deferred:
		return f.callArgs(method, args), nil
	default:
		return f.query(m), nil
	}
}

// Override routes every call of method to b, before and after handoff.
func (f *Facade) Override(method string, b Backend) error {
	if b == nil {
		return ErrNilBackend
	}
	if _, ok := f.registry.Lookup(method); !ok {
		return fmt.Errorf("%w: %s", ErrUnknownMethod, method)
	}
	f.mu.Lock()
	f.overrides[method] = b
	f.mu.Unlock()
	return nil
}

// Handoff replays every queued command on b in order, settles each deferred
// handle from b's result and then forwards all further calls to b.
//
// Calls made while the queue is being replayed are queued and replayed after
// it, so b sees commands in the order they were made.
func (f *Facade) Handoff(b Backend) error {
	if b == nil {
		return ErrNilBackend
	}

	f.mu.Lock()
	if f.backend != nil || f.handingOff {
		f.mu.Unlock()
		return ErrAlreadyHandedOff
	}
	f.handingOff = true
	f.mu.Unlock()

	replayed := 0
	for {
		f.mu.Lock()
		cmds := f.queue.Drain()
		if len(cmds) == 0 {
			f.backend = b
			f.handingOff = false
			f.mu.Unlock()
			break
		}
		f.mu.Unlock()

		for _, cmd := range cmds {
			f.replay(b, cmd)
		}
		replayed += len(cmds)
	}

	f.log.Debug("handed off to backend", slog.Int("replayed", replayed))
	return nil
}

func (f *Facade) replay(b Backend, cmd Command) {
	f.mu.Lock()
	if o, ok := f.overrides[cmd.Method]; ok {
		b = o
	}
	f.mu.Unlock()

	if cmd.Handle == nil {
		b.Fire(cmd.Method, cmd.Args...)
		return
	}
	settleFrom(cmd.Handle, b.Call(cmd.Method, cmd.Args...))
}

// route returns where a call goes now, or nil if it must be queued.
// Must be called with f.mu held.
func (f *Facade) route(method string) Backend {
	if o, ok := f.overrides[method]; ok {
		return o
	}
	return f.backend
}

// fire and call serve the typed methods, where a nil trailing argument means
// the optional argument was left out.
func (f *Facade) fire(method string, args ...any) { f.fireArgs(method, trimOptional(args)) }

func (f *Facade) call(method string, args ...any) *async.Future[struct{}] {
	return f.callArgs(method, trimOptional(args))
}

func (f *Facade) fireArgs(method string, args []any) {
	args = snapshot(args)

	f.mu.Lock()
	if b := f.route(method); b != nil {
		f.mu.Unlock()
		b.Fire(method, args...)
		return
	}
	f.queue.Append(Command{Method: method, Args: args})
	f.mu.Unlock()

	f.queued(method)
}

func (f *Facade) callArgs(method string, args []any) *async.Future[struct{}] {
	args = snapshot(args)

	f.mu.Lock()
	if b := f.route(method); b != nil {
		f.mu.Unlock()
		if fut := b.Call(method, args...); fut != nil {
			return fut
		}
		return async.Resolved(struct{}{})
	}
	handle := async.NewDeferred[struct{}]()
	f.queue.Append(Command{Method: method, Handle: handle, Args: args})
	f.mu.Unlock()

	f.queued(method)
	return handle.Future()
}

func (f *Facade) query(m Method) any {
	f.mu.Lock()
	b := f.route(m.Name)
	f.mu.Unlock()
	if b != nil {
		return b.Query(m.Name)
	}
	return m.Default
}

func (f *Facade) queued(method string) {
	f.log.Debug("command queued", logger.Method(method), slog.Int("queued", f.queue.Len()))
	if f.loader != nil {
		f.loader.Load()
	}
}

// queryAs converts a sync-default answer to T, falling back to T's zero value.
func queryAs[T any](f *Facade, method string) T {
	m, ok := f.registry.Lookup(method)
	if !ok {
		var zero T
		return zero
	}
	v, _ := f.query(m).(T)
	return v
}

// settleFrom settles d with the outcome of src. A nil src resolves d.
func settleFrom(d *async.Deferred[struct{}], src *async.Future[struct{}]) {
	if src == nil {
		d.Resolve(struct{}{})
		return
	}
	settle := func() {
		if _, err := src.Await(); err != nil {
			d.Reject(err)
			return
		}
		d.Resolve(struct{}{})
	}
	if src.IsComplete() {
		settle()
		return
	}
	go settle()
}

// trimOptional drops trailing nil arguments so an omitted optional argument is
// recorded the same way as one never passed.
func trimOptional(args []any) []any {
	n := len(args)
	for n > 0 && isNil(args[n-1]) {
		n--
	}
	return args[:n]
}

// snapshot copies args so a queued command does not share the caller's
// backing array.
func snapshot(args []any) []any {
	if len(args) == 0 {
		return nil
	}
	return slices.Clone(args)
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Interface, reflect.Chan:
		return rv.IsNil()
	default:
		return false
	}
}
