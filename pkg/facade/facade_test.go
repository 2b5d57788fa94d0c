package facade_test

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/dmitrymomot/userflow-bootstrap/pkg/async"
	"github.com/dmitrymomot/userflow-bootstrap/pkg/facade"
	"github.com/dmitrymomot/userflow-bootstrap/pkg/loader"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const chromeUA = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// countingInjector succeeds or fails every injection after release is closed.
type countingInjector struct {
	calls   atomic.Int32
	release chan struct{}
	err     error
}

func newCountingInjector(err error) *countingInjector {
	return &countingInjector{release: make(chan struct{}), err: err}
}

func (c *countingInjector) Inject(context.Context, loader.Script) error {
	c.calls.Add(1)
	<-c.release
	return c.err
}

func (c *countingInjector) Remove(loader.Script) {}

// recordingBackend answers calls with resolved futures unless told otherwise.
type recordingBackend struct {
	mu      sync.Mutex
	calls   []string
	failing map[string]error
	answers map[string]any
}

func (b *recordingBackend) record(method string, args []any) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls = append(b.calls, fmt.Sprintf("%s %v", method, args))
}

func (b *recordingBackend) Fire(method string, args ...any) { b.record(method, args) }

func (b *recordingBackend) Call(method string, args ...any) *async.Future[struct{}] {
	b.record(method, args)
	if err := b.failing[method]; err != nil {
		return async.Rejected[struct{}](err)
	}
	return async.Resolved(struct{}{})
}

func (b *recordingBackend) Query(method string) any { return b.answers[method] }

func (b *recordingBackend) Calls() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.calls...)
}

func awaitLoad(t *testing.T, f *async.Future[struct{}]) error {
	t.Helper()
	_, err := f.AwaitWithTimeout(2 * time.Second)
	require.NotErrorIs(t, err, async.ErrTimeout)
	return err
}

func TestFacade_TrackBeforeLoad(t *testing.T) {
	t.Parallel()

	inj := newCountingInjector(nil)
	f := facade.New(facade.WithInjector(inj, loader.WithUserAgent(chromeUA)))
	assert.True(t, f.Stubbed())

	done := f.Track("signup", nil, nil)
	require.NotNil(t, done)
	assert.False(t, done.IsComplete())

	cmds := f.Queue().Snapshot()
	require.Len(t, cmds, 1)
	assert.Equal(t, facade.MethodTrack, cmds[0].Method)
	assert.NotNil(t, cmds[0].Handle)
	assert.Equal(t, []any{"signup"}, cmds[0].Args)

	f.Init("ct_token")
	f.Identify("user-1", facade.Attributes{"plan": "pro"}, nil)
	f.SetShadowDomEnabled(true)

	close(inj.release)
	require.NoError(t, awaitLoad(t, f.Load()))

	assert.EqualValues(t, 1, inj.calls.Load(), "only one script injection for any number of calls")
	assert.Equal(t, 4, f.Queue().Len())
	assert.False(t, done.IsComplete(), "loading alone does not settle queued calls")
}

func TestFacade_FireAndForgetCommand(t *testing.T) {
	t.Parallel()

	f := facade.New()
	f.Init("ct_token")
	f.SetScrollPadding(&facade.ScrollPadding{Top: 10})
	f.Reset()

	cmds := f.Queue().Drain()
	require.Len(t, cmds, 3)
	assert.Equal(t, facade.Command{Method: facade.MethodInit, Args: []any{"ct_token"}}, cmds[0])
	assert.Equal(t, facade.MethodSetScrollPadding, cmds[1].Method)
	assert.Nil(t, cmds[1].Handle)
	assert.Equal(t, []any{&facade.ScrollPadding{Top: 10}}, cmds[1].Args)
	assert.Equal(t, facade.Command{Method: facade.MethodReset}, cmds[2])
	assert.Zero(t, f.Queue().Len())
}

func TestFacade_SyncDefaults(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	inj := loader.InjectorFunc(func(context.Context, loader.Script) error {
		calls.Add(1)
		return nil
	})
	f := facade.New(facade.WithInjector(inj))

	assert.False(t, f.IsIdentified())
	assert.Nil(t, f.GetResourceCenterState())

	v, err := f.Invoke(facade.MethodIsIdentified)
	require.NoError(t, err)
	assert.Equal(t, false, v)

	assert.Zero(t, f.Queue().Len())
	assert.Zero(t, calls.Load(), "sync-default calls never trigger a load")
}

func TestFacade_Headless(t *testing.T) {
	t.Parallel()

	f := facade.New()
	done := f.Identify("user-1", nil, &facade.IdentifyOptions{Signature: "sig"})
	assert.False(t, done.IsComplete())

	cmds := f.Queue().Snapshot()
	require.Len(t, cmds, 1)
	assert.Equal(t, []any{"user-1", facade.Attributes(nil), &facade.IdentifyOptions{Signature: "sig"}}, cmds[0].Args)

	_, err := f.Load().Await()
	assert.ErrorIs(t, err, facade.ErrHeadless)
}

func TestFacade_Invoke(t *testing.T) {
	t.Parallel()

	f := facade.New()

	_, err := f.Invoke("launchRocket")
	assert.ErrorIs(t, err, facade.ErrUnknownMethod)

	v, err := f.Invoke(facade.MethodOn, "flowEnded")
	require.NoError(t, err)
	assert.Nil(t, v)

	v, err = f.Invoke(facade.MethodStartFlow, "flow-1")
	require.NoError(t, err)
	fut, ok := v.(*async.Future[struct{}])
	require.True(t, ok)
	assert.False(t, fut.IsComplete())

	v, err = f.Invoke(facade.MethodGetResourceCenterState)
	require.NoError(t, err)
	assert.Nil(t, v)

	assert.Equal(t, 2, f.Queue().Len())
}

func TestFacade_LoadFailureKeepsHandlesPending(t *testing.T) {
	t.Parallel()

	inj := newCountingInjector(errors.New("blocked by extension"))
	close(inj.release)
	f := facade.New(facade.WithInjector(inj))

	done := f.EndAll()
	err := awaitLoad(t, f.Load())
	require.ErrorIs(t, err, loader.ErrLoadFailed)

	assert.False(t, done.IsComplete())
	assert.Equal(t, 1, f.Queue().Len())
}

func TestFacade_Handoff(t *testing.T) {
	t.Parallel()

	f := facade.New()
	f.Init("ct_token")
	identified := f.Identify("user-1", nil, nil)
	tracked := f.Track("signup", facade.Attributes{"step": 1}, nil)

	trackErr := errors.New("track rejected")
	b := &recordingBackend{
		failing: map[string]error{facade.MethodTrack: trackErr},
		answers: map[string]any{facade.MethodIsIdentified: true},
	}
	require.NoError(t, f.Handoff(b))

	assert.False(t, f.Stubbed())
	assert.Zero(t, f.Queue().Len())
	assert.Equal(t, []string{
		"init [ct_token]",
		"identify [user-1]",
		"track [signup map[step:1]]",
	}, b.Calls())

	_, err := identified.AwaitWithTimeout(time.Second)
	assert.NoError(t, err)
	_, err = tracked.AwaitWithTimeout(time.Second)
	assert.ErrorIs(t, err, trackErr)

	// Calls after handoff go straight to the backend.
	_, err = f.UpdateUser(facade.Attributes{"name": "Ann"}, nil).Await()
	assert.NoError(t, err)
	f.Remount()
	assert.True(t, f.IsIdentified())
	assert.Zero(t, f.Queue().Len())
	assert.Equal(t, "remount []", b.Calls()[4])

	assert.ErrorIs(t, f.Handoff(b), facade.ErrAlreadyHandedOff)
	assert.ErrorIs(t, facade.New().Handoff(nil), facade.ErrNilBackend)
}

func TestFacade_ConcurrentCallsKeepOrderPerCaller(t *testing.T) {
	t.Parallel()

	f := facade.New()
	const callers, perCaller = 8, 25

	var wg sync.WaitGroup
	futures := make(chan *async.Future[struct{}], callers*perCaller)
	for c := range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range perCaller {
				futures <- f.Track(fmt.Sprintf("c%d-%03d", c, i), nil, nil)
			}
		}()
	}

	b := &recordingBackend{}
	wg.Wait()
	require.NoError(t, f.Handoff(b))
	close(futures)

	for fut := range futures {
		_, err := fut.AwaitWithTimeout(time.Second)
		require.NoError(t, err)
	}

	calls := b.Calls()
	require.Len(t, calls, callers*perCaller)
	last := make(map[string]int)
	for _, call := range calls {
		id, ok := strings.CutPrefix(call, "track [c")
		require.True(t, ok, call)
		caller, seq, ok := strings.Cut(strings.TrimSuffix(id, "]"), "-")
		require.True(t, ok, call)
		n, err := strconv.Atoi(seq)
		require.NoError(t, err)
		if prev, seen := last[caller]; seen {
			assert.Greater(t, n, prev, "calls from one caller replay in order")
		}
		last[caller] = n
	}
	assert.Len(t, last, callers)
}

func TestFacade_Override(t *testing.T) {
	t.Parallel()

	f := facade.New()
	o := &recordingBackend{answers: map[string]any{facade.MethodGetResourceCenterState: &facade.ResourceCenterState{IsOpen: true}}}

	require.NoError(t, f.Override(facade.MethodGetResourceCenterState, o))
	require.NoError(t, f.Override(facade.MethodOpenResourceCenter, o))
	assert.ErrorIs(t, f.Override("nope", o), facade.ErrUnknownMethod)
	assert.ErrorIs(t, f.Override(facade.MethodReset, nil), facade.ErrNilBackend)

	f.OpenResourceCenter()
	assert.Equal(t, &facade.ResourceCenterState{IsOpen: true}, f.GetResourceCenterState())
	assert.Equal(t, []string{"openResourceCenter []"}, o.Calls())
	assert.Zero(t, f.Queue().Len())
	assert.True(t, f.Stubbed())
}

func TestFacade_InvokeCopiesArguments(t *testing.T) {
	t.Parallel()

	f := facade.New()
	args := []any{"signup", facade.Attributes{"step": 1}}
	_, err := f.Invoke(facade.MethodTrack, args...)
	require.NoError(t, err)
	_, err = f.Invoke(facade.MethodInit, args[:1]...)
	require.NoError(t, err)

	args[0] = "changed"
	args[1] = nil

	cmds := f.Queue().Snapshot()
	require.Len(t, cmds, 2)
	assert.Equal(t, []any{"signup", facade.Attributes{"step": 1}}, cmds[0].Args)
	assert.Equal(t, []any{"signup"}, cmds[1].Args)
}

func TestFacade_InvokeKeepsExplicitNil(t *testing.T) {
	t.Parallel()

	f := facade.New()
	_, err := f.Invoke(facade.MethodSetScrollPadding, (*facade.ScrollPadding)(nil))
	require.NoError(t, err)
	_, err = f.Invoke(facade.MethodTrack, "signup", nil)
	require.NoError(t, err)
	f.Track("signup", nil, nil)

	cmds := f.Queue().Snapshot()
	require.Len(t, cmds, 3)
	assert.Equal(t, []any{(*facade.ScrollPadding)(nil)}, cmds[0].Args)
	assert.Equal(t, []any{"signup", nil}, cmds[1].Args)
	assert.Equal(t, []any{"signup"}, cmds[2].Args, "typed methods leave out omitted optionals")
}

func TestFacade_InvokeEveryMethod(t *testing.T) {
	t.Parallel()

	for _, m := range facade.DefaultRegistry().Methods() {
		t.Run(m.Name, func(t *testing.T) {
			t.Parallel()

			var loads atomic.Int32
			inj := loader.InjectorFunc(func(context.Context, loader.Script) error {
				loads.Add(1)
				return nil
			})
			f := facade.New(facade.WithInjector(inj))

			v, err := f.Invoke(m.Name, "arg")
			require.NoError(t, err)

			switch m.Category {
			case facade.FireAndForget:
				assert.Nil(t, v)
				cmds := f.Queue().Snapshot()
				require.Len(t, cmds, 1)
				assert.Equal(t, facade.Command{Method: m.Name, Args: []any{"arg"}}, cmds[0])
			case facade.Deferred:
				fut, ok := v.(*async.Future[struct{}])
				require.True(t, ok)
				assert.False(t, fut.IsComplete())
				cmds := f.Queue().Snapshot()
				require.Len(t, cmds, 1)
				assert.Equal(t, m.Name, cmds[0].Method)
				assert.Equal(t, []any{"arg"}, cmds[0].Args)
				assert.NotNil(t, cmds[0].Handle)
			case facade.SyncDefault:
				assert.Equal(t, m.Default, v)
				assert.Zero(t, f.Queue().Len())
				assert.Zero(t, loads.Load())
				return
			}

			require.NoError(t, awaitLoad(t, f.Load()))
			assert.EqualValues(t, 1, loads.Load(), "a queued call starts the one load")
			assert.True(t, f.Stubbed())
		})
	}
}
