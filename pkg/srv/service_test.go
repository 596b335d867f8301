package srv

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type recorder struct {
	mu    sync.Mutex
	calls []string
}

func (r *recorder) add(call string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, call)
}

func (r *recorder) get() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.calls...)
}

// blocking runs until its context ends.
type blocking struct {
	name string
	rec  *recorder
	done chan struct{}
}

func newBlocking(name string, rec *recorder) *blocking {
	return &blocking{name: name, rec: rec, done: make(chan struct{})}
}

func (b *blocking) Start(ctx context.Context) error {
	defer close(b.done)
	<-ctx.Done()
	return nil
}

func (b *blocking) Shutdown(ctx context.Context) error {
	<-b.done
	b.rec.add(b.name + ":shutdown")
	return nil
}

type oneShot struct {
	rec *recorder
	err error
}

func (o *oneShot) Start(ctx context.Context) error {
	o.rec.add("repl:start")
	return o.err
}

func (o *oneShot) Shutdown(ctx context.Context) error {
	o.rec.add("repl:shutdown")
	return nil
}

func TestRun_ForegroundExit(t *testing.T) {
	rec := &recorder{}
	bg := newBlocking("janitor", rec)
	wantErr := errors.New("stdin closed")

	err := Run(context.Background(), &oneShot{rec: rec, err: wantErr}, []Service{
		bg,
		NewCleanup(func() error { rec.add("db:close"); return nil }),
	})

	assert.ErrorIs(t, err, wantErr)
	assert.Equal(t, []string{"repl:start", "repl:shutdown", "janitor:shutdown", "db:close"}, rec.get())
}

func TestRun_ParentCancelled(t *testing.T) {
	rec := &recorder{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Run(ctx, newBlocking("repl", rec), nil)

	assert.NoError(t, err)
	assert.Equal(t, []string{"repl:shutdown"}, rec.get())
}

func TestShutdownServices_UsesLiveContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var shutdownErr error
	ShutdownServices(ctx, []Service{NewCleanup(func() error { return nil }), &ctxProbe{err: &shutdownErr}})

	assert.NoError(t, shutdownErr)
}

type ctxProbe struct {
	err *error
}

func (p *ctxProbe) Start(context.Context) error { return nil }

func (p *ctxProbe) Shutdown(ctx context.Context) error {
	*p.err = ctx.Err()
	return nil
}
