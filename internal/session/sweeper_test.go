package session

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/despacholegal-ai/intake-platform/pkg/logger"
)

type fakePush struct {
	mu      sync.Mutex
	notices map[string][]string
	closes  map[string][]string
}

func newFakePush() *fakePush {
	return &fakePush{
		notices: make(map[string][]string),
		closes:  make(map[string][]string),
	}
}

func (p *fakePush) Notify(userID, message string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.notices[userID] = append(p.notices[userID], message)
}

func (p *fakePush) Close(userID, message string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closes[userID] = append(p.closes[userID], message)
}

func newTestSweeper(r *Registry, push *fakePush) *Sweeper {
	return NewSweeper(r, push, nil, logger.NewNop(), 50*time.Second, 60*time.Second, 5*time.Second)
}

func TestSweeperWarnsOnce(t *testing.T) {
	r := NewRegistry(logger.NewNop())
	push := newFakePush()
	s := newTestSweeper(r, push)
	ctx := context.Background()

	r.Do("u1", func(*State) {})
	r.entries["u1"].lastActivity = time.Now().Add(-55 * time.Second)

	s.Sweep(ctx, time.Now())
	s.Sweep(ctx, time.Now())

	require.Len(t, push.notices["u1"], 1)
	assert.Contains(t, push.notices["u1"][0], "cerrará automáticamente")
	assert.Empty(t, push.closes["u1"])
	assert.Equal(t, 1, r.Len())
}

func TestSweeperActivityClearsWarning(t *testing.T) {
	r := NewRegistry(logger.NewNop())
	push := newFakePush()
	s := newTestSweeper(r, push)
	ctx := context.Background()

	r.Do("u1", func(*State) {})
	r.entries["u1"].lastActivity = time.Now().Add(-55 * time.Second)
	s.Sweep(ctx, time.Now())
	require.Len(t, push.notices["u1"], 1)

	// A new message rearms the warning.
	r.Do("u1", func(*State) {})
	r.entries["u1"].lastActivity = time.Now().Add(-55 * time.Second)
	s.Sweep(ctx, time.Now())
	assert.Len(t, push.notices["u1"], 2)
}

func TestSweeperExpires(t *testing.T) {
	r := NewRegistry(logger.NewNop())
	push := newFakePush()
	s := newTestSweeper(r, push)
	ctx := context.Background()

	r.Do("idle", func(*State) {})
	r.Do("active", func(*State) {})
	r.entries["idle"].lastActivity = time.Now().Add(-2 * time.Minute)

	s.Sweep(ctx, time.Now())

	require.Len(t, push.closes["idle"], 1)
	assert.Equal(t, idleCloseNotice, push.closes["idle"][0])
	assert.Equal(t, 1, r.Len())
	assert.Empty(t, push.closes["active"])

	// Expiring again is a no-op.
	s.Sweep(ctx, time.Now())
	assert.Len(t, push.closes["idle"], 1)
}

func TestSweeperRunStopsOnCancel(t *testing.T) {
	r := NewRegistry(logger.NewNop())
	s := NewSweeper(r, newFakePush(), nil, logger.NewNop(), 50*time.Millisecond, 60*time.Millisecond, 5*time.Millisecond)

	r.Do("u1", func(*State) {})
	r.entries["u1"].lastActivity = time.Now().Add(-time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool { return r.Len() == 0 }, time.Second, 10*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop")
	}
}
