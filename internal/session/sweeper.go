package session

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/despacholegal-ai/intake-platform/internal/events"
	"github.com/despacholegal-ai/intake-platform/internal/model"
	"github.com/despacholegal-ai/intake-platform/pkg/logger"
	"github.com/despacholegal-ai/intake-platform/pkg/metrics"
)

const (
	idleWarning     = "⚠️ No hay actividad. El chat se cerrará automáticamente en 10 segundos si no respondes."
	idleCloseNotice = "El chat se ha cerrado por inactividad."
)

// PushChannel delivers server-initiated messages to a connected user. The
// websocket hub implements it; a user without an open socket simply misses
// the notice.
type PushChannel interface {
	Notify(userID, message string)
	Close(userID, message string)
}

// Sweeper closes conversations that have gone quiet. Users get one warning
// before the session is torn down.
type Sweeper struct {
	registry   *Registry
	push       PushChannel
	events     *events.Publisher
	logger     *logger.Logger
	warnAfter  time.Duration
	closeAfter time.Duration
	interval   time.Duration
}

func NewSweeper(registry *Registry, push PushChannel, publisher *events.Publisher, log *logger.Logger, warnAfter, closeAfter, interval time.Duration) *Sweeper {
	return &Sweeper{
		registry:   registry,
		push:       push,
		events:     publisher,
		logger:     log,
		warnAfter:  warnAfter,
		closeAfter: closeAfter,
		interval:   interval,
	}
}

// Run sweeps on a fixed interval until the context is cancelled.
func (s *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			s.Sweep(ctx, now)
		}
	}
}

// Sweep walks every session once. Expired sessions are removed and the user
// notified; sessions past the warning threshold get a single warning.
func (s *Sweeper) Sweep(ctx context.Context, now time.Time) {
	s.registry.mu.RLock()
	ids := make([]string, 0, len(s.registry.entries))
	refs := make([]*entry, 0, len(s.registry.entries))
	for id, e := range s.registry.entries {
		ids = append(ids, id)
		refs = append(refs, e)
	}
	s.registry.mu.RUnlock()

	for i, e := range refs {
		userID := ids[i]
		e.mu.Lock()
		idle := now.Sub(e.lastActivity)
		expired := idle >= s.closeAfter
		warn := !expired && idle >= s.warnAfter && !e.warned
		if warn {
			e.warned = true
		}
		e.mu.Unlock()

		switch {
		case expired:
			s.expire(ctx, userID)
		case warn:
			s.logger.WithUser(userID).Debug("idle warning sent")
			s.push.Notify(userID, idleWarning)
		}
	}
}

// expire tears a session down. End is idempotent, so a user who raced a
// message in between the scan and here loses nothing but this sweep's
// verdict applies.
func (s *Sweeper) expire(ctx context.Context, userID string) {
	if !s.registry.End(userID) {
		return
	}
	metrics.SessionsExpiredTotal.Inc()
	s.logger.WithUser(userID).Info("session expired", zap.Duration("close_after", s.closeAfter))
	s.push.Close(userID, idleCloseNotice)
	s.events.Publish(ctx, userID, model.EventSessionExpired, "idle timeout")
}
