package session

import (
	"sync"
	"time"

	"github.com/despacholegal-ai/intake-platform/internal/model"
	"github.com/despacholegal-ai/intake-platform/pkg/logger"
	"github.com/despacholegal-ai/intake-platform/pkg/metrics"
)

const maxHistory = 10

// entry holds everything the platform knows about one user's conversation.
// Each entry carries its own mutex so slow message handling for one user
// never blocks another.
type entry struct {
	mu           sync.Mutex
	sess         *model.ConversationSession
	convCtx      *model.ConversationContext
	history      []model.ChatMessage
	lastActivity time.Time
	warned       bool
}

// State is the per-user view handed to a Do callback. The callback runs with
// the user's entry locked; nothing in State may escape the callback.
type State struct {
	e *entry
}

func (s *State) Session() *model.ConversationSession { return s.e.sess }
func (s *State) Context() *model.ConversationContext { return s.e.convCtx }
func (s *State) History() []model.ChatMessage        { return s.e.history }

// Append records a turn, keeping only the most recent exchanges.
func (s *State) Append(text string, isUser bool) {
	s.e.history = append(s.e.history, model.ChatMessage{
		Text:      text,
		IsUser:    isUser,
		Timestamp: time.Now(),
	})
	if len(s.e.history) > maxHistory {
		s.e.history = s.e.history[len(s.e.history)-maxHistory:]
	}
}

// ClearSession replaces only the appointment session, keeping the
// conversation context and history. Used once a submission completes so a
// later "quiero una cita" starts from scratch.
func (s *State) ClearSession() {
	s.e.sess = model.NewConversationSession()
}

// Reset discards the session, context and history, as if the user had just
// connected.
func (s *State) Reset() {
	s.e.sess = model.NewConversationSession()
	s.e.convCtx = model.NewConversationContext()
	s.e.history = nil
}

// LastAssistantMessage returns the most recent bot turn, if any.
func (s *State) LastAssistantMessage() (string, bool) {
	for i := len(s.e.history) - 1; i >= 0; i-- {
		if !s.e.history[i].IsUser {
			return s.e.history[i].Text, true
		}
	}
	return "", false
}

// SessionInfo is a read-only snapshot for the admin surface.
type SessionInfo struct {
	UserID       string      `json:"userId"`
	Stage        model.Stage `json:"stage"`
	Interactions int         `json:"interactions"`
	StartedAt    time.Time   `json:"startedAt"`
	LastActivity time.Time   `json:"lastActivity"`
}

// Registry tracks the conversation state of every connected user.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]*entry
	logger  *logger.Logger
}

func NewRegistry(log *logger.Logger) *Registry {
	return &Registry{
		entries: make(map[string]*entry),
		logger:  log,
	}
}

// Do runs fn with exclusive access to the user's conversation state,
// creating it on first contact. Activity bookkeeping happens on every call,
// so any message a user sends postpones the idle sweep.
func (r *Registry) Do(userID string, fn func(st *State)) {
	e := r.acquire(userID)
	e.mu.Lock()
	defer e.mu.Unlock()
	e.lastActivity = time.Now()
	e.warned = false
	fn(&State{e: e})
}

func (r *Registry) acquire(userID string) *entry {
	r.mu.RLock()
	e, ok := r.entries[userID]
	r.mu.RUnlock()
	if ok {
		return e
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok = r.entries[userID]; ok {
		return e
	}
	e = &entry{
		sess:         model.NewConversationSession(),
		convCtx:      model.NewConversationContext(),
		lastActivity: time.Now(),
	}
	r.entries[userID] = e
	metrics.SessionsActive.Inc()
	metrics.SessionsStartedTotal.Inc()
	r.logger.WithUser(userID).Info("session started")
	return e
}

// End removes a user's conversation state. It reports whether a session
// existed, and is safe to call twice.
func (r *Registry) End(userID string) bool {
	r.mu.Lock()
	_, ok := r.entries[userID]
	if ok {
		delete(r.entries, userID)
	}
	r.mu.Unlock()
	if ok {
		metrics.SessionsActive.Dec()
		r.logger.WithUser(userID).Info("session ended")
	}
	return ok
}

// Len reports the number of live sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// ActiveSessions snapshots every live session for the admin listing.
func (r *Registry) ActiveSessions() []SessionInfo {
	r.mu.RLock()
	ids := make([]string, 0, len(r.entries))
	refs := make([]*entry, 0, len(r.entries))
	for id, e := range r.entries {
		ids = append(ids, id)
		refs = append(refs, e)
	}
	r.mu.RUnlock()

	infos := make([]SessionInfo, 0, len(refs))
	for i, e := range refs {
		e.mu.Lock()
		infos = append(infos, SessionInfo{
			UserID:       ids[i],
			Stage:        e.sess.Stage,
			Interactions: e.convCtx.InteractionCount,
			StartedAt:    e.convCtx.StartedAt,
			LastActivity: e.lastActivity,
		})
		e.mu.Unlock()
	}
	return infos
}
