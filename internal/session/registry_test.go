package session

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/despacholegal-ai/intake-platform/internal/model"
	"github.com/despacholegal-ai/intake-platform/pkg/logger"
)

func TestRegistryDoCreatesOnce(t *testing.T) {
	r := NewRegistry(logger.NewNop())

	var first *model.ConversationSession
	r.Do("u1", func(st *State) {
		first = st.Session()
		st.Session().Stage = model.StageCollecting
	})

	r.Do("u1", func(st *State) {
		assert.Same(t, first, st.Session())
		assert.Equal(t, model.StageCollecting, st.Session().Stage)
	})

	assert.Equal(t, 1, r.Len())
}

func TestRegistryConcurrentSingleSession(t *testing.T) {
	r := NewRegistry(logger.NewNop())

	var wg sync.WaitGroup
	sessions := make([]*model.ConversationSession, 50)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			r.Do("u1", func(st *State) {
				sessions[i] = st.Session()
				st.Context().InteractionCount++
			})
		}(i)
	}
	wg.Wait()

	// Every goroutine saw the same session, and the updates serialized.
	require.Equal(t, 1, r.Len())
	for _, s := range sessions[1:] {
		assert.Same(t, sessions[0], s)
	}
	r.Do("u1", func(st *State) {
		assert.Equal(t, 50, st.Context().InteractionCount)
	})
}

func TestRegistryHistoryCap(t *testing.T) {
	r := NewRegistry(logger.NewNop())
	r.Do("u1", func(st *State) {
		for i := 0; i < 25; i++ {
			st.Append("mensaje", i%2 == 0)
		}
		assert.Len(t, st.History(), maxHistory)
	})
}

func TestRegistryLastAssistantMessage(t *testing.T) {
	r := NewRegistry(logger.NewNop())
	r.Do("u1", func(st *State) {
		_, ok := st.LastAssistantMessage()
		assert.False(t, ok)

		st.Append("hola", true)
		st.Append("¿Te gustaría agendar una cita?", false)
		st.Append("sí", true)

		last, ok := st.LastAssistantMessage()
		assert.True(t, ok)
		assert.Equal(t, "¿Te gustaría agendar una cita?", last)
	})
}

func TestRegistryReset(t *testing.T) {
	r := NewRegistry(logger.NewNop())
	r.Do("u1", func(st *State) {
		st.Session().Stage = model.StageConfirmation
		st.Context().UserName = "Juan"
		st.Append("hola", true)
		st.Reset()
		assert.Equal(t, model.StageInitial, st.Session().Stage)
		assert.Empty(t, st.Context().UserName)
		assert.Empty(t, st.History())
	})
}

func TestRegistryEndIdempotent(t *testing.T) {
	r := NewRegistry(logger.NewNop())
	r.Do("u1", func(*State) {})

	assert.True(t, r.End("u1"))
	assert.False(t, r.End("u1"))
	assert.Equal(t, 0, r.Len())
}

func TestRegistryActiveSessions(t *testing.T) {
	r := NewRegistry(logger.NewNop())
	r.Do("u1", func(st *State) { st.Session().Stage = model.StageCollecting })
	r.Do("u2", func(*State) {})

	infos := r.ActiveSessions()
	require.Len(t, infos, 2)

	byID := make(map[string]SessionInfo)
	for _, info := range infos {
		byID[info.UserID] = info
	}
	assert.Equal(t, model.StageCollecting, byID["u1"].Stage)
	assert.Equal(t, model.StageInitial, byID["u2"].Stage)
	assert.WithinDuration(t, time.Now(), byID["u1"].LastActivity, time.Second)
}
