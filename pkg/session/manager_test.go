package session_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/impact-cms/florence/pkg/adapters/memory"
	"github.com/impact-cms/florence/pkg/domain"
	"github.com/impact-cms/florence/pkg/session"
)

// slowStore injects latency to provoke races if locking is missing.
type slowStore struct {
	data map[string]*domain.ThreadState
	mu   sync.Mutex
}

func (s *slowStore) Save(ctx context.Context, sessionID string, state *domain.ThreadState) error {
	time.Sleep(10 * time.Millisecond)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.data == nil {
		s.data = make(map[string]*domain.ThreadState)
	}
	s.data[sessionID] = state.Clone()
	return nil
}

func (s *slowStore) Load(ctx context.Context, sessionID string) (*domain.ThreadState, error) {
	time.Sleep(10 * time.Millisecond)
	s.mu.Lock()
	defer s.mu.Unlock()
	state, ok := s.data[sessionID]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return state.Clone(), nil
}

func (s *slowStore) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, sessionID)
	return nil
}

func (s *slowStore) List(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]string, 0, len(s.data))
	for id := range s.data {
		ids = append(ids, id)
	}
	return ids, nil
}

func TestLoadOrStartCreatesEmptyState(t *testing.T) {
	m := session.NewManager(memory.NewStore())
	ctx := context.Background()

	state, err := m.LoadOrStart(ctx, "s1")
	require.NoError(t, err)
	require.NotNil(t, state)
	assert.Empty(t, state.FrameStack)

	// The id is reserved immediately.
	ids, err := m.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"s1"}, ids)
}

func TestLoadOrStartReturnsExisting(t *testing.T) {
	store := memory.NewStore()
	m := session.NewManager(store)
	ctx := context.Background()

	existing := domain.NewThreadState()
	existing.PushFrame(domain.FrameClaimOverview)
	require.NoError(t, store.Save(ctx, "s1", existing))

	state, err := m.LoadOrStart(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, []string{domain.FrameClaimOverview}, state.FrameStack)
}

func TestConcurrentTurnsSerialize(t *testing.T) {
	m := session.NewManager(&slowStore{})
	ctx := context.Background()

	_, err := m.LoadOrStart(ctx, "s1")
	require.NoError(t, err)

	// Each goroutine does a load-modify-save cycle under the session
	// lock. Without serialization, pushes would be lost.
	const workers = 8
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := m.WithLock(ctx, "s1", func(ctx context.Context) error {
				state, err := m.Store().Load(ctx, "s1")
				if err != nil {
					return err
				}
				state.LastClaimID++
				return m.Store().Save(ctx, "s1", state)
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	state, err := m.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, int64(workers), state.LastClaimID)
}

func TestDeleteRemovesSession(t *testing.T) {
	m := session.NewManager(memory.NewStore())
	ctx := context.Background()

	_, err := m.LoadOrStart(ctx, "s1")
	require.NoError(t, err)
	require.NoError(t, m.Delete(ctx, "s1"))

	_, err = m.Load(ctx, "s1")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}
