package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/impact-cms/florence/pkg/domain"
	"github.com/impact-cms/florence/pkg/ports"
)

func TestStoreContract(t *testing.T) {
	ports.RunStateStoreContract(t, NewStore())
}

func TestStoreIsolatesCallerMutations(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	state := domain.NewThreadState()
	state.PushFrame(domain.FrameSystemOverview)
	require.NoError(t, s.Save(ctx, "a", state))

	// Mutating the saved-from state must not reach the store.
	state.PushFrame(domain.FrameClaimOverview)

	loaded, err := s.Load(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, []string{domain.FrameSystemOverview}, loaded.FrameStack)
}
