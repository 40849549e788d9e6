package ports

import (
	"context"
	"testing"
	"time"

	"github.com/impact-cms/florence/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunStateStoreContract runs a suite of tests to verify that a StateStore
// implementation adheres to the defined interface contract.
func RunStateStoreContract(t *testing.T, store StateStore) {
	ctx := context.Background()
	sessionID := "contract-test-session-" + time.Now().Format("20060102150405")

	t.Run("Save and Load", func(t *testing.T) {
		state := domain.NewThreadState()
		state.PushFrame(domain.FrameSystemOverview)
		state.LastIntent = "claim_count"
		state.LastClaimID = 9
		state.SetPending(domain.PendingClarification{
			Intent:           "billing_total",
			Slot:             domain.SlotBillingScope,
			OriginalQuestion: "how much billing do I have?",
		})

		err := store.Save(ctx, sessionID, state)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, sessionID)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, state.FrameStack, loaded.FrameStack)
		assert.Equal(t, state.LastIntent, loaded.LastIntent)
		assert.Equal(t, state.LastClaimID, loaded.LastClaimID)
		require.NotNil(t, loaded.Pending)
		assert.Equal(t, domain.SlotBillingScope, loaded.Pending.Slot)
	})

	t.Run("Load is isolated from later writes", func(t *testing.T) {
		state := domain.NewThreadState()
		state.PushFrame(domain.FrameSystemOverview)
		require.NoError(t, store.Save(ctx, sessionID, state))

		loaded, err := store.Load(ctx, sessionID)
		require.NoError(t, err)

		// Mutating the loaded copy must not leak back into the store.
		loaded.PushFrame(domain.FrameClaimOverview)

		again, err := store.Load(ctx, sessionID)
		require.NoError(t, err)
		assert.Equal(t, []string{domain.FrameSystemOverview}, again.FrameStack)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+sessionID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		err := store.Save(ctx, sessionID, domain.NewThreadState())
		require.NoError(t, err)

		err = store.Delete(ctx, sessionID)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, sessionID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound, "Load after Delete should return ErrSessionNotFound")
	})

	t.Run("List", func(t *testing.T) {
		id1 := sessionID + "-1"
		id2 := sessionID + "-2"
		_ = store.Save(ctx, id1, domain.NewThreadState())
		_ = store.Save(ctx, id2, domain.NewThreadState())

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		sessions, err := store.List(ctx)
		require.NoError(t, err)

		lookup := make(map[string]bool)
		for _, id := range sessions {
			lookup[id] = true
		}
		assert.True(t, lookup[id1], "expected %s in session list", id1)
		assert.True(t, lookup[id2], "expected %s in session list", id2)
	})
}
