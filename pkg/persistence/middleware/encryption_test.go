package middleware

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/impact-cms/florence/pkg/adapters/memory"
	"github.com/impact-cms/florence/pkg/domain"
)

func testKey(b byte) []byte {
	key := make([]byte, 32)
	for i := range key {
		key[i] = b
	}
	return key
}

func sampleState() *domain.ThreadState {
	s := domain.NewThreadState()
	s.PushFrame(domain.FrameClaimOverview)
	s.LastClaimID = 7
	s.LastCanonicalQuestion = "how many open claims do I have"
	s.SetPending(domain.PendingClarification{
		Intent:           "billing_total",
		Slot:             domain.SlotBillingScope,
		OriginalQuestion: "how much have I billed",
	})
	return s
}

func TestEncryptionRoundTrip(t *testing.T) {
	inner := memory.NewStore()
	store := NewEncryptionMiddleware(EncryptionConfig{ActiveKey: testKey(1)})(inner)

	want := sampleState()
	require.NoError(t, store.Save(context.Background(), "s1", want))

	got, err := store.Load(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestEncryptionStoredFormIsOpaque(t *testing.T) {
	inner := memory.NewStore()
	store := NewEncryptionMiddleware(EncryptionConfig{ActiveKey: testKey(1)})(inner)

	require.NoError(t, store.Save(context.Background(), "s1", sampleState()))

	raw, err := inner.Load(context.Background(), "s1")
	require.NoError(t, err)
	assert.NotEmpty(t, raw.Sealed)
	assert.Empty(t, raw.FrameStack)
	assert.Zero(t, raw.LastClaimID)
	assert.Empty(t, raw.LastCanonicalQuestion)
	assert.Nil(t, raw.Pending)
}

func TestEncryptionKeyRotation(t *testing.T) {
	inner := memory.NewStore()
	oldKey, newKey := testKey(1), testKey(2)

	oldStore := NewEncryptionMiddleware(EncryptionConfig{ActiveKey: oldKey})(inner)
	require.NoError(t, oldStore.Save(context.Background(), "s1", sampleState()))

	rotated := NewEncryptionMiddleware(EncryptionConfig{
		ActiveKey:    newKey,
		FallbackKeys: [][]byte{oldKey},
	})(inner)
	got, err := rotated.Load(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, int64(7), got.LastClaimID)

	// Without the fallback the old ciphertext is unreadable.
	strict := NewEncryptionMiddleware(EncryptionConfig{ActiveKey: newKey})(inner)
	_, err = strict.Load(context.Background(), "s1")
	assert.Error(t, err)
}

func TestEncryptionRejectsUnsealedState(t *testing.T) {
	inner := memory.NewStore()
	require.NoError(t, inner.Save(context.Background(), "plain", sampleState()))

	store := NewEncryptionMiddleware(EncryptionConfig{ActiveKey: testKey(1)})(inner)
	_, err := store.Load(context.Background(), "plain")
	assert.ErrorContains(t, err, "sealed payload")
}

func TestEncryptionRequires32ByteKey(t *testing.T) {
	assert.Panics(t, func() {
		NewEncryptionMiddleware(EncryptionConfig{ActiveKey: []byte("short")})
	})
}
