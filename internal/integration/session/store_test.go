package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finance-tracker/assistant/internal/application/adapter"
	"github.com/finance-tracker/assistant/internal/domain/entity"
	domainerror "github.com/finance-tracker/assistant/internal/domain/error"
)

func newSessionWithPending() *entity.Session {
	s := entity.NewSession("12345678")
	s.Pending = &entity.PendingTransaction{
		ID:            uuid.New(),
		Amount:        decimal.RequireFromString("42.50"),
		Type:          entity.TransactionTypeExpense,
		PaymentMethod: entity.PaymentMethodCredit,
		Category:      entity.CategoryFood,
		Description:   "almoço",
		CreatedAt:     time.Now().UTC(),
	}
	return s
}

// storeContract runs the behavior every SessionStore must share.
func storeContract(t *testing.T, store adapter.SessionStore) {
	ctx := context.Background()

	t.Run("missing session", func(t *testing.T) {
		_, err := store.Get(ctx, uuid.New())
		assert.ErrorIs(t, err, domainerror.ErrSessionNotFound)
	})

	t.Run("save and get keeps pending intent", func(t *testing.T) {
		session := newSessionWithPending()
		require.NoError(t, store.Save(ctx, session))

		got, err := store.Get(ctx, session.ID)
		require.NoError(t, err)
		assert.Equal(t, session.UserID, got.UserID)
		require.NotNil(t, got.Pending)
		assert.True(t, session.Pending.Amount.Equal(got.Pending.Amount))
		assert.Equal(t, entity.PaymentMethodCredit, got.Pending.PaymentMethod)
		assert.Equal(t, entity.CategoryFood, got.Pending.Category)
		assert.Equal(t, "almoço", got.Pending.Description)
	})

	t.Run("clearing pending is persisted", func(t *testing.T) {
		session := newSessionWithPending()
		require.NoError(t, store.Save(ctx, session))

		session.Pending = nil
		require.NoError(t, store.Save(ctx, session))

		got, err := store.Get(ctx, session.ID)
		require.NoError(t, err)
		assert.Nil(t, got.Pending)
	})

	t.Run("lock is exclusive until unlocked", func(t *testing.T) {
		id := uuid.New()

		token, ok, err := store.Lock(ctx, id)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.NotEmpty(t, token)

		_, ok, err = store.Lock(ctx, id)
		require.NoError(t, err)
		assert.False(t, ok)

		require.NoError(t, store.Unlock(ctx, id, token))

		_, ok, err = store.Lock(ctx, id)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("unlock with a stale token keeps the lock", func(t *testing.T) {
		id := uuid.New()

		_, ok, err := store.Lock(ctx, id)
		require.NoError(t, err)
		require.True(t, ok)

		require.NoError(t, store.Unlock(ctx, id, uuid.NewString()))

		_, ok, err = store.Lock(ctx, id)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("delete", func(t *testing.T) {
		session := entity.NewSession("12345678")
		require.NoError(t, store.Save(ctx, session))
		require.NoError(t, store.Delete(ctx, session.ID))

		_, err := store.Get(ctx, session.ID)
		assert.ErrorIs(t, err, domainerror.ErrSessionNotFound)
	})
}

func TestMemoryStore(t *testing.T) {
	storeContract(t, NewMemoryStore(time.Hour, time.Minute))
}

func TestMemoryStore_Expiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	store := newMemoryStore(time.Hour, time.Minute, func() time.Time { return now })

	session := entity.NewSession("12345678")
	require.NoError(t, store.Save(ctx, session))

	first, ok, err := store.Lock(ctx, session.ID)
	require.NoError(t, err)
	require.True(t, ok)

	now = now.Add(2 * time.Minute)
	_, ok, err = store.Lock(ctx, session.ID)
	require.NoError(t, err)
	assert.True(t, ok, "abandoned lock should expire")

	require.NoError(t, store.Unlock(ctx, session.ID, first))
	_, ok, err = store.Lock(ctx, session.ID)
	require.NoError(t, err)
	assert.False(t, ok, "expired owner must not release the new lock")

	now = now.Add(time.Hour)
	_, err = store.Get(ctx, session.ID)
	assert.ErrorIs(t, err, domainerror.ErrSessionNotFound)
}

func newMiniredis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestRedisStore(t *testing.T) {
	_, client := newMiniredis(t)
	storeContract(t, NewRedisStore(client, time.Hour, time.Minute))
}

func TestRedisStore_Expiry(t *testing.T) {
	ctx := context.Background()
	mr, client := newMiniredis(t)
	store := NewRedisStore(client, time.Hour, time.Minute)

	session := entity.NewSession("12345678")
	require.NoError(t, store.Save(ctx, session))
	assert.Equal(t, time.Hour, mr.TTL(sessionKey(session.ID)))

	first, ok, err := store.Lock(ctx, session.ID)
	require.NoError(t, err)
	require.True(t, ok)

	mr.FastForward(2 * time.Minute)
	_, ok, err = store.Lock(ctx, session.ID)
	require.NoError(t, err)
	assert.True(t, ok, "abandoned lock should expire")

	require.NoError(t, store.Unlock(ctx, session.ID, first))
	_, ok, err = store.Lock(ctx, session.ID)
	require.NoError(t, err)
	assert.False(t, ok, "expired owner must not release the new lock")

	mr.FastForward(time.Hour)
	_, err = store.Get(ctx, session.ID)
	assert.ErrorIs(t, err, domainerror.ErrSessionNotFound)
}
