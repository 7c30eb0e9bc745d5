package sqlitestore

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"repairdesk/internal/domain/accounts"
	"repairdesk/internal/domain/services"
	"repairdesk/internal/storage"
)

func newTestStorage(t *testing.T) *Storage {
	t.Helper()

	dir := t.TempDir()

	store, err := NewStorage(
		filepath.Join(dir, "users.db"),
		filepath.Join(dir, "services.db"),
	)
	require.NoError(t, err)

	t.Cleanup(func() {
		store.Close() //nolint:errcheck
	})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	require.NoError(t, store.Bootstrap(ctx))

	return store
}

func TestBootstrapIdempotent(t *testing.T) {
	store := newTestStorage(t)

	require.NoError(t, store.Bootstrap(context.Background()))
	require.NoError(t, store.Ping(context.Background()))
}

func TestAccountsRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newTestStorage(t)

	acc, err := accounts.NewAccount("alice", "secret")
	require.NoError(t, err)

	require.NoError(t, store.CreateAccount(ctx, acc))

	err = store.CreateAccount(ctx, acc)
	require.ErrorIs(t, err, storage.ErrAccountAlreadyExists)

	got, err := store.GetAccount(ctx, "alice")
	require.NoError(t, err)

	assert.Equal(t, "alice", got.Login())
	assert.True(t, got.CheckPassword("secret"))
	assert.True(t, got.TotalSpent().IsZero())
	assert.Equal(t, accounts.TierBronze, got.Tier())

	_, err = store.GetAccount(ctx, "nobody")
	require.ErrorIs(t, err, storage.ErrAccountNotFound)
}

func TestApplySpendPersistsBothFields(t *testing.T) {
	ctx := context.Background()
	store := newTestStorage(t)

	acc, err := accounts.NewAccount("bob", "secret")
	require.NoError(t, err)
	require.NoError(t, store.CreateAccount(ctx, acc))

	updated, err := store.ApplySpend(ctx, "bob", decimal.NewFromInt(150))
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(150).Equal(updated.TotalSpent()))
	assert.Equal(t, accounts.TierBronze, updated.Tier())

	updated, err = store.ApplySpend(ctx, "bob", decimal.NewFromInt(500))
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(650).Equal(updated.TotalSpent()))
	assert.Equal(t, accounts.TierGold, updated.Tier())

	// Reload from disk: spend and tier were persisted together.
	got, err := store.GetAccount(ctx, "bob")
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(650).Equal(got.TotalSpent()))
	assert.Equal(t, accounts.TierGold, got.Tier())

	_, err = store.ApplySpend(ctx, "nobody", decimal.NewFromInt(10))
	require.ErrorIs(t, err, storage.ErrAccountNotFound)
}

func TestServicesRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newTestStorage(t)

	count, err := store.CountServices(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)

	first, err := services.New(services.KindPlumbing, "Pipe cleaning", decimal.NewFromInt(55))
	require.NoError(t, err)

	second, err := services.New(services.KindElectrical, "Wiring repair", decimal.NewFromInt(80))
	require.NoError(t, err)

	require.NoError(t, store.CreateService(ctx, first))
	require.NoError(t, store.CreateService(ctx, second))

	err = store.CreateService(ctx, first)
	require.ErrorIs(t, err, storage.ErrServiceAlreadyExists)

	got, err := store.GetService(ctx, first.ID())
	require.NoError(t, err)
	assert.Equal(t, services.KindPlumbing, got.Kind())
	assert.Equal(t, "Pipe cleaning", got.Description())
	assert.True(t, decimal.NewFromInt(55).Equal(got.BaseCost()))

	_, err = store.GetService(ctx, "missing")
	require.ErrorIs(t, err, storage.ErrServiceNotFound)

	listed, err := store.ListServices(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.Equal(t, first.ID(), listed[0].ID())
	assert.Equal(t, second.ID(), listed[1].ID())

	count, err = store.CountServices(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}
