package accounts

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTierFor(t *testing.T) {
	tests := []struct {
		name       string
		totalSpent float64
		want       Tier
	}{
		{"zero", 0, TierBronze},
		{"just below silver", 199.99, TierBronze},
		{"silver threshold", 200, TierSilver},
		{"just below gold", 499.99, TierSilver},
		{"gold threshold", 500, TierGold},
		{"just below platinum", 999.99, TierGold},
		{"platinum threshold", 1000, TierPlatinum},
		{"far above platinum", 12345.67, TierPlatinum},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TierFor(decimal.NewFromFloat(tt.totalSpent)))
		})
	}
}

func TestTierForMonotonic(t *testing.T) {
	rank := map[Tier]int{
		TierBronze:   0,
		TierSilver:   1,
		TierGold:     2,
		TierPlatinum: 3,
	}

	prev := TierBronze

	for spent := 0.0; spent <= 1500; spent += 0.25 {
		tier := TierFor(decimal.NewFromFloat(spent))
		require.GreaterOrEqual(t, rank[tier], rank[prev], "tier regressed at spend %v", spent)

		prev = tier
	}
}

func TestTierDiscount(t *testing.T) {
	tests := []struct {
		tier Tier
		want decimal.Decimal
	}{
		{TierBronze, decimal.Zero},
		{TierSilver, decimal.NewFromFloat(0.05)},
		{TierGold, decimal.NewFromFloat(0.10)},
		{TierPlatinum, decimal.NewFromFloat(0.15)},
	}

	for _, tt := range tests {
		t.Run(tt.tier.String(), func(t *testing.T) {
			assert.True(t, tt.want.Equal(tt.tier.Discount()),
				"want %s, got %s", tt.want, tt.tier.Discount())
		})
	}
}

func TestNewAccount(t *testing.T) {
	acc, err := NewAccount("alice", "secret")
	require.NoError(t, err)

	assert.Equal(t, "alice", acc.Login())
	assert.True(t, acc.TotalSpent().IsZero())
	assert.Equal(t, TierBronze, acc.Tier())

	assert.NotEqual(t, "secret", acc.PasswordHash())
	assert.True(t, acc.CheckPassword("secret"))
	assert.False(t, acc.CheckPassword("wrong"))
}

func TestNewAccountSaltUniqueness(t *testing.T) {
	first, err := NewAccount("alice", "secret")
	require.NoError(t, err)

	second, err := NewAccount("bob", "secret")
	require.NoError(t, err)

	assert.NotEqual(t, first.PasswordHash(), second.PasswordHash())
}

func TestNewAccountValidation(t *testing.T) {
	_, err := NewAccount("", "secret")
	require.ErrorIs(t, err, ErrAccountLoginEmpty)

	_, err = NewAccount("alice", "")
	require.ErrorIs(t, err, ErrAccountPasswdEmpty)
}

func TestAddSpent(t *testing.T) {
	acc, err := NewAccount("alice", "secret")
	require.NoError(t, err)

	require.NoError(t, acc.AddSpent(decimal.NewFromInt(150)))
	assert.True(t, decimal.NewFromInt(150).Equal(acc.TotalSpent()))
	assert.Equal(t, TierBronze, acc.Tier())

	require.NoError(t, acc.AddSpent(decimal.NewFromInt(500)))
	assert.True(t, decimal.NewFromInt(650).Equal(acc.TotalSpent()))
	assert.Equal(t, TierGold, acc.Tier())
}

func TestAddSpentNegative(t *testing.T) {
	acc, err := NewAccount("alice", "secret")
	require.NoError(t, err)

	err = acc.AddSpent(decimal.NewFromInt(-10))
	require.ErrorIs(t, err, ErrAmountNegative)

	assert.True(t, acc.TotalSpent().IsZero())
	assert.Equal(t, TierBronze, acc.Tier())
}

func TestRestoreAccountRecomputesTier(t *testing.T) {
	acc, err := RestoreAccount("bob", "hash", decimal.NewFromInt(700))
	require.NoError(t, err)

	assert.Equal(t, TierGold, acc.Tier())
	assert.True(t, decimal.NewFromInt(700).Equal(acc.TotalSpent()))
}
