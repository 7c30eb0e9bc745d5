package accounts

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrAccountLoginEmpty  = errors.New("account login is empty")
	ErrAccountPasswdEmpty = errors.New("account password is empty")
	ErrAmountNegative     = errors.New("spend amount is negative")
)

// Tier is a loyalty level derived from an account's cumulative spend.
// It is never set directly; use TierFor.
type Tier string

const (
	TierBronze   Tier = "Bronze"
	TierSilver   Tier = "Silver"
	TierGold     Tier = "Gold"
	TierPlatinum Tier = "Platinum"
)

var (
	silverThreshold   = decimal.NewFromInt(200)
	goldThreshold     = decimal.NewFromInt(500)
	platinumThreshold = decimal.NewFromInt(1000)
)

// TierFor returns the membership tier for the given cumulative spend.
// Thresholds are inclusive lower bounds.
func TierFor(totalSpent decimal.Decimal) Tier {
	switch {
	case totalSpent.GreaterThanOrEqual(platinumThreshold):
		return TierPlatinum
	case totalSpent.GreaterThanOrEqual(goldThreshold):
		return TierGold
	case totalSpent.GreaterThanOrEqual(silverThreshold):
		return TierSilver
	default:
		return TierBronze
	}
}

// Discount returns the discount fraction granted by the tier.
func (t Tier) Discount() decimal.Decimal {
	switch t {
	case TierPlatinum:
		return decimal.NewFromFloat(0.15)
	case TierGold:
		return decimal.NewFromFloat(0.10)
	case TierSilver:
		return decimal.NewFromFloat(0.05)
	default:
		return decimal.Zero
	}
}

func (t Tier) String() string {
	return string(t)
}

type Account struct {
	login        string
	passwordHash string
	totalSpent   decimal.Decimal
	tier         Tier
}

// NewAccount creates an account with zero spend, the Bronze tier and a
// freshly salted hash of password. Hashing the same password twice yields
// different hashes.
func NewAccount(login, password string) (*Account, error) {
	if err := ValidateLogin(login); err != nil {
		return nil, err
	}

	if err := validatePassword(password); err != nil {
		return nil, err
	}

	passwordHash, err := getPasswordHash(password)
	if err != nil {
		return nil, fmt.Errorf("getPasswordHash: %w", err)
	}

	return &Account{
		login:        login,
		passwordHash: passwordHash,
		totalSpent:   decimal.Zero,
		tier:         TierBronze,
	}, nil
}

// RestoreAccount rebuilds an account from stored fields. The tier is
// recomputed from the stored spend, never trusted from storage.
func RestoreAccount(login, passwordHash string, totalSpent decimal.Decimal) (*Account, error) {
	if err := ValidateLogin(login); err != nil {
		return nil, err
	}

	return &Account{
		login:        login,
		passwordHash: passwordHash,
		totalSpent:   totalSpent,
		tier:         TierFor(totalSpent),
	}, nil
}

func (a *Account) Login() string {
	return a.login
}

func (a *Account) PasswordHash() string {
	return a.passwordHash
}

func (a *Account) TotalSpent() decimal.Decimal {
	return a.totalSpent
}

func (a *Account) Tier() Tier {
	return a.tier
}

// CheckPassword reports whether password matches the stored hash.
func (a *Account) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(a.passwordHash), []byte(password)) == nil
}

// AddSpent accrues amount to the total spend and recomputes the tier.
func (a *Account) AddSpent(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return ErrAmountNegative
	}

	a.totalSpent = a.totalSpent.Add(amount)
	a.tier = TierFor(a.totalSpent)

	return nil
}

func getPasswordHash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("bcrypt.GenerateFromPassword: %w", err)
	}

	return string(hash), nil
}

func ValidateLogin(login string) error {
	if login == "" {
		return ErrAccountLoginEmpty
	}

	return nil
}

func validatePassword(password string) error {
	if password == "" {
		return ErrAccountPasswdEmpty
	}

	return nil
}
