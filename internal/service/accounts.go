// Package service holds the application services behind the presentation
// layer: credential checks, the spend ledger, the catalog and order
// placement.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"repairdesk/internal/domain/accounts"
	"repairdesk/internal/storage"
)

var ErrInvalidCredentials = errors.New("invalid login or password")

// AccountService is the credential store and the account ledger.
type AccountService struct {
	storage storage.AccountStorage
	log     *slog.Logger
}

func NewAccountService(store storage.AccountStorage, log *slog.Logger) *AccountService {
	if log == nil {
		log = slog.Default()
	}

	return &AccountService{
		storage: store,
		log:     log,
	}
}

// Register creates an account with zero spend and the Bronze tier. The
// password leaves this method only as a salted hash.
func (s *AccountService) Register(ctx context.Context, login, password string) (*accounts.Account, error) {
	acc, err := accounts.NewAccount(login, password)
	if err != nil {
		return nil, fmt.Errorf("accounts.NewAccount: %w", err)
	}

	if err := s.storage.CreateAccount(ctx, acc); err != nil {
		if errors.Is(err, storage.ErrAccountAlreadyExists) {
			return nil, err
		}

		return nil, fmt.Errorf("storage.CreateAccount: %w", err)
	}

	s.log.Info("account registered", slog.String("login", acc.Login()))

	return acc, nil
}

// Authenticate returns the full account record when login and password
// match. Unknown logins and hash mismatches are indistinguishable to the
// caller.
func (s *AccountService) Authenticate(ctx context.Context, login, password string) (*accounts.Account, error) {
	acc, err := s.storage.GetAccount(ctx, login)
	if err != nil {
		if errors.Is(err, storage.ErrAccountNotFound) {
			return nil, ErrInvalidCredentials
		}

		return nil, fmt.Errorf("storage.GetAccount: %w", err)
	}

	if !acc.CheckPassword(password) {
		return nil, ErrInvalidCredentials
	}

	return acc, nil
}

// Exists reports whether the login is taken. No side effects.
func (s *AccountService) Exists(ctx context.Context, login string) (bool, error) {
	if _, err := s.storage.GetAccount(ctx, login); err != nil {
		if errors.Is(err, storage.ErrAccountNotFound) {
			return false, nil
		}

		return false, fmt.Errorf("storage.GetAccount: %w", err)
	}

	return true, nil
}

// Get returns the account record for the login.
func (s *AccountService) Get(ctx context.Context, login string) (*accounts.Account, error) {
	acc, err := s.storage.GetAccount(ctx, login)
	if err != nil {
		if errors.Is(err, storage.ErrAccountNotFound) {
			return nil, err
		}

		return nil, fmt.Errorf("storage.GetAccount: %w", err)
	}

	return acc, nil
}

// ApplySpend accrues amount to the account and recomputes its tier.
// Negative amounts are rejected; refunds are not an operation of the
// ledger.
func (s *AccountService) ApplySpend(ctx context.Context, login string, amount decimal.Decimal) (*accounts.Account, error) {
	if amount.IsNegative() {
		return nil, accounts.ErrAmountNegative
	}

	acc, err := s.storage.ApplySpend(ctx, login, amount)
	if err != nil {
		if errors.Is(err, storage.ErrAccountNotFound) {
			return nil, err
		}

		return nil, fmt.Errorf("storage.ApplySpend: %w", err)
	}

	s.log.Info("spend applied",
		slog.String("login", acc.Login()),
		slog.String("amount", amount.String()),
		slog.String("tier", acc.Tier().String()),
	)

	return acc, nil
}
