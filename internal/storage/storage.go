package storage

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"repairdesk/internal/domain/accounts"
	"repairdesk/internal/domain/services"
)

var (
	ErrAccountAlreadyExists = errors.New("account already exists")
	ErrAccountNotFound      = errors.New("account not found")
	ErrServiceAlreadyExists = errors.New("service already exists")
	ErrServiceNotFound      = errors.New("service not found")
)

type AccountStorage interface {
	GetAccount(ctx context.Context, login string) (*accounts.Account, error)
	CreateAccount(ctx context.Context, acc *accounts.Account) error

	// ApplySpend accrues amount to the account's total spend, recomputes
	// the membership tier and persists both fields together.
	ApplySpend(ctx context.Context, login string, amount decimal.Decimal) (*accounts.Account, error)
}

type ServiceStorage interface {
	GetService(ctx context.Context, id string) (*services.Service, error)
	ListServices(ctx context.Context) ([]*services.Service, error)
	CreateService(ctx context.Context, svc *services.Service) error
	CountServices(ctx context.Context) (int, error)
}

type Storage interface {
	AccountStorage
	ServiceStorage
	Close() error
	Ping(ctx context.Context) error
}

func NewStorage(store Storage) Storage {
	return store
}
