package inmemory

import (
	"context"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"

	"repairdesk/internal/domain/accounts"
	"repairdesk/internal/domain/services"
	"repairdesk/internal/storage"
)

var _ storage.Storage = (*Storage)(nil)

type AccountStore struct {
	accounts map[string]*accounts.Account
	mu       sync.Mutex
}

type ServiceStore struct {
	services map[string]*services.Service
	order    []string
	mu       sync.Mutex
}

type Storage struct {
	AccountStore AccountStore
	ServiceStore ServiceStore
}

func NewStorage() *Storage {
	return &Storage{
		AccountStore: AccountStore{
			accounts: make(map[string]*accounts.Account),
		},
		ServiceStore: ServiceStore{
			services: make(map[string]*services.Service),
		},
	}
}

func (s *Storage) Close() error {
	return nil
}

func (s *Storage) Ping(_ context.Context) error {
	return nil
}

func (s *Storage) CreateAccount(_ context.Context, acc *accounts.Account) error {
	s.AccountStore.mu.Lock()
	defer s.AccountStore.mu.Unlock()

	if _, ok := s.AccountStore.accounts[acc.Login()]; ok {
		return storage.ErrAccountAlreadyExists
	}

	s.AccountStore.accounts[acc.Login()] = acc

	return nil
}

func (s *Storage) GetAccount(_ context.Context, login string) (*accounts.Account, error) {
	s.AccountStore.mu.Lock()
	defer s.AccountStore.mu.Unlock()

	acc, ok := s.AccountStore.accounts[login]
	if !ok {
		return nil, storage.ErrAccountNotFound
	}

	return acc, nil
}

func (s *Storage) ApplySpend(_ context.Context, login string, amount decimal.Decimal) (*accounts.Account, error) {
	s.AccountStore.mu.Lock()
	defer s.AccountStore.mu.Unlock()

	acc, ok := s.AccountStore.accounts[login]
	if !ok {
		return nil, storage.ErrAccountNotFound
	}

	// Updated copy replaces the stored one only if the accrual succeeds.
	updated, err := accounts.RestoreAccount(acc.Login(), acc.PasswordHash(), acc.TotalSpent())
	if err != nil {
		return nil, fmt.Errorf("accounts.RestoreAccount: %w", err)
	}

	if err := updated.AddSpent(amount); err != nil {
		return nil, err
	}

	s.AccountStore.accounts[login] = updated

	return updated, nil
}

func (s *Storage) CreateService(_ context.Context, svc *services.Service) error {
	s.ServiceStore.mu.Lock()
	defer s.ServiceStore.mu.Unlock()

	if _, ok := s.ServiceStore.services[svc.ID()]; ok {
		return storage.ErrServiceAlreadyExists
	}

	s.ServiceStore.services[svc.ID()] = svc
	s.ServiceStore.order = append(s.ServiceStore.order, svc.ID())

	return nil
}

func (s *Storage) GetService(_ context.Context, id string) (*services.Service, error) {
	s.ServiceStore.mu.Lock()
	defer s.ServiceStore.mu.Unlock()

	svc, ok := s.ServiceStore.services[id]
	if !ok {
		return nil, storage.ErrServiceNotFound
	}

	return svc, nil
}

func (s *Storage) ListServices(_ context.Context) ([]*services.Service, error) {
	s.ServiceStore.mu.Lock()
	defer s.ServiceStore.mu.Unlock()

	svcs := make([]*services.Service, 0, len(s.ServiceStore.order))
	for _, id := range s.ServiceStore.order {
		svcs = append(svcs, s.ServiceStore.services[id])
	}

	return svcs, nil
}

func (s *Storage) CountServices(_ context.Context) (int, error) {
	s.ServiceStore.mu.Lock()
	defer s.ServiceStore.mu.Unlock()

	return len(s.ServiceStore.services), nil
}
