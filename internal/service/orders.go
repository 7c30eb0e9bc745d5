package service

import (
	"context"
	"log/slog"

	"github.com/shopspring/decimal"

	"repairdesk/internal/domain/accounts"
	"repairdesk/internal/pricing"
)

// OrderService places orders: it prices a catalog service for an account
// and accrues the final cost against the account's spend. Orders are not
// persisted as entities.
type OrderService struct {
	accounts *AccountService
	catalog  *CatalogService
	log      *slog.Logger
}

func NewOrderService(accountsSvc *AccountService, catalogSvc *CatalogService, log *slog.Logger) *OrderService {
	if log == nil {
		log = slog.Default()
	}

	return &OrderService{
		accounts: accountsSvc,
		catalog:  catalogSvc,
		log:      log,
	}
}

// Place returns the final discounted cost and the updated account.
func (s *OrderService) Place(ctx context.Context, login, serviceID string) (decimal.Decimal, *accounts.Account, error) {
	svc, err := s.catalog.Get(ctx, serviceID)
	if err != nil {
		return decimal.Zero, nil, err
	}

	acc, err := s.accounts.Get(ctx, login)
	if err != nil {
		return decimal.Zero, nil, err
	}

	finalCost := pricing.Price(svc, acc)

	updated, err := s.accounts.ApplySpend(ctx, login, finalCost)
	if err != nil {
		return decimal.Zero, nil, err
	}

	s.log.Info("order placed",
		slog.String("login", login),
		slog.String("service", svc.ID()),
		slog.String("cost", finalCost.String()),
	)

	return finalCost, updated, nil
}
