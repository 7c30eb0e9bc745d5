// Package pricing computes the discounted cost of a service for an
// account. Pure functions only; accruing the result against the account is
// the ledger's job.
package pricing

import (
	"github.com/shopspring/decimal"

	"repairdesk/internal/domain/accounts"
	"repairdesk/internal/domain/services"
)

var one = decimal.NewFromInt(1)

// Price returns base_cost * (1 - tier discount). No rounding is applied.
func Price(svc *services.Service, acc *accounts.Account) decimal.Decimal {
	return svc.BaseCost().Mul(one.Sub(acc.Tier().Discount()))
}
