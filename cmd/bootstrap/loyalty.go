package bootstrap

import (
	"licoreria-api/internal/domain/loyalty"
	"licoreria-api/internal/domain/reward"
	"licoreria-api/internal/pkg/config"

	"github.com/shopspring/decimal"
	"go.uber.org/fx"
)

var LoyaltyModule = fx.Module("loyalty",
	fx.Provide(
		NewLoyaltyEngine,
		reward.DefaultCatalog,
	),
)

func NewLoyaltyEngine(cfg config.Config) (*loyalty.Engine, error) {
	creditBase, err := decimal.NewFromString(cfg.Loyalty.CreditBase)
	if err != nil {
		return nil, err
	}
	creditRate, err := decimal.NewFromString(cfg.Loyalty.CreditRate)
	if err != nil {
		return nil, err
	}
	loanBonusRate, err := decimal.NewFromString(cfg.Loyalty.LoanBonusRate)
	if err != nil {
		return nil, err
	}

	return loyalty.NewEngine(cfg.Loyalty.DollarsPerPoint, creditBase, creditRate, loanBonusRate)
}
