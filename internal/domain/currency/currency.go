package currency

import (
	"math/big"

	"github.com/RKmodz24/studio/config"
	"github.com/shopspring/decimal"
)

const (
	DefaultDiamondsPerUnit = 100
	DefaultMinimumPayout   = 500
)

// Model converts diamonds into the payable currency.
type Model struct {
	DiamondsPerUnit uint64
	MinimumPayout   decimal.Decimal
}

func NewModel(diamondsPerUnit, minimumPayout uint64) Model {
	if diamondsPerUnit == 0 {
		diamondsPerUnit = DefaultDiamondsPerUnit
	}

	return Model{
		DiamondsPerUnit: diamondsPerUnit,
		MinimumPayout:   decimal.NewFromInt(int64(minimumPayout)),
	}
}

func NewModelFromConfig(cfg config.RewardConfigs) Model {
	return NewModel(cfg.DiamondsPerUnit, cfg.MinimumPayout)
}

func (m Model) ToCurrency(diamonds uint64) decimal.Decimal {
	d := decimal.NewFromBigInt(new(big.Int).SetUint64(diamonds), 0)
	return d.Div(decimal.NewFromInt(int64(m.DiamondsPerUnit)))
}

func (m Model) IsEligible(diamonds uint64) bool {
	return m.ToCurrency(diamonds).GreaterThanOrEqual(m.MinimumPayout)
}

// Progress returns the percentage of the minimum payout reached, capped at
// 100.
func (m Model) Progress(diamonds uint64) decimal.Decimal {
	if m.MinimumPayout.IsZero() {
		return decimal.NewFromInt(100)
	}

	p := m.ToCurrency(diamonds).Div(m.MinimumPayout).Mul(decimal.NewFromInt(100))
	return decimal.Min(p, decimal.NewFromInt(100))
}
