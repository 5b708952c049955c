package ledger

import (
	"math"

	"github.com/RKmodz24/studio/internal/domain/currency"
	"github.com/RKmodz24/studio/internal/entity"
	"github.com/shopspring/decimal"
)

// Ledger holds the diamond balance of one session. It is not safe for
// concurrent use, the owner serializes the calls.
type Ledger struct {
	model currency.Model
	state entity.Ledger
}

func New(model currency.Model, snapshot entity.Ledger) *Ledger {
	return &Ledger{model: model, state: snapshot}
}

func (l *Ledger) Credit(amount uint64) {
	if amount > math.MaxUint64-l.state.DiamondBalance {
		l.state.DiamondBalance = math.MaxUint64
	} else {
		l.state.DiamondBalance += amount
	}

	l.state.Revision++
}

func (l *Ledger) DiamondBalance() uint64 {
	return l.state.DiamondBalance
}

// CurrencyBalance is always derived from the diamond balance.
func (l *Ledger) CurrencyBalance() decimal.Decimal {
	return l.model.ToCurrency(l.state.DiamondBalance)
}

func (l *Ledger) LifetimeEarnings() decimal.Decimal {
	return l.state.LifetimeEarnings
}

func (l *Ledger) Revision() uint64 {
	return l.state.Revision
}

func (l *Ledger) Model() currency.Model {
	return l.model
}

func (l *Ledger) IsEligible() bool {
	return l.model.IsEligible(l.state.DiamondBalance)
}

func (l *Ledger) Snapshot() entity.Ledger {
	return l.state
}

// Settle subtracts a previously captured diamond snapshot and adds its value
// to the lifetime earnings. Diamonds credited after the snapshot are kept.
func (l *Ledger) Settle(snapshotDiamonds uint64) decimal.Decimal {
	if snapshotDiamonds > l.state.DiamondBalance {
		snapshotDiamonds = l.state.DiamondBalance
	}

	amount := l.model.ToCurrency(snapshotDiamonds)
	l.state.DiamondBalance -= snapshotDiamonds
	l.state.LifetimeEarnings = l.state.LifetimeEarnings.Add(amount)
	l.state.Revision++
	return amount
}
