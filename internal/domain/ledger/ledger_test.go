package ledger_test

import (
	"testing"

	"github.com/RKmodz24/studio/internal/domain/currency"
	"github.com/RKmodz24/studio/internal/domain/ledger"
	"github.com/RKmodz24/studio/internal/entity"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func newLedger() *ledger.Ledger {
	return ledger.New(currency.NewModel(100, 500), entity.Ledger{})
}

func TestCreditAccumulates(t *testing.T) {
	pairs := [][2]uint64{{0, 0}, {1, 2}, {250, 1000}, {60000, 1}}
	for _, p := range pairs {
		a := newLedger()
		a.Credit(p[0])
		a.Credit(p[1])

		b := newLedger()
		b.Credit(p[1])
		b.Credit(p[0])

		require.Equal(t, p[0]+p[1], a.DiamondBalance())
		require.Equal(t, a.DiamondBalance(), b.DiamondBalance())
		require.Equal(t, uint64(2), a.Revision())
	}
}

func TestCurrencyBalanceIsDerived(t *testing.T) {
	l := newLedger()
	model := l.Model()
	for _, amount := range []uint64{1, 99, 250, 1000, 58650} {
		l.Credit(amount)
		require.True(t, model.ToCurrency(l.DiamondBalance()).Equal(l.CurrencyBalance()))
	}

	l.Settle(300)
	require.True(t, model.ToCurrency(l.DiamondBalance()).Equal(l.CurrencyBalance()))
}

func TestSettleWholeBalance(t *testing.T) {
	l := newLedger()
	l.Credit(60000)

	amount := l.Settle(l.DiamondBalance())
	require.True(t, decimal.NewFromInt(600).Equal(amount))
	require.True(t, decimal.NewFromInt(600).Equal(l.LifetimeEarnings()))
	require.Equal(t, uint64(0), l.DiamondBalance())
}

func TestSettleKeepsLaterCredits(t *testing.T) {
	l := newLedger()
	l.Credit(60000)
	snapshot := l.DiamondBalance()

	l.Credit(250)
	amount := l.Settle(snapshot)

	require.True(t, decimal.NewFromInt(600).Equal(amount))
	require.Equal(t, uint64(250), l.DiamondBalance())
	require.True(t, decimal.NewFromInt(600).Equal(l.LifetimeEarnings()))
}

func TestSettleNeverNegative(t *testing.T) {
	l := newLedger()
	l.Credit(100)

	amount := l.Settle(1000)
	require.True(t, decimal.NewFromInt(1).Equal(amount))
	require.Equal(t, uint64(0), l.DiamondBalance())
}

func TestRestoreSnapshot(t *testing.T) {
	l := ledger.New(currency.NewModel(100, 500), entity.Ledger{
		DiamondBalance:   1200,
		LifetimeEarnings: decimal.NewFromInt(600),
		Revision:         7,
	})

	l.Credit(300)
	snapshot := l.Snapshot()
	require.Equal(t, uint64(1500), snapshot.DiamondBalance)
	require.Equal(t, uint64(8), snapshot.Revision)
	require.True(t, decimal.NewFromInt(600).Equal(snapshot.LifetimeEarnings))
}
