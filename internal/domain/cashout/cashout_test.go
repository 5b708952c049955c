package cashout_test

import (
	"testing"

	"github.com/RKmodz24/studio/internal/domain/cashout"
	"github.com/RKmodz24/studio/internal/domain/currency"
	"github.com/RKmodz24/studio/internal/domain/ledger"
	"github.com/RKmodz24/studio/internal/entity"
	"github.com/RKmodz24/studio/pkg/errorx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var upi = entity.PayoutDetails{Method: entity.PayoutUPI, UPI: &entity.UPIPayout{UPIID: "user@okbank"}}

func newLedger(diamonds uint64) *ledger.Ledger {
	l := ledger.New(currency.NewModel(100, 500), entity.Ledger{})
	l.Credit(diamonds)
	return l
}

func TestRequestBelowThreshold(t *testing.T) {
	l := newLedger(49999)
	w := cashout.NewWorkflow(nil)

	_, err := w.Request(l)
	require.ErrorIs(t, err, errorx.New(errorx.BelowThreshold, ""))
	require.Equal(t, entity.CashoutIdle, w.State())
	require.Equal(t, uint64(49999), l.DiamondBalance())
	require.Equal(t, uint64(1), l.Revision())
}

func TestFullCycle(t *testing.T) {
	l := newLedger(60000)
	w := cashout.NewWorkflow(nil)

	prefill, err := w.Request(l)
	require.NoError(t, err)
	require.Nil(t, prefill)
	require.Equal(t, entity.CashoutFormOpen, w.State())

	tx, err := w.Submit(l, upi, true)
	require.NoError(t, err)
	require.NotEmpty(t, tx.ID)
	require.True(t, decimal.NewFromInt(600).Equal(tx.Amount))
	require.Equal(t, uint64(60000), tx.Diamonds)
	require.Equal(t, entity.CashoutProcessing, w.State())

	// A credit landing during the settlement delay is kept.
	l.Credit(250)

	settled := w.Settle(l)
	require.NotNil(t, settled)
	require.True(t, decimal.NewFromInt(600).Equal(settled.Amount))
	require.Equal(t, uint64(250), l.DiamondBalance())
	require.True(t, decimal.NewFromInt(600).Equal(l.LifetimeEarnings()))
	require.Equal(t, entity.CashoutIdle, w.State())
	require.Nil(t, w.InFlight())

	// Remembered details prefill the next form.
	l.Credit(50000)
	prefill, err = w.Request(l)
	require.NoError(t, err)
	require.Equal(t, &upi, prefill)
}

func TestSubmitForgetsDetails(t *testing.T) {
	l := newLedger(60000)
	w := cashout.NewWorkflow(&upi)

	_, err := w.Request(l)
	require.NoError(t, err)

	_, err = w.Submit(l, upi, false)
	require.NoError(t, err)
	require.Nil(t, w.Remembered())
}

func TestSubmitRequiresOpenForm(t *testing.T) {
	l := newLedger(60000)
	w := cashout.NewWorkflow(nil)

	_, err := w.Submit(l, upi, false)
	require.ErrorIs(t, err, errorx.New(errorx.InvalidState, ""))
	require.Equal(t, entity.CashoutIdle, w.State())
}

func TestCancel(t *testing.T) {
	l := newLedger(60000)
	w := cashout.NewWorkflow(nil)

	_, err := w.Request(l)
	require.NoError(t, err)
	require.NoError(t, w.Cancel())
	require.Equal(t, entity.CashoutIdle, w.State())

	_, err = w.Request(l)
	require.NoError(t, err)
	_, err = w.Submit(l, upi, false)
	require.NoError(t, err)

	require.Error(t, w.Cancel())
	_, err = w.Request(l)
	require.ErrorIs(t, err, errorx.New(errorx.InvalidState, ""))
	require.Equal(t, entity.CashoutProcessing, w.State())
}

func TestSettleWithoutTransaction(t *testing.T) {
	w := cashout.NewWorkflow(nil)
	require.Nil(t, w.Settle(newLedger(60000)))
}
