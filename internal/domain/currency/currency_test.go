package currency_test

import (
	"testing"

	"github.com/RKmodz24/studio/internal/domain/currency"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestToCurrency(t *testing.T) {
	m := currency.NewModel(100, 500)

	require.True(t, decimal.NewFromInt(600).Equal(m.ToCurrency(60000)))
	require.True(t, decimal.RequireFromString("29.16").Equal(m.ToCurrency(2916)))
	require.True(t, decimal.RequireFromString("0.01").Equal(m.ToCurrency(1)))
	require.True(t, m.ToCurrency(0).IsZero())
}

func TestIsEligible(t *testing.T) {
	m := currency.NewModel(100, 500)

	require.False(t, m.IsEligible(0))
	require.False(t, m.IsEligible(49999))
	require.True(t, m.IsEligible(50000))
	require.True(t, m.IsEligible(60000))
}

func TestProgress(t *testing.T) {
	m := currency.NewModel(100, 500)

	require.True(t, decimal.NewFromInt(50).Equal(m.Progress(25000)))
	require.True(t, decimal.NewFromInt(100).Equal(m.Progress(60000)))
	require.True(t, m.Progress(0).IsZero())
}

func TestDefaultRate(t *testing.T) {
	m := currency.NewModel(0, 500)
	require.Equal(t, uint64(currency.DefaultDiamondsPerUnit), m.DiamondsPerUnit)
}
