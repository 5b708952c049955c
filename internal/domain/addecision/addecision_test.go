package addecision_test

import (
	"context"
	"testing"

	"github.com/RKmodz24/studio/internal/domain/addecision"
	"github.com/stretchr/testify/require"
)

func TestFrequencyOf(t *testing.T) {
	require.Equal(t, addecision.FrequencyLow, addecision.FrequencyOf(0))
	require.Equal(t, addecision.FrequencyLow, addecision.FrequencyOf(1))
	require.Equal(t, addecision.FrequencyMedium, addecision.FrequencyOf(2))
	require.Equal(t, addecision.FrequencyMedium, addecision.FrequencyOf(4))
	require.Equal(t, addecision.FrequencyHigh, addecision.FrequencyOf(5))
}

func TestDecide(t *testing.T) {
	d := addecision.NewDecider(0)

	testCases := []struct {
		name   string
		req    addecision.Request
		showAd bool
	}{
		{
			name:   "high frequency",
			req:    addecision.Request{CoinBalance: 0, AdFrequency: addecision.FrequencyHigh},
			showAd: false,
		},
		{
			name:   "low balance",
			req:    addecision.Request{CoinBalance: 500, AdFrequency: addecision.FrequencyMedium},
			showAd: true,
		},
		{
			name:   "low frequency",
			req:    addecision.Request{CoinBalance: 5000, AdFrequency: addecision.FrequencyLow},
			showAd: true,
		},
		{
			name:   "healthy balance",
			req:    addecision.Request{CoinBalance: 5000, AdFrequency: addecision.FrequencyMedium},
			showAd: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			decision, err := d.Decide(context.Background(), tc.req)
			require.NoError(t, err)
			require.Equal(t, tc.showAd, decision.ShowAd)
			require.NotEmpty(t, decision.Reason)
		})
	}
}

func TestDecideInvalidFrequency(t *testing.T) {
	_, err := addecision.NewDecider(0).Decide(context.Background(), addecision.Request{AdFrequency: "often"})
	require.Error(t, err)
}
