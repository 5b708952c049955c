package customercare_test

import (
	"context"
	"testing"

	"github.com/RKmodz24/studio/config"
	"github.com/RKmodz24/studio/internal/domain/customercare"
	"github.com/stretchr/testify/require"
)

func TestAnswer(t *testing.T) {
	agent := customercare.NewAgent(config.Default().Reward)

	testCases := []struct {
		name     string
		query    string
		contains string
	}{
		{
			name:     "conversion",
			query:    "How much are 100 diamonds worth in rupees?",
			contains: "100 diamonds are worth 1 INR",
		},
		{
			name:     "cashout",
			query:    "When can I withdraw?",
			contains: "500 INR, that is 50000 diamonds",
		},
		{
			name:     "payout method",
			query:    "Can I get paid by UPI?",
			contains: "bank transfer or UPI",
		},
		{
			name:     "referral",
			query:    "How does the referral commission work",
			contains: "20% of every task reward",
		},
		{
			name:     "earning",
			query:    "How do I earn more?",
			contains: "Complete tasks to earn diamonds",
		},
		{
			name:     "greeting",
			query:    "Hello",
			contains: "Hello!",
		},
		{
			name:     "unknown",
			query:    "What is the weather like?",
			contains: "Could you tell me more",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			resp, err := agent.Answer(context.Background(), customercare.Request{Query: tc.query})
			require.NoError(t, err)
			require.Contains(t, resp.Response, tc.contains)
		})
	}
}

func TestAnswerFollowUp(t *testing.T) {
	agent := customercare.NewAgent(config.Default().Reward)

	resp, err := agent.Answer(context.Background(), customercare.Request{
		Query: "How long does it take?",
		History: []customercare.Message{
			{Role: customercare.RoleUser, Content: "How do I withdraw my money?"},
			{Role: customercare.RoleModel, Content: "Open the withdraw task."},
		},
	})
	require.NoError(t, err)
	require.Contains(t, resp.Response, "processed in a few seconds")
}

func TestAnswerFollowsConfig(t *testing.T) {
	cfg := config.Default().Reward
	cfg.MinimumPayout = 100
	cfg.CommissionRateBps = 1250

	agent := customercare.NewAgent(cfg)

	resp, err := agent.Answer(context.Background(), customercare.Request{Query: "minimum payout?"})
	require.NoError(t, err)
	require.Contains(t, resp.Response, "100 INR, that is 10000 diamonds")

	resp, err = agent.Answer(context.Background(), customercare.Request{Query: "invite a friend"})
	require.NoError(t, err)
	require.Contains(t, resp.Response, "12.5% of every task reward")
}

func TestAnswerInvalid(t *testing.T) {
	agent := customercare.NewAgent(config.Default().Reward)

	_, err := agent.Answer(context.Background(), customercare.Request{Query: "  "})
	require.Error(t, err)

	_, err = agent.Answer(context.Background(), customercare.Request{
		Query:   "hello",
		History: []customercare.Message{{Role: "assistant", Content: "hi"}},
	})
	require.Error(t, err)
}
