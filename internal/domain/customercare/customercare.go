package customercare

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/RKmodz24/studio/config"
	"github.com/RKmodz24/studio/pkg/enum"
	"github.com/shopspring/decimal"
)

type Role string

var (
	RoleUser  = enum.New(Role("user"))
	RoleModel = enum.New(Role("model"))
)

type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

type Request struct {
	Query   string    `json:"query"`
	History []Message `json:"history"`
}

type Response struct {
	Response string `json:"response"`
}

type topic struct {
	keywords []string
	answer   string
}

// Agent answers questions about the app from a fixed set of topics. The
// amounts in the answers follow the reward configuration.
type Agent struct {
	topics   []topic
	fallback string
}

func NewAgent(cfg config.RewardConfigs) *Agent {
	commission := decimal.New(int64(cfg.CommissionRateBps), -2).String()

	return &Agent{
		topics: []topic{
			{
				keywords: []string{"convert", "conversion", "rate", "worth", "value", "inr", "rupee", "rupees"},
				answer:   fmt.Sprintf("%d diamonds are worth 1 INR. Your balance is shown in both.", cfg.DiamondsPerUnit),
			},
			{
				keywords: []string{"cashout", "cash", "withdraw", "withdrawal", "payout", "minimum", "redeem"},
				answer: fmt.Sprintf(
					"You can cash out once your balance reaches %d INR, that is %d diamonds. "+
						"Open the withdraw task and fill the payout form. The transfer is processed in a few seconds.",
					cfg.MinimumPayout, cfg.MinimumPayout*cfg.DiamondsPerUnit),
			},
			{
				keywords: []string{"upi", "bank", "ifsc", "account", "method", "transfer"},
				answer: "Payouts are sent by bank transfer or UPI. A bank transfer needs the account holder name, " +
					"the account number, the IFSC code and the bank name. UPI only needs your UPI id.",
			},
			{
				keywords: []string{"refer", "referral", "friend", "friends", "invite", "commission", "code"},
				answer: fmt.Sprintf(
					"Share your referral link with your friends. Once a friend applies your code you earn "+
						"%s%% of every task reward as a commission.", commission),
			},
			{
				keywords: []string{"earn", "task", "tasks", "diamond", "diamonds", "ad", "ads", "game", "video", "offer"},
				answer: "Complete tasks to earn diamonds. Watching ads, playing the ad game and claiming offers " +
					"earn more, and every watched ad is replaced by a new one.",
			},
			{
				keywords: []string{"hi", "hello", "hey", "thanks", "thank"},
				answer:   "Hello! Ask me anything about earning diamonds, cashing out or inviting friends.",
			},
		},
		fallback: "I can help you with tasks, diamonds, cashouts and referrals. Could you tell me more about your question?",
	}
}

// Answer is exported to the rpc server as <name>_answer. A query matching no
// topic is answered from the latest user message of the history.
func (a *Agent) Answer(ctx context.Context, req Request) (Response, error) {
	if strings.TrimSpace(req.Query) == "" {
		return Response{}, fmt.Errorf("empty query")
	}

	for _, m := range req.History {
		if _, err := enum.ToEnum[Role](string(m.Role)); err != nil {
			return Response{}, fmt.Errorf("invalid role %q", m.Role)
		}
	}

	if t := a.match(req.Query); t != nil {
		return Response{Response: t.answer}, nil
	}

	for i := len(req.History) - 1; i >= 0; i-- {
		if req.History[i].Role != RoleUser {
			continue
		}

		if t := a.match(req.History[i].Content); t != nil {
			return Response{Response: t.answer}, nil
		}
		break
	}

	return Response{Response: a.fallback}, nil
}

// match returns the topic with the most keywords in text. Ties go to the
// first topic.
func (a *Agent) match(text string) *topic {
	words := map[string]bool{}
	for _, w := range strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	}) {
		words[w] = true
	}

	var best *topic
	var bestScore int
	for i := range a.topics {
		score := 0
		for _, k := range a.topics[i].keywords {
			if words[k] {
				score++
			}
		}

		if score > bestScore {
			best, bestScore = &a.topics[i], score
		}
	}

	return best
}
