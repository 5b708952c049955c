package addecision

import (
	"context"
	"fmt"

	"github.com/RKmodz24/studio/pkg/enum"
)

type Frequency string

var (
	FrequencyLow    = enum.New(Frequency("low"))
	FrequencyMedium = enum.New(Frequency("medium"))
	FrequencyHigh   = enum.New(Frequency("high"))
)

// FrequencyOf buckets the number of ads already shown in a session.
func FrequencyOf(adsShown uint64) Frequency {
	switch {
	case adsShown < 2:
		return FrequencyLow
	case adsShown < 5:
		return FrequencyMedium
	default:
		return FrequencyHigh
	}
}

type Request struct {
	UserActivity string    `json:"userActivity"`
	CoinBalance  uint64    `json:"coinBalance"`
	AdFrequency  Frequency `json:"adFrequency"`
}

type Decision struct {
	ShowAd bool   `json:"showAd"`
	Reason string `json:"reason"`
}

// DefaultLowBalance is the coin balance under which an ad is recommended.
const DefaultLowBalance = 1000

type Decider struct {
	lowBalance uint64
}

func NewDecider(lowBalance uint64) *Decider {
	if lowBalance == 0 {
		lowBalance = DefaultLowBalance
	}

	return &Decider{lowBalance: lowBalance}
}

// Decide is exported to the rpc server as <name>_decide.
func (d *Decider) Decide(ctx context.Context, req Request) (Decision, error) {
	if _, err := enum.ToEnum[Frequency](string(req.AdFrequency)); err != nil {
		return Decision{}, fmt.Errorf("invalid ad frequency %q", req.AdFrequency)
	}

	switch {
	case req.AdFrequency == FrequencyHigh:
		return Decision{ShowAd: false, Reason: "Ads have been shown frequently, let the user rest."}, nil
	case req.CoinBalance < d.lowBalance:
		return Decision{ShowAd: true, Reason: "The balance is low, an ad helps the user to earn more."}, nil
	case req.AdFrequency == FrequencyLow:
		return Decision{ShowAd: true, Reason: "Few ads have been shown recently."}, nil
	default:
		return Decision{ShowAd: false, Reason: "The balance is healthy and ads were shown recently."}, nil
	}
}
