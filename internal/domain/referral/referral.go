package referral

import (
	"fmt"
	"strings"

	"github.com/RKmodz24/studio/internal/entity"
	"github.com/RKmodz24/studio/pkg/crypto"
)

const (
	// DefaultRateBps is 20% expressed in basis points.
	DefaultRateBps = 2000
	CodeLength     = 6
)

// ApplyCommission returns floor(baseReward * rateBps / 10000) when the user
// has at least one referral, else 0.
func ApplyCommission(baseReward, referralCount, rateBps uint64) uint64 {
	if referralCount == 0 {
		return 0
	}

	return baseReward * rateBps / 10000
}

type Engine struct {
	rateBps uint64
}

func NewEngine(rateBps uint64) *Engine {
	return &Engine{rateBps: rateBps}
}

// Apply computes the commission of a completed task and accumulates it into
// the referral state. The caller credits the returned commission.
func (e *Engine) Apply(state *entity.ReferralState, task entity.Task) uint64 {
	if task.IsReferralApplication() {
		return 0
	}

	commission := ApplyCommission(task.Reward, state.Count, e.rateBps)
	state.CommissionEarned += commission
	return commission
}

// RecordApplication handles the completion of the "apply a referral code"
// task.
func (e *Engine) RecordApplication(state *entity.ReferralState) {
	state.Count++
}

// Reset is called on cashout settlement. Only the commission counter is
// cleared, referrals keep paying commission after a payout.
func (e *Engine) Reset(state *entity.ReferralState) {
	state.CommissionEarned = 0
}

func GenerateCode() string {
	return crypto.GenerateCode(CodeLength)
}

func Link(baseURL, code string) string {
	return fmt.Sprintf("%s/?ref=%s", strings.TrimSuffix(baseURL, "/"), code)
}
