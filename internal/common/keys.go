package common

import (
	"fmt"
	"strings"
)

const (
	StateDiamonds         = "diamonds"
	StateLifetimeEarnings = "lifetimeEarnings"
	StateTasks            = "tasks"
	StateReferralCode     = "referralCode"
	StateReferralCount    = "referralCount"
	StateCommissionEarned = "commissionEarned"
	StatePayoutDetails    = "payoutDetails"
	StateAdsWatched       = "adsWatched"
	StateAdsShown         = "adsShown"
	StateGameRewarded     = "gameRewarded"
	StateOfferStatus      = "offerStatus"
	StateRetiredTasks     = "retiredTasks"
)

// StateKey namespaces a state entry by user, e.g. "goldenhours:u1:diamonds".
func StateKey(prefix, userID, name string) string {
	if prefix == "" {
		return fmt.Sprintf("%s:%s", userID, name)
	}

	return fmt.Sprintf("%s:%s:%s", prefix, userID, name)
}

func FromStateKey(key string) (userID string, name string) {
	parts := strings.Split(key, ":")
	if len(parts) < 2 {
		return "", key
	}

	return parts[len(parts)-2], parts[len(parts)-1]
}

const (
	RewardCreditedTopic   = "reward_credited"
	TaskCompletedTopic    = "task_completed"
	CashoutSettledTopic   = "cashout_settled"
	SupportContactedTopic = "support_contacted"
)

var EventTopics = []string{RewardCreditedTopic, TaskCompletedTopic, CashoutSettledTopic, SupportContactedTopic}

// WebsocketChannel is the hub channel of a user's realtime snapshots.
func WebsocketChannel(userID string) string {
	return fmt.Sprintf("session:%s", userID)
}
