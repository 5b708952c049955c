package taskregistry

import "github.com/RKmodz24/studio/internal/entity"

// OfferTaskID and WithdrawTaskID are the catalog entries driving the offer
// and cashout flows.
const (
	GameTaskID     = "47"
	OfferTaskID    = "48"
	WithdrawTaskID = "49"
	SupportTaskID  = "50"
)

// SupportPath is appended to the public base url to build the link of the
// support task.
const SupportPath = "/support"

var catalog = []entity.Task{
	{ID: "1", Title: "Daily Check-in", Reward: 100, Type: entity.TaskBasic},
	{ID: "2", Title: "Watch a video ad", Reward: 250, Type: entity.TaskAd},
	{ID: "3", Title: "Rate our App", Reward: 500, Type: entity.TaskBasic},
	{ID: "4", Title: "Complete a survey", Reward: 1000, Type: entity.TaskBasic},
	{ID: "5", Title: "Watch another video ad", Reward: 250, Type: entity.TaskAd},
	{ID: "6", Title: "Share app with a friend", Reward: 300, Type: entity.TaskBasic},
	{ID: "7", Title: "Watch a partner ad", Reward: 250, Type: entity.TaskAd},
	{ID: "8", Title: "Follow us on social media", Reward: 150, Type: entity.TaskBasic},
	{ID: GameTaskID, Title: "Play Ad Game", Reward: 0, Type: entity.TaskGame},
	{ID: "10", Title: "Watch a tutorial video", Reward: 200, Type: entity.TaskAd},
	{ID: "11", Title: "Enable push notifications", Reward: 400, Type: entity.TaskBasic},
	{ID: "12", Title: "Complete your profile", Reward: 200, Type: entity.TaskBasic},
	{ID: "13", Title: "Try a new feature", Reward: 150, Type: entity.TaskBasic},
	{ID: "14", Title: "Watch a sponsored video", Reward: 300, Type: entity.TaskAd},
	{ID: "15", Title: "Leave a review", Reward: 450, Type: entity.TaskBasic},
	{ID: "16", Title: "Refer a user", Reward: 1500, Type: entity.TaskBasic},
	{ID: "17", Title: "View a special offer", Reward: 220, Type: entity.TaskAd},
	{ID: "18", Title: "Link your email", Reward: 350, Type: entity.TaskBasic},
	{ID: "19", Title: "Weekly challenge", Reward: 750, Type: entity.TaskBasic},
	{ID: "20", Title: "Engage with community post", Reward: 80, Type: entity.TaskBasic},
	{ID: "21", Title: "Watch short ad clip", Reward: 150, Type: entity.TaskAd},
	{ID: "22", Title: "Join our newsletter", Reward: 250, Type: entity.TaskBasic},
	{ID: "23", Title: "Login for 3 consecutive days", Reward: 500, Type: entity.TaskBasic},
	{ID: "24", Title: "Watch a rewarded ad", Reward: 250, Type: entity.TaskAd},
	{ID: "25", Title: "Achieve a milestone", Reward: 1200, Type: entity.TaskBasic},
	{ID: "26", Title: "Complete 5 tasks", Reward: 400, Type: entity.TaskBasic},
	{ID: "27", Title: "Watch 3 video ads", Reward: 600, Type: entity.TaskAd},
	{ID: "28", Title: "Update your bio", Reward: 50, Type: entity.TaskBasic},
	{ID: "29", Title: "Verify your phone number", Reward: 300, Type: entity.TaskBasic},
	{ID: "30", Title: "Watch a featured ad", Reward: 350, Type: entity.TaskAd},
	{ID: "31", Title: "Participate in a poll", Reward: 70, Type: entity.TaskBasic},
	{ID: "32", Title: "Daily spin wheel", Reward: 120, Type: entity.TaskBasic},
	{ID: "33", Title: "Watch an interactive ad", Reward: 400, Type: entity.TaskAd},
	{ID: "34", Title: "Set a profile picture", Reward: 100, Type: entity.TaskBasic},
	{ID: "35", Title: "Reach level 5", Reward: 1000, Type: entity.TaskBasic},
	{ID: "36", Title: "Watch a long-form ad", Reward: 500, Type: entity.TaskAd},
	{ID: "37", Title: "Invite 3 friends", Reward: 1000, Type: entity.TaskBasic},
	{ID: "38", Title: "Complete a quiz", Reward: 150, Type: entity.TaskBasic},
	{ID: "39", Title: "Watch a brand story ad", Reward: 300, Type: entity.TaskAd},
	{ID: "40", Title: "Join a challenge", Reward: 600, Type: entity.TaskBasic},
	{ID: "41", Title: "Read an article", Reward: 60, Type: entity.TaskBasic},
	{ID: "42", Title: "Login for 7 consecutive days", Reward: 1200, Type: entity.TaskBasic},
	{ID: "43", Title: "Watch a premium ad", Reward: 500, Type: entity.TaskAd},
	{ID: "44", Title: "Test a new game", Reward: 800, Type: entity.TaskBasic},
	{ID: "45", Title: "Complete all daily tasks", Reward: 1500, Type: entity.TaskBasic},
	{ID: entity.ReferralTaskID, Title: "Apply a referral code", Reward: 500, Type: entity.TaskBasic},
	{
		ID:          OfferTaskID,
		Title:       "Install Rapido & Ride",
		Reward:      0,
		Type:        entity.TaskOffer,
		OfferID:     "install-jar-app",
		Description: "Complete all steps to earn 2916 diamonds",
		Icon:        "/app-icon.png",
	},
	{
		ID:          WithdrawTaskID,
		Title:       "Withdraw your earnings",
		Reward:      0,
		Type:        entity.TaskWithdraw,
		Description: "Cash out once you reach the minimum payout",
	},
	{
		ID:     SupportTaskID,
		Title:  "Visit our support page",
		Reward: 50,
		Type:   entity.TaskLink,
	},
}

// Catalog returns a fresh copy of the static catalog, every task incomplete.
func Catalog() []entity.Task {
	return ResetAll(catalog)
}
