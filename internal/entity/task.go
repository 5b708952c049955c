package entity

import "github.com/RKmodz24/studio/pkg/enum"

type TaskType string

var (
	TaskBasic    = enum.New(TaskType("basic"))
	TaskAd       = enum.New(TaskType("ad"))
	TaskGame     = enum.New(TaskType("game"))
	TaskOffer    = enum.New(TaskType("offer"))
	TaskWithdraw = enum.New(TaskType("withdraw"))
	TaskLink     = enum.New(TaskType("link"))
)

type TaskStatus string

var (
	TaskIncomplete = enum.New(TaskStatus("incomplete"))
	TaskProcessing = enum.New(TaskStatus("processing"))
	TaskCompleted  = enum.New(TaskStatus("completed"))
)

// ReferralTaskID is the catalog id of the "apply a referral code" task.
const ReferralTaskID = "46"

type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Reward      uint64     `json:"reward"`
	Type        TaskType   `json:"type"`
	Status      TaskStatus `json:"status"`
	OfferID     string     `json:"offerId,omitempty"`
	Description string     `json:"description,omitempty"`
	Icon        string     `json:"icon,omitempty"`
	Link        string     `json:"link,omitempty"`
}

func (t Task) IsReferralApplication() bool {
	return t.ID == ReferralTaskID
}
