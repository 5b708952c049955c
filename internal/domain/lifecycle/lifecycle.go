package lifecycle

import (
	"time"

	"github.com/RKmodz24/studio/config"
	"github.com/RKmodz24/studio/internal/entity"
	"github.com/RKmodz24/studio/pkg/enum"
)

type ActionType string

var (
	// Ignore is returned for a task which is not incomplete.
	Ignore       = enum.New(ActionType("ignore"))
	OpenGame     = enum.New(ActionType("open_game"))
	OpenOffer    = enum.New(ActionType("open_offer"))
	OpenLink     = enum.New(ActionType("open_link"))
	StartCashout = enum.New(ActionType("start_cashout"))
	Complete     = enum.New(ActionType("complete"))
)

// Action is what a completion request of a task leads to.
type Action struct {
	Type ActionType `json:"type"`

	// Delay before the completion is applied, only meaningful for Complete.
	Delay time.Duration `json:"delay,omitempty"`

	OfferID string `json:"offerId,omitempty"`
	Link    string `json:"link,omitempty"`
}

type Delays struct {
	Basic time.Duration
	Ad    time.Duration
}

func DelaysFromConfig(cfg config.RewardConfigs) Delays {
	return Delays{Basic: cfg.BasicDelay, Ad: cfg.AdDelay}
}

// Decide maps a task to the action of its completion request. Only Complete
// and OpenLink transition the task.
func Decide(task entity.Task, delays Delays) Action {
	if task.Status != entity.TaskIncomplete {
		return Action{Type: Ignore}
	}

	switch task.Type {
	case entity.TaskGame:
		return Action{Type: OpenGame}
	case entity.TaskOffer:
		return Action{Type: OpenOffer, OfferID: task.OfferID}
	case entity.TaskLink:
		return Action{Type: OpenLink, Link: task.Link}
	case entity.TaskWithdraw:
		return Action{Type: StartCashout}
	case entity.TaskAd:
		return Action{Type: Complete, Delay: delays.Ad}
	case entity.TaskBasic:
		return Action{Type: Complete, Delay: delays.Basic}
	}

	return Action{Type: Ignore}
}
