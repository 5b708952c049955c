package session

import (
	"github.com/shopspring/decimal"
)

// Credit sources, also used as the metric label.
const (
	SourceTask       = "task"
	SourceCommission = "commission"
	SourceGame       = "game"
	SourceBonus      = "bonus"
)

type RewardCreditedEvent struct {
	UserID   string `json:"user_id"`
	Source   string `json:"source"`
	Amount   uint64 `json:"amount"`
	Balance  uint64 `json:"balance"`
	Revision uint64 `json:"revision"`
}

type TaskCompletedEvent struct {
	UserID     string `json:"user_id"`
	TaskID     string `json:"task_id"`
	TaskType   string `json:"task_type"`
	Reward     uint64 `json:"reward"`
	Commission uint64 `json:"commission"`
}

type CashoutSettledEvent struct {
	UserID        string          `json:"user_id"`
	TransactionID string          `json:"transaction_id"`
	Amount        decimal.Decimal `json:"amount"`
	Diamonds      uint64          `json:"diamonds"`
	Details       map[string]any  `json:"details"`
}
