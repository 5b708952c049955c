package entity

import (
	"github.com/RKmodz24/studio/pkg/enum"
	"github.com/shopspring/decimal"
)

type CashoutState string

var (
	CashoutIdle       = enum.New(CashoutState("idle"))
	CashoutFormOpen   = enum.New(CashoutState("form_open"))
	CashoutProcessing = enum.New(CashoutState("processing"))
)

type CashoutTransaction struct {
	ID       string          `json:"id"`
	Amount   decimal.Decimal `json:"amount"`
	Diamonds uint64          `json:"diamonds"`
	Details  PayoutDetails   `json:"details"`
}
