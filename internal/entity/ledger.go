package entity

import "github.com/shopspring/decimal"

type Ledger struct {
	DiamondBalance   uint64          `json:"diamondBalance"`
	LifetimeEarnings decimal.Decimal `json:"lifetimeEarnings"`

	// Revision increases on every balance change.
	Revision uint64 `json:"revision"`
}

type ReferralState struct {
	Code             string `json:"code"`
	Count            uint64 `json:"count"`
	CommissionEarned uint64 `json:"commissionEarned"`
}
