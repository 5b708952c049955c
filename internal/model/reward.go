package model

type Task struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Reward      uint64 `json:"reward"`
	Type        string `json:"type"`
	Status      string `json:"status"`
	OfferID     string `json:"offer_id,omitempty"`
	Description string `json:"description,omitempty"`
	Icon        string `json:"icon,omitempty"`
	Link        string `json:"link,omitempty"`
}

type Referral struct {
	Code               string `json:"code"`
	Link               string `json:"link"`
	Count              uint64 `json:"count"`
	CommissionEarned   uint64 `json:"commission_earned"`
	CommissionCurrency string `json:"commission_currency"`
}

type State struct {
	DiamondBalance   uint64          `json:"diamond_balance"`
	CurrencyBalance  string          `json:"currency_balance"`
	LifetimeEarnings string          `json:"lifetime_earnings"`
	MinimumPayout    string          `json:"minimum_payout"`
	PayoutProgress   string          `json:"payout_progress"`
	Eligible         bool            `json:"eligible"`
	Revision         uint64          `json:"revision"`
	Tasks            []Task          `json:"tasks"`
	Referral         Referral        `json:"referral"`
	CashoutState     string          `json:"cashout_state"`
	PendingCashout   *PendingCashout `json:"pending_cashout,omitempty"`
	AdsWatched       uint64          `json:"ads_watched"`
	GameRewarded     uint64          `json:"game_rewarded"`
	IsGuest          bool            `json:"is_guest"`
}

type PendingCashout struct {
	TransactionID string `json:"transaction_id"`
	Amount        string `json:"amount"`
	Diamonds      uint64 `json:"diamonds"`
}

type GetStateRequest struct{}

type GetStateResponse State

type CompleteTaskRequest struct {
	TaskID string `json:"task_id"`
}

type CompleteTaskResponse struct {
	Action  string `json:"action"`
	DelayMS int64  `json:"delay_ms,omitempty"`
	OfferID string `json:"offer_id,omitempty"`
	Link    string `json:"link,omitempty"`
}

type ClaimGameRewardRequest struct {
	Amount uint64 `json:"amount"`
}

type ClaimGameRewardResponse struct {
	Credited       uint64 `json:"credited"`
	DiamondBalance uint64 `json:"diamond_balance"`
}

type SurpriseBonusRequest struct{}

type SurpriseBonusResponse struct {
	ShowAd  bool   `json:"show_ad"`
	Reason  string `json:"reason"`
	Amount  uint64 `json:"amount"`
	DelayMS int64  `json:"delay_ms,omitempty"`
}

type RequestCashoutRequest struct{}

type RequestCashoutResponse struct {
	Amount string `json:"amount"`

	// Prefill is the flat form of the remembered payout details.
	Prefill map[string]any `json:"prefill,omitempty"`

	SignupRequired bool `json:"signup_required"`
}

type SubmitCashoutRequest struct {
	Details  map[string]any `json:"details"`
	Remember bool           `json:"remember"`
}

type SubmitCashoutResponse struct {
	TransactionID     string `json:"transaction_id"`
	Amount            string `json:"amount"`
	Diamonds          uint64 `json:"diamonds"`
	SettlementDelayMS int64  `json:"settlement_delay_ms"`
}

type CancelCashoutRequest struct{}

type CancelCashoutResponse struct{}

type GetReferralRequest struct{}

type GetReferralResponse Referral

type SearchTasksRequest struct {
	Q      string `json:"q"`
	Offset int    `json:"offset"`
	Limit  int    `json:"limit"`
}

type SearchTasksResponse struct {
	Tasks []Task `json:"tasks"`
}
