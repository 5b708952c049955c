package model

type OfferStep struct {
	Name      string `json:"name"`
	Reward    uint64 `json:"reward"`
	Completed bool   `json:"completed"`
}

type Offer struct {
	ID            string      `json:"id"`
	Title         string      `json:"title"`
	AppIcon       string      `json:"app_icon"`
	Link          string      `json:"link"`
	Disclaimer    string      `json:"disclaimer"`
	Steps         []OfferStep `json:"steps"`
	TotalDiamonds uint64      `json:"total_diamonds"`
	TotalCurrency string      `json:"total_currency"`
	Progress      int         `json:"progress"`
	Status        string      `json:"status"`
}

type GetOfferRequest struct {
	ID string `json:"id"`
}

type GetOfferResponse Offer

type ClaimOfferRequest struct {
	ID string `json:"id"`
}

type ClaimOfferResponse struct {
	Link   string `json:"link"`
	Status string `json:"status"`
}

type SearchOffersRequest struct {
	Q      string `json:"q"`
	Offset int    `json:"offset"`
	Limit  int    `json:"limit"`
}

type SearchOffersResponse struct {
	Offers []Offer `json:"offers"`
}
