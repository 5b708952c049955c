package entity

import "github.com/RKmodz24/studio/pkg/enum"

type OfferStatus string

var (
	OfferUnclaimed = enum.New(OfferStatus("unclaimed"))
	OfferPending   = enum.New(OfferStatus("pending"))
)

type OfferStep struct {
	Name      string `json:"name"`
	Reward    uint64 `json:"reward"`
	Completed bool   `json:"completed"`
}

type Offer struct {
	ID         string      `json:"id"`
	Title      string      `json:"title"`
	AppIcon    string      `json:"appIcon"`
	Link       string      `json:"link"`
	Disclaimer string      `json:"disclaimer"`
	Steps      []OfferStep `json:"steps"`
}

func (o Offer) TotalDiamonds() uint64 {
	var total uint64
	for _, s := range o.Steps {
		total += s.Reward
	}
	return total
}
