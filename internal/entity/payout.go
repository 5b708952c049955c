package entity

import "github.com/RKmodz24/studio/pkg/enum"

type PayoutMethod string

var (
	PayoutBank   = enum.New(PayoutMethod("bank"))
	PayoutUPI    = enum.New(PayoutMethod("upi"))
	PayoutPayPal = enum.New(PayoutMethod("paypal"))
)

type BankPayout struct {
	AccountHolderName string `json:"accountHolderName" mapstructure:"accountHolderName" structs:"accountHolderName"`
	AccountNumber     string `json:"accountNumber" mapstructure:"accountNumber" structs:"accountNumber"`
	IFSCCode          string `json:"ifscCode" mapstructure:"ifscCode" structs:"ifscCode"`
	BankName          string `json:"bankName" mapstructure:"bankName" structs:"bankName"`
}

type UPIPayout struct {
	UPIID string `json:"upiId" mapstructure:"upiId" structs:"upiId"`
}

type PayPalPayout struct {
	Email string `json:"paypalEmail" mapstructure:"paypalEmail" structs:"paypalEmail"`
}

// PayoutDetails is a tagged variant, exactly one of Bank, UPI and PayPal is
// set according to Method.
type PayoutDetails struct {
	Method PayoutMethod  `json:"payoutType"`
	Bank   *BankPayout   `json:"bank,omitempty"`
	UPI    *UPIPayout    `json:"upi,omitempty"`
	PayPal *PayPalPayout `json:"paypal,omitempty"`
}
