package payout

import (
	"net/mail"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/RKmodz24/studio/internal/entity"
	"github.com/RKmodz24/studio/pkg/enum"
	"github.com/RKmodz24/studio/pkg/errorx"
	"github.com/fatih/structs"
	"github.com/mitchellh/mapstructure"
)

const MethodField = "payoutType"

var (
	accountNumberRegex = regexp.MustCompile(`^\d{9,18}$`)
	ifscRegex          = regexp.MustCompile(`^[A-Z]{4}0[A-Z0-9]{6}$`)
	upiRegex           = regexp.MustCompile(`^[\w.-]+@[\w.-]+$`)
)

// Decode reads the flat form submitted by the client, e.g.
// {"payoutType":"upi","upiId":"name@bank"}.
func Decode(data map[string]any) (entity.PayoutDetails, error) {
	rawMethod, _ := data[MethodField].(string)
	method, err := enum.ToEnum[entity.PayoutMethod](rawMethod)
	if err != nil {
		return entity.PayoutDetails{}, errorx.New(errorx.BadRequest, "Invalid payout type %q", rawMethod)
	}

	details := entity.PayoutDetails{Method: method}
	var target any
	switch method {
	case entity.PayoutBank:
		details.Bank = &entity.BankPayout{}
		target = details.Bank
	case entity.PayoutUPI:
		details.UPI = &entity.UPIPayout{}
		target = details.UPI
	case entity.PayoutPayPal:
		details.PayPal = &entity.PayPalPayout{}
		target = details.PayPal
	}

	if err := mapstructure.Decode(data, target); err != nil {
		return entity.PayoutDetails{}, errorx.New(errorx.BadRequest, "Invalid payout details")
	}

	return details, nil
}

// Encode is the inverse of Decode.
func Encode(details entity.PayoutDetails) map[string]any {
	var result map[string]any
	switch details.Method {
	case entity.PayoutBank:
		if details.Bank != nil {
			result = structs.Map(details.Bank)
		}
	case entity.PayoutUPI:
		if details.UPI != nil {
			result = structs.Map(details.UPI)
		}
	case entity.PayoutPayPal:
		if details.PayPal != nil {
			result = structs.Map(details.PayPal)
		}
	}

	if result == nil {
		result = map[string]any{}
	}

	result[MethodField] = string(details.Method)
	return result
}

// Validate enforces the format rules of every payout method. Exactly one
// variant must be populated.
func Validate(details entity.PayoutDetails) error {
	populated := 0
	for _, v := range []bool{details.Bank != nil, details.UPI != nil, details.PayPal != nil} {
		if v {
			populated++
		}
	}

	if populated != 1 {
		return errorx.New(errorx.BadRequest, "Exactly one payout method must be provided")
	}

	switch details.Method {
	case entity.PayoutBank:
		if details.Bank == nil {
			break
		}
		return validateBank(*details.Bank)

	case entity.PayoutUPI:
		if details.UPI == nil {
			break
		}
		if !upiRegex.MatchString(details.UPI.UPIID) {
			return errorx.New(errorx.BadRequest, "Please enter a valid UPI ID")
		}
		return nil

	case entity.PayoutPayPal:
		if details.PayPal == nil {
			break
		}
		if !ValidEmail(details.PayPal.Email) {
			return errorx.New(errorx.BadRequest, "Please enter a valid PayPal email")
		}
		return nil
	}

	return errorx.New(errorx.BadRequest, "Payout details do not match the payout type")
}

// ValidEmail accepts a bare address, without display name or brackets.
func ValidEmail(email string) bool {
	if _, err := mail.ParseAddress(email); err != nil {
		return false
	}

	return strings.Contains(email, "@") && !strings.ContainsAny(email, " <>")
}

func validateBank(bank entity.BankPayout) error {
	if utf8.RuneCountInString(strings.TrimSpace(bank.AccountHolderName)) < 2 {
		return errorx.New(errorx.BadRequest, "Account holder name must be at least 2 characters")
	}

	if !accountNumberRegex.MatchString(bank.AccountNumber) {
		return errorx.New(errorx.BadRequest, "Account number must be 9 to 18 digits")
	}

	if !ifscRegex.MatchString(bank.IFSCCode) {
		return errorx.New(errorx.BadRequest, "Please enter a valid IFSC code")
	}

	if utf8.RuneCountInString(strings.TrimSpace(bank.BankName)) < 3 {
		return errorx.New(errorx.BadRequest, "Bank name must be at least 3 characters")
	}

	return nil
}
