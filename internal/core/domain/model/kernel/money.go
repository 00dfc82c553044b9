package kernel

import (
	"errors"
	"fmt"
	"regexp"

	"consignment/internal/pkg/errs"
	"consignment/internal/pkg/guard"
)

var ErrMoneyIsNotConstructed = errors.New("Money must be created via NewMoney constructor")

var currencyPattern = regexp.MustCompile(`^[A-Z]{3}$`)

// Money is an amount in minor units (cents) of an ISO 4217 currency.
type Money struct {
	minorUnits int64
	currency   string
	guard      guard.ConstructorGuard
}

// NewMoney validates that the amount is positive and the currency is a
// three-letter upper-case code.
func NewMoney(minorUnits int64, currency string) (Money, error) {
	if minorUnits <= 0 {
		return Money{}, errs.NewValueIsInvalidErrorWithCause(
			"amount is invalid", fmt.Errorf("%d is not greater than 0", minorUnits))
	}
	if !currencyPattern.MatchString(currency) {
		return Money{}, errs.NewValueIsInvalidErrorWithCause(
			"currency is invalid", fmt.Errorf("%q is not an ISO 4217 code", currency))
	}
	return Money{minorUnits: minorUnits, currency: currency, guard: guard.NewConstructorGuard()}, nil
}

func (m Money) MinorUnits() int64 {
	return m.minorUnits
}

func (m Money) Currency() string {
	return m.currency
}

func (m Money) Validate() error {
	return m.guard.Validate(ErrMoneyIsNotConstructed)
}

func (m Money) String() string {
	return fmt.Sprintf("%d.%02d %s", m.minorUnits/100, m.minorUnits%100, m.currency)
}
