package kernel

import (
	"errors"
	"regexp"
	"strings"

	"consignment/internal/pkg/errs"
	"consignment/internal/pkg/guard"
)

var ErrAddressIsNotConstructed = errors.New("Address must be created via NewAddress or NewLegacyAddress constructors")

var legacyPostalCodePattern = regexp.MustCompile(`\b\d{5}(?:-\d{4})?\b`)

// Address is the shipping destination of an order. Orders captured by the
// current checkout carry a structured address; older orders only have the
// free text the buyer typed, which is kept verbatim.
type Address struct {
	street     string
	city       string
	state      string
	postalCode string
	country    string
	raw        string
	guard      guard.ConstructorGuard
}

// NewAddress builds a structured address. Street, city, postal code and
// country are required; state may be empty.
func NewAddress(street, city, state, postalCode, country string) (Address, error) {
	a := Address{
		street:     strings.TrimSpace(street),
		city:       strings.TrimSpace(city),
		state:      strings.TrimSpace(state),
		postalCode: strings.TrimSpace(postalCode),
		country:    strings.TrimSpace(country),
		guard:      guard.NewConstructorGuard(),
	}

	var missing []error
	for name, v := range map[string]string{
		"street":     a.street,
		"city":       a.city,
		"postalCode": a.postalCode,
		"country":    a.country,
	} {
		if v == "" {
			missing = append(missing, errs.NewValueIsRequiredError(name))
		}
	}
	if err := errors.Join(missing...); err != nil {
		return Address{}, err
	}
	return a, nil
}

// NewLegacyAddress wraps a free-text address. The postal code is extracted
// from the text when it contains a US ZIP or ZIP+4.
func NewLegacyAddress(raw string) (Address, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Address{}, errs.NewValueIsRequiredError("address")
	}
	a := Address{raw: raw, guard: guard.NewConstructorGuard()}
	if matches := legacyPostalCodePattern.FindAllString(raw, -1); len(matches) > 0 {
		a.postalCode = matches[len(matches)-1]
	}
	return a, nil
}

func (a Address) IsLegacy() bool {
	return a.raw != ""
}

func (a Address) Street() string     { return a.street }
func (a Address) City() string       { return a.city }
func (a Address) State() string      { return a.state }
func (a Address) Country() string    { return a.country }
func (a Address) Raw() string        { return a.raw }
func (a Address) PostalCode() string { return a.postalCode }

func (a Address) Validate() error {
	return a.guard.Validate(ErrAddressIsNotConstructed)
}

// String renders the address on one line.
func (a Address) String() string {
	if a.IsLegacy() {
		return a.raw
	}
	parts := []string{a.street, a.city}
	if a.state != "" {
		parts = append(parts, a.state+" "+a.postalCode)
	} else {
		parts = append(parts, a.postalCode)
	}
	parts = append(parts, a.country)
	return strings.Join(parts, ", ")
}
