package zipcode

import (
	"context"
	"regexp"
	"strings"

	"consignment/internal/pkg/errs"
)

var usZipPattern = regexp.MustCompile(`^\d{5}(?:-\d{4})?$`)

// PatternValidator accepts well-formed US ZIP and ZIP+4 codes. When prefixes
// are configured, the code must also start with one of them.
type PatternValidator struct {
	prefixes []string
}

func NewPatternValidator(prefixes []string) *PatternValidator {
	cleaned := make([]string, 0, len(prefixes))
	for _, p := range prefixes {
		if p = strings.TrimSpace(p); p != "" {
			cleaned = append(cleaned, p)
		}
	}
	return &PatternValidator{prefixes: cleaned}
}

func (v *PatternValidator) Validate(_ context.Context, postalCode string) (bool, error) {
	postalCode = strings.TrimSpace(postalCode)
	if postalCode == "" {
		return false, errs.NewValueIsRequiredError("postalCode")
	}
	if !usZipPattern.MatchString(postalCode) {
		return false, nil
	}
	if len(v.prefixes) == 0 {
		return true, nil
	}
	for _, p := range v.prefixes {
		if strings.HasPrefix(postalCode, p) {
			return true, nil
		}
	}
	return false, nil
}
