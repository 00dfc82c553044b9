package order

import (
	"fmt"

	"consignment/internal/pkg/errs"
)

// ZipStatus is the cached result of the serviceability check on the
// shipping postal code. It is informational and never gates a transition.
type ZipStatus int

const (
	ZipUnchecked ZipStatus = iota
	ZipValid
	ZipInvalid
	// ZipUnknown is reported when the validator could not answer. It is
	// never persisted so a later read retries.
	ZipUnknown
)

func getZipStatusStrings() map[ZipStatus]string {
	return map[ZipStatus]string{
		ZipUnchecked: "unchecked",
		ZipValid:     "valid",
		ZipInvalid:   "invalid",
		ZipUnknown:   "unknown",
	}
}

func (z ZipStatus) String() string {
	if s, ok := getZipStatusStrings()[z]; ok {
		return s
	}
	return "unknown"
}

func (z ZipStatus) Validate() error {
	if _, ok := getZipStatusStrings()[z]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("zip status is invalid", fmt.Errorf("%d is not a valid zip status", z))
	}
	return nil
}

// ZipStatusFromResult maps a validator answer to a status.
func ZipStatusFromResult(valid bool) ZipStatus {
	if valid {
		return ZipValid
	}
	return ZipInvalid
}
