package ports

import "context"

// ZipCodeValidator answers whether a postal code is inside the delivery area.
// The answer is informational; an error means "unknown".
//
//go:generate mockgen -source=zip_code_validator.go -destination=mocks/zip_code_validator_mock.go -package=mocks
type ZipCodeValidator interface {
	Validate(ctx context.Context, postalCode string) (bool, error)
}
