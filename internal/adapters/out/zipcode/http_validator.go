// Package zipcode answers whether a shipping postal code is serviceable,
// either by asking an external zip service or by matching local rules.
package zipcode

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"consignment/internal/pkg/errs"
)

const DefaultHTTPTimeout = 3 * time.Second

// HTTPValidator calls GET {baseURL}/zip/{code}. The service answers 200 with
// {"valid": bool}, or 404 for a code it does not know, which counts as not
// serviceable. Anything else is an error.
type HTTPValidator struct {
	baseURL string
	client  *http.Client
}

type zipResponse struct {
	Valid bool `json:"valid"`
}

func NewHTTPValidator(baseURL string, client *http.Client) (*HTTPValidator, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, errs.NewValueIsInvalidErrorWithCause("zip service url", fmt.Errorf("%q is not an absolute URL", baseURL))
	}
	if client == nil {
		client = &http.Client{Timeout: DefaultHTTPTimeout}
	}
	return &HTTPValidator{baseURL: strings.TrimRight(baseURL, "/"), client: client}, nil
}

func (v *HTTPValidator) Validate(ctx context.Context, postalCode string) (bool, error) {
	postalCode = strings.TrimSpace(postalCode)
	if postalCode == "" {
		return false, errs.NewValueIsRequiredError("postalCode")
	}

	endpoint := fmt.Sprintf("%s/zip/%s", v.baseURL, url.PathEscape(postalCode))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return false, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := v.client.Do(req)
	if err != nil {
		return false, fmt.Errorf("zip service request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch resp.StatusCode {
	case http.StatusOK:
		var body zipResponse
		if err = json.NewDecoder(io.LimitReader(resp.Body, 1<<16)).Decode(&body); err != nil {
			return false, fmt.Errorf("zip service response: %w", err)
		}
		return body.Valid, nil
	case http.StatusNotFound:
		return false, nil
	default:
		return false, fmt.Errorf("zip service responded %d", resp.StatusCode)
	}
}
