// Package errs holds the generic error vocabulary shared by every layer:
// missing and malformed values, out-of-range numbers, unknown identifiers and
// stale versions. Each type unwraps to a sentinel so callers match with
// errors.Is and the HTTP adapter maps them to status codes without knowing
// which component raised them.
package errs
