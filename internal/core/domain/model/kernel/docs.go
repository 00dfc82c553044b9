// Package kernel provides the shared domain primitives of the fulfillment service:
//   - UUID: identifier value object for orders, listings, buyers and sellers
//   - Address: structured or legacy free-text shipping address
//   - Money: immutable captured payment amount
//   - Actor: the identity and role on whose behalf a change is made
//
// All value objects are immutable and carry a constructor guard, so zero
// values fail validation.
package kernel
