// Package services holds domain logic that spans the Order aggregate and the
// scheduling calendar: slot offering and confirmation under per-slot
// capacity, and the rule that promotes delivered orders to FINALIZED.
//
// Services are stateless apart from their configuration. They never touch
// storage; callers load occupancy counts and orders, hold the required locks,
// and persist the result.
package services
