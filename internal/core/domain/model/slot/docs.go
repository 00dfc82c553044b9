// Package slot models delivery time slots: a calendar Date combined with one
// of a small fixed set of daily Windows (morning, afternoon, evening).
//
// Calendar holds the scheduling configuration (windows, time zone, rolling
// horizon, per-slot capacity) and answers which slots can be offered at a
// given instant. Capacity is a derived value: the number of orders confirmed
// into a slot is counted by the persistence layer, never stored as a counter.
package slot
