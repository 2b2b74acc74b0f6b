// Package order contains the Order aggregate and the fulfillment state machine.
//
// The Order aggregate is the sole writer of its own state: vendor, picker,
// rider and customer actions arrive as commands, and every status change goes
// through the guarded transition table in status.go. Each successful transition
// appends one immutable entry to the order's event log, which is the audit
// basis for reconstructing why an order is in its current state.
//
// Line items carry their own fulfillment sub-state (unpicked, picked,
// substitution-pending, substitution-resolved, out-of-stock). The order can
// only reach the picked-complete status once no item remains unpicked or
// substitution-pending.
package order
