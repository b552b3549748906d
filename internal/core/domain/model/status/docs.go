// Package status defines the closed vocabulary of the four lifecycles an
// order goes through: the order itself, its payment, and either a delivery or
// a pickup.
//
// Each lifecycle is an int enumeration whose zero value (Unknown) is never
// valid. Wire names are the upper-case constants used by the HTTP contract and
// by emitted events ("READY_FOR_PICKUP", "CASH_PENDING", ...).
//
// The transition graphs are fixed at compile time. IsLegal, IsTerminal and
// IsTerminalSuccess are pure lookups with no hidden state, so they can be
// called from any goroutine:
//
//	from, _ := status.Parse(status.OrderMachine, "PREPARING")
//	to, _ := status.Parse(status.OrderMachine, "READY_FOR_PICKUP")
//	status.IsLegal(status.OrderMachine, from, to) // true
//
// Whether a legal edge is also allowed for a particular order is decided by
// the consistency rules in the domain services package.
package status
