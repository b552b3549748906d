// Package services provides the domain services that decide whether an
// order may change state.
//
// The package includes:
//   - ConsistencyRules: the ordered cross-machine rules (a COMPLETED order is
//     paid and handed over, a CANCELLED order keeps no live records, ...)
//   - TransitionEngine: builds a proposed copy of the order with the change
//     and its cascades applied, then checks the rules against it
//
// Neither service performs I/O or holds state between calls; locking,
// persistence and notification are handled by the application layer.
package services
