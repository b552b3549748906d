// Package kernel holds the value objects shared by every part of the domain
// model:
//   - UUID: identifiers for lifecycle events and generated references
//   - Money: non-negative decimal amounts for prices and payments
//   - Coordinates: positions reported while an order is on its way
//
// All of them are immutable, must be built through their constructors and
// expose Validate to detect zero values.
package kernel
