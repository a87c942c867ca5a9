// Package formula implements the physical models of the life cycle: waste
// and dead-stock allocation, the Circular Footprint Formula for recycled
// content, and one function per stage turning masses and processes into
// impacts and consumed energy.
package formula
