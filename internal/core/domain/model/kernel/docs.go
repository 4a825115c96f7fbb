// Package kernel contains the shared value objects of the fulfillment domain:
// UUID identifiers, stock-keeping units (SKU), and movement quantities.
//
// All types in this package are immutable value objects. Their zero values are
// invalid; instances must be created through the provided constructors, which
// enforce the domain rules (quantities are strictly positive, SKUs are
// non-empty, identifiers are non-nil). Validate() detects instances that
// bypassed construction, which matters when reconstructing state from
// persistence or binding external input.
package kernel
