// Package inventory contains the inventory ledger of the fulfillment domain.
//
// A Record tracks the available/reserved/in-production balances of one SKU
// and is the only component allowed to mutate them. All balance movement
// goes through four verbs: Reserve (allocation), Release (cancellation),
// Consume (dispatch), and Restock (goods receipt), plus the production
// counters. No other component may write available or reserved directly;
// the allocation coordinator pairs these verbs with the matching order line
// counter movements.
package inventory
