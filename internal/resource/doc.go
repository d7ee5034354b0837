// Package resource gates background maintenance work.
//
// A Controller hands out a bounded number of background worker slots and
// optionally enforces a minimum interval between jobs. The index uses it so
// that at most one automatic rebalance is pending at a time and rebalances
// are not scheduled back to back under a heavy write load.
package resource
