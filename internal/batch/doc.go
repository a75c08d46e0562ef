// Package batch estimates many households at once.
//
// Households are split into fixed-size batches (default 100) that are
// processed sequentially or by a bounded pool of goroutines. Results always
// come back in input order regardless of the concurrency used, and the first
// failing batch cancels the rest.
package batch
