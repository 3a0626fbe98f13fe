// Package orderbook implements the in-memory limit order book: a
// price-indexed pair of red-black trees (one per side), intrusive
// time-ordered queues at each price level, an O(1) order lookup, and a
// pooled allocator for order records. It replays LOBSTER-style mutation
// primitives (add, cancel, reduce, delete, execute) against a
// price-time-priority book and answers top-of-book and microstructure
// queries.
//
// The book is single-writer and single-threaded: callers must serialize
// their own access, and no method here takes a lock.
package orderbook
