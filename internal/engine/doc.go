// Package engine implements the matching core: a two-sided price-level
// book, its order and level-data indices, the matching loop and
// time-in-force policy, and the background pruner that sweeps GoodForDay
// orders at end of day. Everything in this package mutates under a single
// book-wide lock; see Book for the concurrency discipline.
package engine
