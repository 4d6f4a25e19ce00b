// Package uuid7 generates time-ordered UUIDv7 identifiers using the
// "monotonic random" method of RFC 9562 Section 6.2 (Method 3): a full
// 74-bit random reseed on every new millisecond, and a random counter
// increment for identifiers minted within the same millisecond.
//
// Identifiers produced by a single Generator are strictly increasing
// under byte-wise comparison, even across clock rollback. Ordering
// between independent Generators is not defined.
package uuid7
