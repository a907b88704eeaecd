/*
Package slowhash provides a string to string hash table using open addressing
with double hashing.

Table maps string keys to string values with average O(1) insert, search and
remove. All entries live directly in a prime-sized bucket array; on a collision
the table probes an alternate bucket computed from two independent polynomial
hashes of the key.

Basic usage:

	import "github.com/theflywheel/slowhash"

	t := slowhash.New() // 53 buckets
	t.Insert("hello", "world")

	if v, ok := t.Search("hello"); ok {
		fmt.Println("Value:", v)
	}

	t.Remove("hello")

Features:

  - Double hashing over two prime factors (131 and 137 by default)
  - Tombstone deletion that keeps probe chains intact
  - Automatic growth when the load factor exceeds 70%
  - Automatic shrink when the load factor falls below 10%
  - Optional xxhash prober, zap logging and a pluggable Observer

Implementation Details:

Each bucket is empty, occupied by an Entry, or a tombstone left behind by a
remove. Search and remove stop at the first empty bucket and walk past
tombstones. Insert places new keys in the first empty bucket of the probe
sequence.

The probe for attempt i is (ha + i*(hb+1)) mod n where ha and hb are the
key's hashes under the two primes and n is the prime bucket count, so the
first n attempts visit every bucket once.

Growth doubles the base size (the last requested capacity) and rounds it up
to the next prime; shrinking halves it. Either way every live entry is
reinserted into a fresh bucket array, which is the only point at which
tombstones are reclaimed. An insert also rebuilds at the same size when live
entries plus tombstones cross the upper threshold.

A Table is not safe for concurrent use.
*/
package slowhash
