package slowhash

import (
	"math/bits"

	"github.com/cespare/xxhash/v2"
	"github.com/cockroachdb/errors"
)

const (
	// DefaultPrimeA is the first prime factor of the string hasher. The ASCII
	// character set has 128 symbols and 131 is the next prime after that.
	DefaultPrimeA = 131
	// DefaultPrimeB is the next prime after DefaultPrimeA.
	DefaultPrimeB = 137
)

// Prober produces the bucket index probed for a key on a given attempt.
// Attempt 0 is the home bucket; each collision increments the attempt by one.
// For a prime number of buckets the first NumBuckets attempts must visit
// every bucket exactly once.
type Prober interface {
	Hash(key string, attempt int) int
	SetNumBuckets(n int)
	NumBuckets() int
}

// ProberFactory builds a Prober for a table with n buckets.
type ProberFactory func(n int) Prober

// StringHasher implements double hashing over two polynomial string hashes.
// PrimeA and PrimeB must be distinct primes larger than the size of the
// character set in use; Hash does not check this.
type StringHasher struct {
	primeA     uint64
	primeB     uint64
	numBuckets uint64
}

var _ Prober = (*StringHasher)(nil)

// NewStringHasher returns a hasher for a table of numBuckets buckets. It
// panics if primeA == primeB, since the probe sequence then degenerates.
func NewStringHasher(primeA, primeB, numBuckets int) *StringHasher {
	if primeA == primeB {
		panic(errors.AssertionFailedf("string hasher primes must differ, both are %d", primeA))
	}
	if numBuckets < 1 {
		panic(errors.AssertionFailedf("string hasher needs at least one bucket, got %d", numBuckets))
	}
	return &StringHasher{
		primeA:     uint64(primeA),
		primeB:     uint64(primeB),
		numBuckets: uint64(numBuckets),
	}
}

// Hash returns (ha + attempt*(hb+1)) mod NumBuckets where ha and hb are the
// polynomial hashes of key under PrimeA and PrimeB.
func (h *StringHasher) Hash(key string, attempt int) int {
	ha := polyHash(key, h.primeA, h.numBuckets)
	hb := polyHash(key, h.primeB, h.numBuckets)
	return probe(ha, hb, attempt, h.numBuckets)
}

// SetNumBuckets resynchronizes the hasher with the table capacity.
func (h *StringHasher) SetNumBuckets(n int) {
	h.numBuckets = uint64(n)
}

// NumBuckets returns the bucket count the hasher reduces into.
func (h *StringHasher) NumBuckets() int {
	return int(h.numBuckets)
}

// polyHash treats s as a base-p number over its bytes and reduces it modulo n
// after every digit, so sum(s[i] * p^(len-1-i)) mod n never overflows.
func polyHash(s string, p, n uint64) uint64 {
	var hash uint64
	for i := 0; i < len(s); i++ {
		hash = (hash*p + uint64(s[i])) % n
	}
	return hash
}

// probe combines a home bucket and a step hash. A step that is a multiple of n
// would pin every attempt to the home bucket, so it is replaced by 1.
func probe(ha, hb uint64, attempt int, n uint64) int {
	step := (hb + 1) % n
	if step == 0 {
		step = 1
	}
	hi, lo := bits.Mul64(uint64(attempt)%n, step)
	off := bits.Rem64(hi, lo, n)
	return int((ha + off) % n)
}

// XXHasher is a Prober that derives both hashes from a single xxhash digest:
// the low 32 bits pick the home bucket and the high 32 bits pick the step.
type XXHasher struct {
	numBuckets uint64
}

var _ Prober = (*XXHasher)(nil)

// NewXXHasher returns an xxhash based prober for numBuckets buckets.
func NewXXHasher(numBuckets int) *XXHasher {
	if numBuckets < 1 {
		panic(errors.AssertionFailedf("xxhash prober needs at least one bucket, got %d", numBuckets))
	}
	return &XXHasher{numBuckets: uint64(numBuckets)}
}

// Hash returns the bucket for the given attempt at placing key.
func (h *XXHasher) Hash(key string, attempt int) int {
	sum := xxhash.Sum64String(key)
	ha := (sum & 0xffffffff) % h.numBuckets
	hb := (sum >> 32) % h.numBuckets
	return probe(ha, hb, attempt, h.numBuckets)
}

// SetNumBuckets retargets the prober after a resize.
func (h *XXHasher) SetNumBuckets(n int) {
	h.numBuckets = uint64(n)
}

// NumBuckets returns the bucket count the prober maps into.
func (h *XXHasher) NumBuckets() int {
	return int(h.numBuckets)
}

// IntegralHasher is the identity hash for integers. Integers already live in
// the domain buckets are indexed by, so the caller only has to pick a large
// enough prime bucket count. NumBuckets must be positive; NewIntegralHasher
// enforces that.
type IntegralHasher struct {
	NumBuckets uint64
}

// NewIntegralHasher returns an identity hasher over numBuckets buckets. It
// panics if numBuckets < 1.
func NewIntegralHasher(numBuckets int) IntegralHasher {
	if numBuckets < 1 {
		panic(errors.AssertionFailedf("integral hasher needs at least one bucket, got %d", numBuckets))
	}
	return IntegralHasher{NumBuckets: uint64(numBuckets)}
}

// Hash returns v mod NumBuckets.
func (h IntegralHasher) Hash(v uint64) int {
	return int(v % h.NumBuckets)
}
