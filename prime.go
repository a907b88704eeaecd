package slowhash

import "math"

// Primality is the result of a primality test.
type Primality int

const (
	// PrimalityUndefined is returned for inputs below 2.
	PrimalityUndefined Primality = -1
	// Composite is returned for inputs with a divisor other than 1 and themselves.
	Composite Primality = 0
	// Prime is returned for prime inputs.
	Prime Primality = 1
)

func (p Primality) String() string {
	switch p {
	case PrimalityUndefined:
		return "undefined"
	case Composite:
		return "composite"
	case Prime:
		return "prime"
	default:
		return "unknown"
	}
}

// IsPrime reports whether x is prime using trial division by odd numbers
// up to floor(sqrt(x)).
func IsPrime(x int) Primality {
	if x < 2 {
		return PrimalityUndefined
	}
	if x < 4 {
		return Prime
	}
	if x%2 == 0 {
		return Composite
	}
	limit := int(math.Floor(math.Sqrt(float64(x))))
	for i := 3; i <= limit; i += 2 {
		if x%i == 0 {
			return Composite
		}
	}
	return Prime
}

// NextPrime returns the smallest prime >= x, or x itself if it is already
// prime. Inputs below 2 yield 2.
func NextPrime(x int) int {
	for IsPrime(x) != Prime {
		x++
	}
	return x
}
