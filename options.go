package slowhash

import "go.uber.org/zap"

const (
	// DefaultCapacity is the bucket count of a table built without WithCapacity.
	DefaultCapacity = 53
	// DefaultResizeUpPercent is the load factor, in percent, above which an
	// insert grows the table first.
	DefaultResizeUpPercent = 70
	// DefaultResizeDownPercent is the load factor, in percent, below which a
	// remove shrinks the table first.
	DefaultResizeDownPercent = 10
	// DefaultMinCapacity is the smallest base size a resize will build.
	DefaultMinCapacity = 2
)

type options struct {
	capacity    int
	primeA      int
	primeB      int
	upPercent   int
	downPercent int
	minCapacity int
	logger      *zap.Logger
	observer    Observer
	newProber   ProberFactory
}

func defaultOptions() options {
	return options{
		capacity:    DefaultCapacity,
		primeA:      DefaultPrimeA,
		primeB:      DefaultPrimeB,
		upPercent:   DefaultResizeUpPercent,
		downPercent: DefaultResizeDownPercent,
		minCapacity: DefaultMinCapacity,
		logger:      zap.NewNop(),
		observer:    nopObserver{},
	}
}

func (o *options) prober(n int) Prober {
	if o.newProber != nil {
		return o.newProber(n)
	}
	return NewStringHasher(o.primeA, o.primeB, n)
}

// Option configures a Table.
type Option func(*options)

// WithCapacity requests at least n buckets. The table rounds n up to the
// next prime and remembers n as its base size.
func WithCapacity(n int) Option {
	return func(o *options) {
		o.capacity = n
	}
}

// WithPrimes sets the two prime factors of the default string hasher.
// They must be distinct and larger than the character set in use.
func WithPrimes(a, b int) Option {
	return func(o *options) {
		o.primeA = a
		o.primeB = b
	}
}

// WithResizeThresholds sets the load factor band, in percent.
func WithResizeThresholds(downPercent, upPercent int) Option {
	return func(o *options) {
		o.downPercent = downPercent
		o.upPercent = upPercent
	}
}

// WithMinCapacity sets the floor below which resize requests are ignored.
func WithMinCapacity(n int) Option {
	return func(o *options) {
		o.minCapacity = n
	}
}

// WithLogger sets the logger used to trace resizes.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithObserver registers an Observer for resize and probe events.
func WithObserver(obs Observer) Option {
	return func(o *options) {
		if obs != nil {
			o.observer = obs
		}
	}
}

// WithProber replaces the default string hasher.
func WithProber(f ProberFactory) Option {
	return func(o *options) {
		o.newProber = f
	}
}

// WithXXHash probes with XXHasher instead of the polynomial string hasher.
func WithXXHash() Option {
	return WithProber(func(n int) Prober { return NewXXHasher(n) })
}
