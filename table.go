package slowhash

import (
	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
)

// Entry is a key/value pair stored in a table slot. A slot never mutates its
// Entry; overwriting a key stores a fresh one.
type Entry struct {
	Key   string
	Value string
}

type slotState uint8

const (
	slotEmpty slotState = iota
	slotOccupied
	slotTombstone
)

// slot is one bucket. The zero value is an empty slot. A tombstone marks a
// deleted entry so probe chains running through it stay intact.
type slot struct {
	state slotState
	entry Entry
}

// Table is a string to string hash table using open addressing with double
// hashing. Capacity is always prime so every probe sequence can reach every
// bucket.
//
// A Table is not safe for concurrent use; callers must serialize access.
type Table struct {
	slots      []slot
	capacity   int
	count      int
	tombstones int
	baseSize   int
	prober     Prober

	opts   options
	logger *zap.Logger
	obs    Observer
}

// Stats is a snapshot of a table's occupancy.
type Stats struct {
	Capacity    int
	Count       int
	Tombstones  int
	BaseSize    int
	LoadPercent int
}

// New creates an empty table. Without WithCapacity it has DefaultCapacity
// buckets; otherwise the requested capacity is rounded up to the next prime.
// New panics on a configuration that could make probing unbounded: equal
// hasher primes or a load factor band outside 0 <= down < up < 100.
func New(opts ...Option) *Table {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.minCapacity < DefaultMinCapacity {
		o.minCapacity = DefaultMinCapacity
	}
	if o.downPercent < 0 || o.downPercent >= o.upPercent || o.upPercent >= 100 {
		panic(errors.AssertionFailedf("invalid resize thresholds: down=%d%% up=%d%%", o.downPercent, o.upPercent))
	}
	return newTable(o)
}

func newTable(o options) *Table {
	base := o.capacity
	if base < o.minCapacity {
		base = o.minCapacity
	}
	capacity := NextPrime(base)
	return &Table{
		slots:    make([]slot, capacity),
		capacity: capacity,
		baseSize: base,
		prober:   o.prober(capacity),
		opts:     o,
		logger:   o.logger,
		obs:      o.observer,
	}
}

// Size returns the number of buckets.
func (t *Table) Size() int {
	return t.capacity
}

// Count returns the number of live entries.
func (t *Table) Count() int {
	return t.count
}

// Stats returns the current occupancy of the table.
func (t *Table) Stats() Stats {
	return Stats{
		Capacity:    t.capacity,
		Count:       t.count,
		Tombstones:  t.tombstones,
		BaseSize:    t.baseSize,
		LoadPercent: t.loadPercent(),
	}
}

func (t *Table) loadPercent() int {
	return t.count * 100 / t.capacity
}

// Insert stores value under key, replacing any previous value. If the load
// factor is above the upper threshold the table grows before inserting.
func (t *Table) Insert(key, value string) {
	if t.loadPercent() > t.opts.upPercent {
		t.resizeUp()
	} else if (t.count+t.tombstones)*100/t.capacity > t.opts.upPercent {
		// Only tombstones push the table over the threshold; rebuild in place
		// so the probe below is guaranteed an empty slot.
		t.resize(t.baseSize, ResizeCompact)
	}

	for attempt := 0; attempt < t.capacity; attempt++ {
		s := &t.slots[t.prober.Hash(key, attempt)]
		switch s.state {
		case slotEmpty:
			*s = slot{state: slotOccupied, entry: Entry{Key: key, Value: value}}
			t.count++
			t.obs.ObserveProbe(OpInsert, attempt+1)
			return
		case slotOccupied:
			if s.entry.Key == key {
				s.entry = Entry{Key: key, Value: value}
				t.obs.ObserveProbe(OpInsert, attempt+1)
				return
			}
		}
	}
	panic(errors.AssertionFailedf(
		"probe sequence exhausted after %d attempts (count=%d tombstones=%d)",
		t.capacity, t.count, t.tombstones))
}

// Search returns the value stored under key. The second result is false if
// the key is not in the table.
func (t *Table) Search(key string) (string, bool) {
	if i, ok := t.find(key, OpSearch); ok {
		return t.slots[i].entry.Value, true
	}
	return "", false
}

// Contains reports whether key is in the table.
func (t *Table) Contains(key string) bool {
	_, ok := t.find(key, OpSearch)
	return ok
}

// Remove deletes key from the table. Removing an absent key is a no-op. The
// shrink check runs before the key is located, so a remove of an absent key
// can still shrink the table.
func (t *Table) Remove(key string) {
	if t.loadPercent() < t.opts.downPercent {
		t.resizeDown()
	}

	i, ok := t.find(key, OpRemove)
	if !ok {
		return
	}
	t.slots[i] = slot{state: slotTombstone}
	t.count--
	t.tombstones++
}

// Range calls fn for every live entry until fn returns false. The order is
// unspecified. fn must not modify the table.
func (t *Table) Range(fn func(key, value string) bool) {
	for i := range t.slots {
		if t.slots[i].state != slotOccupied {
			continue
		}
		if !fn(t.slots[i].entry.Key, t.slots[i].entry.Value) {
			return
		}
	}
}

// find returns the index of the occupied slot holding key. It skips
// tombstones and other keys and gives up at the first empty slot.
func (t *Table) find(key string, op Op) (int, bool) {
	for attempt := 0; attempt < t.capacity; attempt++ {
		i := t.prober.Hash(key, attempt)
		s := &t.slots[i]
		switch s.state {
		case slotEmpty:
			t.obs.ObserveProbe(op, attempt+1)
			return 0, false
		case slotOccupied:
			if s.entry.Key == key {
				t.obs.ObserveProbe(op, attempt+1)
				return i, true
			}
		}
	}
	t.obs.ObserveProbe(op, t.capacity)
	return 0, false
}

func (t *Table) resizeUp() {
	t.resize(t.baseSize*2, ResizeUp)
}

func (t *Table) resizeDown() {
	t.resize(t.baseSize/2, ResizeDown)
}

// resize rebuilds the table with NextPrime(base) buckets, reinserting every
// live entry and dropping all tombstones. Requests below the minimum capacity
// are ignored.
func (t *Table) resize(base int, dir ResizeDirection) {
	if base < t.opts.minCapacity {
		return
	}

	o := t.opts
	o.capacity = base
	// Rehash probes are not caller operations.
	o.observer = nopObserver{}
	fresh := newTable(o)
	for i := range t.slots {
		if s := &t.slots[i]; s.state == slotOccupied {
			fresh.Insert(s.entry.Key, s.entry.Value)
		}
	}

	ev := ResizeEvent{
		Direction:    dir,
		OldCapacity:  t.capacity,
		NewCapacity:  fresh.capacity,
		Live:         fresh.count,
		DroppedTombs: t.tombstones,
	}

	t.slots = fresh.slots
	t.capacity = fresh.capacity
	t.count = fresh.count
	t.tombstones = fresh.tombstones
	t.baseSize = fresh.baseSize
	t.prober.SetNumBuckets(t.capacity)

	t.logger.Debug("resized table",
		zap.Stringer("direction", dir),
		zap.Int("old_capacity", ev.OldCapacity),
		zap.Int("new_capacity", ev.NewCapacity),
		zap.Int("live", ev.Live),
		zap.Int("dropped_tombstones", ev.DroppedTombs))
	t.obs.ObserveResize(ev)
}
