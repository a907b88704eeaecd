package slowhash

// Op identifies the table operation that issued a probe sequence.
type Op int

const (
	// OpInsert is a Table.Insert.
	OpInsert Op = iota
	// OpSearch is a Table.Search or Table.Contains.
	OpSearch
	// OpRemove is a Table.Remove.
	OpRemove
)

func (o Op) String() string {
	switch o {
	case OpInsert:
		return "insert"
	case OpSearch:
		return "search"
	case OpRemove:
		return "remove"
	default:
		return "unknown"
	}
}

// ResizeDirection says why a table was rebuilt.
type ResizeDirection int

const (
	// ResizeUp doubles the base size after the load factor crossed the upper threshold.
	ResizeUp ResizeDirection = iota
	// ResizeDown halves the base size after the load factor fell below the lower threshold.
	ResizeDown
	// ResizeCompact rebuilds at the same base size to reclaim tombstones.
	ResizeCompact
)

func (d ResizeDirection) String() string {
	switch d {
	case ResizeUp:
		return "up"
	case ResizeDown:
		return "down"
	case ResizeCompact:
		return "compact"
	default:
		return "unknown"
	}
}

// ResizeEvent describes a completed rebuild.
type ResizeEvent struct {
	Direction    ResizeDirection
	OldCapacity  int
	NewCapacity  int
	Live         int
	DroppedTombs int
}

// Observer receives table events. Implementations run synchronously inside
// the table operation and must not call back into the table.
type Observer interface {
	ObserveResize(ev ResizeEvent)
	ObserveProbe(op Op, attempts int)
}

type nopObserver struct{}

func (nopObserver) ObserveResize(ResizeEvent) {}

func (nopObserver) ObserveProbe(Op, int) {}
