package interact

// Latest is a one slot mailbox: a new value replaces any value that has not
// been taken yet.
type Latest[T any] struct {
	ch chan T
}

// NewLatest returns an empty mailbox.
func NewLatest[T any]() *Latest[T] {
	return &Latest[T]{ch: make(chan T, 1)}
}

// Offer stores v, dropping a pending value if there is one.
func (l *Latest[T]) Offer(v T) {
	for {
		select {
		case l.ch <- v:
			return
		default:
		}
		select {
		case <-l.ch:
		default:
		}
	}
}

// Take removes and returns the pending value.
func (l *Latest[T]) Take() (T, bool) {
	select {
	case v := <-l.ch:
		return v, true
	default:
		var zero T
		return zero, false
	}
}

// Discard drops the pending value, if any.
func (l *Latest[T]) Discard() {
	select {
	case <-l.ch:
	default:
	}
}

// Pending reports whether a value is waiting.
func (l *Latest[T]) Pending() bool { return len(l.ch) > 0 }

// C exposes the slot for select loops.
func (l *Latest[T]) C() <-chan T { return l.ch }
