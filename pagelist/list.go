// Package pagelist implements the circular buffer backing the
// scrollback/page-list: a fixed-capacity ring of elements supporting
// O(1) advance/delete-oldest and wrap-aware slice access, plus the
// Scrollback type that layers the page-list scroll semantics (top,
// bottom, delta, delta-no-grow) on top of it (§4.E).
package pagelist

// List is a fixed-capacity circular buffer of T. It underlies both the
// page-level scrollback backbone (List[*cellpage.Page]) and, in a
// legacy/linear screen representation, direct row storage — the
// generic parameter is what lets both share one implementation.
type List[T any] struct {
	buf   []T
	head  int // index of the oldest element
	count int
}

// New creates a List with the given fixed capacity.
func New[T any](capacity int) *List[T] {
	return &List[T]{buf: make([]T, capacity)}
}

// Len returns the number of elements currently stored.
func (l *List[T]) Len() int { return l.count }

// Capacity returns the list's fixed capacity.
func (l *List[T]) Capacity() int { return len(l.buf) }

// IsFull reports whether Len() == Capacity().
func (l *List[T]) IsFull() bool { return l.count == len(l.buf) }

func (l *List[T]) index(offset int) int {
	return (l.head + offset) % len(l.buf)
}

// Get returns the element at logical offset (0 = oldest).
func (l *List[T]) Get(offset int) T {
	return l.buf[l.index(offset)]
}

// Set overwrites the element at logical offset.
func (l *List[T]) Set(offset int, v T) {
	l.buf[l.index(offset)] = v
}

// Push appends v as the newest element. If the list is full, the
// oldest element is overwritten (the caller is responsible for any
// cleanup that element's value needs before Push, mirroring the
// page-list's "reclaiming the oldest rows once exceeded" scroll
// semantics in §4.E).
func (l *List[T]) Push(v T) {
	if len(l.buf) == 0 {
		return
	}
	if l.count < len(l.buf) {
		l.buf[l.index(l.count)] = v
		l.count++
		return
	}
	l.buf[l.head] = v
	l.head = (l.head + 1) % len(l.buf)
}

// Advance drops the oldest n elements from logical view without
// returning them (used when the caller has already migrated their
// content elsewhere).
func (l *List[T]) Advance(n int) {
	if n <= 0 {
		return
	}
	if n > l.count {
		n = l.count
	}
	l.head = (l.head + n) % len(l.buf)
	l.count -= n
}

// DeleteOldest removes the oldest n elements, zeroing their slots so
// they don't keep large values (e.g. *cellpage.Page) alive.
func (l *List[T]) DeleteOldest(n int) {
	if n <= 0 {
		return
	}
	if n > l.count {
		n = l.count
	}
	var zero T
	for i := 0; i < n; i++ {
		l.buf[(l.head+i)%len(l.buf)] = zero
	}
	l.head = (l.head + n) % len(l.buf)
	l.count -= n
}

// GetPtrSlice returns up to two slices of the backing array spanning
// logical [offset, offset+length) — one if the range does not cross
// the wrap point, two if it does. Slices alias the backing array;
// callers must not retain them past the next mutating call.
func (l *List[T]) GetPtrSlice(offset, length int) (a, b []T) {
	if length <= 0 {
		return nil, nil
	}
	start := l.index(offset)
	end := start + length
	if end <= len(l.buf) {
		return l.buf[start:end], nil
	}
	return l.buf[start:], l.buf[:end-len(l.buf)]
}

// RotateToZero linearizes the buffer in place so logical offset 0
// becomes physical index 0, simplifying callers that need a
// contiguous view (e.g. before a bulk export).
func (l *List[T]) RotateToZero() {
	if l.head == 0 || len(l.buf) == 0 {
		return
	}
	rotated := make([]T, len(l.buf))
	for i := 0; i < len(l.buf); i++ {
		rotated[i] = l.buf[(l.head+i)%len(l.buf)]
	}
	l.buf = rotated
	l.head = 0
}

// Resize grows or shrinks the underlying allocation to newCapacity,
// preserving the newest min(Len(), newCapacity) elements. Growing
// fills new slots with def.
func (l *List[T]) Resize(newCapacity int, def T) {
	l.RotateToZero()
	keep := l.count
	if keep > newCapacity {
		// Keep the newest elements, dropping the oldest overflow.
		drop := keep - newCapacity
		copy(l.buf, l.buf[drop:keep])
		keep = newCapacity
	}
	next := make([]T, newCapacity)
	copy(next, l.buf[:keep])
	for i := keep; i < newCapacity; i++ {
		next[i] = def
	}
	l.buf = next
	l.head = 0
	l.count = keep
}
