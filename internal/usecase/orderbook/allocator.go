package orderbook

// IDAllocator hands out order ids, strictly increasing from 1. It is not
// safe for concurrent use on its own; the Book serializes access to it.
type IDAllocator struct {
	next uint64
}

// NewIDAllocator creates an allocator whose first id is 1.
func NewIDAllocator() *IDAllocator {
	return &IDAllocator{next: 1}
}

// Next returns an id strictly greater than every id returned before it.
func (a *IDAllocator) Next() uint64 {
	id := a.next
	a.next++
	return id
}
