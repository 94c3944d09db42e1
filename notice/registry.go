package notice

import "fmt"

// Registry is the ordered collection of notices. Ids are assigned
// monotonically from an internal counter and are never reused; a notice's id
// is its index into the arena. Registry is not safe for concurrent use; the
// Board serializes access.
type Registry struct {
	notices []*Notice
	nextID  uint64
}

// NextID returns the id the next successful Create will assign.
func (r *Registry) NextID() uint64 { return r.nextID }

// Len returns the number of notices ever created.
func (r *Registry) Len() int { return len(r.notices) }

// Create appends n and assigns it the next id. expectedID is an optimistic
// concurrency guard: the caller states the id it read before submitting, and
// creation fails if another creation slipped in between. The guard is sound
// because operations against the registry execute serially.
func (r *Registry) Create(expectedID uint64, n *Notice) (uint64, error) {
	if expectedID != r.nextID {
		return 0, fmt.Errorf("%w: expected id %d, next id is %d", ErrInvalidRequest, expectedID, r.nextID)
	}

	n.ID = r.nextID
	r.notices = append(r.notices, n)
	r.nextID++
	return n.ID, nil
}

// Get returns the notice with the given id.
func (r *Registry) Get(id uint64) (*Notice, error) {
	if id >= uint64(len(r.notices)) {
		return nil, fmt.Errorf("%w: no notice with id %d", ErrInvalidRequest, id)
	}
	return r.notices[id], nil
}
