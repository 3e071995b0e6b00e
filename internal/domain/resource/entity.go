package resource

import (
	"errors"

	"github.com/google/uuid"
)

var (
	ErrInvalidName     = errors.New("resource name cannot be empty")
	ErrInvalidCapacity = errors.New("resource capacity must be positive")
	ErrInvalidKind     = errors.New("unknown resource kind")
)

// Kind distinguishes the two independently allocated resource pools.
type Kind string

const (
	KindRoom Kind = "room"
	KindZoom Kind = "zoom"
)

func (k Kind) String() string {
	return string(k)
}

func (k Kind) IsValid() bool {
	switch k {
	case KindRoom, KindZoom:
		return true
	default:
		return false
	}
}

func ParseKind(s string) (Kind, error) {
	k := Kind(s)
	if !k.IsValid() {
		return "", ErrInvalidKind
	}
	return k, nil
}

// Resource is a bookable room or zoom account. Resources are never deleted
// while referenced by a request; deactivation only blocks future assignment.
type Resource struct {
	id       uuid.UUID
	kind     Kind
	name     string
	capacity int32
	active   bool
}

func NewResource(kind Kind, name string, capacity int32) (*Resource, error) {
	if !kind.IsValid() {
		return nil, ErrInvalidKind
	}
	if name == "" {
		return nil, ErrInvalidName
	}
	if capacity <= 0 {
		return nil, ErrInvalidCapacity
	}
	return &Resource{
		id:       uuid.New(),
		kind:     kind,
		name:     name,
		capacity: capacity,
		active:   true,
	}, nil
}

func ReconstructResource(id uuid.UUID, kind Kind, name string, capacity int32, active bool) *Resource {
	return &Resource{
		id:       id,
		kind:     kind,
		name:     name,
		capacity: capacity,
		active:   active,
	}
}

func (r *Resource) ID() uuid.UUID   { return r.id }
func (r *Resource) Kind() Kind      { return r.kind }
func (r *Resource) Name() string    { return r.name }
func (r *Resource) Capacity() int32 { return r.capacity }
func (r *Resource) IsActive() bool  { return r.active }

func (r *Resource) Deactivate() {
	r.active = false
}

// Fits reports whether the resource can host the requested headcount.
func (r *Resource) Fits(capacity int32) bool {
	return r.active && r.capacity >= capacity
}
