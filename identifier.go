package nstance

import (
	"reflect"
	"sync"
)

type idCode int32

var (
	idCounter int32
	idLock    sync.Mutex
	idNames   = make(map[idCode]string)
)

// Identifier is the untyped view of a ServiceIdentifier.  It is the
// key type of a ServiceCollection.  Only ServiceIdentifier implements
// Identifier.
type Identifier interface {
	String() string
	code() idCode
}

// ServiceIdentifier names an abstract service contract, usually an
// interface type T.  Create exactly one per service with NewIdentifier
// and share it between the places that register the service and the
// constructors that declare a dependency on it.
//
// Two identifiers are the same only if they came from the same call to
// NewIdentifier.  The name is used for error messages and nothing else.
type ServiceIdentifier[T any] struct {
	id   idCode
	name string
}

var _ Identifier = ServiceIdentifier[any]{}

// NewIdentifier creates a new, unique identifier for services of type T.
func NewIdentifier[T any](name string) ServiceIdentifier[T] {
	idLock.Lock()
	defer idLock.Unlock()
	idCounter++
	tc := idCode(idCounter)
	idNames[tc] = name
	return ServiceIdentifier[T]{id: tc, name: name}
}

func (s ServiceIdentifier[T]) code() idCode { return s.id }

// Name returns the diagnostic name given to NewIdentifier
func (s ServiceIdentifier[T]) Name() string { return s.name }

func (s ServiceIdentifier[T]) String() string { return s.name }

// Type returns the reflect.Type of the service contract T
func (s ServiceIdentifier[T]) Type() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// IsZero is true for a ServiceIdentifier that was not made
// by NewIdentifier.
func (s ServiceIdentifier[T]) IsZero() bool { return s.id == 0 }

func (ic idCode) String() string {
	idLock.Lock()
	defer idLock.Unlock()
	return idNames[ic]
}
