package nstance

import (
	"github.com/samber/lo"
)

// Entry is an initial registration for NewServiceCollection
type Entry struct {
	ID    Identifier
	Value any
}

type slot struct {
	id    Identifier
	value any
}

// ServiceCollection maps identifiers to either a ready instance or a
// *ServiceDescriptor.  A nil value is a placeholder: the identifier is
// reserved but not provided.
//
// An InstantiationService holds on to the collection it was given, so
// registrations made later are seen by later resolutions.  There is no
// locking: register services before or between resolutions.
type ServiceCollection struct {
	slots map[idCode]*slot
	order []idCode
}

// NewServiceCollection creates a collection and Sets each entry in order
func NewServiceCollection(entries ...Entry) *ServiceCollection {
	c := &ServiceCollection{
		slots: make(map[idCode]*slot),
	}
	for _, e := range entries {
		c.Set(e.ID, e.Value)
	}
	return c
}

// Set associates value with id and returns what was there before.
// existed is false if id had never been set.  Set does not refuse to
// overwrite; see InstantiationService.AddSingleton for that.
func (c *ServiceCollection) Set(id Identifier, value any) (previous any, existed bool) {
	mustBeIdentifier(id)
	s, ok := c.slots[id.code()]
	if !ok {
		c.slots[id.code()] = &slot{id: id, value: value}
		c.order = append(c.order, id.code())
		return nil, false
	}
	previous = s.value
	s.value = value
	return previous, true
}

// Has reports whether id was ever Set, including Set to nil
func (c *ServiceCollection) Has(id Identifier) bool {
	mustBeIdentifier(id)
	_, ok := c.slots[id.code()]
	return ok
}

// Get returns the instance, *ServiceDescriptor, or nil currently
// associated with id.
func (c *ServiceCollection) Get(id Identifier) (value any, ok bool) {
	mustBeIdentifier(id)
	s, ok := c.slots[id.code()]
	if !ok {
		return nil, false
	}
	return s.value, true
}

// Len is the number of identifiers that have been Set
func (c *ServiceCollection) Len() int { return len(c.slots) }

// Identifiers lists the registered identifiers in the order they
// were first Set.
func (c *ServiceCollection) Identifiers() []Identifier {
	return lo.Map(c.order, func(ic idCode, _ int) Identifier {
		return c.slots[ic].id
	})
}
