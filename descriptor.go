package nstance

import (
	"reflect"
	"strings"
)

// ServiceDescriptor is a deferred recipe for a service: a Constructor and
// the static arguments that fill its leading plain parameters.  Registering
// a descriptor instead of an instance delays construction until the service
// is first needed.  The instance then replaces the descriptor in the
// collection.
type ServiceDescriptor struct {
	ctor       *Constructor
	staticArgs []any
}

// NewDescriptor creates a descriptor.  staticArgs are copied.
func NewDescriptor(ctor *Constructor, staticArgs ...any) *ServiceDescriptor {
	if ctor == nil {
		panic("nstance: nil constructor")
	}
	return &ServiceDescriptor{
		ctor:       ctor,
		staticArgs: append([]any(nil), staticArgs...),
	}
}

// DescriptorFor creates a descriptor using the constructor declared for T.
// It panics if there isn't one.
func DescriptorFor[T any](staticArgs ...any) *ServiceDescriptor {
	ctor, ok := ConstructorFor[T]()
	if !ok {
		panic("nstance: no constructor declared for " + reflect.TypeOf((*T)(nil)).Elem().String())
	}
	return NewDescriptor(ctor, staticArgs...)
}

func (d *ServiceDescriptor) Constructor() *Constructor { return d.ctor }

// StaticArgs returns a copy of the static arguments
func (d *ServiceDescriptor) StaticArgs() []any {
	return append([]any(nil), d.staticArgs...)
}

func (d *ServiceDescriptor) String() string {
	if len(d.staticArgs) == 0 {
		return "descriptor(" + d.ctor.String() + ")"
	}
	var b strings.Builder
	b.WriteString("descriptor(")
	b.WriteString(d.ctor.String())
	b.WriteString(", ")
	b.WriteString(strings.Repeat("_, ", len(d.staticArgs)-1))
	b.WriteString("_)")
	return b.String()
}
