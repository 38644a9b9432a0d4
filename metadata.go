package nstance

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/muir/reflectutils"
)

type paramKind int

const (
	plainParam    paramKind = iota // plain
	requiredParam                  // injected
	optionalParam                  // optional
)

// Param declares one parameter of a constructor.  Use Arg, Inject, and
// Optional to build them.
type Param struct {
	kind paramKind
	id   Identifier
}

// Arg declares a plain parameter.  Plain parameters are filled, in order,
// from the static arguments given to CreateInstance or NewDescriptor.  All
// plain parameters must come before any injected parameter.
func Arg() Param { return Param{kind: plainParam} }

// Inject declares a parameter that is filled from the ServiceCollection.
// Resolution fails if id is not registered.
func Inject(id Identifier) Param {
	mustBeIdentifier(id)
	return Param{kind: requiredParam, id: id}
}

// Optional declares a parameter that is filled from the ServiceCollection
// when id is registered and is the zero value of the parameter's type
// otherwise.
func Optional(id Identifier) Param {
	mustBeIdentifier(id)
	return Param{kind: optionalParam, id: id}
}

func (p Param) injected() bool { return p.kind != plainParam }

func (p Param) String() string {
	switch p.kind {
	case requiredParam:
		return "@" + p.id.String()
	case optionalParam:
		return "@" + p.id.String() + "?"
	default:
		return "arg"
	}
}

// Constructor is a constructible type: a constructor function plus the
// declared meaning of each of its parameters.  The declaration is the only
// thing the resolver looks at to decide what to inject.
//
// Constructor functions return either T or (T, error).
type Constructor struct {
	fn         reflect.Value
	result     reflect.Type
	in         []reflect.Type
	params     []Param
	leading    int
	returnsErr bool
}

var (
	errorType = reflect.TypeOf((*error)(nil)).Elem()

	ctorLock sync.RWMutex
	ctors    = make(map[reflect.Type]*Constructor)
)

// NewConstructor validates fn against params and returns a Constructor that
// is not recorded in the per-type table.  Most code should use Declare.
func NewConstructor(fn any, params ...Param) (*Constructor, error) {
	v := reflect.ValueOf(fn)
	if !v.IsValid() || v.Kind() != reflect.Func || v.IsNil() {
		return nil, fmt.Errorf("constructor must be a non-nil function, got %T", fn)
	}
	t := v.Type()
	if t.IsVariadic() {
		return nil, fmt.Errorf("constructor %s cannot be variadic", t)
	}
	switch {
	case t.NumOut() == 1 && t.Out(0) != errorType:
	case t.NumOut() == 2 && t.Out(1) == errorType:
	default:
		return nil, fmt.Errorf("constructor %s must return T or (T, error)", t)
	}
	if t.NumIn() != len(params) {
		return nil, fmt.Errorf("constructor %s takes %d parameters but %d were declared",
			t, t.NumIn(), len(params))
	}
	c := &Constructor{
		fn:         v,
		result:     t.Out(0),
		in:         make([]reflect.Type, t.NumIn()),
		params:     make([]Param, len(params)),
		leading:    len(params),
		returnsErr: t.NumOut() == 2,
	}
	copy(c.params, params)
	for i := range c.in {
		c.in[i] = t.In(i)
	}
	for i, p := range params {
		if p.injected() {
			if c.leading == len(params) {
				c.leading = i
			}
			continue
		}
		if c.leading != len(params) {
			return nil, fmt.Errorf("constructor %s: plain parameter %d follows injected parameter %d",
				t, i, c.leading)
		}
	}
	return c, nil
}

// Declare records the constructor for the type fn returns.  It is meant
// to be called once per type, at the point the type is defined:
//
//	var newTarget = nstance.Declare(NewTarget, nstance.Arg(), nstance.Inject(ILogger))
//
// Declare panics if fn does not match params or if a constructor for the same
// type was already declared.
func Declare(fn any, params ...Param) *Constructor {
	c, err := NewConstructor(fn, params...)
	if err != nil {
		panic("nstance: " + err.Error())
	}
	ctorLock.Lock()
	defer ctorLock.Unlock()
	if _, ok := ctors[c.result]; ok {
		panic("nstance: a constructor for " + c.String() + " is already declared")
	}
	ctors[c.result] = c
	return c
}

// ConstructorOf returns the declared constructor for t
func ConstructorOf(t reflect.Type) (*Constructor, bool) {
	ctorLock.RLock()
	defer ctorLock.RUnlock()
	c, ok := ctors[t]
	return c, ok
}

// ConstructorFor returns the declared constructor for T
func ConstructorFor[T any]() (*Constructor, bool) {
	return ConstructorOf(reflect.TypeOf((*T)(nil)).Elem())
}

// Params returns a copy of the declared parameters
func (c *Constructor) Params() []Param {
	p := make([]Param, len(c.params))
	copy(p, c.params)
	return p
}

// Type returns the type that the constructor builds
func (c *Constructor) Type() reflect.Type { return c.result }

func (c *Constructor) String() string {
	return reflectutils.TypeName(c.result)
}

// arg converts a static or injected value into an argument for position i.
// nil becomes the zero value of the parameter type.
func (c *Constructor) arg(i int, v any) (reflect.Value, error) {
	if v == nil {
		return reflect.Zero(c.in[i]), nil
	}
	rv := reflect.ValueOf(v)
	if !rv.Type().AssignableTo(c.in[i]) {
		return reflect.Value{}, &ArgumentError{
			Target:   c,
			Position: i,
			Want:     c.in[i],
			Got:      rv.Type(),
		}
	}
	return rv, nil
}

func (c *Constructor) call(args []reflect.Value) (any, error) {
	out := c.fn.Call(args)
	if c.returnsErr && !out[1].IsNil() {
		return nil, out[1].Interface().(error)
	}
	return out[0].Interface(), nil
}

func mustBeIdentifier(id Identifier) {
	if id == nil || id.code() == 0 {
		panic("nstance: identifier was not created with NewIdentifier")
	}
}
