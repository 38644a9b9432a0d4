package nstance

import (
	"reflect"

	"github.com/muir/reflectutils"
	"github.com/pkg/errors"
)

// Create is CreateInstance for the constructor declared for T
func Create[T any](s *InstantiationService, staticArgs ...any) (T, error) {
	var zero T
	ctor, ok := ConstructorFor[T]()
	if !ok {
		return zero, errors.Errorf("nstance: no constructor declared for %s", typeName[T]())
	}
	v, err := s.CreateInstance(ctor, staticArgs...)
	if err != nil {
		return zero, err
	}
	return as[T](v, ctor.String())
}

// GetService is GetInstance with the result converted to T
func GetService[T any](s *InstantiationService, id ServiceIdentifier[T]) (T, error) {
	v, err := s.GetInstance(id)
	if err != nil {
		var zero T
		return zero, err
	}
	return as[T](v, id.String())
}

// Get is ServicesAccessor.Get with the result converted to T
func Get[T any](a ServicesAccessor, id ServiceIdentifier[T]) (T, error) {
	v, err := a.Get(id)
	if err != nil {
		var zero T
		return zero, err
	}
	return as[T](v, id.String())
}

// Invoke is InvokeFunction for functions that return something other
// than any.
func Invoke[R any](s *InstantiationService, fn func(ServicesAccessor) (R, error)) (R, error) {
	var out R
	_, err := s.InvokeFunction(func(a ServicesAccessor) (any, error) {
		var err error
		out, err = fn(a)
		return nil, err
	})
	return out, err
}

func as[T any](v any, what string) (T, error) {
	if v == nil {
		var zero T
		return zero, nil
	}
	t, ok := v.(T)
	if !ok {
		return t, errors.Wrapf(ErrArgument, "nstance: %s is %s, not %s",
			what, reflectutils.TypeName(reflect.TypeOf(v)), typeName[T]())
	}
	return t, nil
}

func typeName[T any]() string {
	return reflectutils.TypeName(reflect.TypeOf((*T)(nil)).Elem())
}
