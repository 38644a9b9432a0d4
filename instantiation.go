package nstance

import (
	"reflect"
	"strconv"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/samber/lo"
)

// InstantiationService creates objects whose constructors were declared
// with Declare or NewConstructor, filling injected parameters from a
// ServiceCollection.  Services registered as descriptors are built the
// first time they are needed and the instance replaces the descriptor.
//
// An InstantiationService is not safe for concurrent use.
type InstantiationService struct {
	services *ServiceCollection
	log      zerolog.Logger
}

// New creates an InstantiationService bound to services.  The collection
// is used directly, not copied.  A nil collection is replaced by an empty
// one.
func New(services *ServiceCollection, opts ...Option) *InstantiationService {
	if services == nil {
		services = NewServiceCollection()
	}
	s := &InstantiationService{
		services: services,
		log:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Collection returns the bound collection
func (s *InstantiationService) Collection() *ServiceCollection { return s.services }

// AddSingleton registers instance for id.  It fails with *OverwriteError,
// leaving the collection untouched, if id already holds a non-nil value.
// Replacing a nil placeholder is allowed.
func (s *InstantiationService) AddSingleton(id Identifier, instance any) error {
	if v, ok := s.services.Get(id); ok && v != nil {
		return &OverwriteError{ID: id}
	}
	s.services.Set(id, instance)
	return nil
}

// CreateInstance builds a new object with ctor every time it is called.
// staticArgs fill the leading plain parameters; injected parameters are
// resolved from the collection in declaration order.
func (s *InstantiationService) CreateInstance(ctor *Constructor, staticArgs ...any) (any, error) {
	if ctor == nil {
		return nil, errors.New("nstance: nil constructor")
	}
	r := s.newResolution()
	instance, err := r.construct(ctor, staticArgs)
	if err != nil {
		return nil, withTrail(err, "creating "+ctor.String())
	}
	return instance, nil
}

// GetInstance returns the service registered for id.  If it is registered
// as a descriptor, the descriptor is resolved and the result memoized so
// that every call returns the same instance.  A missing or nil registration
// is an *UnknownServiceError.
func (s *InstantiationService) GetInstance(id Identifier) (any, error) {
	mustBeIdentifier(id)
	return s.newResolution().service(id, nil, false)
}

// InvokeFunction calls fn with a ServicesAccessor that is only valid until
// fn returns.  Whatever fn returns is passed through.
func (s *InstantiationService) InvokeFunction(fn func(ServicesAccessor) (any, error)) (any, error) {
	a := &accessor{svc: s, valid: true}
	defer a.invalidate()
	return fn(a)
}

// resolution is the state of one top-level CreateInstance or GetInstance
// call.  stack holds the identifiers whose descriptors are being resolved.
type resolution struct {
	svc   *InstantiationService
	stack []Identifier
}

func (s *InstantiationService) newResolution() *resolution {
	return &resolution{svc: s}
}

func (r *resolution) service(id Identifier, target *Constructor, optional bool) (any, error) {
	v, ok := r.svc.services.Get(id)
	if d, isDescriptor := v.(*ServiceDescriptor); isDescriptor {
		return r.descriptor(id, d)
	}
	if !ok || v == nil {
		if optional {
			r.debugf("optional %s is absent", id)
			return nil, nil
		}
		return nil, &UnknownServiceError{ID: id, Target: target}
	}
	return v, nil
}

func (r *resolution) descriptor(id Identifier, d *ServiceDescriptor) (any, error) {
	if _, i, found := lo.FindIndexOf(r.stack, func(in Identifier) bool {
		return in.code() == id.code()
	}); found {
		path := make([]Identifier, 0, len(r.stack)-i+1)
		path = append(path, r.stack[i:]...)
		path = append(path, id)
		return nil, &CyclicDependencyError{Path: path}
	}

	r.stack = append(r.stack, id)
	defer func() {
		r.stack = r.stack[:len(r.stack)-1]
	}()

	r.debugf("resolving %s with %s", id, d)
	instance, err := r.construct(d.ctor, d.staticArgs)
	if err != nil {
		return nil, withTrail(err, "resolving "+strconv.Quote(id.String())+" with "+d.String())
	}

	// A constructor may have re-registered id; don't clobber that.
	if current, _ := r.svc.services.Get(id); current == any(d) {
		r.svc.services.Set(id, instance)
		r.debugf("memoized %s", id)
	}
	return instance, nil
}

func (r *resolution) construct(ctor *Constructor, staticArgs []any) (any, error) {
	if len(staticArgs) != ctor.leading {
		r.warnArity(ctor, len(staticArgs))
	}
	args := make([]reflect.Value, len(ctor.params))
	for i := 0; i < ctor.leading; i++ {
		var v any
		if i < len(staticArgs) {
			v = staticArgs[i]
		}
		a, err := ctor.arg(i, v)
		if err != nil {
			return nil, err
		}
		args[i] = a
	}
	for i := ctor.leading; i < len(ctor.params); i++ {
		p := ctor.params[i]
		v, err := r.service(p.id, ctor, p.kind == optionalParam)
		if err != nil {
			return nil, err
		}
		a, err := ctor.arg(i, v)
		if err != nil {
			return nil, err
		}
		args[i] = a
	}

	r.debugf("constructing %s", ctor)
	instance, err := ctor.call(args)
	if err != nil {
		return nil, errors.Wrapf(err, "nstance: construct %s", ctor)
	}
	return instance, nil
}
