package nstance

// ServicesAccessor gives a function called by InvokeFunction access to
// services.  It stops working as soon as that function returns: any later
// call fails with *InvalidAccessorError.  Do not keep it.
type ServicesAccessor interface {
	// Get resolves id like InstantiationService.GetInstance
	Get(id Identifier) (any, error)

	// GetOptional is like Get but returns nil, nil for a service that
	// is not registered.
	GetOptional(id Identifier) (any, error)
}

type accessor struct {
	svc   *InstantiationService
	valid bool
}

var _ ServicesAccessor = &accessor{}

func (a *accessor) invalidate() { a.valid = false }

func (a *accessor) Get(id Identifier) (any, error) {
	mustBeIdentifier(id)
	if !a.valid {
		return nil, &InvalidAccessorError{ID: id}
	}
	return a.svc.newResolution().service(id, nil, false)
}

func (a *accessor) GetOptional(id Identifier) (any, error) {
	mustBeIdentifier(id)
	if !a.valid {
		return nil, &InvalidAccessorError{ID: id}
	}
	return a.svc.newResolution().service(id, nil, true)
}
