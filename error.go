package nstance

import (
	"reflect"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/muir/reflectutils"
	"github.com/pkg/errors"
	"github.com/samber/lo"
)

// These errors can be matched with errors.Is.  The errors actually
// returned are the more specific types below.
var (
	ErrOverwrite        = errors.New("service already registered")
	ErrUnknownService   = errors.New("unknown service")
	ErrCyclicDependency = errors.New("cyclic dependency between services")
	ErrInvalidAccessor  = errors.New("services accessor used after its invocation returned")
	ErrArgument         = errors.New("argument not assignable to parameter")
)

// OverwriteError is returned by AddSingleton when ID already holds a
// non-nil registration.
type OverwriteError struct {
	ID Identifier
}

func (e *OverwriteError) Error() string {
	return "nstance: service " + strconv.Quote(e.ID.String()) + " is already registered"
}

func (e *OverwriteError) Is(target error) bool { return target == ErrOverwrite }
func (e *OverwriteError) Name() string         { return "OverwriteError" }

// UnknownServiceError is returned when a required service is not
// registered (or is registered as nil).  Target is the constructor that
// wanted it; it is nil for direct lookups.
type UnknownServiceError struct {
	ID     Identifier
	Target *Constructor
}

func (e *UnknownServiceError) Error() string {
	if e.Target == nil {
		return "nstance: unknown service " + strconv.Quote(e.ID.String())
	}
	return "nstance: " + e.Target.String() + " depends on unknown service " + strconv.Quote(e.ID.String())
}

func (e *UnknownServiceError) Is(target error) bool { return target == ErrUnknownService }
func (e *UnknownServiceError) Name() string         { return "UnknownServiceError" }

// CyclicDependencyError is returned when resolving a descriptor needs a
// service that is already being resolved.  Path starts and ends with the
// same identifier.
type CyclicDependencyError struct {
	Path []Identifier
}

func (e *CyclicDependencyError) Error() string {
	return "nstance: cyclic dependency between services: " +
		strings.Join(lo.Map(e.Path, func(id Identifier, _ int) string {
			return id.String()
		}), " -> ")
}

func (e *CyclicDependencyError) Is(target error) bool { return target == ErrCyclicDependency }
func (e *CyclicDependencyError) Name() string         { return "CyclicDependencyError" }

// InvalidAccessorError is returned when a ServicesAccessor is used after
// the InvokeFunction call it was made for has returned.
type InvalidAccessorError struct {
	ID Identifier
}

func (e *InvalidAccessorError) Error() string {
	return "nstance: services accessor used after its invocation returned (looking up " +
		strconv.Quote(e.ID.String()) + ")"
}

func (e *InvalidAccessorError) Is(target error) bool { return target == ErrInvalidAccessor }
func (e *InvalidAccessorError) Name() string         { return "InvalidAccessorError" }

// ArgumentError is returned when a static argument or a registered
// instance cannot be passed as the parameter it is destined for.
type ArgumentError struct {
	Target   *Constructor
	Position int
	Want     reflect.Type
	Got      reflect.Type
}

func (e *ArgumentError) Error() string {
	return "nstance: parameter " + strconv.Itoa(e.Position) + " of " + e.Target.String() +
		" is " + reflectutils.TypeName(e.Want) + ", cannot use " + reflectutils.TypeName(e.Got)
}

func (e *ArgumentError) Is(target error) bool { return target == ErrArgument }
func (e *ArgumentError) Name() string         { return "ArgumentError" }

// resolutionError carries the trail of services that were being resolved
// when err happened.
type resolutionError struct {
	err   error
	trail []string
}

func (re *resolutionError) Error() string { return re.err.Error() }
func (re *resolutionError) Unwrap() error { return re.err }

func withTrail(err error, step string) error {
	var re *resolutionError
	if errors.As(err, &re) {
		return &resolutionError{
			err:   re.err,
			trail: append(append([]string(nil), re.trail...), step),
		}
	}
	return &resolutionError{err: err, trail: []string{step}}
}

// DetailedError transforms errors into strings.  If the error came out of
// a resolution, the services that were being resolved when it happened are
// listed, innermost first.
func DetailedError(err error) string {
	var re *resolutionError
	if errors.As(err, &re) {
		s := err.Error() + "\n\n" + strings.Join(re.trail, "\n")
		if dups := duplicateNames(); dups != "" {
			return s + "\n\nWarning: the following names refer to more than one service identifier:" + dups
		}
		return s
	}
	return err.Error()
}

var (
	duplicatesThrough int32
	dupLock           sync.Mutex
	duplicates        string
)

func duplicateNames() string {
	dupLock.Lock()
	defer dupLock.Unlock()
	idLock.Lock()
	defer idLock.Unlock()
	if duplicatesThrough == idCounter {
		return duplicates
	}
	counts := make(map[string]int)
	for _, name := range idNames {
		counts[name]++
	}
	names := lo.Keys(lo.PickBy(counts, func(_ string, n int) bool { return n > 1 }))
	sort.Strings(names)
	duplicates = ""
	for _, n := range names {
		duplicates += " " + strconv.Quote(n)
	}
	duplicatesThrough = idCounter
	return duplicates
}
