// Obligatory // comment

/*

Package nstance is a small dependency injection container.  Code that
needs a service asks for it by identifier, not by concrete type, and
nstance decides what to hand over.

Identifiers

A ServiceIdentifier names a service contract.  Make one per contract,
usually next to the interface it stands for:

	type Logger interface {
		Log(string)
	}

	var ILogger = nstance.NewIdentifier[Logger]("logger")

Identifiers are compared by identity.  Two calls to NewIdentifier with the
same name make two different identifiers.

Declaring constructors

A constructor is a function that returns T or (T, error).  Its parameters
are declared once, when the type is defined.  Plain parameters (Arg) come
first and are filled from static arguments; injected parameters (Inject,
Optional) come after and are filled from the collection:

	type Editor struct {
		title  string
		logger Logger
		spell  SpellChecker
	}

	func NewEditor(title string, logger Logger, spell SpellChecker) *Editor {
		return &Editor{title: title, logger: logger, spell: spell}
	}

	var newEditor = nstance.Declare(NewEditor,
		nstance.Arg(), nstance.Inject(ILogger), nstance.Optional(ISpellChecker))

The declaration, not the function signature, decides what gets injected.

Registering services

A ServiceCollection maps identifiers to either an instance or a
*ServiceDescriptor.  A descriptor is built the first time it is needed and
the instance then takes its place, so a descriptor-backed service is a
singleton:

	services := nstance.NewServiceCollection()
	services.Set(ILogger, nstance.NewDescriptor(newConsoleLogger))
	inst := nstance.New(services)

The InstantiationService keeps using the collection it was given, so
services registered later are still found.

Creating and getting

	editor, err := inst.CreateInstance(newEditor, "untitled")
	logger, err := nstance.GetService(inst, ILogger)

CreateInstance always builds a new object.  GetInstance returns the
registered (or memoized) instance.  If a descriptor needs, directly or
indirectly, the service it is building, resolution fails with a
*CyclicDependencyError.

Invoking functions

InvokeFunction hands a function a ServicesAccessor.  The accessor only
works until the function returns:

	n, err := nstance.Invoke(inst, func(a nstance.ServicesAccessor) (int, error) {
		logger, err := nstance.Get(a, ILogger)
		...
	})

Errors

Failures are returned, never logged.  Each kind has its own type and a
sentinel for errors.Is: OverwriteError (ErrOverwrite), UnknownServiceError
(ErrUnknownService), CyclicDependencyError (ErrCyclicDependency),
InvalidAccessorError (ErrInvalidAccessor), and ArgumentError (ErrArgument).
DetailedError adds the chain of services that were being resolved.

Nothing here is safe for concurrent use.
*/
package nstance
