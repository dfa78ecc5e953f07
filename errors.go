package rtverify

import (
	"errors"
)

// Verification errors. A *Diagnostic always unwraps to exactly one of these.
var (
	ErrUndeclaredResource          = errors.New("this resource has NOT been declared")
	ErrConflictingAccessMode       = errors.New("shared and exclusive accesses to the same resource are not supported")
	ErrLateResourceInInit          = errors.New("late resources can NOT be assigned to init")
	ErrSharedAccessInInit          = errors.New("init has direct exclusive access to resources")
	ErrMissingInitForLateResources = errors.New("late resources exist so an init task must be defined")
	ErrDispatcherInterruptReused   = errors.New("dispatcher interrupts can't be used as hardware tasks")
)

// Assembly errors, returned by NewApp and AppBuilder.Build
var (
	// Identifier errors
	ErrEmptyName                = errors.New("identifier is empty")
	ErrDuplicateTask            = errors.New("task name is already in use")
	ErrDuplicateResource        = errors.New("resource is already declared")
	ErrDuplicateAccess          = errors.New("resource is listed more than once")
	ErrDuplicateExternInterrupt = errors.New("extern interrupt is listed more than once")

	// Task shape errors
	ErrMultipleInit          = errors.New("only one init task may be defined")
	ErrMultipleIdle          = errors.New("only one idle task may be defined")
	ErrInvalidPriority       = errors.New("task priority must be at least 1")
	ErrInvalidCapacity       = errors.New("software task capacity must be at least 1")
	ErrMissingBinding        = errors.New("hardware task must bind at least one interrupt")
	ErrInterruptAlreadyBound = errors.New("interrupt is already bound to a hardware task")
	ErrUnknownTaskKind       = errors.New("unknown task kind")

	// Resource shape errors
	ErrResourceInitAndLate   = errors.New("resource cannot have both an initial value and be late")
	ErrResourceUninitialized = errors.New("resource needs an initial value or must be late")

	// Validator configuration errors
	ErrConfigNil           = errors.New("config is nil")
	ErrConfigNotPointer    = errors.New("config must be a pointer")
	ErrConfigNotStruct     = errors.New("config must be a struct")
	ErrInvalidEventSource  = errors.New("event source must not be empty")
	ErrDefaultValueParse   = errors.New("failed to parse default value")
	ErrUnsupportedDefaults = errors.New("unsupported type for default value")
	ErrAppNil              = errors.New("app is nil")
)
