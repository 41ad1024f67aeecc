package inject

import (
	"fmt"
	"reflect"
)

// AlreadyRegisteredError represents a Register call while another Injector
// holds the process-wide slot.
type AlreadyRegisteredError struct {
	Current *Injector
}

func (e *AlreadyRegisteredError) Error() string {
	return fmt.Sprintf("an injector is already registered: %p", e.Current)
}

// NoInjectorRegisteredError represents an operation that needs the
// process-wide Injector while the slot is empty.
type NoInjectorRegisteredError struct{}

func (e *NoInjectorRegisteredError) Error() string {
	return "no injector is registered"
}

// NotBoundError represents a requested type with no binding in any scope.
type NotBoundError struct {
	Key reflect.Type
}

func (e *NotBoundError) Error() string {
	return fmt.Sprintf("no binding for type: %s", e.Key)
}

// AutobindingFailedError represents a failed zero-argument construction of
// an unbound type.
type AutobindingFailedError struct {
	Key reflect.Type
	Err error
}

func (e *AutobindingFailedError) Error() string {
	return fmt.Sprintf("autobinding failed for type %s: %v", e.Key, e.Err)
}

func (e *AutobindingFailedError) Unwrap() error {
	return e.Err
}

// NilFactoryError represents an attempt to bind a nil factory.
type NilFactoryError struct {
	Key reflect.Type
}

func (e *NilFactoryError) Error() string {
	return fmt.Sprintf("nil factory provided for type: %s", e.Key)
}

// NilScopeError represents an attempt to register a nil scope.
type NilScopeError struct {
	ScopeType reflect.Type
}

func (e *NilScopeError) Error() string {
	return fmt.Sprintf("nil scope provided for type: %s", e.ScopeType)
}

// NoActiveRequestError represents a request-scope binding attempt outside an
// open request boundary.
type NoActiveRequestError struct{}

func (e *NoActiveRequestError) Error() string {
	return "no active request on this goroutine"
}

// TypeMismatchError represents a binding whose dynamic type does not match
// the requested type parameter.
type TypeMismatchError struct {
	Expected reflect.Type
	Got      reflect.Type
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("type mismatch: expected %s, got %s", e.Expected, e.Got)
}
