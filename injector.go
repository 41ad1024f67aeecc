package inject

import (
	"fmt"
	"reflect"

	"go.uber.org/zap"
)

var (
	injectorType     = reflect.TypeOf((*Injector)(nil))
	appScopeType     = reflect.TypeOf((*ApplicationScope)(nil))
	threadScopeType  = reflect.TypeOf((*ThreadScope)(nil))
	requestScopeType = reflect.TypeOf((*RequestScope)(nil))
)

// Injector resolves requested types against an ordered stack of scopes.
// The first scope holding a binding for a key answers for it; unbound
// constructible types are autobound into application scope unless
// autobinding is disabled.
//
// Configuration (Bind, Unbind, BindScope, Clear) is meant to run from one
// goroutine during startup. Resolution may then run from many. The zero
// value is not usable, construct with New or Create.
type Injector struct {
	autobind bool
	echo     bool

	appScope *ApplicationScope
	scopes   map[reflect.Type]Scope
	stack    []Scope
}

// New constructs an Injector with the default configuration: application,
// thread and request scopes on the stack in that order, and the Injector
// bound to itself in application scope. It does not register the instance;
// use Create or Register for that.
func New(opts ...Option) *Injector {
	inj := &Injector{autobind: true}
	for _, opt := range opts {
		opt(inj)
	}
	if inj.echo {
		SetLogger(echoLogger())
	}
	inj.init()
	return inj
}

func (inj *Injector) init() {
	inj.scopes = make(map[reflect.Type]Scope, 4)
	inj.stack = make([]Scope, 0, 4)
	inj.appScope = NewApplicationScope()
	inj.bindScope(appScopeType, inj.appScope)

	_ = inj.Bind(injectorType, inj)
	inj.bindScope(threadScopeType, NewThreadScope())
	inj.bindScope(requestScopeType, NewRequestScope())
	Logger().Info("loaded default configuration", zap.String("injector", fmt.Sprintf("%p", inj)))
}

// Bind binds key to the given instance in application scope.
// A previous binding for key, in whatever scope, is removed first.
func (inj *Injector) Bind(key reflect.Type, to any) error {
	if inj.IsBound(key) {
		inj.Unbind(key)
	}
	if err := inj.appScope.Bind(key, to); err != nil {
		return err
	}
	Logger().Debug("bound type", zap.Stringer("type", key))
	return nil
}

// Unbind removes the instance binding for key from the first scope in the
// stack that holds one. Unbound keys are a no-op.
func (inj *Injector) Unbind(key reflect.Type) {
	for _, scope := range inj.stack {
		if scope.IsBound(key) {
			scope.Unbind(key)
			Logger().Debug("unbound type", zap.Stringer("type", key))
			return
		}
	}
}

// IsBound reports whether any scope holds an instance binding for key.
func (inj *Injector) IsBound(key reflect.Type) bool {
	for _, scope := range inj.stack {
		if scope.IsBound(key) {
			return true
		}
	}
	return false
}

// BindFactory binds key to a factory in application scope.
// A previous factory binding for key, in whatever scope, is removed first;
// instance bindings for the same key are untouched.
// Returns NilFactoryError when factory is nil.
func (inj *Injector) BindFactory(key reflect.Type, factory Factory) error {
	if factory == nil {
		return &NilFactoryError{Key: key}
	}
	if inj.IsFactoryBound(key) {
		inj.UnbindFactory(key)
	}
	if err := inj.appScope.BindFactory(key, factory); err != nil {
		return err
	}
	Logger().Debug("bound factory", zap.Stringer("type", key))
	return nil
}

// UnbindFactory removes the factory binding for key from the first scope in
// the stack that holds one.
func (inj *Injector) UnbindFactory(key reflect.Type) {
	for _, scope := range inj.stack {
		if scope.IsFactoryBound(key) {
			scope.UnbindFactory(key)
			Logger().Debug("unbound factory", zap.Stringer("type", key))
			return
		}
	}
}

// IsFactoryBound reports whether any scope holds a factory binding for key.
func (inj *Injector) IsFactoryBound(key reflect.Type) bool {
	for _, scope := range inj.stack {
		if scope.IsFactoryBound(key) {
			return true
		}
	}
	return false
}

// Get resolves key against the scope stack: the first scope holding an
// instance or factory binding for key answers. When none does and
// autobinding applies, the instance is constructed once and memoized in
// application scope; construction failures surface as
// AutobindingFailedError with nothing bound. Everything else is
// NotBoundError.
func (inj *Injector) Get(key reflect.Type) (any, error) {
	return inj.get(key, false)
}

// GetOrNil resolves like Get but reports an unbound key as (nil, nil)
// instead of NotBoundError. Autobinding failures still surface.
func (inj *Injector) GetOrNil(key reflect.Type) (any, error) {
	return inj.get(key, true)
}

func (inj *Injector) get(key reflect.Type, missOK bool) (any, error) {
	for _, scope := range inj.stack {
		if scope.IsBound(key) || scope.IsFactoryBound(key) {
			return scope.Get(key)
		}
	}

	if inj.autobind && constructible(key) {
		inst, err := construct(key)
		if err != nil {
			return nil, &AutobindingFailedError{Key: key, Err: err}
		}
		if err := inj.Bind(key, inst); err != nil {
			return nil, err
		}
		return inst, nil
	}

	if missOK {
		return nil, nil
	}
	return nil, &NotBoundError{Key: key}
}

// BindScope registers scope under scopeType: a previous scope of that type
// is removed first, the scope instance is bound in application scope so it
// resolves like any other dependency, and the scope joins the lookup stack
// with the lowest priority.
// Returns NilScopeError when scope is nil.
func (inj *Injector) BindScope(scopeType reflect.Type, scope Scope) error {
	if scope == nil {
		return &NilScopeError{ScopeType: scopeType}
	}
	inj.bindScope(scopeType, scope)
	return nil
}

func (inj *Injector) bindScope(scopeType reflect.Type, scope Scope) {
	inj.UnbindScope(scopeType)
	_ = inj.Bind(scopeType, scope)
	inj.scopes[scopeType] = scope
	inj.stack = append(inj.stack, scope)
	Logger().Info("bound scope", zap.Stringer("scope", scopeType))
}

// UnbindScope removes the scope registered under scopeType together with
// its self-binding. Absent scope types are a no-op.
func (inj *Injector) UnbindScope(scopeType reflect.Type) {
	scope, ok := inj.scopes[scopeType]
	if !ok {
		return
	}
	inj.Unbind(scopeType)
	delete(inj.scopes, scopeType)
	for i, s := range inj.stack {
		if s == scope {
			inj.stack = append(inj.stack[:i], inj.stack[i+1:]...)
			break
		}
	}
	Logger().Info("unbound scope", zap.Stringer("scope", scopeType))
}

// IsScopeBound reports whether a scope is registered under scopeType.
func (inj *Injector) IsScopeBound(scopeType reflect.Type) bool {
	_, ok := inj.scopes[scopeType]
	return ok
}

// Scope returns the scope registered under scopeType.
func (inj *Injector) Scope(scopeType reflect.Type) (Scope, bool) {
	s, ok := inj.scopes[scopeType]
	return s, ok
}

// Clear drops every binding and scope and reinstalls the default
// configuration. The process-wide registration slot is untouched.
func (inj *Injector) Clear() {
	Logger().Info("cleared all bindings", zap.String("injector", fmt.Sprintf("%p", inj)))
	inj.init()
}

// Register installs this Injector in the process-wide slot.
func (inj *Injector) Register() error {
	return Register(inj)
}

// Unregister removes this Injector from the process-wide slot when it is
// the registered one.
func (inj *Injector) Unregister() {
	Unregister(inj)
}

// IsRegistered reports whether this Injector is the registered one.
func (inj *Injector) IsRegistered() bool {
	return IsRegistered(inj)
}
