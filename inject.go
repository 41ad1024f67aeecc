package inject

import (
	"fmt"
	"reflect"
	"sync"

	"go.uber.org/zap"
)

// The process-wide slot. Registration transitions are rare and guarded by
// the mutex; resolution only takes the read side.
var (
	regMu      sync.RWMutex
	registered *Injector
)

// Create constructs an Injector with New and registers it as the
// process-wide instance. On a registration conflict the new Injector is
// discarded and the AlreadyRegisteredError is returned.
func Create(opts ...Option) (*Injector, error) {
	inj := New(opts...)
	if err := Register(inj); err != nil {
		return nil, err
	}
	return inj, nil
}

// Register installs inj in the process-wide slot.
// Returns AlreadyRegisteredError carrying the current instance when the
// slot is occupied; the caller must Unregister first.
func Register(inj *Injector) error {
	regMu.Lock()
	defer regMu.Unlock()
	if registered != nil {
		return &AlreadyRegisteredError{Current: registered}
	}
	registered = inj
	Logger().Info("registered injector", zap.String("injector", fmt.Sprintf("%p", inj)))
	return nil
}

// Unregister empties the process-wide slot.
// A non-nil inj only unregisters that exact instance; any other registered
// Injector stays. Passing nil unregisters whatever is registered.
func Unregister(inj *Injector) {
	regMu.Lock()
	defer regMu.Unlock()
	if inj != nil && registered != inj {
		return
	}
	prev := registered
	registered = nil
	Logger().Info("unregistered injector", zap.String("injector", fmt.Sprintf("%p", prev)))
}

// IsRegistered reports whether inj is the registered Injector.
// Passing nil asks whether any Injector is registered.
func IsRegistered(inj *Injector) bool {
	regMu.RLock()
	defer regMu.RUnlock()
	if inj == nil {
		return registered != nil
	}
	return registered == inj
}

// Registered returns the process-wide Injector.
// Returns NoInjectorRegisteredError when the slot is empty.
func Registered() (*Injector, error) {
	regMu.RLock()
	defer regMu.RUnlock()
	if registered == nil {
		return nil, &NoInjectorRegisteredError{}
	}
	return registered, nil
}

// KeyOf returns the binding key for T.
func KeyOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// GetInstance resolves T through the registered Injector.
// Returns NoInjectorRegisteredError when none is registered and
// TypeMismatchError when the binding's dynamic type is not a T.
func GetInstance[T any]() (T, error) {
	var zero T
	inj, err := Registered()
	if err != nil {
		return zero, err
	}
	inst, err := inj.Get(KeyOf[T]())
	if err != nil || inst == nil {
		return zero, err
	}
	typed, ok := inst.(T)
	if !ok {
		return zero, &TypeMismatchError{Expected: KeyOf[T](), Got: reflect.TypeOf(inst)}
	}
	return typed, nil
}

// GetInstanceOrNil resolves like GetInstance but reports an unbound T as
// the zero value with a nil error. Autobinding failures still surface.
func GetInstanceOrNil[T any]() (T, error) {
	var zero T
	inj, err := Registered()
	if err != nil {
		return zero, err
	}
	inst, err := inj.GetOrNil(KeyOf[T]())
	if err != nil || inst == nil {
		return zero, err
	}
	typed, ok := inst.(T)
	if !ok {
		return zero, &TypeMismatchError{Expected: KeyOf[T](), Got: reflect.TypeOf(inst)}
	}
	return typed, nil
}

// Bind binds an instance for T through the registered Injector.
func Bind[T any](to T) error {
	inj, err := Registered()
	if err != nil {
		return err
	}
	return inj.Bind(KeyOf[T](), to)
}

// BindFactory binds a factory for T through the registered Injector.
func BindFactory[T any](factory Factory) error {
	inj, err := Registered()
	if err != nil {
		return err
	}
	return inj.BindFactory(KeyOf[T](), factory)
}

// Unbind removes the instance binding for T through the registered
// Injector.
func Unbind[T any]() error {
	inj, err := Registered()
	if err != nil {
		return err
	}
	inj.Unbind(KeyOf[T]())
	return nil
}
