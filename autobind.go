package inject

import "reflect"

// Initializer is an optional hook autobinding runs after constructing an
// instance. A returned error fails the resolution with
// AutobindingFailedError and leaves the type unbound.
type Initializer interface {
	Init() error
}

// constructible reports whether autobinding can build an instance of key.
// Struct kinds and pointers to struct are built from their zero value;
// everything else stays unbound, a zero interface or map there would only
// mask a missing binding.
func constructible(key reflect.Type) bool {
	if key == nil {
		return false
	}
	switch key.Kind() {
	case reflect.Struct:
		return true
	case reflect.Pointer:
		return key.Elem().Kind() == reflect.Struct
	default:
		return false
	}
}

// construct builds the zero instance for key and runs its Init hook when
// present. Init always runs on the pointer so it can populate fields even
// for value keys.
func construct(key reflect.Type) (any, error) {
	elem := key
	if key.Kind() == reflect.Pointer {
		elem = key.Elem()
	}

	pv := reflect.New(elem)
	if init, ok := pv.Interface().(Initializer); ok {
		if err := init.Init(); err != nil {
			return nil, err
		}
	}

	if key.Kind() == reflect.Pointer {
		return pv.Interface(), nil
	}
	return pv.Elem().Interface(), nil
}
