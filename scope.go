package inject

import (
	"reflect"
	"sync"
)

// Factory produces an instance for a binding on demand.
// A scope fires it at most once per key and memoizes the result; a returned
// error leaves the scope unchanged, so a later resolution retries.
type Factory func() (any, error)

// Scope stores bindings for one lifecycle.
// Instances and factories are independent namespaces for the same key:
// binding one never disturbs the other.
type Scope interface {
	Bind(key reflect.Type, to any) error
	Unbind(key reflect.Type)
	IsBound(key reflect.Type) bool

	BindFactory(key reflect.Type, factory Factory) error
	UnbindFactory(key reflect.Type)
	IsFactoryBound(key reflect.Type) bool

	// Get returns the instance bound for key, firing and memoizing the
	// factory binding when no instance exists yet. Returns NotBoundError
	// when the key has neither.
	Get(key reflect.Type) (any, error)
}

type factoryEntry struct {
	mu      sync.Mutex
	factory Factory
}

// bindingTable is the storage kernel shared by all scopes: memoized
// instances and pending factories, guarded by one RWMutex.
type bindingTable struct {
	mu        sync.RWMutex
	instances map[reflect.Type]any
	factories map[reflect.Type]*factoryEntry
}

func newBindingTable() *bindingTable {
	return &bindingTable{
		instances: make(map[reflect.Type]any, 8),
		factories: make(map[reflect.Type]*factoryEntry, 8),
	}
}

func (t *bindingTable) Bind(key reflect.Type, to any) error {
	t.mu.Lock()
	t.instances[key] = to
	t.mu.Unlock()
	return nil
}

func (t *bindingTable) Unbind(key reflect.Type) {
	t.mu.Lock()
	delete(t.instances, key)
	t.mu.Unlock()
}

func (t *bindingTable) IsBound(key reflect.Type) bool {
	t.mu.RLock()
	_, ok := t.instances[key]
	t.mu.RUnlock()
	return ok
}

func (t *bindingTable) BindFactory(key reflect.Type, factory Factory) error {
	t.mu.Lock()
	t.factories[key] = &factoryEntry{factory: factory}
	t.mu.Unlock()
	return nil
}

func (t *bindingTable) UnbindFactory(key reflect.Type) {
	t.mu.Lock()
	delete(t.factories, key)
	t.mu.Unlock()
}

func (t *bindingTable) IsFactoryBound(key reflect.Type) bool {
	t.mu.RLock()
	_, ok := t.factories[key]
	t.mu.RUnlock()
	return ok
}

func (t *bindingTable) Get(key reflect.Type) (any, error) {
	// Fast path with read lock
	t.mu.RLock()
	if inst, ok := t.instances[key]; ok {
		t.mu.RUnlock()
		return inst, nil
	}
	entry, ok := t.factories[key]
	t.mu.RUnlock()
	if !ok {
		return nil, &NotBoundError{Key: key}
	}

	// Serialize the first resolution per key so racing gets fire the
	// factory once.
	entry.mu.Lock()
	defer entry.mu.Unlock()

	// Double-check after acquiring the entry lock
	t.mu.RLock()
	inst, ok := t.instances[key]
	t.mu.RUnlock()
	if ok {
		return inst, nil
	}

	inst, err := entry.factory()
	if err != nil {
		return nil, err
	}

	t.mu.Lock()
	t.instances[key] = inst
	t.mu.Unlock()
	return inst, nil
}

// ApplicationScope stores bindings for the lifetime of the Injector that
// owns it. It is the default target of Injector.Bind and the memoization
// site for autobound instances.
type ApplicationScope struct {
	*bindingTable
}

// NewApplicationScope creates an empty application scope.
func NewApplicationScope() *ApplicationScope {
	return &ApplicationScope{bindingTable: newBindingTable()}
}

var (
	_ Scope = (*ApplicationScope)(nil)
	_ Scope = (*ThreadScope)(nil)
	_ Scope = (*RequestScope)(nil)
)
