package inject

import (
	"reflect"
	"sync"
)

// ThreadScope stores bindings per goroutine.
// A key bound on one goroutine is invisible on every other. Storage lives
// until the goroutine calls Release or the owning Injector is cleared; Go
// cannot observe goroutine exit, so pooled goroutines should Release before
// being reused.
type ThreadScope struct {
	mu     sync.RWMutex
	tables map[int64]*bindingTable
}

// NewThreadScope creates an empty thread scope.
func NewThreadScope() *ThreadScope {
	return &ThreadScope{tables: make(map[int64]*bindingTable, 8)}
}

// table returns the calling goroutine's storage, creating it when create is
// set and otherwise returning nil for goroutines that never bound anything.
func (s *ThreadScope) table(create bool) *bindingTable {
	id := goid()

	// Fast path with read lock
	s.mu.RLock()
	t, ok := s.tables[id]
	s.mu.RUnlock()
	if ok {
		return t
	}
	if !create {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Double-check after acquiring write lock
	if t, ok := s.tables[id]; ok {
		return t
	}
	t = newBindingTable()
	s.tables[id] = t
	return t
}

func (s *ThreadScope) Bind(key reflect.Type, to any) error {
	return s.table(true).Bind(key, to)
}

func (s *ThreadScope) Unbind(key reflect.Type) {
	if t := s.table(false); t != nil {
		t.Unbind(key)
	}
}

func (s *ThreadScope) IsBound(key reflect.Type) bool {
	t := s.table(false)
	return t != nil && t.IsBound(key)
}

func (s *ThreadScope) BindFactory(key reflect.Type, factory Factory) error {
	return s.table(true).BindFactory(key, factory)
}

func (s *ThreadScope) UnbindFactory(key reflect.Type) {
	if t := s.table(false); t != nil {
		t.UnbindFactory(key)
	}
}

func (s *ThreadScope) IsFactoryBound(key reflect.Type) bool {
	t := s.table(false)
	return t != nil && t.IsFactoryBound(key)
}

func (s *ThreadScope) Get(key reflect.Type) (any, error) {
	t := s.table(false)
	if t == nil {
		return nil, &NotBoundError{Key: key}
	}
	return t.Get(key)
}

// Release drops the calling goroutine's storage.
func (s *ThreadScope) Release() {
	id := goid()
	s.mu.Lock()
	delete(s.tables, id)
	s.mu.Unlock()
}
