package inject

import (
	"reflect"
	"sync"
)

// RequestScope stores bindings per request boundary.
// Enter opens a fresh storage generation for the calling goroutine and Exit
// discards it; binding with no boundary open fails with
// NoActiveRequestError. The goroutine that entered the boundary is the one
// the bindings are visible on.
type RequestScope struct {
	mu     sync.RWMutex
	tables map[int64]*bindingTable
}

// NewRequestScope creates a request scope with no open boundaries.
func NewRequestScope() *RequestScope {
	return &RequestScope{tables: make(map[int64]*bindingTable, 8)}
}

// Enter opens a fresh request boundary for the calling goroutine.
// A boundary already open on this goroutine is discarded.
func (s *RequestScope) Enter() {
	id := goid()
	s.mu.Lock()
	s.tables[id] = newBindingTable()
	s.mu.Unlock()
}

// Exit closes the calling goroutine's request boundary and discards its
// bindings. Without an open boundary it is a no-op.
func (s *RequestScope) Exit() {
	id := goid()
	s.mu.Lock()
	delete(s.tables, id)
	s.mu.Unlock()
}

// Active reports whether the calling goroutine has an open request boundary.
func (s *RequestScope) Active() bool {
	s.mu.RLock()
	_, ok := s.tables[goid()]
	s.mu.RUnlock()
	return ok
}

// Do runs fn inside a request boundary and closes the boundary on every
// exit path, including a panic in fn.
func (s *RequestScope) Do(fn func() error) error {
	s.Enter()
	defer s.Exit()
	return fn()
}

func (s *RequestScope) table() *bindingTable {
	s.mu.RLock()
	t := s.tables[goid()]
	s.mu.RUnlock()
	return t
}

func (s *RequestScope) Bind(key reflect.Type, to any) error {
	t := s.table()
	if t == nil {
		return &NoActiveRequestError{}
	}
	return t.Bind(key, to)
}

func (s *RequestScope) Unbind(key reflect.Type) {
	if t := s.table(); t != nil {
		t.Unbind(key)
	}
}

func (s *RequestScope) IsBound(key reflect.Type) bool {
	t := s.table()
	return t != nil && t.IsBound(key)
}

func (s *RequestScope) BindFactory(key reflect.Type, factory Factory) error {
	t := s.table()
	if t == nil {
		return &NoActiveRequestError{}
	}
	return t.BindFactory(key, factory)
}

func (s *RequestScope) UnbindFactory(key reflect.Type) {
	if t := s.table(); t != nil {
		t.UnbindFactory(key)
	}
}

func (s *RequestScope) IsFactoryBound(key reflect.Type) bool {
	t := s.table()
	return t != nil && t.IsFactoryBound(key)
}

func (s *RequestScope) Get(key reflect.Type) (any, error) {
	t := s.table()
	if t == nil {
		return nil, &NotBoundError{Key: key}
	}
	return t.Get(key)
}
