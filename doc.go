// Package inject is a process-wide dependency-resolution registry.
//
// One Injector is registered for the whole process; call sites ask it for
// instances by type instead of constructing them or passing them through
// call chains. The Injector delegates storage to an ordered stack of
// scopes: application scope holds de-facto singletons, thread scope
// partitions bindings per goroutine, request scope partitions them per
// request boundary. The first scope holding a binding answers; unbound
// struct types are autobound from their zero value and memoized.
//
// Typical startup:
//
//	inj, err := inject.Create()
//	if err != nil {
//		...
//	}
//	inj.Bind(inject.KeyOf[Database](), db)
//
// and resolution anywhere in the process:
//
//	db, err := inject.GetInstance[Database]()
//
// Configuration is meant to happen once, from one goroutine, before
// resolution starts; resolution itself is safe from many goroutines.
package inject
