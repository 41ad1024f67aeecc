package inject

// Option configures an Injector at construction time.
type Option func(*Injector)

// WithAutobind toggles autobinding of unbound constructible types.
// It is enabled by default.
func WithAutobind(enabled bool) Option {
	return func(inj *Injector) {
		inj.autobind = enabled
	}
}

// WithEcho installs the verbose diagnostic sink: every binding and
// registration event prints to stdout at debug level. The sink replaces the
// package logger, so echo affects all Injectors in the process.
func WithEcho() Option {
	return func(inj *Injector) {
		inj.echo = true
	}
}
