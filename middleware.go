package inject

import (
	"net/http"
	"reflect"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const requestIDHeader = "X-Request-ID"

var (
	requestType   = reflect.TypeOf((*http.Request)(nil))
	requestIDType = reflect.TypeOf(RequestID(""))
)

// Middleware runs every request inside a fresh request-scope boundary of
// the registered Injector. The request itself and its RequestID are bound
// in request scope, so handlers resolve them like any other dependency; the
// boundary closes when the handler returns, also on panic.
//
// An inbound X-Request-ID header is honored, otherwise an id is generated.
// Either way the id is echoed on the response and stored in the request
// context. Requests served before an Injector is registered are answered
// with 503.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		inj, err := Registered()
		if err != nil {
			Logger().Warn("request without registered injector", zap.String("path", r.URL.Path))
			http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
			return
		}
		scope, ok := inj.Scope(requestScopeType)
		if !ok {
			Logger().Warn("request without request scope", zap.String("path", r.URL.Path))
			http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
			return
		}
		requestScope, ok := scope.(*RequestScope)
		if !ok {
			Logger().Warn("request scope has unexpected type", zap.String("path", r.URL.Path))
			http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
			return
		}

		id := RequestID(r.Header.Get(requestIDHeader))
		if id == "" {
			id = RequestID(uuid.NewString())
		}
		w.Header().Set(requestIDHeader, string(id))

		_ = requestScope.Do(func() error {
			r = r.WithContext(WithRequestID(r.Context(), id))
			_ = requestScope.Bind(requestType, r)
			_ = requestScope.Bind(requestIDType, id)
			next.ServeHTTP(w, r)
			return nil
		})
	})
}
