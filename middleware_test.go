package inject_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	inject "github.com/scopekit/inject"
	"github.com/scopekit/inject/mock"
	"github.com/stretchr/testify/suite"
)

type MiddlewareTestSuite struct {
	suite.Suite
}

func (s *MiddlewareTestSuite) SetupTest() {
	inject.Unregister(nil)
}

func (s *MiddlewareTestSuite) newServer(handler http.HandlerFunc) *httptest.Server {
	r := chi.NewRouter()
	r.Use(inject.Middleware)
	r.Get("/", handler)
	return httptest.NewServer(r)
}

func (s *MiddlewareTestSuite) TestRequestScopedValues() {
	_, err := inject.Create()
	s.NoError(err)

	server := s.newServer(func(w http.ResponseWriter, r *http.Request) {
		id, err := inject.GetInstance[inject.RequestID]()
		s.NoError(err)
		s.NotEmpty(id)

		// The request itself resolves from request scope and carries the id
		// in its context.
		req, err := inject.GetInstance[*http.Request]()
		s.NoError(err)
		s.Equal(id, inject.RequestIDFromContext(req.Context()))

		_, _ = w.Write([]byte(id))
	})
	defer server.Close()

	get := func() (string, string) {
		resp, err := http.Get(server.URL)
		s.NoError(err)
		defer resp.Body.Close()
		s.Equal(http.StatusOK, resp.StatusCode)
		body, err := io.ReadAll(resp.Body)
		s.NoError(err)
		return string(body), resp.Header.Get("X-Request-ID")
	}

	firstBody, firstHeader := get()
	secondBody, secondHeader := get()

	s.Equal(firstBody, firstHeader)
	s.Equal(secondBody, secondHeader)
	s.NotEqual(firstBody, secondBody, "each request gets its own id")
}

func (s *MiddlewareTestSuite) TestInboundRequestIDHonored() {
	_, err := inject.Create()
	s.NoError(err)

	server := s.newServer(func(w http.ResponseWriter, r *http.Request) {
		id, err := inject.GetInstance[inject.RequestID]()
		s.NoError(err)
		s.Equal(inject.RequestID("req-42"), id)
		w.WriteHeader(http.StatusOK)
	})
	defer server.Close()

	req, _ := http.NewRequest(http.MethodGet, server.URL, nil)
	req.Header.Set("X-Request-ID", "req-42")
	resp, err := http.DefaultClient.Do(req)
	s.NoError(err)
	defer resp.Body.Close()

	s.Equal(http.StatusOK, resp.StatusCode)
	s.Equal("req-42", resp.Header.Get("X-Request-ID"))
}

func (s *MiddlewareTestSuite) TestBoundaryClosedBetweenRequests() {
	_, err := inject.Create()
	s.NoError(err)
	key := inject.KeyOf[*mock.Session]()

	first := true
	server := s.newServer(func(w http.ResponseWriter, r *http.Request) {
		scope, err := inject.GetInstance[*inject.RequestScope]()
		s.NoError(err)

		if first {
			first = false
			s.NoError(scope.Bind(key, &mock.Session{User: "alice"}))
		} else {
			s.False(scope.IsBound(key), "previous request's bindings must be gone")
		}
		w.WriteHeader(http.StatusOK)
	})
	defer server.Close()

	for i := 0; i < 2; i++ {
		resp, err := http.Get(server.URL)
		s.NoError(err)
		resp.Body.Close()
		s.Equal(http.StatusOK, resp.StatusCode)
	}
}

func (s *MiddlewareTestSuite) TestNoInjectorRegistered() {
	server := s.newServer(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	defer server.Close()

	resp, err := http.Get(server.URL)
	s.NoError(err)
	defer resp.Body.Close()

	s.Equal(http.StatusServiceUnavailable, resp.StatusCode)
}

func (s *MiddlewareTestSuite) TestRequestIDContext() {
	ctx := context.Background()
	s.Equal(inject.RequestID(""), inject.RequestIDFromContext(ctx))

	ctx = inject.WithRequestID(ctx, "req-7")
	s.Equal(inject.RequestID("req-7"), inject.RequestIDFromContext(ctx))
}

func TestMiddlewareSuite(t *testing.T) {
	suite.Run(t, new(MiddlewareTestSuite))
}
