package server

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestBasicRouter(t *testing.T) {
	t.Run("routes requests to registered handlers", func(t *testing.T) {
		router := NewBasicRouter()
		router.Handle("GET", "/ping", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("pong"))
		}))

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest("GET", "/ping", nil))

		if rec.Code != http.StatusOK {
			t.Errorf("expected 200, got %d", rec.Code)
		}
		if rec.Body.String() != "pong" {
			t.Errorf("unexpected body %q", rec.Body.String())
		}
	})

	t.Run("rejects mismatched methods", func(t *testing.T) {
		router := NewBasicRouter()
		router.Handle("GET", "/ping", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest("POST", "/ping", nil))

		if rec.Code != http.StatusMethodNotAllowed {
			t.Errorf("expected 405, got %d", rec.Code)
		}
		if allow := rec.Header().Get("Allow"); allow != "GET" {
			t.Errorf("expected Allow header GET, got %q", allow)
		}
	})

	t.Run("applies middleware in registration order", func(t *testing.T) {
		router := NewBasicRouter()

		var order []string
		tag := func(name string) Middleware {
			return func(next http.Handler) http.Handler {
				return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					order = append(order, name)
					next.ServeHTTP(w, r)
				})
			}
		}

		router.Use(tag("outer"), tag("inner"))
		router.Handle("GET", "/x", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			order = append(order, "handler")
		}))

		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/x", nil))

		want := "outer,inner,handler"
		if got := strings.Join(order, ","); got != want {
			t.Errorf("execution order %q, want %q", got, want)
		}
	})

	t.Run("registers all routes from a Handler implementation", func(t *testing.T) {
		router := NewBasicRouter()
		handler := NewTokenHandler("state-1")
		router.Handler(handler)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest("GET", "/callback?state=wrong", nil))

		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected 400 for bad state, got %d", rec.Code)
		}
	})
}

func TestLoggingMiddleware(t *testing.T) {
	logger := log.New(io.Discard)
	router := NewBasicRouter()
	router.Use(LoggingMiddleware(logger))
	router.Handle("GET", "/ok", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/ok", nil))

	if rec.Code != http.StatusNoContent {
		t.Errorf("middleware should pass the request through, got %d", rec.Code)
	}
}
