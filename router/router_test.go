package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"

	"github.com/drblury/restview/resource"
	"github.com/drblury/restview/view"
)

func recordingMiddleware(name string, order *[]string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			*order = append(*order, name+"-before")
			next.ServeHTTP(w, r)
			*order = append(*order, name+"-after")
		})
	}
}

func testResource(t *testing.T) *resource.Resource {
	t.Helper()

	bookView := view.MustNew("book", view.Path("id"), view.Path("title"))
	type book struct {
		ID    int    `json:"id"`
		Title string `json:"title"`
	}

	res, err := resource.New("books",
		resource.Get(func(ctx context.Context, req *resource.Request) (any, error) {
			if id := req.Param("id"); id != "" && id != "7" {
				return nil, resource.NewNotFound("id %s", id)
			}
			return book{ID: 7, Title: "X"}, nil
		}, resource.WithView(bookView)),
	)
	if err != nil {
		t.Fatalf("failed to build resource: %v", err)
	}
	return res
}

func TestNewAllowsMiddlewareOverride(t *testing.T) {
	var order []string

	r := New(WithMiddlewareChain(
		recordingMiddleware("one", &order),
		recordingMiddleware("two", &order),
	))
	r.HandleFunc("/", func(w http.ResponseWriter, _ *http.Request) {
		order = append(order, "handler")
		w.WriteHeader(http.StatusTeapot)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	expected := []string{"one-before", "two-before", "handler", "two-after", "one-after"}
	if !reflect.DeepEqual(order, expected) {
		t.Fatalf("unexpected middleware order: got %v, want %v", order, expected)
	}

	if rr.Code != http.StatusTeapot {
		t.Fatalf("unexpected response code: got %d want %d", rr.Code, http.StatusTeapot)
	}
}

func TestNewSupportsPrependAndAppendMiddlewares(t *testing.T) {
	var order []string

	r := New(
		WithoutCORSMiddleware(),
		WithoutTimeoutMiddleware(),
		WithoutLoggingMiddleware(),
		WithMiddlewares(recordingMiddleware("outer", &order)),
		WithTrailingMiddlewares(recordingMiddleware("inner", &order)),
	)
	r.HandleFunc("/", func(w http.ResponseWriter, _ *http.Request) {
		order = append(order, "handler")
		w.WriteHeader(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	expected := []string{"outer-before", "inner-before", "handler", "inner-after", "outer-after"}
	if !reflect.DeepEqual(order, expected) {
		t.Fatalf("unexpected middleware order: got %v want %v", order, expected)
	}
}

func TestNewAppliesCORSEnforcementFromConfig(t *testing.T) {
	r := New(WithConfig(Config{
		CORS: CORSConfig{
			Origins:          []string{"https://example.com"},
			Methods:          []string{http.MethodGet, http.MethodPost},
			Headers:          []string{"Content-Type"},
			AllowCredentials: true,
		},
	}))
	r.HandleFunc("/", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodOptions, "/", nil)
	req.Header.Set("Origin", "https://example.com")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "https://example.com" {
		t.Fatalf("unexpected access-control-allow-origin: got %q", got)
	}
	if got := rr.Header().Get("Access-Control-Allow-Methods"); got != "GET,POST" {
		t.Fatalf("unexpected access-control-allow-methods: got %q", got)
	}
	if got := rr.Header().Get("Access-Control-Allow-Credentials"); got != "true" {
		t.Fatalf("unexpected access-control-allow-credentials: got %q", got)
	}
}

func TestMountServesResource(t *testing.T) {
	r := New(WithoutLoggingMiddleware(), WithoutTimeoutMiddleware())
	Mount(r, "/books", testResource(t))

	req := httptest.NewRequest(http.MethodGet, "/books/7", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("unexpected status: got %d want %d (body %s)", rr.Code, http.StatusOK, rr.Body.String())
	}
	if got := rr.Header().Get("Content-Type"); got != "application/json" {
		t.Fatalf("unexpected content type: got %q", got)
	}
}

func TestMountFormatSuffixSelectsEmitter(t *testing.T) {
	r := New(WithoutLoggingMiddleware(), WithoutTimeoutMiddleware())
	Mount(r, "/books", testResource(t))

	t.Run("collection xml", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/books.xml", nil)
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)

		if rr.Code != http.StatusOK {
			t.Fatalf("unexpected status: got %d (body %s)", rr.Code, rr.Body.String())
		}
		if got := rr.Header().Get("Content-Type"); got != "application/xml" {
			t.Fatalf("unexpected content type: got %q", got)
		}
		if !strings.Contains(rr.Body.String(), "<title>X</title>") {
			t.Fatalf("expected xml body, got %s", rr.Body.String())
		}
	})

	t.Run("entity xml", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/books/7.xml", nil)
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)

		if rr.Code != http.StatusOK {
			t.Fatalf("unexpected status: got %d (body %s)", rr.Code, rr.Body.String())
		}
		if got := rr.Header().Get("Content-Type"); got != "application/xml" {
			t.Fatalf("unexpected content type: got %q", got)
		}
	})

	t.Run("entity not found keeps format", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/books/9.json", nil)
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)

		if rr.Code != http.StatusNotFound {
			t.Fatalf("unexpected status: got %d", rr.Code)
		}
		if !strings.Contains(rr.Body.String(), `"kind":"not_found"`) {
			t.Fatalf("expected not_found envelope, got %s", rr.Body.String())
		}
	})
}

func TestMountUnknownFormatIsClientError(t *testing.T) {
	r := New(WithoutLoggingMiddleware(), WithoutTimeoutMiddleware())
	Mount(r, "/books", testResource(t))

	req := httptest.NewRequest(http.MethodGet, "/books.yaml", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status: got %d (body %s)", rr.Code, rr.Body.String())
	}
	if !strings.Contains(rr.Body.String(), `"kind":"validation"`) {
		t.Fatalf("expected validation envelope, got %s", rr.Body.String())
	}
}
