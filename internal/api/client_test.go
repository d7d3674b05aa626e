package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"habitual/internal/model"

	"github.com/google/go-cmp/cmp"
	"github.com/gorilla/mux"
	"go.uber.org/zap/zaptest"
)

func newTestServer(t *testing.T, r *mux.Router) *Client {
	t.Helper()
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return New(srv.URL+"/api", WithLogger(zaptest.NewLogger(t)))
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func TestClient_CRUDAgainstRouter(t *testing.T) {
	var gotCreate, gotUpdate map[string]string
	var deleted string
	var reqIDs int32

	r := mux.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			if req.Header.Get(RequestIDHeader) != "" {
				atomic.AddInt32(&reqIDs, 1)
			}
			next.ServeHTTP(w, req)
		})
	})
	r.HandleFunc("/api/habits", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusOK, []model.Habit{{ID: "a1", Name: "Stretch", Status: model.StatusDone}})
	}).Methods(http.MethodGet)
	r.HandleFunc("/api/habits", func(w http.ResponseWriter, req *http.Request) {
		_ = json.NewDecoder(req.Body).Decode(&gotCreate)
		writeJSON(w, http.StatusCreated, model.Habit{ID: "b2", Name: gotCreate["name"], Status: model.Status(gotCreate["status"])})
	}).Methods(http.MethodPost)
	r.HandleFunc("/api/habits/{id}", func(w http.ResponseWriter, req *http.Request) {
		_ = json.NewDecoder(req.Body).Decode(&gotUpdate)
		gotUpdate["id"] = mux.Vars(req)["id"]
		w.WriteHeader(http.StatusNoContent)
	}).Methods(http.MethodPut)
	r.HandleFunc("/api/habits/{id}", func(w http.ResponseWriter, req *http.Request) {
		deleted = mux.Vars(req)["id"]
		w.WriteHeader(http.StatusOK)
	}).Methods(http.MethodDelete)

	c := newTestServer(t, r)
	ctx := context.Background()

	list, err := c.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if diff := cmp.Diff([]model.Habit{{ID: "a1", Name: "Stretch", Status: model.StatusDone}}, list); diff != "" {
		t.Fatalf("list mismatch (-want +got):\n%s", diff)
	}

	h, err := c.Create(ctx, "Meditate", model.StatusNone)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if h.ID != "b2" || h.Name != "Meditate" || h.Status != model.StatusNone {
		t.Fatalf("unexpected created habit: %+v", h)
	}
	if gotCreate["name"] != "Meditate" || gotCreate["status"] != "none" {
		t.Fatalf("unexpected create body: %+v", gotCreate)
	}

	if err := c.UpdateStatus(ctx, "b2", model.StatusMissed); err != nil {
		t.Fatalf("update: %v", err)
	}
	if gotUpdate["id"] != "b2" || gotUpdate["status"] != "missed" {
		t.Fatalf("unexpected update: %+v", gotUpdate)
	}

	if err := c.Delete(ctx, "b2"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if deleted != "b2" {
		t.Fatalf("expected delete of b2, got %q", deleted)
	}
	if atomic.LoadInt32(&reqIDs) != 4 {
		t.Fatalf("expected request id on all 4 requests, got %d", reqIDs)
	}
}

func TestClient_NotImplementedClassification(t *testing.T) {
	r := mux.NewRouter()
	// A single-page-app host answering every path with its index page.
	r.PathPrefix("/").HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<!doctype html><html></html>"))
	})
	c := newTestServer(t, r)

	if _, err := c.List(context.Background()); !IsNotImplemented(err) {
		t.Fatalf("expected ErrNotImplemented for html body, got %v", err)
	}
	if _, err := c.Create(context.Background(), "x", model.StatusNone); !IsNotImplemented(err) {
		t.Fatalf("expected ErrNotImplemented for html create, got %v", err)
	}
	// Update/Delete ignore bodies: a 200 is a success.
	if err := c.UpdateStatus(context.Background(), "1", model.StatusDone); err != nil {
		t.Fatalf("expected update success, got %v", err)
	}
}

func TestClient_StatusErrors(t *testing.T) {
	cases := []struct {
		code           int
		notImplemented bool
	}{
		{http.StatusNotFound, true},
		{http.StatusMethodNotAllowed, true},
		{http.StatusNotImplemented, true},
		{http.StatusBadRequest, false},
		{http.StatusInternalServerError, false},
	}
	for _, tc := range cases {
		r := mux.NewRouter()
		r.PathPrefix("/").HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			w.WriteHeader(tc.code)
		})
		c := newTestServer(t, r)
		err := c.Delete(context.Background(), "1")
		if err == nil {
			t.Fatalf("code %d: expected error", tc.code)
		}
		if IsNotImplemented(err) != tc.notImplemented {
			t.Fatalf("code %d: IsNotImplemented=%v, want %v (err=%v)", tc.code, IsNotImplemented(err), tc.notImplemented, err)
		}
		if !tc.notImplemented {
			var se *StatusError
			if !errors.As(err, &se) || se.Code != tc.code {
				t.Fatalf("code %d: expected StatusError, got %v", tc.code, err)
			}
		}
	}
}

func TestClient_PathEscapesIDs(t *testing.T) {
	var gotPath string
	r := mux.NewRouter()
	r.PathPrefix("/api/habits/").HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		gotPath = req.URL.EscapedPath()
		w.WriteHeader(http.StatusOK)
	}).Methods(http.MethodDelete)
	c := newTestServer(t, r)

	if err := c.Delete(context.Background(), "a/b c"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if gotPath != "/api/habits/a%2Fb%20c" {
		t.Fatalf("expected escaped id, got %q", gotPath)
	}
}

func TestClient_TransportErrorTripsBreaker(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close() // nothing listens here any more

	b := NewBreaker(BreakerConfig{FailureThreshold: 2, Cooldown: time.Hour})
	c := New(base+"/api", WithBreaker(b), WithTimeout(2*time.Second))

	for i := 0; i < 2; i++ {
		if _, err := c.List(context.Background()); err == nil || errors.Is(err, ErrCircuitOpen) {
			t.Fatalf("attempt %d: expected transport error, got %v", i, err)
		}
	}
	if b.State() != BreakerOpen {
		t.Fatalf("expected breaker open, got %s", b.State())
	}
	if _, err := c.List(context.Background()); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected ErrCircuitOpen, got %v", err)
	}
}
