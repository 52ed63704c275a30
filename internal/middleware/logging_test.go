package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestLoggerPassThrough(t *testing.T) {
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte("missing"))
	})

	handler := Logger(inner)

	req := httptest.NewRequest(http.MethodGet, "/tag/nope", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Errorf("status: got %d, want 404", rr.Code)
	}
	if rr.Body.String() != "missing" {
		t.Errorf("body: got %q, want %q", rr.Body.String(), "missing")
	}
}

func TestResponseWriterDefaultsTo200(t *testing.T) {
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Write without calling WriteHeader first.
		w.Write([]byte("implicit ok"))
	})

	handler := Logger(inner)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("status: got %d, want 200", rr.Code)
	}
}

func TestResponseWriterKeepsFirstStatus(t *testing.T) {
	rw := &responseWriter{ResponseWriter: httptest.NewRecorder()}
	rw.WriteHeader(http.StatusTeapot)
	rw.WriteHeader(http.StatusOK) // ignored for logging purposes

	if rw.statusCode != http.StatusTeapot {
		t.Errorf("statusCode: got %d, want %d", rw.statusCode, http.StatusTeapot)
	}
}
