package httpapi

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func scrape(t *testing.T) []byte {
	t.Helper()
	mrr := httptest.NewRecorder()
	promhttp.Handler().ServeHTTP(mrr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if mrr.Code != http.StatusOK {
		t.Fatalf("/metrics status=%d", mrr.Code)
	}
	return mrr.Body.Bytes()
}

func TestMetricsMiddleware_EmitsRequestCounters(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	rr := httptest.NewRecorder()
	MetricsMiddleware(next).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/test", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	if !bytes.Contains(scrape(t), []byte("chatbot_http_requests_total")) {
		t.Fatalf("expected chatbot_http_requests_total in metrics")
	}
}

// Labels come from the chi route pattern, not the raw path.
func TestMetricsMiddleware_UsesRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(MetricsMiddleware)
	r.Get("/items/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	})
	before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("/items/{id}", "GET", "202"))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/items/42", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/items/43", nil))
	if got := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("/items/{id}", "GET", "202")); got != before+2 {
		t.Fatalf("counter=%v want %v", got, before+2)
	}
}

func TestMetricsEndpointServesMockCounters(t *testing.T) {
	h := NewMux(newBackend(t))
	postChat(h, `{"model_id":"nope","prompt":"hi"}`)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if !bytes.Contains(rec.Body.Bytes(), []byte(`chatbot_mock_chats_total{result="unknown_model"}`)) {
		t.Fatalf("mock chat counter missing from /metrics")
	}
}

func TestMetricsMiddleware_UnmatchedRouteLabel(t *testing.T) {
	r := chi.NewRouter()
	r.Use(MetricsMiddleware)
	r.Get("/known", func(w http.ResponseWriter, r *http.Request) {})
	before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues(unmatchedRoute, "GET", "404"))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/random-1", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/random-2", nil))
	if got := testutil.ToFloat64(httpRequestsTotal.WithLabelValues(unmatchedRoute, "GET", "404")); got != before+2 {
		t.Fatalf("unmatched counter=%v want %v", got, before+2)
	}
}

func TestResponseRecorder_CountsBytes(t *testing.T) {
	rec := &responseRecorder{ResponseWriter: httptest.NewRecorder(), status: http.StatusOK}
	_, _ = rec.Write([]byte("hello"))
	_, _ = rec.Write([]byte(" world"))
	rec.WriteHeader(http.StatusTeapot)
	if rec.bytes != 11 || rec.status != http.StatusOK {
		t.Fatalf("bytes=%d status=%d", rec.bytes, rec.status)
	}
}
