package metrics

import (
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestHandler_ExposesRegisteredCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	MustRegister(reg)

	IngestionsTotal.WithLabelValues("http", "created").Inc()

	rec := httptest.NewRecorder()
	Handler(reg).ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, _ := io.ReadAll(rec.Body)
	if !strings.Contains(string(body), "bodycomp_ingestions_total") {
		t.Fatalf("expected ingestions counter in output, got:\n%s", body)
	}
	if got := testutil.ToFloat64(IngestionsTotal.WithLabelValues("http", "created")); got < 1 {
		t.Fatalf("expected counter >= 1, got %v", got)
	}
}

func TestOutcome(t *testing.T) {
	if Outcome(nil) != "ok" || Outcome(errors.New("x")) != "error" {
		t.Fatalf("unexpected outcome labels")
	}
}
