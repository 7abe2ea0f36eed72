package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"bodycomp-notion/internal/platform/logger"
	"bodycomp-notion/internal/ports/auth"
)

type fakeVerifier struct{ want string }

func (f fakeVerifier) Verify(_ context.Context, token string) (auth.Claims, error) {
	if token != f.want {
		return auth.Claims{}, errors.New("bad token")
	}
	return auth.Claims{Subject: "ingest"}, nil
}

func TestRequireBearer(t *testing.T) {
	calls := 0
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusNoContent)
	})
	h := RequireBearer(fakeVerifier{want: "tok"}, logger.Nop())(next)

	cases := []struct {
		name   string
		header string
		status int
	}{
		{name: "missing", header: "", status: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic tok", status: http.StatusUnauthorized},
		{name: "wrong token", header: "Bearer nope", status: http.StatusUnauthorized},
		{name: "ok", header: "bearer tok", status: http.StatusNoContent},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/create", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, req)
			if rr.Code != tc.status {
				t.Fatalf("expected %d, got %d", tc.status, rr.Code)
			}
		})
	}

	if calls != 1 {
		t.Fatalf("expected only the valid request to reach the handler, got %d", calls)
	}
}

func TestRequireBearer_NilVerifierIsOpen(t *testing.T) {
	h := RequireBearer(nil, logger.Nop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/create", nil))
	if rr.Code != http.StatusNoContent {
		t.Fatalf("expected pass-through, got %d", rr.Code)
	}
}
