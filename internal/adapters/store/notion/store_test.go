package notion

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"bodycomp-notion/internal/platform/logger"
	"bodycomp-notion/internal/ports/store"
)

// fakeNotion registra requests y responde como la API real (mínimo).
type fakeNotion struct {
	mu       sync.Mutex
	requests []recordedRequest

	// columnas declaradas por database (merge)
	columns map[string]map[string]json.RawMessage

	searchResults []map[string]any
	failWith      int
}

type recordedRequest struct {
	Method string
	Path   string
	Auth   string
	Ver    string
	Body   map[string]json.RawMessage
}

func newFakeNotion() *fakeNotion {
	return &fakeNotion{columns: map[string]map[string]json.RawMessage{}}
}

func (f *fakeNotion) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	raw, _ := io.ReadAll(r.Body)
	var body map[string]json.RawMessage
	_ = json.Unmarshal(raw, &body)
	f.requests = append(f.requests, recordedRequest{
		Method: r.Method,
		Path:   r.URL.Path,
		Auth:   r.Header.Get("Authorization"),
		Ver:    r.Header.Get("Notion-Version"),
		Body:   body,
	})

	if f.failWith != 0 {
		w.WriteHeader(f.failWith)
		_, _ = w.Write([]byte(`{"object":"error","code":"restricted_resource","message":"nope"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	switch {
	case r.Method == http.MethodPost && r.URL.Path == "/v1/search":
		_ = json.NewEncoder(w).Encode(map[string]any{"object": "list", "results": f.searchResults})

	case r.Method == http.MethodPatch && strings.HasPrefix(r.URL.Path, "/v1/databases/"):
		id := strings.TrimPrefix(r.URL.Path, "/v1/databases/")
		var props map[string]json.RawMessage
		_ = json.Unmarshal(body["properties"], &props)
		if f.columns[id] == nil {
			f.columns[id] = map[string]json.RawMessage{}
		}
		for k, v := range props {
			f.columns[id][k] = v
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"object": "database", "id": id})

	case r.Method == http.MethodPost && r.URL.Path == "/v1/pages":
		_, _ = w.Write([]byte(`{"object":"page","id":"page-1","url":"https://www.notion.so/page-1"}`))

	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func newTestStore(t *testing.T, f *fakeNotion) *Store {
	t.Helper()
	ts := httptest.NewServer(f)
	t.Cleanup(ts.Close)

	c, err := NewClient(Config{BaseURL: ts.URL + "/v1", APIKey: "secret_abc"})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	s, err := NewStore(c, logger.Nop())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	return s
}

func TestNewClient_RequiresAPIKey(t *testing.T) {
	if _, err := NewClient(Config{}); !errors.Is(err, ErrNotionNotConfigured) {
		t.Fatalf("expected ErrNotionNotConfigured, got %v", err)
	}
}

func TestNewClient_EmptyConfigUsesNotionDefaults(t *testing.T) {
	c, err := NewClient(Config{APIKey: "secret"})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	if c.http.BaseURL != DefaultBaseURL {
		t.Fatalf("expected base url %q, got %q", DefaultBaseURL, c.http.BaseURL)
	}
	if c.http.Headers["Notion-Version"] != DefaultVersion || c.http.Headers["Authorization"] != "Bearer secret" {
		t.Fatalf("unexpected default headers %#v", c.http.Headers)
	}
}

func TestStore_ListCollections_FiltersDatabasesAndKeepsOrder(t *testing.T) {
	f := newFakeNotion()
	f.searchResults = []map[string]any{
		{"object": "database", "id": "first", "title": []map[string]any{{"plain_text": "Weight"}}},
		{"object": "database", "id": "second"},
	}
	s := newTestStore(t, f)

	got, err := s.ListCollections(context.Background())
	if err != nil {
		t.Fatalf("ListCollections: %v", err)
	}
	if len(got.Results) != 2 || got.Results[0].ID != "first" || got.Results[1].ID != "second" {
		t.Fatalf("unexpected results %#v", got.Results)
	}
	if got.Results[0].Title != "Weight" {
		t.Fatalf("expected title Weight, got %q", got.Results[0].Title)
	}

	req := f.requests[0]
	if req.Auth != "Bearer secret_abc" || req.Ver != DefaultVersion {
		t.Fatalf("unexpected auth headers: %q %q", req.Auth, req.Ver)
	}
	if string(req.Body["filter"]) != `{"value":"database","property":"object"}` {
		t.Fatalf("unexpected search filter %s", req.Body["filter"])
	}
}

func TestStore_UpdateSchema_MergesColumns(t *testing.T) {
	f := newFakeNotion()
	s := newTestStore(t, f)

	kg := store.Schema{Title: "Date", Numbers: []string{"Weight (kg)", "Fat Mass (kg)", "Fat Mass (%)", "Lean Mass (kg)"}}
	lb := store.Schema{Title: "Date", Numbers: []string{"Weight (lb)", "Fat Mass (lb)", "Fat Mass (%)", "Lean Mass (lb)"}}

	for i := 0; i < 2; i++ {
		if _, err := s.UpdateSchema(context.Background(), "db1", kg); err != nil {
			t.Fatalf("UpdateSchema kg #%d: %v", i+1, err)
		}
	}
	if n := len(f.columns["db1"]); n != 5 {
		t.Fatalf("expected 5 columns after repeated kg declare, got %d", n)
	}
	if string(f.columns["db1"]["Date"]) != `{"name":"Date","title":{}}` {
		t.Fatalf("unexpected title column payload %s", f.columns["db1"]["Date"])
	}

	if _, err := s.UpdateSchema(context.Background(), "db1", lb); err != nil {
		t.Fatalf("UpdateSchema lb: %v", err)
	}
	// Weight/Fat Mass/Lean Mass (lb) se suman a las de kg; "Fat Mass (%)" se comparte.
	if n := len(f.columns["db1"]); n != 8 {
		t.Fatalf("expected 8 columns after switching unit, got %d", n)
	}
	if _, ok := f.columns["db1"]["Weight (kg)"]; !ok {
		t.Fatalf("kg columns must never be removed")
	}
}

func TestStore_CreateRow_SendsTitleAndNumbers(t *testing.T) {
	f := newFakeNotion()
	s := newTestStore(t, f)

	row, err := s.CreateRow(context.Background(), "db1", store.RowInput{
		TitleColumn: "Date",
		Title:       "10-03-2023 09:15",
		Numbers:     map[string]float64{"Weight (kg)": 80.5},
	})
	if err != nil {
		t.Fatalf("CreateRow: %v", err)
	}
	if row.ID != "page-1" || !strings.Contains(string(row.Raw), `"object":"page"`) {
		t.Fatalf("unexpected row %#v", row)
	}

	req := f.requests[0]
	if string(req.Body["parent"]) != `{"database_id":"db1"}` {
		t.Fatalf("unexpected parent %s", req.Body["parent"])
	}
	var props map[string]json.RawMessage
	_ = json.Unmarshal(req.Body["properties"], &props)
	if string(props["Date"]) != `{"title":[{"text":{"content":"10-03-2023 09:15"}}]}` {
		t.Fatalf("unexpected title property %s", props["Date"])
	}
	if string(props["Weight (kg)"]) != `{"number":80.5}` {
		t.Fatalf("unexpected number property %s", props["Weight (kg)"])
	}
}

func TestStore_FailuresAreTypedExternalErrors(t *testing.T) {
	f := newFakeNotion()
	f.failWith = http.StatusForbidden
	s := newTestStore(t, f)

	_, err := s.CreateRow(context.Background(), "db1", store.RowInput{TitleColumn: "Date", Title: "x"})
	if err == nil {
		t.Fatalf("expected error")
	}

	var ext *store.ExternalServiceError
	if !errors.As(err, &ext) {
		t.Fatalf("expected *store.ExternalServiceError, got %T %v", err, err)
	}
	if ext.Op != opCreateRow {
		t.Fatalf("expected op %s, got %s", opCreateRow, ext.Op)
	}
	if !errors.Is(err, ErrNotionUnauthorized) {
		t.Fatalf("expected ErrNotionUnauthorized in chain, got %v", err)
	}
	if !strings.Contains(err.Error(), "restricted_resource: nope") {
		t.Fatalf("expected notion message in error, got %v", err)
	}
}
