package journal

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

type testRepo struct {
	items    []Entry
	gotLimit int
	failNext error
}

func (r *testRepo) Create(ctx context.Context, e Entry) error {
	if r.failNext != nil {
		err := r.failNext
		r.failNext = nil
		return err
	}
	r.items = append(r.items, e)
	return nil
}

func (r *testRepo) ListRecent(ctx context.Context, limit int) ([]Entry, error) {
	r.gotLimit = limit
	out := append([]Entry(nil), r.items...)
	sort.Slice(out, func(i, j int) bool { return out[i].ReceivedAt.After(out[j].ReceivedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// -------------------------
// Tests
// -------------------------

func TestService_Record_DerivesStatusFromError(t *testing.T) {
	repo := &testRepo{}
	svc := NewService(repo)

	now := time.Date(2024, 1, 5, 14, 30, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	ok, err := svc.Record(context.Background(), RecordInput{
		Source:     SourceHTTP,
		Collection: "db1",
		Unit:       "kg",
		Date:       "05-01-2024 14:30",
		Weight:     80.5,
		PageID:     "page-1",
	})
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	if ok.Status != StatusCreated || ok.ID == "" || !ok.ReceivedAt.Equal(now) {
		t.Fatalf("unexpected entry %#v", ok)
	}

	failed, err := svc.Record(context.Background(), RecordInput{
		Source: SourceMQTT,
		Err:    errors.New("external service error: op=create_row"),
	})
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	if failed.Status != StatusFailed || failed.Error == "" {
		t.Fatalf("expected failed entry with error, got %#v", failed)
	}
	if failed.ID == ok.ID {
		t.Fatalf("expected distinct ids")
	}
}

func TestService_Record_RequiresSource(t *testing.T) {
	svc := NewService(&testRepo{})
	if _, err := svc.Record(context.Background(), RecordInput{}); err != ErrInvalidInput {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestService_ListRecent_ClampsLimit(t *testing.T) {
	repo := &testRepo{}
	svc := NewService(repo)

	cases := map[int]int{0: DefaultLimit, -1: DefaultLimit, 10: 10, 1000: MaxLimit}
	for in, want := range cases {
		if _, err := svc.ListRecent(context.Background(), in); err != nil {
			t.Fatalf("ListRecent: %v", err)
		}
		if repo.gotLimit != want {
			t.Fatalf("limit %d => expected %d, got %d", in, want, repo.gotLimit)
		}
	}
}
