package memory

import (
	"context"
	"testing"
	"time"

	"bodycomp-notion/internal/domain/journal"
)

func TestJournalRepo_ListRecentNewestFirstAndEvicts(t *testing.T) {
	repo := NewJournalRepo(2)
	base := time.Date(2024, 1, 5, 10, 0, 0, 0, time.UTC)

	for i, id := range []string{"a", "b", "c"} {
		err := repo.Create(context.Background(), journal.Entry{
			ID:         id,
			ReceivedAt: base.Add(time.Duration(i) * time.Minute),
			Source:     journal.SourceHTTP,
			Status:     journal.StatusCreated,
		})
		if err != nil {
			t.Fatalf("Create %s: %v", id, err)
		}
	}

	items, err := repo.ListRecent(context.Background(), 10)
	if err != nil {
		t.Fatalf("ListRecent: %v", err)
	}
	if len(items) != 2 || items[0].ID != "c" || items[1].ID != "b" {
		t.Fatalf("expected [c b] after evicting oldest, got %#v", items)
	}

	if err := repo.Create(context.Background(), journal.Entry{ID: "c"}); err == nil {
		t.Fatalf("expected duplicate id error")
	}
}
