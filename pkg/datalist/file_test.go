package datalist

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/matzehuels/flowcanvas/pkg/errors"
)

func newFileStore(t *testing.T) (*FileStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "lists.json")
	s, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	return s, path
}

func TestFileStore_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	s, _ := newFileStore(t)

	l, err := s.Create(ctx, "leads", "scraped leads")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if l.ID == "" {
		t.Error("expected a generated id")
	}
	if l.Name != "leads" || l.Description != "scraped leads" {
		t.Errorf("list = %+v", l)
	}

	got, err := s.Get(ctx, l.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Name != "leads" {
		t.Errorf("Get returned %+v", got)
	}
}

func TestFileStore_DuplicateNameRejected(t *testing.T) {
	ctx := context.Background()
	s, _ := newFileStore(t)

	if _, err := s.Create(ctx, "leads", ""); err != nil {
		t.Fatalf("Create: %v", err)
	}
	_, err := s.Create(ctx, "leads", "")
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("duplicate create err = %v, want %s", err, errors.ErrCodeInvalidInput)
	}
}

func TestFileStore_GetUnknownList(t *testing.T) {
	s, _ := newFileStore(t)
	_, err := s.Get(context.Background(), "missing")
	if !errors.Is(err, errors.ErrCodeListNotFound) {
		t.Errorf("err = %v, want %s", err, errors.ErrCodeListNotFound)
	}
}

func TestFileStore_AddItem(t *testing.T) {
	ctx := context.Background()
	s, _ := newFileStore(t)

	l, _ := s.Create(ctx, "leads", "")
	item, err := s.AddItem(ctx, l.ID, map[string]any{"email": "jo@example.com"})
	if err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if item.ID == "" || item.AddedAt.IsZero() {
		t.Errorf("item = %+v", item)
	}

	got, _ := s.Get(ctx, l.ID)
	if len(got.Items) != 1 {
		t.Fatalf("items = %d, want 1", len(got.Items))
	}
	if !got.UpdatedAt.Equal(item.AddedAt) {
		t.Error("UpdatedAt should track the last item")
	}

	if _, err := s.AddItem(ctx, "missing", nil); !errors.Is(err, errors.ErrCodeListNotFound) {
		t.Errorf("AddItem to unknown list err = %v", err)
	}
}

func TestFileStore_Delete(t *testing.T) {
	ctx := context.Background()
	s, _ := newFileStore(t)

	l, _ := s.Create(ctx, "leads", "")
	if err := s.Delete(ctx, l.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Get(ctx, l.ID); !errors.Is(err, errors.ErrCodeListNotFound) {
		t.Error("deleted list still retrievable")
	}
	if err := s.Delete(ctx, l.ID); !errors.Is(err, errors.ErrCodeListNotFound) {
		t.Errorf("double delete err = %v", err)
	}
}

func TestFileStore_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	s, path := newFileStore(t)

	l, _ := s.Create(ctx, "leads", "")
	if _, err := s.AddItem(ctx, l.ID, map[string]any{"email": "jo@example.com"}); err != nil {
		t.Fatalf("AddItem: %v", err)
	}

	reopened, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	got, err := reopened.Get(ctx, l.ID)
	if err != nil {
		t.Fatalf("Get after reopen: %v", err)
	}
	if len(got.Items) != 1 {
		t.Errorf("items after reopen = %d, want 1", len(got.Items))
	}
}

func TestFileStore_Search(t *testing.T) {
	ctx := context.Background()
	s, _ := newFileStore(t)

	leads, _ := s.Create(ctx, "leads", "")
	notes, _ := s.Create(ctx, "notes", "")
	s.AddItem(ctx, leads.ID, map[string]any{"email": "jo@example.com", "company": "Acme"})
	s.AddItem(ctx, leads.ID, map[string]any{"email": "sam@other.org"})
	s.AddItem(ctx, notes.ID, map[string]any{"text": "call Acme on Monday"})

	tests := []struct {
		name  string
		query string
		want  int
	}{
		{"value substring across lists", "acme", 2},
		{"single item", "other.org", 1},
		{"list name matches all its items", "leads", 2},
		{"no hits", "zebra", 0},
		{"blank query", "   ", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			matches, err := s.Search(ctx, tt.query)
			if err != nil {
				t.Fatalf("Search: %v", err)
			}
			if len(matches) != tt.want {
				t.Errorf("matches = %d, want %d", len(matches), tt.want)
			}
		})
	}
}

func TestFileStore_GetReturnsCopy(t *testing.T) {
	ctx := context.Background()
	s, _ := newFileStore(t)

	l, _ := s.Create(ctx, "leads", "")
	s.AddItem(ctx, l.ID, map[string]any{"email": "jo@example.com"})

	got, _ := s.Get(ctx, l.ID)
	got.Items = got.Items[:0]
	got.Name = "mutated"

	again, _ := s.Get(ctx, l.ID)
	if again.Name != "leads" || len(again.Items) != 1 {
		t.Error("mutating a returned list leaked into the store")
	}
}
