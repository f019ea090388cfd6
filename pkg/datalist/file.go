package datalist

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/flowcanvas/pkg/errors"
)

// FileStore persists all lists in a single JSON file. Every mutation
// rewrites the file, which is fine at the scale of a local dev setup.
// FileStore is safe for concurrent use.
type FileStore struct {
	mu    sync.Mutex
	path  string
	lists []*List
}

// NewFileStore loads lists from the JSON file at path, creating the
// parent directory if needed. A missing file starts an empty store.
func NewFileStore(path string) (*FileStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	s := &FileStore{path: path}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(data, &s.lists); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "parsing data list file %s", path)
	}
	return s, nil
}

func (s *FileStore) save() error {
	data, err := json.MarshalIndent(s.lists, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o644)
}

// Create adds a new empty list. List names must be unique.
func (s *FileStore) Create(ctx context.Context, name, description string) (*List, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, l := range s.lists {
		if l.Name == name {
			return nil, errors.New(errors.ErrCodeInvalidInput, "list %q already exists", name)
		}
	}

	now := time.Now().UTC()
	l := &List{
		ID:          uuid.NewString(),
		Name:        name,
		Description: description,
		Items:       []Item{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.lists = append(s.lists, l)
	if err := s.save(); err != nil {
		s.lists = s.lists[:len(s.lists)-1]
		return nil, err
	}
	return cloneList(l), nil
}

// Get returns the list with the given id.
func (s *FileStore) Get(ctx context.Context, id string) (*List, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, l := range s.lists {
		if l.ID == id {
			return cloneList(l), nil
		}
	}
	return nil, errors.New(errors.ErrCodeListNotFound, "list %s not found", id)
}

// All returns every list in creation order.
func (s *FileStore) All(ctx context.Context) ([]*List, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*List, len(s.lists))
	for i, l := range s.lists {
		out[i] = cloneList(l)
	}
	return out, nil
}

// AddItem appends an item to the list with the given id.
func (s *FileStore) AddItem(ctx context.Context, listID string, data map[string]any) (*Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, l := range s.lists {
		if l.ID != listID {
			continue
		}
		item := Item{ID: uuid.NewString(), Data: data, AddedAt: time.Now().UTC()}
		l.Items = append(l.Items, item)
		l.UpdatedAt = item.AddedAt
		if err := s.save(); err != nil {
			l.Items = l.Items[:len(l.Items)-1]
			return nil, err
		}
		return &item, nil
	}
	return nil, errors.New(errors.ErrCodeListNotFound, "list %s not found", listID)
}

// Delete removes the list with the given id.
func (s *FileStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, l := range s.lists {
		if l.ID == id {
			s.lists = append(s.lists[:i], s.lists[i+1:]...)
			return s.save()
		}
	}
	return errors.New(errors.ErrCodeListNotFound, "list %s not found", id)
}

// Search returns items whose payload values contain the query.
func (s *FileStore) Search(ctx context.Context, query string) ([]Match, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return searchLists(s.lists, query), nil
}

// Close is a no-op for the file store.
func (s *FileStore) Close(ctx context.Context) error { return nil }

func cloneList(l *List) *List {
	out := *l
	out.Items = make([]Item, len(l.Items))
	copy(out.Items, l.Items)
	return &out
}

var _ Store = (*FileStore)(nil)
