// Package datalist manages the named data lists that storage components
// write into and the panels surface to the user.
//
// A list is a named collection of free-form items. Two backends implement
// the [Store] interface: [FileStore] keeps everything in a single JSON
// file for local development, [MongoStore] persists lists to MongoDB for
// deployments. Both enforce unique list names and report missing lists
// with the LIST_NOT_FOUND error code.
package datalist

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Item is a single entry in a data list. The payload is free-form: storage
// components append whatever their upstream nodes produced.
type Item struct {
	ID      string         `json:"id" bson:"id"`
	Data    map[string]any `json:"data" bson:"data"`
	AddedAt time.Time      `json:"added_at" bson:"added_at"`
}

// List is a named collection of items.
type List struct {
	ID          string    `json:"id" bson:"_id"`
	Name        string    `json:"name" bson:"name"`
	Description string    `json:"description,omitempty" bson:"description,omitempty"`
	Items       []Item    `json:"items" bson:"items"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}

// Match pairs a search hit with the list it was found in.
type Match struct {
	ListID   string `json:"list_id"`
	ListName string `json:"list_name"`
	Item     Item   `json:"item"`
}

// Store is the interface both data list backends implement.
// Get and AddItem report a missing list with the LIST_NOT_FOUND code.
type Store interface {
	Create(ctx context.Context, name, description string) (*List, error)
	Get(ctx context.Context, id string) (*List, error)
	All(ctx context.Context) ([]*List, error)
	AddItem(ctx context.Context, listID string, data map[string]any) (*Item, error)
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, query string) ([]Match, error)
	Close(ctx context.Context) error
}

// searchLists performs the case-insensitive substring search shared by
// both backends. A match on any value in an item's payload selects the
// whole item. List names match too, selecting every item in the list.
func searchLists(lists []*List, query string) []Match {
	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		return nil
	}

	var matches []Match
	for _, l := range lists {
		nameHit := strings.Contains(strings.ToLower(l.Name), needle)
		for _, item := range l.Items {
			if nameHit || itemMatches(item, needle) {
				matches = append(matches, Match{ListID: l.ID, ListName: l.Name, Item: item})
			}
		}
	}
	return matches
}

func itemMatches(item Item, needle string) bool {
	for _, v := range item.Data {
		if strings.Contains(strings.ToLower(fmt.Sprint(v)), needle) {
			return true
		}
	}
	return false
}
