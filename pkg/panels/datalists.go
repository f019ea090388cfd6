package panels

import (
	"context"
	"net/url"

	"github.com/matzehuels/flowcanvas/pkg/datalist"
)

// DataLists is the client for the backend's data list endpoints.
type DataLists struct {
	client *Client
}

// NewDataLists creates a data lists client on top of the shared client.
func NewDataLists(c *Client) *DataLists {
	return &DataLists{client: c}
}

type createListRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type addItemRequest struct {
	Data map[string]any `json:"data"`
}

// All returns every data list known to the backend.
func (d *DataLists) All(ctx context.Context) ([]*datalist.List, error) {
	var lists []*datalist.List
	if err := d.client.Get(ctx, "/api/data/lists", &lists); err != nil {
		return nil, err
	}
	return lists, nil
}

// Get returns a single list by id.
func (d *DataLists) Get(ctx context.Context, id string) (*datalist.List, error) {
	var l datalist.List
	if err := d.client.Get(ctx, "/api/data/lists/"+url.PathEscape(id), &l); err != nil {
		return nil, err
	}
	return &l, nil
}

// Create creates a new named list.
func (d *DataLists) Create(ctx context.Context, name, description string) (*datalist.List, error) {
	var l datalist.List
	req := createListRequest{Name: name, Description: description}
	if err := d.client.Post(ctx, "/api/data/lists", req, &l); err != nil {
		return nil, err
	}
	return &l, nil
}

// AddItem appends an item to a list.
func (d *DataLists) AddItem(ctx context.Context, listID string, data map[string]any) (*datalist.Item, error) {
	var item datalist.Item
	path := "/api/data/lists/" + url.PathEscape(listID) + "/items"
	if err := d.client.Post(ctx, path, addItemRequest{Data: data}, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// Delete removes a list.
func (d *DataLists) Delete(ctx context.Context, id string) error {
	return d.client.Delete(ctx, "/api/data/lists/"+url.PathEscape(id))
}

// Search queries item payloads across all lists.
func (d *DataLists) Search(ctx context.Context, query string) ([]datalist.Match, error) {
	var matches []datalist.Match
	path := "/api/data/search?q=" + url.QueryEscape(query)
	if err := d.client.Get(ctx, path, &matches); err != nil {
		return nil, err
	}
	return matches, nil
}
