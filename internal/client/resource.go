package client

import (
	"context"
	"net/http"
	"strconv"
)

func list[T any](ctx context.Context, api *API, path string) ([]T, error) {
	var items []T
	if err := api.doJSON(ctx, http.MethodGet, path, nil, &items); err != nil {
		return nil, err
	}
	// a 2xx empty list is an empty collection, never nil
	if items == nil {
		items = []T{}
	}
	return items, nil
}

func get[T any](ctx context.Context, api *API, path string, id int64) (T, error) {
	var item T
	err := api.doJSON(ctx, http.MethodGet, itemPath(path, id), nil, &item)
	return item, err
}

func send[T any](ctx context.Context, api *API, method, path string, body interface{}) (T, error) {
	var item T
	err := api.doJSON(ctx, method, path, body, &item)
	return item, err
}

func remove(ctx context.Context, api *API, path string, id int64) error {
	return api.doJSON(ctx, http.MethodDelete, itemPath(path, id), nil, nil)
}

func itemPath(path string, id int64) string {
	return path + "/" + strconv.FormatInt(id, 10)
}

// Resource is the full CRUD contract over one collection. F is the form
// type accepted on create and update.
type Resource[T, F any] struct {
	api  *API
	path string
}

// NewResource binds a resource to path under the API base
func NewResource[T, F any](api *API, path string) *Resource[T, F] {
	return &Resource[T, F]{api: api, path: path}
}

// Path returns the collection path
func (r *Resource[T, F]) Path() string {
	return r.path
}

// List fetches the whole collection
func (r *Resource[T, F]) List(ctx context.Context) ([]T, error) {
	return list[T](ctx, r.api, r.path)
}

// Get fetches one item
func (r *Resource[T, F]) Get(ctx context.Context, id int64) (T, error) {
	return get[T](ctx, r.api, r.path, id)
}

// Create posts a new item; the server assigns its id
func (r *Resource[T, F]) Create(ctx context.Context, form F) (T, error) {
	return send[T](ctx, r.api, http.MethodPost, r.path, form)
}

// Update replaces the mutable fields of item id
func (r *Resource[T, F]) Update(ctx context.Context, id int64, form F) (T, error) {
	return send[T](ctx, r.api, http.MethodPut, itemPath(r.path, id), form)
}

// Delete removes item id. Deleting a missing id fails like any other request.
func (r *Resource[T, F]) Delete(ctx context.Context, id int64) error {
	return remove(ctx, r.api, r.path, id)
}
