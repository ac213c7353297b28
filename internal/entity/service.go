package entity

import (
	"context"
	"net/url"

	"github.com/nebstarmalala/securion-console/internal/api"
	"github.com/nebstarmalala/securion-console/internal/logging"
	"github.com/nebstarmalala/securion-console/internal/querycache"
)

// Deps bundles the collaborators every entity service needs. The cache
// is the single process-wide store; services share it by reference.
type Deps struct {
	API   *api.Client
	Cache *querycache.Store
}

// NewDeps builds service dependencies.
func NewDeps(client *api.Client, cache *querycache.Store) Deps {
	return Deps{API: client, Cache: cache}
}

// ListResult pairs a page of items with the backend's list metadata.
type ListResult[T any] struct {
	Items []T
	Meta  api.ListMeta
}

// resourcePath joins path segments under a resource, escaping ids.
func resourcePath(resource string, segments ...string) string {
	path := "/" + resource
	for _, s := range segments {
		path += "/" + url.PathEscape(s)
	}
	return path
}

// fetchList serves a list query from the cache when fresh, otherwise
// fetches it and refreshes the cache entry.
func fetchList[T any](ctx context.Context, d Deps, resource string, filters Filter) (ListResult[T], error) {
	key := querycache.List(resource, filters)
	if cached, ok := d.Cache.GetFresh(key); ok {
		if result, typeOK := cached.(ListResult[T]); typeOK {
			logger := logging.FromContext(ctx)
			logger.Debug().
				Str("component", "entity").
				Str("key", key.String()).
				Msg("list cache hit")
			return result, nil
		}
	}

	var items []T
	meta, err := d.API.GetList(ctx, resource, filters.Values(), &items)
	if err != nil {
		return ListResult[T]{}, err
	}

	result := ListResult[T]{Items: items, Meta: *meta}
	_ = d.Cache.Put(key, result)
	return result, nil
}

// fetchDetail serves a detail query from the cache when fresh,
// otherwise fetches and caches it.
func fetchDetail[T any](ctx context.Context, d Deps, resource, id string) (*T, error) {
	key := querycache.Detail(resource, id)
	if cached, ok := d.Cache.GetFresh(key); ok {
		if value, typeOK := cached.(T); typeOK {
			return &value, nil
		}
	}

	var out T
	if err := d.API.GetDetail(ctx, resource, id, &out); err != nil {
		return nil, err
	}
	_ = d.Cache.Put(key, out)
	return &out, nil
}

// createOne posts a new resource. On success the entity's list subtree
// goes stale and the created detail is cached directly; on failure the
// cache is untouched.
func createOne[T any](ctx context.Context, d Deps, resource string, input any, idOf func(*T) string) (*T, error) {
	var out T
	if err := d.API.Post(ctx, resourcePath(resource), input, &out); err != nil {
		return nil, err
	}

	d.Cache.Invalidate(querycache.Lists(resource))
	if id := idOf(&out); id != "" {
		_ = d.Cache.Put(querycache.Detail(resource, id), out)
	}
	return &out, nil
}

// updateOne puts an update to a resource. On success lists go stale and
// the detail entry is overwritten with the response, avoiding a
// redundant refetch.
func updateOne[T any](ctx context.Context, d Deps, resource, id string, input any) (*T, error) {
	var out T
	if err := d.API.Put(ctx, resourcePath(resource, id), input, &out); err != nil {
		return nil, err
	}

	d.Cache.Invalidate(querycache.Lists(resource))
	_ = d.Cache.Put(querycache.Detail(resource, id), out)
	return &out, nil
}

// deleteOne deletes a resource. On success lists go stale, the detail
// entry is removed, and any dependent entity subtrees are
// cross-invalidated.
func deleteOne(ctx context.Context, d Deps, resource, id string, crossInvalidate ...querycache.Key) error {
	if err := d.API.Delete(ctx, resourcePath(resource, id)); err != nil {
		return err
	}

	d.Cache.Invalidate(querycache.Lists(resource))
	d.Cache.Remove(querycache.Detail(resource, id))
	for _, key := range crossInvalidate {
		d.Cache.Invalidate(key)
	}
	return nil
}

// actionOne posts a domain action under a resource (e.g.
// /webhooks/{id}/toggle) and applies the same cache semantics as an
// update: lists stale, detail refreshed from the response.
func actionOne[T any](ctx context.Context, d Deps, resource, id, action string) (*T, error) {
	var out T
	if err := d.API.Post(ctx, resourcePath(resource, id, action), nil, &out); err != nil {
		return nil, err
	}

	d.Cache.Invalidate(querycache.Lists(resource))
	_ = d.Cache.Put(querycache.Detail(resource, id), out)
	return &out, nil
}
