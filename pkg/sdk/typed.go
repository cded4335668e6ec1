package promptsearch

import (
	"context"
	"fmt"
	"reflect"
)

// Typed is a schema-first view of a Client for a user-defined struct.
// The mapping is inferred from T's promptsearch struct tags at construction time.
type Typed[T any] struct {
	client *Client
	meta   *schemaMeta
}

// TypedResult is a ranked item of a typed search.
type TypedResult[T any] struct {
	Item          T
	Score         float64
	FieldsMatched []string
	IsExactMatch  bool
}

// NewTyped creates a typed handle. T must be a struct (or pointer to one)
// with at least userId and title tags.
func NewTyped[T any](client *Client) (*Typed[T], error) {
	meta, err := parseSchema[T]()
	if err != nil {
		return nil, err
	}
	return &Typed[T]{client: client, meta: meta}, nil
}

// Put stores items and returns their ids in input order.
func (t *Typed[T]) Put(ctx context.Context, items ...T) ([]string, error) {
	prompts := make([]Prompt, len(items))
	for i, item := range items {
		if v := reflect.ValueOf(item); v.Kind() == reflect.Pointer && v.IsNil() {
			return nil, fmt.Errorf("%w: item %d is nil", ErrInvalidArgument, i)
		}
		prompts[i] = t.meta.toPrompt(item)
	}
	return t.client.Put(ctx, prompts...)
}

// Get retrieves a typed item by id.
func (t *Typed[T]) Get(ctx context.Context, id string) (T, error) {
	var zero T
	p, err := t.client.Get(ctx, id)
	if err != nil {
		return zero, err
	}
	item, ok := t.meta.fromPrompt(&p).(T)
	if !ok {
		return zero, fmt.Errorf("get: type assertion failed")
	}
	return item, nil
}

// Search runs Client.Search and converts every hit to T.
func (t *Typed[T]) Search(ctx context.Context, requesterID, query string, limit int) ([]TypedResult[T], error) {
	resp, err := t.client.Search(ctx, requesterID, query, limit)
	if err != nil {
		return nil, err
	}

	out := make([]TypedResult[T], len(resp.Results))
	for i := range resp.Results {
		r := &resp.Results[i]
		item, ok := t.meta.fromPrompt(&r.Prompt).(T)
		if !ok {
			return nil, fmt.Errorf("search: type assertion failed")
		}
		out[i] = TypedResult[T]{
			Item:          item,
			Score:         r.Score,
			FieldsMatched: r.FieldsMatched,
			IsExactMatch:  r.IsExactMatch,
		}
	}
	return out, nil
}
