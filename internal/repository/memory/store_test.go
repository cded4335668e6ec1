package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kailas-cloud/promptsearch/internal/domain"
	domprompt "github.com/kailas-cloud/promptsearch/internal/domain/prompt"
)

func rec(id, owner string, private bool, at int64) domprompt.Record {
	return domprompt.Reconstruct(id, owner, domprompt.Fields{Title: id}, private, at)
}

func TestStore_FetchFiltersAndOrders(t *testing.T) {
	ctx := context.Background()
	s := New()
	require.NoError(t, s.Put(ctx,
		rec("b", "u1", false, 2),
		rec("a", "u1", false, 2),
		rec("c", "u2", false, 1),
		rec("p1", "u1", true, 0),
		rec("p2", "u2", true, 0),
	))

	pub, err := s.Fetch(ctx, domprompt.Public(), 10)
	require.NoError(t, err)
	require.Len(t, pub, 3)
	assert.Equal(t, "c", pub[0].ID())
	assert.Equal(t, "a", pub[1].ID())
	assert.Equal(t, "b", pub[2].ID())

	priv, err := s.Fetch(ctx, domprompt.PrivateOf("u2"), 10)
	require.NoError(t, err)
	require.Len(t, priv, 1)
	assert.Equal(t, "p2", priv[0].ID())

	capped, err := s.Fetch(ctx, domprompt.Public(), 2)
	require.NoError(t, err)
	assert.Len(t, capped, 2)
}

func TestStore_FetchCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New().Fetch(ctx, domprompt.Public(), 10)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestStore_GetPutDelete(t *testing.T) {
	ctx := context.Background()
	s := New()

	_, err := s.Get(ctx, "x")
	assert.ErrorIs(t, err, domain.ErrPromptNotFound)

	require.NoError(t, s.Put(ctx, rec("x", "u1", false, 1)))
	got, err := s.Get(ctx, "x")
	require.NoError(t, err)
	assert.Equal(t, "x", got.Title())
	assert.Equal(t, 1, s.Len())

	require.NoError(t, s.Delete(ctx, "x"))
	assert.Equal(t, 0, s.Len())
}
