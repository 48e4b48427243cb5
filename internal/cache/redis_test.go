package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"mindstream/internal/models"
)

// newTestCache backs a Cache with an in-process Redis.
func newTestCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	c := New(mr.Addr())
	require.True(t, c.Available())
	t.Cleanup(c.Close)
	return c, mr
}

type doc struct {
	Name string `bson:"name"`
}

func TestDisabledCacheIsNoOp(t *testing.T) {
	var c *Cache

	assert.False(t, c.Available())
	assert.NotPanics(t, func() {
		c.Invalidate(context.Background(), "user:x")
		c.Close()
	})

	var out doc
	found, err := c.Get(context.Background(), "user:x", &out)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, c.Set(context.Background(), "user:x", doc{Name: "ana"}, time.Minute))
}

func TestDisabledCacheAsideAlwaysFetches(t *testing.T) {
	c := &Cache{}

	calls := 0
	var out doc
	for range 3 {
		err := c.Aside(context.Background(), "user:x", &out, time.Minute, func() error {
			calls++
			out = doc{Name: "ana"}
			return nil
		})
		require.NoError(t, err)
	}

	assert.Equal(t, 3, calls)
	assert.Equal(t, "ana", out.Name)
}

func TestAsidePropagatesFetchError(t *testing.T) {
	c := &Cache{}

	var out doc
	err := c.Aside(context.Background(), "user:x", &out, time.Minute, func() error {
		return assert.AnError
	})
	assert.ErrorIs(t, err, assert.AnError)
}

func TestCachedThoughtRoundTrips(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	// Millisecond precision: the stored datetime carries no finer resolution.
	created := time.Date(2026, 1, 2, 15, 4, 5, 123e6, time.UTC)
	thought := models.Thought{
		ID:          primitive.NewObjectID(),
		ThoughtText: "round and round",
		Username:    "ana",
		CreatedAt:   created,
		Reactions: []models.Reaction{{
			ID:           primitive.NewObjectID(),
			ReactionBody: "wow",
			Username:     "bo",
			CreatedAt:    created,
		}},
	}
	key := ThoughtKey(thought.ID)

	require.NoError(t, c.Set(ctx, key, thought, ThoughtTTL))

	var got models.Thought
	found, err := c.Get(ctx, key, &got)
	require.NoError(t, err)
	require.True(t, found)

	assert.Equal(t, thought.ID, got.ID)
	assert.Equal(t, "round and round", got.ThoughtText)
	assert.Equal(t, "ana", got.Username)
	assert.True(t, created.Equal(got.CreatedAt))
	require.Len(t, got.Reactions, 1)
	assert.Equal(t, thought.Reactions[0].ID, got.Reactions[0].ID)
	assert.Equal(t, "wow", got.Reactions[0].ReactionBody)
	assert.True(t, created.Equal(got.Reactions[0].CreatedAt))
}

func TestGetMissingKey(t *testing.T) {
	c, _ := newTestCache(t)

	var got models.Thought
	found, err := c.Get(context.Background(), ThoughtKey(primitive.NewObjectID()), &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestAsideServesSecondReadFromCache(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	id := primitive.NewObjectID()
	key := UserKey(id)
	fetches := 0
	fetch := func(dest *models.User) func() error {
		return func() error {
			fetches++
			*dest = models.User{ID: id, Username: "ana", Email: "ana@x.co"}
			return nil
		}
	}

	var first models.User
	require.NoError(t, c.Aside(ctx, key, &first, UserTTL, fetch(&first)))
	require.Equal(t, 1, fetches)

	var second models.User
	require.NoError(t, c.Aside(ctx, key, &second, UserTTL, fetch(&second)))

	assert.Equal(t, 1, fetches, "second read should be a cache hit")
	assert.Equal(t, id, second.ID)
	assert.Equal(t, "ana", second.Username)
	assert.Equal(t, "ana@x.co", second.Email)
}

func TestInvalidateDropsKey(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	id := primitive.NewObjectID()
	key := UserKey(id)
	require.NoError(t, c.Set(ctx, key, models.User{ID: id, Username: "ana"}, UserTTL))
	require.True(t, mr.Exists(key))

	c.Invalidate(ctx, key)

	assert.False(t, mr.Exists(key))
	var got models.User
	found, err := c.Get(ctx, key, &got)
	require.NoError(t, err)
	assert.False(t, found)
}
