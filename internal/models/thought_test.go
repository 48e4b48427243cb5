package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestThoughtJSON_DerivedFields(t *testing.T) {
	id := primitive.NewObjectID()
	thought := Thought{
		ID:          id,
		ThoughtText: "hi",
		Username:    "ana",
		CreatedAt:   time.Date(2026, 8, 30, 9, 5, 0, 0, time.UTC),
		Reactions: []Reaction{
			{ID: primitive.NewObjectID(), ReactionBody: "nice", Username: "bo", CreatedAt: time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)},
			{ID: primitive.NewObjectID(), ReactionBody: "wow", Username: "cy", CreatedAt: time.Date(2026, 8, 30, 11, 0, 0, 0, time.UTC)},
		},
	}

	b, err := json.Marshal(thought)
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(b, &out))

	assert.Equal(t, id.Hex(), out["_id"])
	assert.Equal(t, float64(2), out["reactionCount"])
	assert.Equal(t, "8/30/2026 at 9:05:00 AM", out["createdAt"])

	reactions := out["reactions"].([]any)
	require.Len(t, reactions, 2)
	first := reactions[0].(map[string]any)
	assert.Equal(t, "nice", first["reactionBody"])
	assert.Equal(t, "8/30/2026 at 10:00:00 AM", first["createdAt"])
}

func TestThoughtJSON_NilReactionsRenderEmpty(t *testing.T) {
	b, err := json.Marshal(Thought{ID: primitive.NewObjectID(), ThoughtText: "hi", Username: "ana"})
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(b, &out))

	assert.Equal(t, []any{}, out["reactions"])
	assert.Equal(t, float64(0), out["reactionCount"])
}

func TestFormatTimestamp(t *testing.T) {
	assert.Equal(t, "1/2/2026 at 3:04:05 PM",
		FormatTimestamp(time.Date(2026, 1, 2, 15, 4, 5, 0, time.UTC)))
	assert.Equal(t, "12/31/2025 at 12:00:00 AM",
		FormatTimestamp(time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)))
}
