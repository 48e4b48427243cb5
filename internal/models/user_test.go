package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestUserJSON_FriendCount(t *testing.T) {
	user := User{
		ID:       primitive.NewObjectID(),
		Username: "ana",
		Email:    "ana@x.co",
		Friends:  []primitive.ObjectID{primitive.NewObjectID(), primitive.NewObjectID()},
	}

	b, err := json.Marshal(user)
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(b, &out))

	assert.Equal(t, float64(2), out["friendCount"])
	assert.Equal(t, []any{}, out["thoughts"])
	assert.Len(t, out["friends"], 2)
}

func TestUserDetailJSON_ResolvedReferences(t *testing.T) {
	friendID := primitive.NewObjectID()
	thoughtID := primitive.NewObjectID()
	detail := UserDetail{
		User: User{
			ID:       primitive.NewObjectID(),
			Username: "ana",
			Email:    "ana@x.co",
			Thoughts: []primitive.ObjectID{thoughtID},
			Friends:  []primitive.ObjectID{friendID},
		},
		ThoughtDocs: []Thought{{ID: thoughtID, ThoughtText: "hi", Username: "ana"}},
		FriendDocs:  []User{{ID: friendID, Username: "bo", Email: "bo@x.co"}},
	}

	b, err := json.Marshal(detail)
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(b, &out))

	assert.Equal(t, float64(1), out["friendCount"])

	thoughts := out["thoughts"].([]any)
	require.Len(t, thoughts, 1)
	assert.Equal(t, "hi", thoughts[0].(map[string]any)["thoughtText"])

	friends := out["friends"].([]any)
	require.Len(t, friends, 1)
	assert.Equal(t, "bo", friends[0].(map[string]any)["username"])
}
