// Package models defines the persisted document types and API error envelope.
package models

import (
	"encoding/json"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is a document in the users collection. The thoughts and friends
// fields hold references (ObjectIDs), not embedded documents; the referenced
// records own their own lifecycle.
type User struct {
	ID       primitive.ObjectID   `bson:"_id,omitempty"`
	Username string               `bson:"username"`
	Email    string               `bson:"email"`
	Thoughts []primitive.ObjectID `bson:"thoughts"`
	Friends  []primitive.ObjectID `bson:"friends"`
}

// userJSON is the wire shape of a User. friendCount is derived at render
// time from the friends array and is never persisted.
type userJSON struct {
	ID          primitive.ObjectID   `json:"_id"`
	Username    string               `json:"username"`
	Email       string               `json:"email"`
	Thoughts    []primitive.ObjectID `json:"thoughts"`
	Friends     []primitive.ObjectID `json:"friends"`
	FriendCount int                  `json:"friendCount"`
}

func (u User) MarshalJSON() ([]byte, error) {
	return json.Marshal(userJSON{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		Thoughts:    nonNilIDs(u.Thoughts),
		Friends:     nonNilIDs(u.Friends),
		FriendCount: len(u.Friends),
	})
}

// UserDetail is a User with its thought and friend references resolved into
// the full referenced documents, as returned by the single-user endpoint.
type UserDetail struct {
	User
	ThoughtDocs []Thought
	FriendDocs  []User
}

func (u UserDetail) MarshalJSON() ([]byte, error) {
	thoughts := u.ThoughtDocs
	if thoughts == nil {
		thoughts = []Thought{}
	}
	friends := u.FriendDocs
	if friends == nil {
		friends = []User{}
	}
	return json.Marshal(struct {
		ID          primitive.ObjectID `json:"_id"`
		Username    string             `json:"username"`
		Email       string             `json:"email"`
		Thoughts    []Thought          `json:"thoughts"`
		Friends     []User             `json:"friends"`
		FriendCount int                `json:"friendCount"`
	}{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		Thoughts:    thoughts,
		Friends:     friends,
		FriendCount: len(u.Friends),
	})
}

func nonNilIDs(ids []primitive.ObjectID) []primitive.ObjectID {
	if ids == nil {
		return []primitive.ObjectID{}
	}
	return ids
}
