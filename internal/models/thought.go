package models

import (
	"encoding/json"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Thought is a document in the thoughts collection. username is a
// denormalized copy of the author's username, kept in sync by the user
// update/delete cascades rather than by a live reference.
type Thought struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	ThoughtText string             `bson:"thoughtText"`
	Username    string             `bson:"username"`
	CreatedAt   time.Time          `bson:"createdAt"`
	Reactions   []Reaction         `bson:"reactions"`
}

// Reaction is embedded inside its parent thought and has no identity
// outside of it.
type Reaction struct {
	ID           primitive.ObjectID `bson:"reactionId"`
	ReactionBody string             `bson:"reactionBody"`
	Username     string             `bson:"username"`
	CreatedAt    time.Time          `bson:"createdAt"`
}

type thoughtJSON struct {
	ID            primitive.ObjectID `json:"_id"`
	ThoughtText   string             `json:"thoughtText"`
	Username      string             `json:"username"`
	CreatedAt     string             `json:"createdAt"`
	Reactions     []Reaction         `json:"reactions"`
	ReactionCount int                `json:"reactionCount"`
}

func (t Thought) MarshalJSON() ([]byte, error) {
	reactions := t.Reactions
	if reactions == nil {
		reactions = []Reaction{}
	}
	return json.Marshal(thoughtJSON{
		ID:            t.ID,
		ThoughtText:   t.ThoughtText,
		Username:      t.Username,
		CreatedAt:     FormatTimestamp(t.CreatedAt),
		Reactions:     reactions,
		ReactionCount: len(t.Reactions),
	})
}

func (r Reaction) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID           primitive.ObjectID `json:"reactionId"`
		ReactionBody string             `json:"reactionBody"`
		Username     string             `json:"username"`
		CreatedAt    string             `json:"createdAt"`
	}{
		ID:           r.ID,
		ReactionBody: r.ReactionBody,
		Username:     r.Username,
		CreatedAt:    FormatTimestamp(r.CreatedAt),
	})
}

// FormatTimestamp renders a stored timestamp as a display string like
// "1/2/2026 at 3:04:05 PM". The raw time stays in the store untouched.
func FormatTimestamp(t time.Time) string {
	return t.Format("1/2/2006 at 3:04:05 PM")
}
