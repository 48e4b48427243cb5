package cache

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	UserKeyPrefix    = "user:%s"
	ThoughtKeyPrefix = "thought:%s"
)

const (
	UserTTL    = 5 * time.Minute
	ThoughtTTL = 5 * time.Minute
)

func UserKey(id primitive.ObjectID) string {
	return fmt.Sprintf(UserKeyPrefix, id.Hex())
}

func ThoughtKey(id primitive.ObjectID) string {
	return fmt.Sprintf(ThoughtKeyPrefix, id.Hex())
}
