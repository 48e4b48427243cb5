package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"mindstream/internal/cache"
	"mindstream/internal/database"
	"mindstream/internal/models"
)

// UserStore defines persistence operations for users.
type UserStore interface {
	List(ctx context.Context) ([]models.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	GetManyByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.User, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, id primitive.ObjectID, username, email string) (*models.User, error)
	Delete(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	AddThoughtRef(ctx context.Context, userID, thoughtID primitive.ObjectID) (*models.User, error)
	RemoveThoughtRef(ctx context.Context, thoughtID primitive.ObjectID) (*models.User, error)
	AddFriend(ctx context.Context, userID, friendID primitive.ObjectID) (*models.User, error)
	RemoveFriend(ctx context.Context, userID, friendID primitive.ObjectID) (*models.User, error)
	UsernameTaken(ctx context.Context, username string, exclude primitive.ObjectID) (bool, error)
	EmailTaken(ctx context.Context, email string, exclude primitive.ObjectID) (bool, error)
}

type userStore struct {
	col   *mongo.Collection
	cache *cache.Cache
}

// NewUserStore returns a UserStore backed by the users collection.
func NewUserStore(db *database.Mongo, c *cache.Cache) UserStore {
	return &userStore{col: db.Users(), cache: c}
}

func (s *userStore) List(ctx context.Context) ([]models.User, error) {
	cur, err := s.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, wrapErr(err)
	}
	users := []models.User{}
	if err := cur.All(ctx, &users); err != nil {
		return nil, wrapErr(err)
	}
	return users, nil
}

func (s *userStore) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var user models.User
	err := s.cache.Aside(ctx, cache.UserKey(id), &user, cache.UserTTL, func() error {
		if err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&user); err != nil {
			return wrapErr(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *userStore) GetManyByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.User, error) {
	users := []models.User{}
	if len(ids) == 0 {
		return users, nil
	}
	cur, err := s.col.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, wrapErr(err)
	}
	if err := cur.All(ctx, &users); err != nil {
		return nil, wrapErr(err)
	}
	return users, nil
}

func (s *userStore) Create(ctx context.Context, user *models.User) error {
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	if user.Thoughts == nil {
		user.Thoughts = []primitive.ObjectID{}
	}
	if user.Friends == nil {
		user.Friends = []primitive.ObjectID{}
	}
	if _, err := s.col.InsertOne(ctx, user); err != nil {
		return wrapErr(err)
	}
	return nil
}

func (s *userStore) Update(ctx context.Context, id primitive.ObjectID, username, email string) (*models.User, error) {
	return s.findOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"username": username, "email": email}},
	)
}

func (s *userStore) Delete(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var user models.User
	if err := s.col.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&user); err != nil {
		return nil, wrapErr(err)
	}
	s.cache.Invalidate(ctx, cache.UserKey(id))
	return &user, nil
}

func (s *userStore) AddThoughtRef(ctx context.Context, userID, thoughtID primitive.ObjectID) (*models.User, error) {
	return s.findOneAndUpdate(ctx,
		bson.M{"_id": userID},
		bson.M{"$addToSet": bson.M{"thoughts": thoughtID}},
	)
}

// RemoveThoughtRef pulls the thought id from whichever user references it.
func (s *userStore) RemoveThoughtRef(ctx context.Context, thoughtID primitive.ObjectID) (*models.User, error) {
	return s.findOneAndUpdate(ctx,
		bson.M{"thoughts": thoughtID},
		bson.M{"$pull": bson.M{"thoughts": thoughtID}},
	)
}

func (s *userStore) AddFriend(ctx context.Context, userID, friendID primitive.ObjectID) (*models.User, error) {
	return s.findOneAndUpdate(ctx,
		bson.M{"_id": userID},
		bson.M{"$addToSet": bson.M{"friends": friendID}},
	)
}

func (s *userStore) RemoveFriend(ctx context.Context, userID, friendID primitive.ObjectID) (*models.User, error) {
	return s.findOneAndUpdate(ctx,
		bson.M{"_id": userID},
		bson.M{"$pull": bson.M{"friends": friendID}},
	)
}

func (s *userStore) UsernameTaken(ctx context.Context, username string, exclude primitive.ObjectID) (bool, error) {
	return s.taken(ctx, "username", username, exclude)
}

func (s *userStore) EmailTaken(ctx context.Context, email string, exclude primitive.ObjectID) (bool, error) {
	return s.taken(ctx, "email", email, exclude)
}

func (s *userStore) taken(ctx context.Context, field, value string, exclude primitive.ObjectID) (bool, error) {
	filter := bson.M{field: value}
	if !exclude.IsZero() {
		filter["_id"] = bson.M{"$ne": exclude}
	}
	n, err := s.col.CountDocuments(ctx, filter)
	if err != nil {
		return false, wrapErr(err)
	}
	return n > 0, nil
}

// findOneAndUpdate applies update to the first document matching filter and
// returns the post-update document, invalidating its cache entry.
func (s *userStore) findOneAndUpdate(ctx context.Context, filter, update bson.M) (*models.User, error) {
	var user models.User
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	if err := s.col.FindOneAndUpdate(ctx, filter, update, opts).Decode(&user); err != nil {
		return nil, wrapErr(err)
	}
	s.cache.Invalidate(ctx, cache.UserKey(user.ID))
	return &user, nil
}
