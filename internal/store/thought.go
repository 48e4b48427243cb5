package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.opentelemetry.io/otel/attribute"

	"mindstream/internal/cache"
	"mindstream/internal/database"
	"mindstream/internal/models"
	"mindstream/internal/observability"
)

// ThoughtUpdate carries the optional fields of a partial thought update.
type ThoughtUpdate struct {
	ThoughtText *string
	Username    *string
}

// ThoughtStore defines persistence operations for thoughts and their
// embedded reactions.
type ThoughtStore interface {
	List(ctx context.Context) ([]models.Thought, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Thought, error)
	GetManyByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Thought, error)
	Create(ctx context.Context, thought *models.Thought) error
	Update(ctx context.Context, id primitive.ObjectID, fields ThoughtUpdate) (*models.Thought, error)
	Delete(ctx context.Context, id primitive.ObjectID) (*models.Thought, error)
	AddReaction(ctx context.Context, id primitive.ObjectID, reaction models.Reaction) (*models.Thought, error)
	RemoveReaction(ctx context.Context, id, reactionID primitive.ObjectID) (*models.Thought, error)
	RenameAuthor(ctx context.Context, oldUsername, newUsername string) (int64, error)
	DeleteByAuthor(ctx context.Context, username string) (int64, error)
}

type thoughtStore struct {
	col   *mongo.Collection
	cache *cache.Cache
}

// NewThoughtStore returns a ThoughtStore backed by the thoughts collection.
func NewThoughtStore(db *database.Mongo, c *cache.Cache) ThoughtStore {
	return &thoughtStore{col: db.Thoughts(), cache: c}
}

func (s *thoughtStore) List(ctx context.Context) ([]models.Thought, error) {
	cur, err := s.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, wrapErr(err)
	}
	thoughts := []models.Thought{}
	if err := cur.All(ctx, &thoughts); err != nil {
		return nil, wrapErr(err)
	}
	return thoughts, nil
}

func (s *thoughtStore) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Thought, error) {
	var thought models.Thought
	err := s.cache.Aside(ctx, cache.ThoughtKey(id), &thought, cache.ThoughtTTL, func() error {
		if err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&thought); err != nil {
			return wrapErr(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &thought, nil
}

func (s *thoughtStore) GetManyByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Thought, error) {
	thoughts := []models.Thought{}
	if len(ids) == 0 {
		return thoughts, nil
	}
	cur, err := s.col.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, wrapErr(err)
	}
	if err := cur.All(ctx, &thoughts); err != nil {
		return nil, wrapErr(err)
	}
	return thoughts, nil
}

func (s *thoughtStore) Create(ctx context.Context, thought *models.Thought) error {
	if thought.ID.IsZero() {
		thought.ID = primitive.NewObjectID()
	}
	if thought.CreatedAt.IsZero() {
		thought.CreatedAt = time.Now()
	}
	if thought.Reactions == nil {
		thought.Reactions = []models.Reaction{}
	}
	if _, err := s.col.InsertOne(ctx, thought); err != nil {
		return wrapErr(err)
	}
	return nil
}

func (s *thoughtStore) Update(ctx context.Context, id primitive.ObjectID, fields ThoughtUpdate) (*models.Thought, error) {
	set := bson.M{}
	if fields.ThoughtText != nil {
		set["thoughtText"] = *fields.ThoughtText
	}
	if fields.Username != nil {
		set["username"] = *fields.Username
	}
	if len(set) == 0 {
		// Nothing to apply; an empty $set is rejected by the store.
		var thought models.Thought
		if err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&thought); err != nil {
			return nil, wrapErr(err)
		}
		return &thought, nil
	}
	return s.findOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set})
}

func (s *thoughtStore) Delete(ctx context.Context, id primitive.ObjectID) (*models.Thought, error) {
	var thought models.Thought
	if err := s.col.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&thought); err != nil {
		return nil, wrapErr(err)
	}
	s.cache.Invalidate(ctx, cache.ThoughtKey(id))
	return &thought, nil
}

// AddReaction appends the reaction with set semantics: a reaction with the
// same body and username as an existing one is not added again.
func (s *thoughtStore) AddReaction(ctx context.Context, id primitive.ObjectID, reaction models.Reaction) (*models.Thought, error) {
	var thought models.Thought
	if err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&thought); err != nil {
		return nil, wrapErr(err)
	}
	for _, r := range thought.Reactions {
		if r.ReactionBody == reaction.ReactionBody && r.Username == reaction.Username {
			return &thought, nil
		}
	}

	if reaction.ID.IsZero() {
		reaction.ID = primitive.NewObjectID()
	}
	if reaction.CreatedAt.IsZero() {
		reaction.CreatedAt = time.Now()
	}
	return s.findOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$push": bson.M{"reactions": reaction}},
	)
}

func (s *thoughtStore) RemoveReaction(ctx context.Context, id, reactionID primitive.ObjectID) (*models.Thought, error) {
	return s.findOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$pull": bson.M{"reactions": bson.M{"reactionId": reactionID}}},
	)
}

// RenameAuthor rewrites the denormalized username on every thought authored
// under oldUsername. Multi-document, sequential, not atomic.
func (s *thoughtStore) RenameAuthor(ctx context.Context, oldUsername, newUsername string) (int64, error) {
	ctx, span := observability.CollectionSpan(ctx, "thoughts.RenameAuthor", "thoughts")
	defer span.End()

	s.invalidateByAuthor(ctx, oldUsername)
	res, err := s.col.UpdateMany(ctx,
		bson.M{"username": oldUsername},
		bson.M{"$set": bson.M{"username": newUsername}},
	)
	if err != nil {
		span.RecordError(err)
		return 0, wrapErr(err)
	}
	span.SetAttributes(attribute.Int64("db.documents_modified", res.ModifiedCount))
	return res.ModifiedCount, nil
}

// DeleteByAuthor removes every thought authored under username.
func (s *thoughtStore) DeleteByAuthor(ctx context.Context, username string) (int64, error) {
	ctx, span := observability.CollectionSpan(ctx, "thoughts.DeleteByAuthor", "thoughts")
	defer span.End()

	s.invalidateByAuthor(ctx, username)
	res, err := s.col.DeleteMany(ctx, bson.M{"username": username})
	if err != nil {
		span.RecordError(err)
		return 0, wrapErr(err)
	}
	span.SetAttributes(attribute.Int64("db.documents_deleted", res.DeletedCount))
	return res.DeletedCount, nil
}

// invalidateByAuthor drops cache entries for every thought by the given
// author ahead of a bulk rewrite. Best-effort: a failure here only leaves
// entries to expire by TTL.
func (s *thoughtStore) invalidateByAuthor(ctx context.Context, username string) {
	if !s.cache.Available() {
		return
	}
	cur, err := s.col.Find(ctx, bson.M{"username": username},
		options.Find().SetProjection(bson.M{"_id": 1}))
	if err != nil {
		return
	}
	var docs []struct {
		ID primitive.ObjectID `bson:"_id"`
	}
	if err := cur.All(ctx, &docs); err != nil {
		return
	}
	for _, d := range docs {
		s.cache.Invalidate(ctx, cache.ThoughtKey(d.ID))
	}
}

func (s *thoughtStore) findOneAndUpdate(ctx context.Context, filter, update bson.M) (*models.Thought, error) {
	var thought models.Thought
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	if err := s.col.FindOneAndUpdate(ctx, filter, update, opts).Decode(&thought); err != nil {
		return nil, wrapErr(err)
	}
	s.cache.Invalidate(ctx, cache.ThoughtKey(thought.ID))
	return &thought, nil
}
