// Package database manages the MongoDB connection and collection handles.
package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"mindstream/internal/config"
)

const (
	UsersCollection    = "users"
	ThoughtsCollection = "thoughts"
)

// Mongo holds the client and database handles shared by the store layer.
type Mongo struct {
	Client *mongo.Client
	DB     *mongo.Database
}

// Connect establishes the MongoDB connection, verifies it with a ping and
// ensures the unique indexes the data model relies on.
func Connect(ctx context.Context, cfg *config.Config) (*Mongo, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	m := &Mongo{
		Client: client,
		DB:     client.Database(cfg.MongoDB),
	}

	if err := m.ensureIndexes(ctx); err != nil {
		return nil, fmt.Errorf("mongo indexes: %w", err)
	}

	log.Println("Database connected successfully")
	return m, nil
}

// Users returns the users collection handle.
func (m *Mongo) Users() *mongo.Collection {
	return m.DB.Collection(UsersCollection)
}

// Thoughts returns the thoughts collection handle.
func (m *Mongo) Thoughts() *mongo.Collection {
	return m.DB.Collection(ThoughtsCollection)
}

// Ping checks the MongoDB connection.
func (m *Mongo) Ping(ctx context.Context) error {
	return m.Client.Ping(ctx, nil)
}

// Disconnect closes the MongoDB connection.
func (m *Mongo) Disconnect(ctx context.Context) error {
	return m.Client.Disconnect(ctx)
}

// ensureIndexes creates the unique indexes backing the pre-write uniqueness
// checks on username and email.
func (m *Mongo) ensureIndexes(ctx context.Context) error {
	_, err := m.Users().Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	})
	return err
}
