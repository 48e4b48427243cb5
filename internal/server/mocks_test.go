package server

import (
	"context"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"mindstream/internal/models"
	"mindstream/internal/store"
)

// MockUserStore is a mock of the store.UserStore interface
type MockUserStore struct {
	mock.Mock
}

func (m *MockUserStore) List(ctx context.Context) ([]models.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockUserStore) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserStore) GetManyByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.User, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockUserStore) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserStore) Update(ctx context.Context, id primitive.ObjectID, username, email string) (*models.User, error) {
	args := m.Called(ctx, id, username, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserStore) Delete(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserStore) AddThoughtRef(ctx context.Context, userID, thoughtID primitive.ObjectID) (*models.User, error) {
	args := m.Called(ctx, userID, thoughtID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserStore) RemoveThoughtRef(ctx context.Context, thoughtID primitive.ObjectID) (*models.User, error) {
	args := m.Called(ctx, thoughtID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserStore) AddFriend(ctx context.Context, userID, friendID primitive.ObjectID) (*models.User, error) {
	args := m.Called(ctx, userID, friendID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserStore) RemoveFriend(ctx context.Context, userID, friendID primitive.ObjectID) (*models.User, error) {
	args := m.Called(ctx, userID, friendID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserStore) UsernameTaken(ctx context.Context, username string, exclude primitive.ObjectID) (bool, error) {
	args := m.Called(ctx, username, exclude)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserStore) EmailTaken(ctx context.Context, email string, exclude primitive.ObjectID) (bool, error) {
	args := m.Called(ctx, email, exclude)
	return args.Bool(0), args.Error(1)
}

// MockThoughtStore is a mock of the store.ThoughtStore interface
type MockThoughtStore struct {
	mock.Mock
}

func (m *MockThoughtStore) List(ctx context.Context) ([]models.Thought, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Thought), args.Error(1)
}

func (m *MockThoughtStore) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Thought, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Thought), args.Error(1)
}

func (m *MockThoughtStore) GetManyByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Thought, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]models.Thought), args.Error(1)
}

func (m *MockThoughtStore) Create(ctx context.Context, thought *models.Thought) error {
	args := m.Called(ctx, thought)
	return args.Error(0)
}

func (m *MockThoughtStore) Update(ctx context.Context, id primitive.ObjectID, fields store.ThoughtUpdate) (*models.Thought, error) {
	args := m.Called(ctx, id, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Thought), args.Error(1)
}

func (m *MockThoughtStore) Delete(ctx context.Context, id primitive.ObjectID) (*models.Thought, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Thought), args.Error(1)
}

func (m *MockThoughtStore) AddReaction(ctx context.Context, id primitive.ObjectID, reaction models.Reaction) (*models.Thought, error) {
	args := m.Called(ctx, id, reaction)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Thought), args.Error(1)
}

func (m *MockThoughtStore) RemoveReaction(ctx context.Context, id, reactionID primitive.ObjectID) (*models.Thought, error) {
	args := m.Called(ctx, id, reactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Thought), args.Error(1)
}

func (m *MockThoughtStore) RenameAuthor(ctx context.Context, oldUsername, newUsername string) (int64, error) {
	args := m.Called(ctx, oldUsername, newUsername)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockThoughtStore) DeleteByAuthor(ctx context.Context, username string) (int64, error) {
	args := m.Called(ctx, username)
	return args.Get(0).(int64), args.Error(1)
}
