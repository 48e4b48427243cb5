package server

import (
	"context"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"mindstream/internal/models"
	"mindstream/internal/validation"
)

const (
	msgUserNotFound         = "No user with that ID"
	msgUserUpdateNotFound   = "Unable to update user; please ensure you have provided a valid userId, username, and email."
	msgUserDeleteNotFound   = "User could not be deleted; no user found with this ID."
	msgFriendAddNotFound    = "Friend could not be added; no user found with that ID."
	msgFriendRemoveNotFound = "Friend could not be removed; no user found with that ID."
)

// userRequest is the payload for creating or updating a user.
type userRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required,email_shape"`
}

// GetUsers handles GET /api/users
// @Summary List users
// @Description List all users.
// @Tags users
// @Produce json
// @Success 200 {array} models.User
// @Router /users [get]
func (s *Server) GetUsers(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	users, err := s.users.List(ctx)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	return c.JSON(users)
}

// GetUser handles GET /api/users/:userId and resolves the user's thought and
// friend references into full documents.
// @Summary Get user by ID
// @Description Get a single user with thought and friend documents resolved.
// @Tags users
// @Produce json
// @Param userId path string true "User ID"
// @Success 200 {object} models.UserDetail
// @Failure 404 {object} map[string]string
// @Router /users/{userId} [get]
func (s *Server) GetUser(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	id, err := objectIDParam(c, "userId")
	if err != nil {
		return respondNotFound(c, msgUserNotFound)
	}

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return respondStoreError(c, err, msgUserNotFound)
	}

	thoughts, err := s.thoughts.GetManyByIDs(ctx, user.Thoughts)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	friends, err := s.users.GetManyByIDs(ctx, user.Friends)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.JSON(models.UserDetail{
		User:        *user,
		ThoughtDocs: thoughts,
		FriendDocs:  friends,
	})
}

// CreateUser handles POST /api/users
// @Summary Create user
// @Description Create a user with a unique username and email.
// @Tags users
// @Accept json
// @Produce json
// @Param user body userRequest true "User payload"
// @Success 200 {object} models.User
// @Failure 400 {object} map[string]string
// @Router /users [post]
func (s *Server) CreateUser(c *fiber.Ctx) error {
	ctx := c.Context()

	var req userRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadBody(c)
	}
	req.Username = strings.TrimSpace(req.Username)

	if appErr := validation.Struct(req); appErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, appErr)
	}
	if err := s.checkUniqueness(ctx, c, req, primitive.NilObjectID); err != nil {
		return nil
	}

	user := models.User{
		Username: req.Username,
		Email:    req.Email,
	}
	if err := s.users.Create(ctx, &user); err != nil {
		return respondStoreError(c, err, msgUserNotFound)
	}

	return c.JSON(user)
}

// UpdateUser handles PUT /api/users/:userId. After the user document is
// rewritten, the denormalized username on every thought authored under the
// old name is updated in a second, non-atomic step.
// @Summary Update user
// @Description Update a user's username and email, renaming the author on their thoughts.
// @Tags users
// @Accept json
// @Produce json
// @Param userId path string true "User ID"
// @Param user body userRequest true "User payload"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /users/{userId} [put]
func (s *Server) UpdateUser(c *fiber.Ctx) error {
	ctx := c.Context()

	id, err := objectIDParam(c, "userId")
	if err != nil {
		return respondNotFound(c, msgUserUpdateNotFound)
	}

	var req userRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadBody(c)
	}
	req.Username = strings.TrimSpace(req.Username)

	if appErr := validation.Struct(req); appErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, appErr)
	}

	// The prior username drives the thought rename cascade.
	prior, err := s.users.GetByID(ctx, id)
	if err != nil {
		return respondStoreError(c, err, msgUserUpdateNotFound)
	}

	if err := s.checkUniqueness(ctx, c, req, id); err != nil {
		return nil
	}

	if _, err := s.users.Update(ctx, id, req.Username, req.Email); err != nil {
		return respondStoreError(c, err, msgUserUpdateNotFound)
	}

	var renamed int64
	if prior.Username != req.Username {
		renamed, err = s.thoughts.RenameAuthor(ctx, prior.Username, req.Username)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusInternalServerError, err)
		}
	}

	return c.JSON(fiber.Map{
		"message":         "User has been updated 🎉",
		"thoughtsUpdated": renamed,
	})
}

// DeleteUser handles DELETE /api/users/:userId and cascades to every thought
// authored under the deleted user's username.
// @Summary Delete user
// @Description Delete a user and every thought they authored.
// @Tags users
// @Produce json
// @Param userId path string true "User ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string
// @Router /users/{userId} [delete]
func (s *Server) DeleteUser(c *fiber.Ctx) error {
	ctx := c.Context()

	id, err := objectIDParam(c, "userId")
	if err != nil {
		return respondNotFound(c, msgUserDeleteNotFound)
	}

	user, err := s.users.Delete(ctx, id)
	if err != nil {
		return respondStoreError(c, err, msgUserDeleteNotFound)
	}

	deleted, err := s.thoughts.DeleteByAuthor(ctx, user.Username)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.JSON(fiber.Map{
		"message":         "User successfully deleted!",
		"thoughtsDeleted": deleted,
	})
}

// AddFriend handles POST /api/users/:userId/friends/:friendId. The friend id
// is not checked for existence and the relation is one-directional: only the
// addressed user's friends array changes.
// @Summary Add friend
// @Description Add a friend to a user's friend list.
// @Tags users
// @Produce json
// @Param userId path string true "User ID"
// @Param friendId path string true "Friend ID"
// @Success 200 {object} models.User
// @Failure 404 {object} map[string]string
// @Router /users/{userId}/friends/{friendId} [post]
func (s *Server) AddFriend(c *fiber.Ctx) error {
	userID, err := objectIDParam(c, "userId")
	if err != nil {
		return respondNotFound(c, msgFriendAddNotFound)
	}
	friendID, err := objectIDParam(c, "friendId")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid friend ID"))
	}

	user, err := s.users.AddFriend(c.Context(), userID, friendID)
	if err != nil {
		return respondStoreError(c, err, msgFriendAddNotFound)
	}
	return c.JSON(user)
}

// RemoveFriend handles DELETE /api/users/:userId/friends/:friendId
// @Summary Remove friend
// @Description Remove a friend from a user's friend list.
// @Tags users
// @Produce json
// @Param userId path string true "User ID"
// @Param friendId path string true "Friend ID"
// @Success 200 {object} models.User
// @Failure 404 {object} map[string]string
// @Router /users/{userId}/friends/{friendId} [delete]
func (s *Server) RemoveFriend(c *fiber.Ctx) error {
	userID, err := objectIDParam(c, "userId")
	if err != nil {
		return respondNotFound(c, msgFriendRemoveNotFound)
	}
	friendID, err := objectIDParam(c, "friendId")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid friend ID"))
	}

	user, err := s.users.RemoveFriend(c.Context(), userID, friendID)
	if err != nil {
		return respondStoreError(c, err, msgFriendRemoveNotFound)
	}
	return c.JSON(user)
}

// checkUniqueness runs the pre-write username/email uniqueness checks. On a
// collision or check failure it writes the response and returns
// errResponseWritten; callers should then return nil. The unique indexes
// remain the backstop against races between check and write.
func (s *Server) checkUniqueness(ctx context.Context, c *fiber.Ctx, req userRequest, exclude primitive.ObjectID) error {
	taken, err := s.users.UsernameTaken(ctx, req.Username, exclude)
	if err != nil {
		_ = models.RespondWithError(c, fiber.StatusInternalServerError, err)
		return errResponseWritten
	}
	if taken {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("That username is already taken"))
		return errResponseWritten
	}

	taken, err = s.users.EmailTaken(ctx, req.Email, exclude)
	if err != nil {
		_ = models.RespondWithError(c, fiber.StatusInternalServerError, err)
		return errResponseWritten
	}
	if taken {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("That email is already registered"))
		return errResponseWritten
	}

	return nil
}
