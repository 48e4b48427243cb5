package server

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"mindstream/internal/models"
	"mindstream/internal/store"
	"mindstream/internal/validation"
)

const (
	msgThoughtNotFound       = "No thought with that ID."
	msgThoughtUpdateNotFound = "Thought could not be updated; no thought found with this ID."
	msgThoughtDeleteNotFound = "Thought could not be deleted; no thought found with this ID."
	msgThoughtDeleted        = "Thought successfully deleted."
	msgThoughtDeletedNoUser  = "Thought deleted, but no user was found with this thought."
	msgThoughtCreatedNoUser  = "Thought created, but no user was found with that ID."
	msgReactionAddNotFound   = "Reaction could not be added; no thought found with that ID."
	msgReactionPullNotFound  = "Reaction could not be removed; no thought found with that ID."
)

// createThoughtRequest is the payload for creating a thought. userId names
// the user whose thoughts array should index the new record.
type createThoughtRequest struct {
	ThoughtText string `json:"thoughtText" validate:"required,min=1,max=280"`
	Username    string `json:"username" validate:"required"`
	UserID      string `json:"userId"`
}

// updateThoughtRequest carries a partial field set; absent fields are left
// untouched.
type updateThoughtRequest struct {
	ThoughtText *string `json:"thoughtText" validate:"omitempty,min=1,max=280"`
	Username    *string `json:"username" validate:"omitempty,min=1"`
}

type reactionRequest struct {
	ReactionBody string `json:"reactionBody" validate:"required,min=1,max=280"`
	Username     string `json:"username" validate:"required"`
}

// GetThoughts handles GET /api/thoughts
// @Summary List thoughts
// @Description List all thoughts with embedded reactions.
// @Tags thoughts
// @Produce json
// @Success 200 {array} models.Thought
// @Router /thoughts [get]
func (s *Server) GetThoughts(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	thoughts, err := s.thoughts.List(ctx)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	return c.JSON(thoughts)
}

// GetThought handles GET /api/thoughts/:thoughtId
// @Summary Get thought by ID
// @Description Get a single thought with its reactions.
// @Tags thoughts
// @Produce json
// @Param thoughtId path string true "Thought ID"
// @Success 200 {object} models.Thought
// @Failure 404 {object} map[string]string
// @Router /thoughts/{thoughtId} [get]
func (s *Server) GetThought(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	id, err := objectIDParam(c, "thoughtId")
	if err != nil {
		return respondNotFound(c, msgThoughtNotFound)
	}

	thought, err := s.thoughts.GetByID(ctx, id)
	if err != nil {
		return respondStoreError(c, err, msgThoughtNotFound)
	}
	return c.JSON(thought)
}

// CreateThought handles POST /api/thoughts. The thought is inserted first;
// adding its id to the owning user's thoughts array is a second step, and a
// missing user leaves the thought in place (partial completion).
// @Summary Create thought
// @Description Create a thought and index it on the owning user.
// @Tags thoughts
// @Accept json
// @Produce json
// @Param thought body createThoughtRequest true "Thought payload"
// @Success 200 {object} models.Thought
// @Failure 400 {object} map[string]string
// @Router /thoughts [post]
func (s *Server) CreateThought(c *fiber.Ctx) error {
	ctx := c.Context()

	var req createThoughtRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadBody(c)
	}
	if appErr := validation.Struct(req); appErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, appErr)
	}

	thought := models.Thought{
		ThoughtText: req.ThoughtText,
		Username:    req.Username,
	}
	if err := s.thoughts.Create(ctx, &thought); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	// A userId that does not parse can never match a user, which is the
	// same outcome as a lookup miss: the thought exists unindexed.
	userID, err := primitive.ObjectIDFromHex(req.UserID)
	if err != nil {
		return respondPartial(c, msgThoughtCreatedNoUser)
	}
	if _, err := s.users.AddThoughtRef(ctx, userID, thought.ID); err != nil {
		if isNotFound(err) {
			return respondPartial(c, msgThoughtCreatedNoUser)
		}
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.JSON(thought)
}

// UpdateThought handles PUT /api/thoughts/:thoughtId
// @Summary Update thought
// @Description Update a thought's text or username; absent fields are untouched.
// @Tags thoughts
// @Accept json
// @Produce json
// @Param thoughtId path string true "Thought ID"
// @Param thought body updateThoughtRequest true "Fields to update"
// @Success 200 {object} models.Thought
// @Failure 404 {object} map[string]string
// @Router /thoughts/{thoughtId} [put]
func (s *Server) UpdateThought(c *fiber.Ctx) error {
	id, err := objectIDParam(c, "thoughtId")
	if err != nil {
		return respondNotFound(c, msgThoughtUpdateNotFound)
	}

	var req updateThoughtRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadBody(c)
	}
	if appErr := validation.Struct(req); appErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, appErr)
	}

	thought, err := s.thoughts.Update(c.Context(), id, store.ThoughtUpdate{
		ThoughtText: req.ThoughtText,
		Username:    req.Username,
	})
	if err != nil {
		return respondStoreError(c, err, msgThoughtUpdateNotFound)
	}
	return c.JSON(thought)
}

// DeleteThought handles DELETE /api/thoughts/:thoughtId. After the delete,
// the id is pulled from whichever user's thoughts array references it; if no
// user does, the delete still stands (partial completion).
// @Summary Delete thought
// @Description Delete a thought and unindex it from the owning user.
// @Tags thoughts
// @Produce json
// @Param thoughtId path string true "Thought ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string
// @Router /thoughts/{thoughtId} [delete]
func (s *Server) DeleteThought(c *fiber.Ctx) error {
	ctx := c.Context()

	id, err := objectIDParam(c, "thoughtId")
	if err != nil {
		return respondNotFound(c, msgThoughtDeleteNotFound)
	}

	if _, err := s.thoughts.Delete(ctx, id); err != nil {
		return respondStoreError(c, err, msgThoughtDeleteNotFound)
	}

	if _, err := s.users.RemoveThoughtRef(ctx, id); err != nil {
		if isNotFound(err) {
			return respondPartial(c, msgThoughtDeletedNoUser)
		}
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.JSON(fiber.Map{"message": msgThoughtDeleted})
}

// AddReaction handles POST /api/thoughts/:thoughtId/reactions
// @Summary Add reaction
// @Description Add a reaction to a thought with set semantics.
// @Tags thoughts
// @Accept json
// @Produce json
// @Param thoughtId path string true "Thought ID"
// @Param reaction body reactionRequest true "Reaction payload"
// @Success 200 {object} models.Thought
// @Failure 404 {object} map[string]string
// @Router /thoughts/{thoughtId}/reactions [post]
func (s *Server) AddReaction(c *fiber.Ctx) error {
	id, err := objectIDParam(c, "thoughtId")
	if err != nil {
		return respondNotFound(c, msgReactionAddNotFound)
	}

	var req reactionRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadBody(c)
	}
	if appErr := validation.Struct(req); appErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, appErr)
	}

	thought, err := s.thoughts.AddReaction(c.Context(), id, models.Reaction{
		ReactionBody: req.ReactionBody,
		Username:     req.Username,
	})
	if err != nil {
		return respondStoreError(c, err, msgReactionAddNotFound)
	}
	return c.JSON(thought)
}

// RemoveReaction handles DELETE /api/thoughts/:thoughtId/reactions. The body
// identifies the reaction to pull.
// @Summary Remove reaction
// @Description Remove a reaction from a thought by its reaction id.
// @Tags thoughts
// @Accept json
// @Produce json
// @Param thoughtId path string true "Thought ID"
// @Success 200 {object} models.Thought
// @Failure 404 {object} map[string]string
// @Router /thoughts/{thoughtId}/reactions [delete]
func (s *Server) RemoveReaction(c *fiber.Ctx) error {
	id, err := objectIDParam(c, "thoughtId")
	if err != nil {
		return respondNotFound(c, msgReactionPullNotFound)
	}

	var req struct {
		ReactionID string `json:"reactionId"`
	}
	if err := c.BodyParser(&req); err != nil {
		return respondBadBody(c)
	}
	reactionID, err := primitive.ObjectIDFromHex(req.ReactionID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid reaction ID"))
	}

	thought, err := s.thoughts.RemoveReaction(c.Context(), id, reactionID)
	if err != nil {
		return respondStoreError(c, err, msgReactionPullNotFound)
	}
	return c.JSON(thought)
}
