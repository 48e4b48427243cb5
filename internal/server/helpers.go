package server

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"mindstream/internal/models"
	"mindstream/internal/store"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper. Handlers must return nil (not this error) so the
// framework's ErrorHandler does not overwrite the response.
var errResponseWritten = errors.New("response already written")

// objectIDParam parses a route parameter as an ObjectID. An unparseable id
// can never match a stored document, so callers treat the error as not-found.
func objectIDParam(c *fiber.Ctx, param string) (primitive.ObjectID, error) {
	return primitive.ObjectIDFromHex(c.Params(param))
}

// respondNotFound writes the original API's 404 shape: a bare message naming
// the missing entity.
func respondNotFound(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"message": message,
	})
}

// respondPartial reports a two-step operation whose first step succeeded but
// whose secondary link-update found no target. The primary change is already
// durable, so this is a 200 with a warning, not an error.
func respondPartial(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": message,
		"partial": true,
	})
}

// respondStoreError maps a store-layer error onto the response taxonomy:
// not-found gets the operation-specific message, validation errors get 400,
// everything else is an infrastructure failure.
func respondStoreError(c *fiber.Ctx, err error, notFoundMessage string) error {
	if errors.Is(err, store.ErrNotFound) {
		return respondNotFound(c, notFoundMessage)
	}

	var appErr *models.AppError
	if errors.As(err, &appErr) && appErr.Code == "VALIDATION_ERROR" {
		return models.RespondWithError(c, fiber.StatusBadRequest, appErr)
	}

	return models.RespondWithError(c, fiber.StatusInternalServerError, err)
}

// isNotFound reports whether err is the store's not-found sentinel.
func isNotFound(err error) bool {
	return errors.Is(err, store.ErrNotFound)
}

// respondBadBody writes the standard response for an unparseable request body.
func respondBadBody(c *fiber.Ctx) error {
	return models.RespondWithError(c, fiber.StatusBadRequest,
		models.NewValidationError("Invalid request body"))
}
