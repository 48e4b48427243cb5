// Package store implements the data access layer over the document store.
package store

import (
	"errors"

	"go.mongodb.org/mongo-driver/mongo"

	"mindstream/internal/models"
)

// ErrNotFound is returned when the target document for an id does not exist.
// Handlers translate it into the operation-specific 404 message.
var ErrNotFound = errors.New("document not found")

// wrapErr maps driver errors onto the application error taxonomy. Unique
// index violations are the backstop behind the pre-write uniqueness checks
// and surface as validation errors, not infrastructure failures.
func wrapErr(err error) error {
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return models.NewValidationError("username or email is already taken")
	default:
		return models.NewInternalError(err)
	}
}
