package store

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"

	"mindstream/internal/models"
)

func TestWrapErr_NoDocuments(t *testing.T) {
	assert.ErrorIs(t, wrapErr(mongo.ErrNoDocuments), ErrNotFound)
}

func TestWrapErr_DuplicateKeyIsValidation(t *testing.T) {
	dup := mongo.WriteException{
		WriteErrors: mongo.WriteErrors{{Code: 11000, Message: "E11000 duplicate key error"}},
	}

	err := wrapErr(dup)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
}

func TestWrapErr_OtherIsInternal(t *testing.T) {
	err := wrapErr(errors.New("connection reset"))
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "INTERNAL_ERROR", appErr.Code)
}
