package response

import (
	"errors"
	"testing"

	"seedcare/internal/common/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type feedbackRequest struct {
	Rating  int    `validate:"min=1,max=5"`
	Channel string `validate:"required,oneof=email whatsapp"`
}

func TestValidate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, Validate(&feedbackRequest{Rating: 5, Channel: "email"}))
	})

	t.Run("collects every failing field", func(t *testing.T) {
		err := Validate(&feedbackRequest{Rating: 6})
		require.Error(t, err)
		assert.True(t, errors.Is(err, apperror.ErrValidation))
		assert.Contains(t, err.Error(), "rating (max=5)")
		assert.Contains(t, err.Error(), "channel (required)")
	})
}

func TestToSnake(t *testing.T) {
	assert.Equal(t, "replacement_qty", toSnake("ReplacementQty"))
	assert.Equal(t, "rating", toSnake("Rating"))
}
