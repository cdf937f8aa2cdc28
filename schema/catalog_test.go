package schema

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCatalog_ValidPayload(t *testing.T) {
	c := NewCatalog(zap.NewNop())

	err := c.Validate("workout.created", map[string]any{
		"workout_id": "123",
		"title":      "Morning Yoga",
		"created_by": "user_456",
	})

	assert.NoError(t, err)
}

func TestCatalog_ExtraFieldsAllowed(t *testing.T) {
	c := NewCatalog(zap.NewNop())

	err := c.Validate("workout.deleted", map[string]any{
		"workout_id": "123",
		"deleted_by": "user_456",
		"reason":     "duplicate",
	})

	assert.NoError(t, err)
}

func TestCatalog_MissingRequiredField(t *testing.T) {
	c := NewCatalog(zap.NewNop())

	err := c.Validate("workout.created", map[string]any{
		"workout_id": "123",
	})

	require.Error(t, err)
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "workout.created", verr.EventType)
	assert.Contains(t, verr.Fields, "title")
	assert.Contains(t, verr.Fields, "created_by")
}

func TestCatalog_EmptyValueFails(t *testing.T) {
	c := NewCatalog(zap.NewNop())

	err := c.Validate("payment.failed", map[string]any{
		"payment_id":     "p_1",
		"user_id":        "u_1",
		"amount":         49.90,
		"failure_reason": "",
		"reference_type": "membership",
		"reference_id":   "m_1",
	})

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "failure_reason")
}

func TestCatalog_UnknownEventTypePasses(t *testing.T) {
	c := NewCatalog(zap.NewNop())

	assert.NoError(t, c.Validate("inventory.restocked", map[string]any{"whatever": 1}))
}

func TestCatalog_Types(t *testing.T) {
	c := NewCatalog(zap.NewNop())

	types := c.Types()
	assert.Contains(t, types, "workout.created")
	assert.Contains(t, types, "class.cancelled")
	assert.Len(t, types, 14)
}

func TestValidationError_Message(t *testing.T) {
	err := &ValidationError{
		EventType: "booking.created",
		Fields:    map[string]string{"user_id": "cannot be blank"},
	}

	assert.Contains(t, err.Error(), "booking.created")
	assert.Contains(t, err.Error(), "user_id")
}
