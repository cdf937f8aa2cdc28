package schema

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"go.uber.org/zap"
)

// Catalog is the built-in Validator covering the FitViz domain events.
// Unknown event types pass validation with a warning so that new event
// types can be rolled out before their schema ships.
type Catalog struct {
	rules  map[string]validation.MapRule
	logger *zap.Logger
}

// NewCatalog builds the catalog of known event types.
func NewCatalog(logger *zap.Logger) *Catalog {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Catalog{
		rules:  catalogRules(),
		logger: logger,
	}
}

// Validate implements Validator.
func (c *Catalog) Validate(eventType string, data map[string]any) error {
	rule, ok := c.rules[eventType]
	if !ok {
		c.logger.Warn("no validation schema for event type",
			zap.String("event_type", eventType))
		return nil
	}

	err := validation.Validate(data, rule)
	if err == nil {
		return nil
	}

	fields := map[string]string{}
	if verrs, ok := err.(validation.Errors); ok {
		for field, ferr := range verrs {
			if ferr != nil {
				fields[field] = ferr.Error()
			}
		}
	} else {
		fields["data"] = err.Error()
	}

	return &ValidationError{EventType: eventType, Fields: fields}
}

// Types returns the event types the catalog knows about.
func (c *Catalog) Types() []string {
	types := make([]string, 0, len(c.rules))
	for t := range c.rules {
		types = append(types, t)
	}
	return types
}

// required builds a map rule demanding the given payload fields.
// Extra keys are always allowed: payloads may carry more than the
// schema demands.
func required(fields ...string) validation.MapRule {
	keys := make([]*validation.KeyRules, 0, len(fields))
	for _, f := range fields {
		keys = append(keys, validation.Key(f, validation.Required))
	}
	return validation.Map(keys...).AllowExtraKeys()
}

func catalogRules() map[string]validation.MapRule {
	return map[string]validation.MapRule{
		"workout.created": required("workout_id", "title", "created_by"),
		"workout.updated": required("workout_id", "updated_by"),
		"workout.deleted": required("workout_id", "deleted_by"),

		"booking.created":   required("booking_id", "user_id", "class_id", "class_name"),
		"booking.confirmed": required("booking_id", "user_id", "class_id", "class_name", "scheduled_time"),
		"booking.cancelled": required("booking_id", "user_id", "class_id", "class_name"),

		"membership.created": required("membership_id", "user_id", "plan_name", "start_date", "end_date", "price"),
		"membership.expired": required("membership_id", "user_id", "plan_name", "expired_date"),

		"payment.completed": required("payment_id", "user_id", "amount", "payment_method", "reference_type", "reference_id"),
		"payment.failed":    required("payment_id", "user_id", "amount", "failure_reason", "reference_type", "reference_id"),

		"class.created":   required("class_id", "class_name", "trainer_id", "created_by"),
		"class.updated":   required("class_id", "class_name", "updated_by"),
		"class.scheduled": required("class_id", "class_name", "trainer_id", "trainer_name", "scheduled_time", "duration_minutes", "location", "capacity"),
		"class.cancelled": required("class_id", "class_name", "scheduled_time", "cancellation_reason"),
	}
}
