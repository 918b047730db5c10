package models

import "time"

const (
	ActivityAccountRegistered = "ACCOUNT_REGISTERED"
	ActivityAccountUpdated    = "ACCOUNT_UPDATED"
	ActivityAccountDeleted    = "ACCOUNT_DELETED"
	ActivityModuleCreated     = "MODULE_CREATED"
	ActivityModuleUpdated     = "MODULE_UPDATED"
	ActivityModuleDeleted     = "MODULE_DELETED"
	ActivityExerciseAdded     = "EXERCISE_ADDED"
	ActivityExerciseUpdated   = "EXERCISE_UPDATED"
	ActivityExerciseRemoved   = "EXERCISE_REMOVED"
)

// Activity is a single entry of the mutation trail.
type Activity struct {
	ID          string         `json:"id" bson:"_id"`
	OccurredAt  time.Time      `json:"occurredAt" bson:"occurred_at"`
	Type        string         `json:"type" bson:"type"`
	Actor       string         `json:"actor,omitempty" bson:"actor,omitempty"` // username from the access token
	Subject     string         `json:"subject" bson:"subject"`                 // username or module id
	Description string         `json:"description" bson:"description"`
	Metadata    map[string]any `json:"metadata,omitempty" bson:"metadata,omitempty"`
}
