package models

import "time"

// Module is a learning module. Exercises live inside the module document and
// have no storage location of their own.
type Module struct {
	ID        string     `json:"id" bson:"_id"`
	Title     string     `json:"title" bson:"title"`
	Exercises []Exercise `json:"exercises" bson:"exercises"`
	CreatedAt time.Time  `json:"createdAt" bson:"created_at"`
	UpdatedAt time.Time  `json:"updatedAt" bson:"updated_at"`
}

// Exercise is embedded in a Module; its ID is unique only within that module.
type Exercise struct {
	ID          string `json:"id" bson:"_id"`
	Title       string `json:"title" bson:"title"`
	Description string `json:"description" bson:"description"`
}

// ExerciseIndex returns the position of the exercise with the given id, or -1.
func (m *Module) ExerciseIndex(id string) int {
	for i := range m.Exercises {
		if m.Exercises[i].ID == id {
			return i
		}
	}
	return -1
}
