package service

import "time"

// TokenPair is returned by a successful login.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// ExerciseInput carries a new exercise; both fields are required.
type ExerciseInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// ExercisePatch replaces only the non-empty fields.
type ExercisePatch struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// ActivityFilter supports history filtering by time range and type.
type ActivityFilter struct {
	From time.Time // inclusive; zero means no lower bound
	To   time.Time // inclusive; zero means no upper bound
	Type string
}
