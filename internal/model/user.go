// Package model defines the entities persisted by the stores.
//
// Foreign keys are carried as explicit summary types (UserSummary,
// PostSummary, QuestionSummary) holding only the columns the store's join
// selects. A Post never carries a half-filled User, so nothing can read a
// field that was never loaded.
//
// The `validate:"..."` tags are checked by the stores before any statement
// is issued (see package validate).
package model

import "time"

// User is a registered account. Role is fully populated on every read
// because the store always joins roles.
type User struct {
	ID                int64     `json:"id"`
	Username          string    `json:"username"          validate:"notblank"`
	PasswordHash      string    `json:"-"`
	Email             string    `json:"email"`
	FirstName         string    `json:"firstName"`
	LastName          string    `json:"lastName"`
	DateCreated       time.Time `json:"dateCreated"`
	ProfilePictureURL string    `json:"profilePictureUrl"`
	Bio               string    `json:"bio"`
	Role              Role      `json:"role"              validate:"-"`
}

// UserSummary is the user stub embedded in posts, questions, answers,
// reviews and messages.
type UserSummary struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

// Summary returns the stub form of u.
func (u *User) Summary() UserSummary {
	return UserSummary{ID: u.ID, Username: u.Username}
}
