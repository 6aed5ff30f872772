package model

// Role is a permission group, e.g. "admin" or "user".
type Role struct {
	ID   int64  `json:"id"`
	Name string `json:"name" validate:"notblank"`
}
