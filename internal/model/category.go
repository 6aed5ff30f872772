package model

// Category groups posts and questions by subject.
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name" validate:"notblank"`
}
