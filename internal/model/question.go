package model

import "time"

// Question is asked by a user within a category. DateCreated has day
// precision.
type Question struct {
	ID          int64       `json:"id"`
	Title       string      `json:"title"`
	Details     string      `json:"details"`
	ImageURL    string      `json:"imageUrl"`
	DateCreated time.Time   `json:"dateCreated"`
	User        UserSummary `json:"user"`
	Category    Category    `json:"category"    validate:"-"`
}

// QuestionSummary is the question stub embedded in answers.
type QuestionSummary struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}

func (q *Question) Summary() QuestionSummary {
	return QuestionSummary{ID: q.ID, Title: q.Title}
}
