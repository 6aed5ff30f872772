package model

import "time"

type Answer struct {
	ID          int64           `json:"id"`
	Response    string          `json:"response"`
	ImageURL    string          `json:"imageUrl"`
	DateCreated time.Time       `json:"dateCreated"`
	Question    QuestionSummary `json:"question"`
	User        UserSummary     `json:"user"`
}
