package model

import "time"

// Review is a user's 1 to 5 rating of a post.
type Review struct {
	ID            int64       `json:"id"`
	Rating        int         `json:"rating"        validate:"min=1,max=5"`
	ReviewMessage string      `json:"reviewMessage"`
	DateSent      time.Time   `json:"dateSent"`
	User          UserSummary `json:"user"`
	Post          PostSummary `json:"post"`
}
