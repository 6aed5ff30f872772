package model

import "time"

// Post is a piece of educational content, usually a video with a write-up.
// DateCreated has day precision.
type Post struct {
	ID          int64       `json:"id"`
	Title       string      `json:"title"       validate:"notblank"`
	Description string      `json:"description"`
	VideoURL    string      `json:"videoUrl"`
	DateCreated time.Time   `json:"dateCreated"`
	User        UserSummary `json:"user"`
	Category    Category    `json:"category"    validate:"-"`
}

// PostSummary is the post stub embedded in reviews.
type PostSummary struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}

func (p *Post) Summary() PostSummary {
	return PostSummary{ID: p.ID, Title: p.Title}
}
