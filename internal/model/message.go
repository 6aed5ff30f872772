package model

import "time"

// Message is a direct message between two users.
type Message struct {
	ID       int64       `json:"id"`
	Text     string      `json:"text"`
	DateSent time.Time   `json:"dateSent"`
	Sender   UserSummary `json:"sender"`
	Receiver UserSummary `json:"receiver"`
}
