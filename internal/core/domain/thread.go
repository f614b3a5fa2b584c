package domain

import "time"

// Thread is a top-level discussion started by a user. Deleting a thread
// removes every post referencing it.
type Thread struct {
	ID             string    `json:"threadId"`
	Title          string    `json:"title"`
	InitialMessage string    `json:"initialMessage"`
	Published      time.Time `json:"published"`
	AuthorID       string    `json:"authorId"`
	AuthorUsername string    `json:"authorUsername"`
}
