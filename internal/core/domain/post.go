package domain

import "time"

// Post is a message inside a thread. A post always references an existing
// thread and author at creation time; cascading deletes keep that true.
type Post struct {
	ID             string    `json:"postId"`
	ThreadID       string    `json:"threadId"`
	Message        string    `json:"message"`
	Published      time.Time `json:"published"`
	AuthorID       string    `json:"authorId"`
	AuthorUsername string    `json:"authorUsername"`
}
