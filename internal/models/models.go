package models

import (
	"time"
)

// Comment represents a single forum comment
// swagger:model Comment
type Comment struct {
	// Server-assigned comment ID, increasing with posting order
	ID int64 `json:"id"`
	// Poster's display name, verbatim from the page
	SenderName string `json:"sender_name"`
	// Poster's account ID
	SenderID int64 `json:"sender_id"`
	// Posting time, second precision, in the configured forum location
	PostedAt time.Time `json:"posted_at"`
	// Comment body markup, verbatim
	BodyHTML string `json:"body_html"`
}

// PageWindow describes one paginated request of a thread.
type PageWindow struct {
	ThreadID    int64
	PageSize    int
	StartOffset int
}

// Thread represents the result of one complete crawl of a thread
// swagger:model Thread
type Thread struct {
	// Forum thread (topic) ID
	ID int64 `json:"id"`
	// Identifier of the crawl run that produced this result
	RunID string `json:"run_id"`
	// Comment count declared by the forum at the start of the run
	DeclaredCount int `json:"declared_count"`
	// Time the crawl finished
	FetchedAt time.Time `json:"fetched_at"`
	// Comments in ascending ID order
	Comments []Comment `json:"comments"`
}
