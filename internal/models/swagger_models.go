package models

// HTTPError represents an HTTP error response
// swagger:model HTTPError
type HTTPError struct {
	// HTTP status code
	Code int `json:"code"`
	// Error message
	Message string `json:"message"`
}

// ThreadMeta carries request metadata for a thread response
// swagger:model ThreadMeta
type ThreadMeta struct {
	// Number of comments returned
	CommentCount int `json:"comment_count"`
	// Processing time in milliseconds
	ProcessingTimeMs int64 `json:"processing_time_ms"`
}

// ThreadResponse represents a response for the thread endpoint
// swagger:model ThreadResponse
type ThreadResponse struct {
	// Crawled thread
	Thread Thread `json:"thread"`
	// Metadata about the request
	Meta ThreadMeta `json:"meta"`
}
