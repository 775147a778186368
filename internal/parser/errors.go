// internal/parser/errors.go
package parser

import (
	"fmt"
)

// CommentCountNotFoundError means the thread page lacks the comment count
// marker: the thread does not exist or the page layout changed.
type CommentCountNotFoundError struct {
	ThreadID int64
}

func (e *CommentCountNotFoundError) Error() string {
	return fmt.Sprintf("comment count not found on page of thread %d", e.ThreadID)
}

// MalformedFragmentError carries a comment fragment that does not have the
// expected structure.
type MalformedFragmentError struct {
	Fragment string
	Reason   string
}

func (e *MalformedFragmentError) Error() string {
	return fmt.Sprintf("malformed comment fragment (%s): %s", e.Reason, e.Fragment)
}
