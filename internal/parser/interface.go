// internal/parser/interface.go
package parser

import (
	"forum-ingestion/internal/models"
)

// Extractor turns page text into comment records. Implementations are
// stateless and safe to share.
type Extractor interface {
	SplitFragments(page string) []string
	ParseFragment(fragment string) (models.Comment, error)
	ParseCommentCount(threadID int64, page string) (int, error)
}
