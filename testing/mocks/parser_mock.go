package mocks

import (
	"forum-ingestion/internal/models"
)

type MockExtractor struct {
	SplitFragmentsFunc    func(page string) []string
	ParseFragmentFunc     func(fragment string) (models.Comment, error)
	ParseCommentCountFunc func(threadID int64, page string) (int, error)
}

func (m *MockExtractor) SplitFragments(page string) []string {
	return m.SplitFragmentsFunc(page)
}

func (m *MockExtractor) ParseFragment(fragment string) (models.Comment, error) {
	return m.ParseFragmentFunc(fragment)
}

func (m *MockExtractor) ParseCommentCount(threadID int64, page string) (int, error) {
	return m.ParseCommentCountFunc(threadID, page)
}
