package mocks

import (
	"context"

	"forum-ingestion/internal/models"
	"forum-ingestion/internal/session"
)

type MockForumClient struct {
	GetPageFunc func(ctx context.Context, jar session.Jar, window models.PageWindow) (string, error)
}

func (m *MockForumClient) GetPage(ctx context.Context, jar session.Jar, window models.PageWindow) (string, error) {
	return m.GetPageFunc(ctx, jar, window)
}

type MockSessionManager struct {
	EnsureSessionFunc func(ctx context.Context, jar session.Jar) (session.Jar, error)
}

func (m *MockSessionManager) EnsureSession(ctx context.Context, jar session.Jar) (session.Jar, error) {
	if m.EnsureSessionFunc == nil {
		return session.Jar{"SESSION": "test"}, nil
	}
	return m.EnsureSessionFunc(ctx, jar)
}
