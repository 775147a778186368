// internal/client/interface.go
package client

import (
	"context"

	"forum-ingestion/internal/models"
	"forum-ingestion/internal/session"
)

// ForumClientInterface is what the crawler needs from the transport: one
// page window, redirects already followed.
type ForumClientInterface interface {
	GetPage(ctx context.Context, jar session.Jar, window models.PageWindow) (string, error)
}
