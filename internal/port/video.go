package port

import (
	"context"

	"github.com/studyhub-ai/studyhub-backend/internal/domain"
)

// VideoSearcher abstracts the video-search upstream.
type VideoSearcher interface {
	// Search returns normalized results for a free-text query. An empty
	// result set is a success with zero items. A quota/key failure maps
	// to ErrVideoQuota.
	Search(ctx context.Context, query string, maxResults int) (*domain.VideoSearchResult, error)
}
