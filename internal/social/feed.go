package social

import (
	"context"

	"socialfeed/internal/models"
	"socialfeed/internal/store"
)

// PostView is a post enriched for display: author, comments (when loaded)
// and like totals relative to the viewer.
type PostView struct {
	Post       models.Post
	LikesCount int64
	HasLiked   bool
}

type FeedComposer struct {
	store *store.Store
}

func NewFeedComposer(s *store.Store) *FeedComposer {
	return &FeedComposer{store: s}
}

// ComputeFeed returns posts written by the users userID follows, newest
// first (ties by id, descending), each with author, comments in creation
// order and like count. Loading takes a constant number of bulk queries:
// posts joined against the followee subquery, three preloads, one grouped
// like count and one liked-by-viewer lookup.
func (f *FeedComposer) ComputeFeed(ctx context.Context, userID uint, page store.Page) ([]PostView, error) {
	posts, err := f.store.FeedPosts(ctx, userID, page)
	if err != nil {
		return nil, err
	}
	return enrich(ctx, f.store, userID, posts)
}

func enrich(ctx context.Context, s *store.Store, viewerID uint, posts []models.Post) ([]PostView, error) {
	ids := make([]uint, len(posts))
	for i, p := range posts {
		ids[i] = p.ID
	}

	counts, err := s.LikeCounts(ctx, ids)
	if err != nil {
		return nil, err
	}
	liked, err := s.LikedBy(ctx, viewerID, ids)
	if err != nil {
		return nil, err
	}

	views := make([]PostView, len(posts))
	for i, p := range posts {
		views[i] = PostView{Post: p, LikesCount: counts[p.ID], HasLiked: liked[p.ID]}
	}
	return views, nil
}
