package social

import (
	"context"

	"socialfeed/internal/models"
	"socialfeed/internal/store"
)

// Posts is plain CRUD over posts and comments. Only the author may change
// or delete what they wrote.
type Posts struct {
	store *store.Store
}

func NewPosts(s *store.Store) *Posts {
	return &Posts{store: s}
}

func (p *Posts) Create(ctx context.Context, authorID uint, title, content, mediaURL string) (*PostView, error) {
	post := models.Post{AuthorID: authorID, Title: title, Content: content, MediaURL: mediaURL}
	if err := p.store.CreatePost(ctx, &post); err != nil {
		return nil, err
	}
	return p.Get(ctx, authorID, post.ID)
}

// Get loads one post with comments and like totals as seen by viewerID
// (zero for anonymous viewers).
func (p *Posts) Get(ctx context.Context, viewerID, postID uint) (*PostView, error) {
	post, err := p.store.PostDetail(ctx, postID)
	if err != nil {
		return nil, err
	}
	views, err := enrich(ctx, p.store, viewerID, []models.Post{*post})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

func (p *Posts) List(ctx context.Context, viewerID uint, f store.PostFilter) ([]PostView, int64, error) {
	posts, total, err := p.store.ListPosts(ctx, f)
	if err != nil {
		return nil, 0, err
	}
	views, err := enrich(ctx, p.store, viewerID, posts)
	if err != nil {
		return nil, 0, err
	}
	return views, total, nil
}

func (p *Posts) Update(ctx context.Context, actorID, postID uint, upd store.PostUpdate) (*PostView, error) {
	if err := p.authorOf(ctx, actorID, postID); err != nil {
		return nil, err
	}
	if err := p.store.UpdatePost(ctx, postID, upd); err != nil {
		return nil, err
	}
	return p.Get(ctx, actorID, postID)
}

func (p *Posts) Delete(ctx context.Context, actorID, postID uint) error {
	if err := p.authorOf(ctx, actorID, postID); err != nil {
		return err
	}
	return p.store.DeletePost(ctx, postID)
}

func (p *Posts) authorOf(ctx context.Context, actorID, postID uint) error {
	post, err := p.store.PostByID(ctx, postID)
	if err != nil {
		return err
	}
	if post.AuthorID != actorID {
		return models.ErrForbidden
	}
	return nil
}

func (p *Posts) Comments(ctx context.Context, postID uint, page store.Page) ([]models.Comment, error) {
	if _, err := p.store.PostByID(ctx, postID); err != nil {
		return nil, err
	}
	return p.store.ListComments(ctx, postID, page)
}

func (p *Posts) UpdateComment(ctx context.Context, actorID, postID, commentID uint, content string) (*models.Comment, error) {
	c, err := p.store.CommentByID(ctx, postID, commentID)
	if err != nil {
		return nil, err
	}
	if c.AuthorID != actorID {
		return nil, models.ErrForbidden
	}
	if err := p.store.UpdateComment(ctx, commentID, content); err != nil {
		return nil, err
	}
	return p.store.CommentByID(ctx, postID, commentID)
}

func (p *Posts) DeleteComment(ctx context.Context, actorID, postID, commentID uint) error {
	c, err := p.store.CommentByID(ctx, postID, commentID)
	if err != nil {
		return err
	}
	if c.AuthorID != actorID {
		return models.ErrForbidden
	}
	return p.store.DeleteComment(ctx, commentID)
}
