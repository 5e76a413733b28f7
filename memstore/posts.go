package memstore

import (
	"context"

	"github.com/user/blog-go/posts"
)

func clonePost(p *posts.Post) *posts.Post {
	cp := *p
	cp.Comments = append([]posts.Comment{}, p.Comments...)
	return &cp
}

// indexOf returns the position of the post with id, or -1. Callers hold the lock.
func (s *Store) indexOf(id string) int {
	for i, p := range s.posts {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// Find returns the matching posts, newest first, windowed by q.Skip and q.Limit.
func (s *Store) Find(ctx context.Context, q posts.ListQuery) ([]posts.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var matched []posts.Post
	for _, p := range s.posts {
		if q.Filter.Matches(*p) {
			matched = append(matched, *clonePost(p))
		}
	}
	posts.SortNewestFirst(matched)
	return posts.Window(matched, q.Skip, q.Limit), nil
}

// Count returns how many posts match f.
func (s *Store) Count(ctx context.Context, f posts.Filter) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var n int64
	for _, p := range s.posts {
		if f.Matches(*p) {
			n++
		}
	}
	return n, nil
}

// Get returns one post.
func (s *Store) Get(ctx context.Context, id string) (*posts.Post, error) {
	if !parseID(id) {
		return nil, posts.ErrInvalidID
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(id)
	if i < 0 {
		return nil, posts.ErrNotFound
	}
	return clonePost(s.posts[i]), nil
}

// Create stores p and assigns p.ID.
func (s *Store) Create(ctx context.Context, p *posts.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p.ID = newID()
	s.posts = append(s.posts, clonePost(p))
	return nil
}

// Update applies patch and returns the updated post.
func (s *Store) Update(ctx context.Context, id string, patch posts.Patch) (*posts.Post, error) {
	if !parseID(id) {
		return nil, posts.ErrInvalidID
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return nil, posts.ErrNotFound
	}
	patch.Apply(s.posts[i])
	return clonePost(s.posts[i]), nil
}

// Delete removes a post and returns it.
func (s *Store) Delete(ctx context.Context, id string) (*posts.Post, error) {
	if !parseID(id) {
		return nil, posts.ErrInvalidID
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return nil, posts.ErrNotFound
	}
	p := s.posts[i]
	s.posts = append(s.posts[:i], s.posts[i+1:]...)
	return p, nil
}

// AppendComment appends c under the write lock, so concurrent appends never lose a comment.
func (s *Store) AppendComment(ctx context.Context, postID string, c posts.Comment) error {
	if !parseID(postID) {
		return posts.ErrInvalidID
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(postID)
	if i < 0 {
		return posts.ErrNotFound
	}
	s.posts[i].Comments = append(s.posts[i].Comments, c)
	return nil
}

// Comments returns a copy of the post's comments.
func (s *Store) Comments(ctx context.Context, postID string) ([]posts.Comment, error) {
	p, err := s.Get(ctx, postID)
	if err != nil {
		return nil, err
	}
	return p.Comments, nil
}
