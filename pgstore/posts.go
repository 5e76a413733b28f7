package pgstore

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/user/blog-go/posts"
)

const postColumns = `id::text, title, content, category, author, featured_image, slug, comments, created_at, updated_at`

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// likePattern wraps s for a literal substring match under LIKE/ILIKE.
func likePattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

// whereClause translates f into a WHERE clause with positional arguments.
func whereClause(f posts.Filter) (string, []any) {
	var (
		conds []string
		args  []any
	)
	if f.Search != "" {
		args = append(args, likePattern(f.Search))
		n := strconv.Itoa(len(args))
		conds = append(conds, `(title ILIKE $`+n+` ESCAPE '\' OR content ILIKE $`+n+` ESCAPE '\')`)
	}
	if f.Category != "" {
		args = append(args, f.Category)
		conds = append(conds, "category = $"+strconv.Itoa(len(args)))
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func scanPost(row pgx.Row) (*posts.Post, error) {
	var p posts.Post
	if err := row.Scan(&p.ID, &p.Title, &p.Content, &p.Category, &p.Author,
		&p.FeaturedImage, &p.Slug, &p.Comments, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	if p.Comments == nil {
		p.Comments = []posts.Comment{}
	}
	return &p, nil
}

// Find returns one page of matching posts, newest first with seq breaking ties.
func (s *Store) Find(ctx context.Context, q posts.ListQuery) ([]posts.Post, error) {
	where, args := whereClause(q.Filter)
	args = append(args, q.Limit, q.Skip)
	query := `SELECT ` + postColumns + ` FROM posts` + where +
		` ORDER BY created_at DESC, seq ASC LIMIT $` + strconv.Itoa(len(args)-1) +
		` OFFSET $` + strconv.Itoa(len(args))

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query posts: %w", err)
	}
	defer rows.Close()

	out := []posts.Post{}
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}
		out = append(out, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating posts: %w", err)
	}
	return out, nil
}

// Count returns the number of posts matching f.
func (s *Store) Count(ctx context.Context, f posts.Filter) (int64, error) {
	where, args := whereClause(f)
	var n int64
	if err := s.db.QueryRow(ctx, `SELECT count(*) FROM posts`+where, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count posts: %w", err)
	}
	return n, nil
}

// Get returns one post.
func (s *Store) Get(ctx context.Context, id string) (*posts.Post, error) {
	if !validID(id) {
		return nil, posts.ErrInvalidID
	}
	p, err := scanPost(s.db.QueryRow(ctx, `SELECT `+postColumns+` FROM posts WHERE id = $1`, id))
	if err != nil {
		return nil, postLookupError(err)
	}
	return p, nil
}

// Create inserts p and assigns p.ID.
func (s *Store) Create(ctx context.Context, p *posts.Post) error {
	id := uuid.NewString()
	comments := p.Comments
	if comments == nil {
		comments = []posts.Comment{}
	}
	_, err := s.db.Exec(ctx, `
		INSERT INTO posts (id, title, content, category, author, featured_image, slug, comments, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		id, p.Title, p.Content, p.Category, p.Author, p.FeaturedImage, p.Slug, comments, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert post: %w", err)
	}
	p.ID = id
	return nil
}

// setClause builds the SET list for patch. Arguments start at $2; $1 is the id.
func setClause(patch posts.Patch) (string, []any) {
	sets := []string{"updated_at = $2"}
	args := []any{patch.UpdatedAt}
	fields := []struct {
		column string
		value  *string
	}{
		{"title", patch.Title},
		{"content", patch.Content},
		{"category", patch.Category},
		{"author", patch.Author},
		{"featured_image", patch.FeaturedImage},
		{"slug", patch.Slug},
	}
	for _, f := range fields {
		if f.value == nil {
			continue
		}
		args = append(args, *f.value)
		sets = append(sets, f.column+" = $"+strconv.Itoa(len(args)+1))
	}
	return strings.Join(sets, ", "), args
}

// Update applies patch and returns the updated post.
func (s *Store) Update(ctx context.Context, id string, patch posts.Patch) (*posts.Post, error) {
	if !validID(id) {
		return nil, posts.ErrInvalidID
	}
	set, args := setClause(patch)
	query := `UPDATE posts SET ` + set + ` WHERE id = $1 RETURNING ` + postColumns
	p, err := scanPost(s.db.QueryRow(ctx, query, append([]any{id}, args...)...))
	if err != nil {
		return nil, postLookupError(err)
	}
	return p, nil
}

// Delete removes a post and returns it.
func (s *Store) Delete(ctx context.Context, id string) (*posts.Post, error) {
	if !validID(id) {
		return nil, posts.ErrInvalidID
	}
	p, err := scanPost(s.db.QueryRow(ctx, `DELETE FROM posts WHERE id = $1 RETURNING `+postColumns, id))
	if err != nil {
		return nil, postLookupError(err)
	}
	return p, nil
}

// AppendComment concatenates c onto the JSONB array in a single UPDATE.
func (s *Store) AppendComment(ctx context.Context, postID string, c posts.Comment) error {
	if !validID(postID) {
		return posts.ErrInvalidID
	}
	tag, err := s.db.Exec(ctx, `UPDATE posts SET comments = comments || $2::jsonb WHERE id = $1`,
		postID, []posts.Comment{c})
	if err != nil {
		return fmt.Errorf("failed to append comment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return posts.ErrNotFound
	}
	return nil
}

// Comments returns the post's comments in insertion order.
func (s *Store) Comments(ctx context.Context, postID string) ([]posts.Comment, error) {
	if !validID(postID) {
		return nil, posts.ErrInvalidID
	}
	var comments []posts.Comment
	if err := s.db.QueryRow(ctx, `SELECT comments FROM posts WHERE id = $1`, postID).Scan(&comments); err != nil {
		return nil, postLookupError(err)
	}
	if comments == nil {
		comments = []posts.Comment{}
	}
	return comments, nil
}

func postLookupError(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return posts.ErrNotFound
	}
	return fmt.Errorf("post lookup failed: %w", err)
}
