package db

import (
	"context"

	"fakebook/storage/models"

	"github.com/jackc/pgx/v5"
)

func scanPosts(rows pgx.Rows) ([]models.Post, error) {
	posts := make([]models.Post, 0)
	for rows.Next() {
		var post models.Post
		if err := rows.Scan(&post.ID, &post.AuthorID, &post.Content, &post.CreatedAt); err != nil {
			return nil, mapError(err)
		}
		posts = append(posts, post)
	}
	return posts, mapError(rows.Err())
}

func (q *Queries) CreatePost(ctx context.Context, authorID int64, content string) (models.Post, error) {
	post := models.Post{
		AuthorID: authorID,
		Content:  content,
	}

	err := q.pool.QueryRow(
		ctx,
		`INSERT INTO posts (author_id, content)
         VALUES ($1, $2)
         RETURNING id, created_at`,
		authorID, content,
	).Scan(&post.ID, &post.CreatedAt)

	return post, mapError(err)
}

func (q *Queries) GetPost(ctx context.Context, id int64) (models.Post, error) {
	var post models.Post

	err := q.pool.QueryRow(
		ctx,
		`SELECT id, author_id, content, created_at
         FROM posts
         WHERE id = $1`,
		id,
	).Scan(&post.ID, &post.AuthorID, &post.Content, &post.CreatedAt)

	return post, mapError(err)
}

func (q *Queries) ListPosts(ctx context.Context) ([]models.Post, error) {
	rows, err := q.pool.Query(
		ctx,
		`SELECT id, author_id, content, created_at
         FROM posts
         ORDER BY created_at DESC, id ASC`,
	)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	return scanPosts(rows)
}

// GetPostsByAuthors returns all posts written by any of the given authors,
// newest first, ties kept in insertion order. The (author_id, created_at)
// index makes this a merge over the author set rather than a full scan.
func (q *Queries) GetPostsByAuthors(ctx context.Context, authorIDs []int64) ([]models.Post, error) {
	rows, err := q.pool.Query(
		ctx,
		`SELECT id, author_id, content, created_at
         FROM posts
         WHERE author_id = ANY($1)
         ORDER BY created_at DESC, id ASC`,
		authorIDs,
	)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	return scanPosts(rows)
}
