package db

import (
	"context"

	"fakebook/storage/models"
)

func (q *Queries) CreateComment(ctx context.Context, postID, authorID int64, content string) (models.Comment, error) {
	comment := models.Comment{
		PostID:   postID,
		AuthorID: authorID,
		Content:  content,
	}

	err := q.pool.QueryRow(
		ctx,
		`INSERT INTO comments (post_id, author_id, content)
         VALUES ($1, $2, $3)
         RETURNING id, created_at`,
		postID, authorID, content,
	).Scan(&comment.ID, &comment.CreatedAt)

	return comment, mapError(err)
}

// GetPostComments returns a post's comments oldest first.
func (q *Queries) GetPostComments(ctx context.Context, postID int64) ([]models.Comment, error) {
	rows, err := q.pool.Query(
		ctx,
		`SELECT id, post_id, author_id, content, created_at
         FROM comments
         WHERE post_id = $1
         ORDER BY created_at ASC, id ASC`,
		postID,
	)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	comments := make([]models.Comment, 0)
	for rows.Next() {
		var comment models.Comment
		if err := rows.Scan(
			&comment.ID, &comment.PostID, &comment.AuthorID, &comment.Content, &comment.CreatedAt,
		); err != nil {
			return nil, mapError(err)
		}
		comments = append(comments, comment)
	}
	return comments, mapError(rows.Err())
}
