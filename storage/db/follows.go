package db

import (
	"context"

	"fakebook/storage/models"
)

// CreateFollow inserts a follow edge. The composite primary key on
// (follower_id, followed_id) turns a duplicate edge into ErrAlreadyExists and
// the foreign keys turn unknown user ids into ErrNotFound.
func (q *Queries) CreateFollow(ctx context.Context, followerID, followedID int64) (models.Follow, error) {
	follow := models.Follow{
		FollowerID: followerID,
		FollowedID: followedID,
	}

	err := q.pool.QueryRow(
		ctx,
		`INSERT INTO follows (follower_id, followed_id)
         VALUES ($1, $2)
         RETURNING created_at`,
		followerID, followedID,
	).Scan(&follow.CreatedAt)

	return follow, mapError(err)
}

// DeleteFollow removes a follow edge. Deleting an absent edge is not an error.
func (q *Queries) DeleteFollow(ctx context.Context, followerID, followedID int64) error {
	_, err := q.pool.Exec(
		ctx,
		`DELETE FROM follows
         WHERE follower_id = $1 AND followed_id = $2`,
		followerID, followedID,
	)
	return mapError(err)
}

// GetFollowedIDs returns the ids of every user the given user follows.
func (q *Queries) GetFollowedIDs(ctx context.Context, followerID int64) ([]int64, error) {
	rows, err := q.pool.Query(
		ctx,
		`SELECT followed_id
         FROM follows
         WHERE follower_id = $1`,
		followerID,
	)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	ids := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, mapError(err)
		}
		ids = append(ids, id)
	}
	return ids, mapError(rows.Err())
}
