package db

import (
	"context"

	"fakebook/storage/models"
)

func (q *Queries) CreateUser(ctx context.Context, username string, passwordHash string) (models.User, error) {
	user := models.User{
		Username:     username,
		PasswordHash: passwordHash,
	}

	err := q.pool.QueryRow(
		ctx,
		`INSERT INTO users (username, password_hash)
         VALUES ($1, $2)
         RETURNING id, created_at`,
		username, passwordHash,
	).Scan(&user.ID, &user.CreatedAt)

	return user, mapError(err)
}

func (q *Queries) GetUser(ctx context.Context, id int64) (models.User, error) {
	var user models.User

	err := q.pool.QueryRow(
		ctx,
		`SELECT id, username, password_hash, created_at
         FROM users
         WHERE id = $1`,
		id,
	).Scan(&user.ID, &user.Username, &user.PasswordHash, &user.CreatedAt)

	return user, mapError(err)
}

func (q *Queries) GetUserByUsername(ctx context.Context, username string) (models.User, error) {
	var user models.User

	err := q.pool.QueryRow(
		ctx,
		`SELECT id, username, password_hash, created_at
         FROM users
         WHERE username = $1`,
		username,
	).Scan(&user.ID, &user.Username, &user.PasswordHash, &user.CreatedAt)

	return user, mapError(err)
}

func (q *Queries) UserExists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := q.pool.QueryRow(
		ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`,
		id,
	).Scan(&exists)
	return exists, mapError(err)
}

// GetUserStatistics returns follower and post counts for every user. Used by
// the statistics updater to refresh the users cache.
func (q *Queries) GetUserStatistics(ctx context.Context) ([]models.UserStatistics, error) {
	rows, err := q.pool.Query(
		ctx,
		`SELECT u.id,
                u.username,
                (SELECT count(*) FROM follows f WHERE f.followed_id = u.id),
                (SELECT count(*) FROM posts p WHERE p.author_id = u.id)
         FROM users u`,
	)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var stats []models.UserStatistics
	for rows.Next() {
		var s models.UserStatistics
		if err := rows.Scan(&s.ID, &s.Username, &s.FollowersCount, &s.PostsCount); err != nil {
			return nil, mapError(err)
		}
		stats = append(stats, s)
	}
	return stats, mapError(rows.Err())
}
