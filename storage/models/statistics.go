package models

type UserStatistics struct {
	ID             int64
	Username       string
	FollowersCount int64
	PostsCount     int64
}
