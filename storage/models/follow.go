package models

import "time"

// Follow is a directed edge in the follow graph. The pair (FollowerID,
// FollowedID) is unique; following A->B says nothing about B->A.
type Follow struct {
	FollowerID int64
	FollowedID int64
	CreatedAt  time.Time
}
