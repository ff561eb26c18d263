// Package relationships maintains the directed follow graph.
package relationships

import (
	"context"

	log "github.com/sirupsen/logrus"

	"fakebook/shared"
	"fakebook/storage/models"
)

// Store is the slice of the persistence layer the manager needs.
// *db.Queries satisfies it.
type Store interface {
	UserExists(ctx context.Context, id int64) (bool, error)
	CreateFollow(ctx context.Context, followerID, followedID int64) (models.Follow, error)
	DeleteFollow(ctx context.Context, followerID, followedID int64) error
	GetFollowedIDs(ctx context.Context, followerID int64) ([]int64, error)
}

type Manager struct {
	store Store
}

func NewManager(store Store) *Manager {
	return &Manager{store: store}
}

// Follow creates the edge follower -> followed. Following an unknown user
// fails with shared.ErrNotFound; following the same user twice fails with
// shared.ErrAlreadyExists. Self-follow is allowed.
func (m *Manager) Follow(ctx context.Context, followerID, followedID int64) error {
	exists, err := m.store.UserExists(ctx, followedID)
	if err != nil {
		return err
	}
	if !exists {
		return shared.ErrNotFound
	}

	// The foreign keys still guard the insert if the user disappears between
	// the check and here.
	edge, err := m.store.CreateFollow(ctx, followerID, followedID)
	if err != nil {
		return err
	}

	log.Infof("User %d followed user %d at %s", edge.FollowerID, edge.FollowedID, edge.CreatedAt)
	return nil
}

// Unfollow removes the edge follower -> followed. Removing an edge that does
// not exist succeeds as a no-op.
func (m *Manager) Unfollow(ctx context.Context, followerID, followedID int64) error {
	return m.store.DeleteFollow(ctx, followerID, followedID)
}

// ListFollowedIDs returns the ids of the users that followerID follows, in no
// particular order.
func (m *Manager) ListFollowedIDs(ctx context.Context, followerID int64) ([]int64, error) {
	return m.store.GetFollowedIDs(ctx, followerID)
}
