// Package tasks holds background jobs run alongside the HTTP server.
package tasks

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"

	"fakebook/cache"
	"fakebook/storage/models"
)

// StatisticsStore is the query surface the updater needs. *db.Queries
// satisfies it.
type StatisticsStore interface {
	GetUserStatistics(ctx context.Context) ([]models.UserStatistics, error)
}

// StatisticsUpdater periodically recomputes follower and post counts from the
// database into the users cache, so feed responses and profile lookups never
// pay for the aggregate queries.
type StatisticsUpdater struct {
	store      StatisticsStore
	usersCache *cache.UsersCache
	interval   time.Duration
}

func NewStatisticsUpdater(store StatisticsStore, usersCache *cache.UsersCache, interval time.Duration) *StatisticsUpdater {
	return &StatisticsUpdater{
		store:      store,
		usersCache: usersCache,
		interval:   interval,
	}
}

func (u *StatisticsUpdater) Run() {
	ticker := time.NewTicker(u.interval)
	defer ticker.Stop()

	u.update()
	for range ticker.C {
		u.update()
	}
}

func (u *StatisticsUpdater) update() {
	stats, err := u.store.GetUserStatistics(context.Background())
	if err != nil {
		log.Errorf("Error retrieving user statistics: %v", err)
		return
	}

	for _, s := range stats {
		u.usersCache.AddUser(cache.User{
			ID:             s.ID,
			Username:       s.Username,
			FollowersCount: s.FollowersCount,
			PostsCount:     s.PostsCount,
		})
	}
	log.Debugf("Updated statistics for %d users", len(stats))
}
