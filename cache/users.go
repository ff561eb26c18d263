package cache

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"

	"fakebook/storage/models"
)

const UsersCacheRedisKey = "users"

// User is the cached view of a user: the public identity served with feed
// posts plus the counters maintained by the statistics updater.
type User struct {
	ID             int64  `json:"id"`
	Username       string `json:"username"`
	FollowersCount int64  `json:"followers_count"`
	PostsCount     int64  `json:"posts_count"`
}

type UsersCache struct {
	redisClient *redis.Client
}

func NewUsersCache(options *redis.Options) *UsersCache {
	return &UsersCache{
		redisClient: redis.NewClient(options),
	}
}

func (c *UsersCache) AddUser(user User) {
	bytes, err := json.Marshal(user)
	if err == nil {
		c.redisClient.HSet(
			context.Background(),
			UsersCacheRedisKey,
			strconv.FormatInt(user.ID, 10),
			bytes,
		)
	}
}

func (c *UsersCache) GetUser(id int64) (bool, User) {
	val, err := c.redisClient.HGet(
		context.Background(),
		UsersCacheRedisKey,
		strconv.FormatInt(id, 10),
	).Result()
	if err != nil {
		return false, User{}
	}

	var user User
	err = json.Unmarshal([]byte(val), &user)
	if err != nil {
		log.Errorf("Error unmarshalling user: %s", err)
		return false, User{}
	}
	return true, user
}

// GetIdentity and AddIdentity adapt the cache to the feeds.IdentityCache
// interface.
func (c *UsersCache) GetIdentity(id int64) (bool, models.PublicUser) {
	ok, user := c.GetUser(id)
	if !ok {
		return false, models.PublicUser{}
	}
	return true, models.PublicUser{ID: user.ID, Username: user.Username}
}

func (c *UsersCache) AddIdentity(identity models.PublicUser) {
	// Keep existing counters when the user is already cached
	followersCount, postsCount := int64(0), int64(0)
	if ok, cached := c.GetUser(identity.ID); ok {
		followersCount, postsCount = cached.FollowersCount, cached.PostsCount
	}
	c.AddUser(User{
		ID:             identity.ID,
		Username:       identity.Username,
		FollowersCount: followersCount,
		PostsCount:     postsCount,
	})
}
