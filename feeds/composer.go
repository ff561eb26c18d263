// Package feeds composes home feeds: the reverse-chronological posts of every
// author the requesting user follows.
package feeds

import (
	"context"

	log "github.com/sirupsen/logrus"

	"fakebook/storage/models"
)

// Store is the slice of the persistence layer the composer needs.
// *db.Queries satisfies it.
type Store interface {
	GetPostsByAuthors(ctx context.Context, authorIDs []int64) ([]models.Post, error)
	GetPost(ctx context.Context, id int64) (models.Post, error)
	GetPostComments(ctx context.Context, postID int64) ([]models.Comment, error)
	GetUser(ctx context.Context, id int64) (models.User, error)
}

// FollowedLister answers "who does this user follow". Implemented by
// relationships.Manager.
type FollowedLister interface {
	ListFollowedIDs(ctx context.Context, followerID int64) ([]int64, error)
}

// IdentityCache holds public user identities so feed composition does not hit
// the users table for every author. Implemented by cache.UsersCache.
type IdentityCache interface {
	GetIdentity(id int64) (bool, models.PublicUser)
	AddIdentity(identity models.PublicUser)
}

type Composer struct {
	store         Store
	relationships FollowedLister
	usersCache    IdentityCache
}

func NewComposer(store Store, relationships FollowedLister, usersCache IdentityCache) *Composer {
	return &Composer{
		store:         store,
		relationships: relationships,
		usersCache:    usersCache,
	}
}

// Compose builds the feed for a user: posts authored by anyone they follow,
// newest first, equal timestamps in insertion order. A user following nobody
// gets an empty feed, never an error.
func (c *Composer) Compose(ctx context.Context, userID int64) ([]Post, error) {
	followedIDs, err := c.relationships.ListFollowedIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(followedIDs) == 0 {
		return make([]Post, 0), nil
	}

	posts, err := c.store.GetPostsByAuthors(ctx, followedIDs)
	if err != nil {
		return nil, err
	}

	authors := make(map[int64]models.PublicUser)
	feed := make([]Post, 0, len(posts))
	for _, post := range posts {
		author, ok := authors[post.AuthorID]
		if !ok {
			author, err = c.resolveAuthor(ctx, post.AuthorID)
			if err != nil {
				return nil, err
			}
			authors[post.AuthorID] = author
		}
		feed = append(feed, Post{
			ID:        post.ID,
			Content:   post.Content,
			CreatedAt: post.CreatedAt,
			Author:    author,
		})
	}
	return feed, nil
}

// GetPost fetches a single post with its author identity and its comments,
// oldest comment first.
func (c *Composer) GetPost(ctx context.Context, postID int64) (PostDetails, error) {
	post, err := c.store.GetPost(ctx, postID)
	if err != nil {
		return PostDetails{}, err
	}

	author, err := c.resolveAuthor(ctx, post.AuthorID)
	if err != nil {
		return PostDetails{}, err
	}

	comments, err := c.store.GetPostComments(ctx, postID)
	if err != nil {
		return PostDetails{}, err
	}

	return PostDetails{
		Post: Post{
			ID:        post.ID,
			Content:   post.Content,
			CreatedAt: post.CreatedAt,
			Author:    author,
		},
		Comments: comments,
	}, nil
}

func (c *Composer) resolveAuthor(ctx context.Context, authorID int64) (models.PublicUser, error) {
	if ok, identity := c.usersCache.GetIdentity(authorID); ok {
		return identity, nil
	}

	user, err := c.store.GetUser(ctx, authorID)
	if err != nil {
		return models.PublicUser{}, err
	}

	identity := user.Public()
	c.usersCache.AddIdentity(identity)
	log.Debugf("Cached identity for user %d", authorID)
	return identity, nil
}
