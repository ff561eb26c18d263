package feeds

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fakebook/shared"
	"fakebook/storage/models"
)

type memoryStore struct {
	users    map[int64]models.User
	posts    []models.Post
	comments []models.Comment
}

func (s *memoryStore) GetPostsByAuthors(_ context.Context, authorIDs []int64) ([]models.Post, error) {
	authors := make(map[int64]bool)
	for _, id := range authorIDs {
		authors[id] = true
	}
	selected := make([]models.Post, 0)
	for _, post := range s.posts {
		if authors[post.AuthorID] {
			selected = append(selected, post)
		}
	}
	// Newest first, ties in insertion order, like the indexed query
	sort.SliceStable(selected, func(i, j int) bool {
		return selected[i].CreatedAt.After(selected[j].CreatedAt)
	})
	return selected, nil
}

func (s *memoryStore) GetPost(_ context.Context, id int64) (models.Post, error) {
	for _, post := range s.posts {
		if post.ID == id {
			return post, nil
		}
	}
	return models.Post{}, shared.ErrNotFound
}

func (s *memoryStore) GetPostComments(_ context.Context, postID int64) ([]models.Comment, error) {
	comments := make([]models.Comment, 0)
	for _, comment := range s.comments {
		if comment.PostID == postID {
			comments = append(comments, comment)
		}
	}
	sort.SliceStable(comments, func(i, j int) bool {
		return comments[i].CreatedAt.Before(comments[j].CreatedAt)
	})
	return comments, nil
}

func (s *memoryStore) GetUser(_ context.Context, id int64) (models.User, error) {
	user, ok := s.users[id]
	if !ok {
		return models.User{}, shared.ErrNotFound
	}
	return user, nil
}

type staticFollowedLister map[int64][]int64

func (l staticFollowedLister) ListFollowedIDs(_ context.Context, followerID int64) ([]int64, error) {
	return l[followerID], nil
}

type memoryIdentityCache struct {
	identities map[int64]models.PublicUser
}

func newMemoryIdentityCache() *memoryIdentityCache {
	return &memoryIdentityCache{identities: make(map[int64]models.PublicUser)}
}

func (c *memoryIdentityCache) GetIdentity(id int64) (bool, models.PublicUser) {
	identity, ok := c.identities[id]
	return ok, identity
}

func (c *memoryIdentityCache) AddIdentity(identity models.PublicUser) {
	c.identities[identity.ID] = identity
}

func at(seconds int) time.Time {
	return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(seconds) * time.Second)
}

func newTestStore() *memoryStore {
	return &memoryStore{
		users: map[int64]models.User{
			1: {ID: 1, Username: "alice"},
			2: {ID: 2, Username: "bob"},
			3: {ID: 3, Username: "carol"},
		},
	}
}

func TestComposeEmptyWithoutFollows(t *testing.T) {
	store := newTestStore()
	store.posts = []models.Post{
		{ID: 1, AuthorID: 2, Content: "hello", CreatedAt: at(1)},
	}
	composer := NewComposer(store, staticFollowedLister{}, newMemoryIdentityCache())

	feed, err := composer.Compose(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, feed)
}

func TestComposeOrdering(t *testing.T) {
	store := newTestStore()
	store.posts = []models.Post{
		{ID: 1, AuthorID: 2, Content: "first", CreatedAt: at(1)},
		{ID: 2, AuthorID: 2, Content: "second", CreatedAt: at(2)},
		{ID: 3, AuthorID: 2, Content: "third", CreatedAt: at(3)},
	}
	composer := NewComposer(store, staticFollowedLister{1: {2}}, newMemoryIdentityCache())

	feed, err := composer.Compose(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, feed, 3)
	assert.Equal(t, int64(3), feed[0].ID)
	assert.Equal(t, int64(2), feed[1].ID)
	assert.Equal(t, int64(1), feed[2].ID)
}

func TestComposeTieBreakIsStable(t *testing.T) {
	store := newTestStore()
	store.posts = []models.Post{
		{ID: 1, AuthorID: 2, Content: "older", CreatedAt: at(1)},
		{ID: 2, AuthorID: 2, Content: "tied a", CreatedAt: at(2)},
		{ID: 3, AuthorID: 3, Content: "tied b", CreatedAt: at(2)},
	}
	composer := NewComposer(store, staticFollowedLister{1: {2, 3}}, newMemoryIdentityCache())

	feed, err := composer.Compose(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, feed, 3)
	// Equal timestamps keep insertion order
	assert.Equal(t, int64(2), feed[0].ID)
	assert.Equal(t, int64(3), feed[1].ID)
	assert.Equal(t, int64(1), feed[2].ID)
}

func TestComposeExcludesNonFollowedAuthors(t *testing.T) {
	store := newTestStore()
	store.posts = []models.Post{
		{ID: 1, AuthorID: 2, Content: "followed", CreatedAt: at(1)},
		{ID: 2, AuthorID: 3, Content: "not followed", CreatedAt: at(2)},
	}
	composer := NewComposer(store, staticFollowedLister{1: {2}}, newMemoryIdentityCache())

	feed, err := composer.Compose(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, feed, 1)
	assert.Equal(t, int64(1), feed[0].ID)
	assert.Equal(t, "bob", feed[0].Author.Username)
}

func TestComposeEnrichesAuthorsAndFillsCache(t *testing.T) {
	store := newTestStore()
	store.posts = []models.Post{
		{ID: 1, AuthorID: 2, Content: "hello", CreatedAt: at(1)},
	}
	identityCache := newMemoryIdentityCache()
	composer := NewComposer(store, staticFollowedLister{1: {2}}, identityCache)

	feed, err := composer.Compose(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, feed, 1)
	assert.Equal(t, models.PublicUser{ID: 2, Username: "bob"}, feed[0].Author)

	// Cache miss fell through to the store and populated the cache
	ok, cached := identityCache.GetIdentity(2)
	assert.True(t, ok)
	assert.Equal(t, "bob", cached.Username)
}

func TestComposePrefersCachedIdentity(t *testing.T) {
	store := newTestStore()
	store.posts = []models.Post{
		{ID: 1, AuthorID: 2, Content: "hello", CreatedAt: at(1)},
	}
	delete(store.users, 2) // cache is the only source left
	identityCache := newMemoryIdentityCache()
	identityCache.AddIdentity(models.PublicUser{ID: 2, Username: "bob"})
	composer := NewComposer(store, staticFollowedLister{1: {2}}, identityCache)

	feed, err := composer.Compose(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, feed, 1)
	assert.Equal(t, "bob", feed[0].Author.Username)
}

func TestGetPostWithComments(t *testing.T) {
	store := newTestStore()
	store.posts = []models.Post{
		{ID: 1, AuthorID: 2, Content: "hello", CreatedAt: at(1)},
	}
	store.comments = []models.Comment{
		{ID: 10, PostID: 1, AuthorID: 3, Content: "second", CreatedAt: at(3)},
		{ID: 11, PostID: 1, AuthorID: 1, Content: "first", CreatedAt: at(2)},
		{ID: 12, PostID: 2, AuthorID: 1, Content: "other post", CreatedAt: at(2)},
	}
	composer := NewComposer(store, staticFollowedLister{}, newMemoryIdentityCache())

	details, err := composer.GetPost(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "hello", details.Content)
	assert.Equal(t, "bob", details.Author.Username)
	require.Len(t, details.Comments, 2)
	assert.Equal(t, "first", details.Comments[0].Content)
	assert.Equal(t, "second", details.Comments[1].Content)
}

func TestGetPostNotFound(t *testing.T) {
	composer := NewComposer(newTestStore(), staticFollowedLister{}, newMemoryIdentityCache())

	_, err := composer.GetPost(context.Background(), 42)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
