package feeds

import (
	"time"

	"fakebook/storage/models"
)

// Post is a feed entry: a post enriched with its author's public identity.
// Comments are only attached on single-post fetches.
type Post struct {
	ID        int64             `json:"id"`
	Content   string            `json:"content"`
	CreatedAt time.Time         `json:"created_at"`
	Author    models.PublicUser `json:"author"`
}

type PostDetails struct {
	Post
	Comments []models.Comment `json:"comments"`
}
