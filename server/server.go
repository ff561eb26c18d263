// Package server exposes the HTTP surface: registration, login, posts,
// comments, follow/unfollow and the home feed. Handlers stay thin; they map
// requests onto the auth service, the relationship manager and the feed
// composer and translate the shared error kinds into status codes.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"fakebook/feeds"
	"fakebook/monitoring"
	"fakebook/storage/models"
)

type AuthService interface {
	Register(ctx context.Context, username, password string) (models.User, error)
	Login(ctx context.Context, username, password string) (string, models.User, error)
	Resolve(ctx context.Context, token string) (int64, error)
	Logout(ctx context.Context, token string) error
}

type RelationshipManager interface {
	Follow(ctx context.Context, followerID, followedID int64) error
	Unfollow(ctx context.Context, followerID, followedID int64) error
	ListFollowedIDs(ctx context.Context, followerID int64) ([]int64, error)
}

type FeedComposer interface {
	Compose(ctx context.Context, userID int64) ([]feeds.Post, error)
	GetPost(ctx context.Context, postID int64) (feeds.PostDetails, error)
}

// ContentStore covers the direct create/read mapping the handlers do
// themselves. *db.Queries satisfies it.
type ContentStore interface {
	CreatePost(ctx context.Context, authorID int64, content string) (models.Post, error)
	CreateComment(ctx context.Context, postID, authorID int64, content string) (models.Comment, error)
	ListPosts(ctx context.Context) ([]models.Post, error)
	GetUser(ctx context.Context, id int64) (models.User, error)
}

type Server struct {
	addr          string
	auth          AuthService
	relationships RelationshipManager
	composer      FeedComposer
	store         ContentStore
}

func NewServer(
	addr string,
	auth AuthService,
	relationships RelationshipManager,
	composer FeedComposer,
	store ContentStore,
) *Server {
	return &Server{
		addr:          addr,
		auth:          auth,
		relationships: relationships,
		composer:      composer,
		store:         store,
	}
}

func (s *Server) Addr() string {
	return s.addr
}

// Handler builds the route table. Split out of Run so tests can drive it with
// httptest.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /user", s.createUser)
	mux.HandleFunc("POST /login", s.login)
	mux.HandleFunc("POST /logout", s.authenticated(s.logout))
	mux.HandleFunc("GET /user/{id}", s.authenticated(s.getUser))
	mux.HandleFunc("GET /posts", s.authenticated(s.listPosts))
	mux.HandleFunc("POST /post", s.authenticated(s.createPost))
	mux.HandleFunc("GET /post/{id}", s.authenticated(s.getPost))
	mux.HandleFunc("POST /comment", s.authenticated(s.createComment))
	mux.HandleFunc("GET /follow/{id}", s.authenticated(s.follow))
	mux.HandleFunc("GET /unfollow/{id}", s.authenticated(s.unfollow))
	mux.HandleFunc("GET /{$}", s.authenticated(s.getFeed))
	mux.Handle("GET /metrics", promhttp.Handler())

	return monitoring.NewServerMiddleware(mux)
}

func (s *Server) Run() {
	err := http.ListenAndServe(s.addr, s.Handler())
	if errors.Is(err, http.ErrServerClosed) {
		fmt.Printf("server closed\n")
	} else if err != nil {
		fmt.Printf("error starting server: %s\n", err)
		os.Exit(1)
	}
}

// authenticated resolves the session identity before the wrapped handler
// runs. Requests without a valid session get a 401.
func (s *Server) authenticated(next func(w http.ResponseWriter, r *http.Request, userID int64)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := s.auth.Resolve(r.Context(), sessionToken(r))
		if err != nil {
			sendError(w, errorStatus(err), "authentication required")
			return
		}
		next(w, r, userID)
	}
}
