package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"

	"fakebook/monitoring"
)

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type createPostRequest struct {
	Content string `json:"content"`
}

type createCommentRequest struct {
	PostID  int64  `json:"post_id"`
	Content string `json:"content"`
}

func (s *Server) createUser(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := readJson(r, &req); err != nil {
		sendError(w, errorStatus(err), "invalid request payload")
		return
	}

	user, err := s.auth.Register(r.Context(), req.Username, req.Password)
	if err != nil {
		sendError(w, errorStatus(err), "could not create user")
		return
	}
	sendJson(w, map[string]int64{"id": user.ID})
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := readJson(r, &req); err != nil {
		sendError(w, errorStatus(err), "invalid request payload")
		return
	}

	token, user, err := s.auth.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		sendError(w, errorStatus(err), "invalid username or password")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
	})
	sendJson(w, map[string]any{"token": token, "id": user.ID})
}

func (s *Server) logout(w http.ResponseWriter, r *http.Request, userID int64) {
	if err := s.auth.Logout(r.Context(), sessionToken(r)); err != nil {
		log.Errorf("Error closing session for user %d: %v", userID, err)
	}
	http.SetCookie(w, &http.Cookie{
		Name:   SessionCookieName,
		Value:  "",
		Path:   "/",
		MaxAge: -1,
	})
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) getUser(w http.ResponseWriter, r *http.Request, _ int64) {
	id, err := pathID(r)
	if err != nil {
		sendError(w, errorStatus(err), "invalid user id")
		return
	}

	user, err := s.store.GetUser(r.Context(), id)
	if err != nil {
		sendError(w, errorStatus(err), "user not found")
		return
	}
	sendJson(w, user.Public())
}

func (s *Server) listPosts(w http.ResponseWriter, r *http.Request, _ int64) {
	posts, err := s.store.ListPosts(r.Context())
	if err != nil {
		sendError(w, errorStatus(err), "could not list posts")
		return
	}
	sendJson(w, posts)
}

func (s *Server) createPost(w http.ResponseWriter, r *http.Request, userID int64) {
	var req createPostRequest
	if err := readJson(r, &req); err != nil || req.Content == "" {
		sendError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	post, err := s.store.CreatePost(r.Context(), userID, req.Content)
	if err != nil {
		sendError(w, errorStatus(err), "could not create post")
		return
	}
	sendJson(w, map[string]int64{"id": post.ID})
}

func (s *Server) getPost(w http.ResponseWriter, r *http.Request, _ int64) {
	id, err := pathID(r)
	if err != nil {
		sendError(w, errorStatus(err), "invalid post id")
		return
	}

	details, err := s.composer.GetPost(r.Context(), id)
	if err != nil {
		sendError(w, errorStatus(err), "post not found")
		return
	}
	sendJson(w, details)
}

func (s *Server) createComment(w http.ResponseWriter, r *http.Request, userID int64) {
	var req createCommentRequest
	if err := readJson(r, &req); err != nil || req.Content == "" || req.PostID == 0 {
		sendError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	comment, err := s.store.CreateComment(r.Context(), req.PostID, userID, req.Content)
	if err != nil {
		sendError(w, errorStatus(err), "could not create comment")
		return
	}
	sendJson(w, map[string]int64{"id": comment.ID})
}

// follow responds with the updated list of followed ids.
func (s *Server) follow(w http.ResponseWriter, r *http.Request, userID int64) {
	id, err := pathID(r)
	if err != nil {
		sendError(w, errorStatus(err), "invalid user id")
		return
	}

	if err := s.relationships.Follow(r.Context(), userID, id); err != nil {
		sendError(w, errorStatus(err), "could not follow user")
		return
	}

	followedIDs, err := s.relationships.ListFollowedIDs(r.Context(), userID)
	if err != nil {
		sendError(w, errorStatus(err), "could not list followed users")
		return
	}
	sendJson(w, followedIDs)
}

func (s *Server) unfollow(w http.ResponseWriter, r *http.Request, userID int64) {
	id, err := pathID(r)
	if err != nil {
		sendError(w, errorStatus(err), "invalid user id")
		return
	}

	if err := s.relationships.Unfollow(r.Context(), userID, id); err != nil {
		sendError(w, errorStatus(err), "could not unfollow user")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) getFeed(w http.ResponseWriter, r *http.Request, userID int64) {
	timer := prometheus.NewTimer(monitoring.FeedCompositionDuration)
	posts, err := s.composer.Compose(r.Context(), userID)
	timer.ObserveDuration()

	if err != nil {
		sendError(w, errorStatus(err), "could not compose feed")
		return
	}

	monitoring.FeedPostsReturned.Observe(float64(len(posts)))
	sendJson(w, posts)
}
