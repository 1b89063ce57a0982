package services

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/finlit/backend/internal/models"
	"github.com/finlit/backend/internal/store"
	"github.com/google/uuid"
)

type CommunityService struct {
	posts store.PostStore
}

// CreatePostRequest represents the community post payload
// @Description Community post request structure
type CreatePostRequest struct {
	Author  string `json:"author" example:"Pragati"`             // Post author
	Text    string `json:"text" example:"Tracked my first week"` // Post body
	Time    string `json:"time" example:"just now"`              // Display time, defaults to "just now"
	Initial string `json:"initial" example:"P"`                  // Avatar initial, defaults from author
}

func NewCommunityService(posts store.PostStore) *CommunityService {
	return &CommunityService{posts: posts}
}

// ListPosts returns the community feed, newest first
// @Summary List community posts
// @Description Get all community posts
// @Tags community
// @Produce json
// @Success 200 {array} models.CommunityPost
// @Failure 500 {object} ErrorResponse
// @Router /community [get]
func (s *CommunityService) ListPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := s.posts.List()
	if err != nil {
		log.Printf("[COMMUNITY] Failed to list posts: %v", err)
		SendErrorResponse(w, "Failed to fetch posts", http.StatusInternalServerError, nil)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(posts)
}

// CreatePost adds a post to the feed
// @Summary Create community post
// @Description Add a post; time defaults to "just now" and initial to the author's first letter
// @Tags community
// @Accept json
// @Produce json
// @Param request body CreatePostRequest true "Post request"
// @Success 200 {object} models.CommunityPost
// @Failure 400 {object} ErrorResponse
// @Router /community [post]
func (s *CommunityService) CreatePost(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1_048_576)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	var req CreatePostRequest
	if err := dec.Decode(&req); err != nil {
		SendErrorResponse(w, "Invalid request", http.StatusBadRequest, nil)
		return
	}

	if err := dec.Decode(&struct{}{}); err != io.EOF {
		SendErrorResponse(w, "Request body must only contain a single JSON object", http.StatusBadRequest, nil)
		return
	}

	if req.Time == "" {
		req.Time = "just now"
	}
	if req.Initial == "" {
		req.Initial = "A"
		if req.Author != "" {
			req.Initial = strings.ToUpper(req.Author[:1])
		}
	}

	post := models.CommunityPost{
		ID:      uuid.NewString(),
		Author:  req.Author,
		Initial: req.Initial,
		Time:    req.Time,
		Text:    req.Text,
	}

	if err := s.posts.Add(post); err != nil {
		log.Printf("[COMMUNITY] Failed to store post: %v", err)
		SendErrorResponse(w, "Failed to store post", http.StatusInternalServerError, nil)
		return
	}

	log.Printf("[COMMUNITY] New post by %s", post.Author)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(post)
}
