package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/hyppolabs/hyppo-backend/internal/requestdata"
	"github.com/hyppolabs/hyppo-backend/internal/services"
)

type PostHandler struct {
	postService services.PostService
	voteService services.VoteService
}

func NewPostHandler(postService services.PostService, voteService services.VoteService) *PostHandler {
	return &PostHandler{postService: postService, voteService: voteService}
}

func callerID(c *gin.Context) uuid.UUID {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		return uuid.Nil
	}
	return rd.ProfileID
}

func pathID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return uuid.Nil, false
	}
	return id, true
}

func (ph *PostHandler) Create(c *gin.Context) {
	var req struct {
		Title   string  `json:"title"`
		Content string  `json:"content"`
		TagIDs  []int64 `json:"tag_ids"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	post, err := ph.postService.CreatePost(c.Request.Context(), callerID(c), req.Title, req.Content, req.TagIDs)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"post": post})
}

func (ph *PostHandler) Get(c *gin.Context) {
	postID, ok := pathID(c, "id")
	if !ok {
		return
	}
	detail, err := ph.postService.GetPost(c.Request.Context(), postID, callerID(c))
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, detail)
}

func (ph *PostHandler) Delete(c *gin.Context) {
	postID, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := ph.postService.DeletePost(c.Request.Context(), postID, callerID(c)); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"deleted": true})
}

func (ph *PostHandler) AddComment(c *gin.Context) {
	postID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req struct {
		Content string `json:"content"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	comment, err := ph.postService.AddComment(c.Request.Context(), postID, callerID(c), req.Content)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"comment": comment})
}

// ToggleVote flips the caller's upvote on the post and returns the post with
// its refreshed counter.
func (ph *PostHandler) ToggleVote(c *gin.Context) {
	postID, ok := pathID(c, "id")
	if !ok {
		return
	}
	post, voted, err := ph.voteService.ToggleUpvote(c.Request.Context(), postID, callerID(c))
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"post": post, "has_voted": voted})
}
