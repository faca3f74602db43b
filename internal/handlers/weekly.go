package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hyppolabs/hyppo-backend/internal/services"
	"github.com/hyppolabs/hyppo-backend/internal/week"
)

type WeeklyHandler struct {
	weeklyService services.WeeklyService
}

func NewWeeklyHandler(weeklyService services.WeeklyService) *WeeklyHandler {
	return &WeeklyHandler{weeklyService: weeklyService}
}

func (wh *WeeklyHandler) List(c *gin.Context) {
	entries, err := wh.weeklyService.List(c.Request.Context())
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"entries": entries})
}

func (wh *WeeklyHandler) Get(c *gin.Context) {
	weeklyPostID, ok := pathID(c, "id")
	if !ok {
		return
	}
	detail, err := wh.weeklyService.Get(c.Request.Context(), weeklyPostID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, detail)
}

func (wh *WeeklyHandler) Create(c *gin.Context) {
	var req struct {
		Title      string `json:"title"`
		Content    string `json:"content"`
		Year       int    `json:"year"`
		WeekNumber int    `json:"week_number"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	post, err := wh.weeklyService.Create(c.Request.Context(), req.Title, req.Content, req.Year, req.WeekNumber)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"entry": post, "week_label": week.Label(post.WeekNumber, post.Year)})
}

func (wh *WeeklyHandler) AddReflection(c *gin.Context) {
	weeklyPostID, ok := pathID(c, "id")
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
	reflection, err := wh.weeklyService.AddReflection(c.Request.Context(), weeklyPostID, callerID(c), req.Content)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"reflection": reflection})
}

func (wh *WeeklyHandler) ListReflectionComments(c *gin.Context) {
	reflectionID, ok := pathID(c, "id")
	if !ok {
		return
	}
	comments, err := wh.weeklyService.ListReflectionComments(c.Request.Context(), reflectionID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"comments": comments})
}

func (wh *WeeklyHandler) AddReflectionComment(c *gin.Context) {
	reflectionID, ok := pathID(c, "id")
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
	comment, err := wh.weeklyService.AddReflectionComment(c.Request.Context(), reflectionID, callerID(c), req.Content)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"comment": comment})
}
