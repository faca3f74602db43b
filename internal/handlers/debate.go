package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hyppolabs/hyppo-backend/internal/services"
)

type DebateHandler struct {
	debateService services.DebateService
}

func NewDebateHandler(debateService services.DebateService) *DebateHandler {
	return &DebateHandler{debateService: debateService}
}

func (dh *DebateHandler) CreateQuestion(c *gin.Context) {
	var req struct {
		Title   string `json:"title"`
		Content string `json:"content"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	question, err := dh.debateService.CreateQuestion(c.Request.Context(), callerID(c), req.Title, req.Content)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"question": question})
}

func (dh *DebateHandler) GetQuestion(c *gin.Context) {
	questionID, ok := pathID(c, "id")
	if !ok {
		return
	}
	detail, err := dh.debateService.GetQuestion(c.Request.Context(), questionID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, detail)
}

func (dh *DebateHandler) AddArgument(c *gin.Context) {
	questionID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req struct {
		Content   string `json:"content"`
		IsInFavor bool   `json:"is_in_favor"`
		Intensity int    `json:"intensity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	if req.Intensity == 0 {
		req.Intensity = 2
	}
	argument, err := dh.debateService.AddArgument(c.Request.Context(), questionID, callerID(c), req.Content, req.IsInFavor, req.Intensity)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"argument": argument, "stance_label": services.StanceLabel(argument.IsInFavor, argument.Intensity)})
}

func (dh *DebateHandler) AddCounterargument(c *gin.Context) {
	argumentID, ok := pathID(c, "id")
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
	counter, err := dh.debateService.AddCounterargument(c.Request.Context(), argumentID, callerID(c), req.Content)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"counterargument": counter})
}
