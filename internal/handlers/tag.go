package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/hyppolabs/hyppo-backend/internal/services"
)

type TagHandler struct {
	tagService services.TagService
}

func NewTagHandler(tagService services.TagService) *TagHandler {
	return &TagHandler{tagService: tagService}
}

func (th *TagHandler) List(c *gin.Context) {
	groups, err := th.tagService.ListGrouped(c.Request.Context())
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"groups": groups})
}
