package handlers

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	types "github.com/yungbote/publisher-backend/internal/domain"
	"github.com/yungbote/publisher-backend/internal/http/response"
	"github.com/yungbote/publisher-backend/internal/services"
)

type PublicationHandler struct {
	publicationService services.PublicationService
}

func NewPublicationHandler(publicationService services.PublicationService) *PublicationHandler {
	return &PublicationHandler{publicationService: publicationService}
}

type publicationRequest struct {
	MediaID uint   `json:"mediaId" binding:"required,gt=0"`
	PostID  uint   `json:"postId" binding:"required,gt=0"`
	Date    string `json:"date" binding:"required"`
}

// POST /publications
func (h *PublicationHandler) Create(c *gin.Context) {
	var req publicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid_request", err)
		return
	}
	date, err := parseDate(req.Date)
	if err != nil {
		respondBadRequest(c, "invalid_request", err)
		return
	}
	p, err := h.publicationService.Create(c.Request.Context(), req.MediaID, req.PostID, date)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondCreated(c, p)
}

// GET /publications?published=&after=
// published=true lists rows dated before now and shadows after.
func (h *PublicationHandler) List(c *gin.Context) {
	var filter types.PublicationFilter
	if raw := strings.TrimSpace(c.Query("published")); raw != "" {
		published, err := strconv.ParseBool(raw)
		if err != nil {
			respondBadRequest(c, "invalid_query", fmt.Errorf("published must be a boolean, got %q", raw))
			return
		}
		filter.Published = published
	}
	if raw := strings.TrimSpace(c.Query("after")); raw != "" {
		after, err := parseDate(raw)
		if err != nil {
			respondBadRequest(c, "invalid_query", err)
			return
		}
		filter.After = &after
	}

	rows, err := h.publicationService.List(c.Request.Context(), filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, rows)
}

// GET /publications/:id
func (h *PublicationHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	p, err := h.publicationService.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, p)
}

// PUT /publications/:id
func (h *PublicationHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req publicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid_request", err)
		return
	}
	date, err := parseDate(req.Date)
	if err != nil {
		respondBadRequest(c, "invalid_request", err)
		return
	}
	p, err := h.publicationService.Update(c.Request.Context(), id, req.MediaID, req.PostID, date)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, p)
}

// DELETE /publications/:id
func (h *PublicationHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	p, err := h.publicationService.Remove(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, p)
}
