package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/publisher-backend/internal/http/response"
	"github.com/yungbote/publisher-backend/internal/services"
)

type MediaHandler struct {
	mediaService services.MediaService
}

func NewMediaHandler(mediaService services.MediaService) *MediaHandler {
	return &MediaHandler{mediaService: mediaService}
}

type mediaRequest struct {
	Title    string `json:"title" binding:"required"`
	Username string `json:"username" binding:"required"`
}

// POST /medias
func (h *MediaHandler) Create(c *gin.Context) {
	var req mediaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid_request", err)
		return
	}
	m, err := h.mediaService.Create(c.Request.Context(), req.Title, req.Username)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondCreated(c, m)
}

// GET /medias
func (h *MediaHandler) List(c *gin.Context) {
	rows, err := h.mediaService.List(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, rows)
}

// GET /medias/:id
func (h *MediaHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	m, err := h.mediaService.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, m)
}

// PUT /medias/:id
func (h *MediaHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req mediaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid_request", err)
		return
	}
	m, err := h.mediaService.Update(c.Request.Context(), id, req.Title, req.Username)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, m)
}

// DELETE /medias/:id
func (h *MediaHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	m, err := h.mediaService.Remove(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, m)
}
