package handlers

import (
	"github.com/gin-gonic/gin"

	types "github.com/yungbote/publisher-backend/internal/domain"
	"github.com/yungbote/publisher-backend/internal/http/response"
	"github.com/yungbote/publisher-backend/internal/services"
)

// PostHandler answers with post views, never raw rows.
type PostHandler struct {
	postService services.PostService
}

func NewPostHandler(postService services.PostService) *PostHandler {
	return &PostHandler{postService: postService}
}

type postRequest struct {
	Title string  `json:"title" binding:"required"`
	Text  string  `json:"text" binding:"required"`
	Image *string `json:"image"`
}

// POST /posts
func (h *PostHandler) Create(c *gin.Context) {
	var req postRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid_request", err)
		return
	}
	p, err := h.postService.Create(c.Request.Context(), req.Title, req.Text, req.Image)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondCreated(c, types.NewPostView(p))
}

// GET /posts
func (h *PostHandler) List(c *gin.Context) {
	rows, err := h.postService.List(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, types.NewPostViews(rows))
}

// GET /posts/:id
func (h *PostHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	p, err := h.postService.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, types.NewPostView(p))
}

// PUT /posts/:id
// An omitted image keeps the stored one.
func (h *PostHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req postRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid_request", err)
		return
	}
	p, err := h.postService.Update(c.Request.Context(), id, req.Title, req.Text, req.Image)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, types.NewPostView(p))
}

// DELETE /posts/:id
func (h *PostHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	p, err := h.postService.Remove(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, types.NewPostView(p))
}
