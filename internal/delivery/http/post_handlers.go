package delivery_http

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"blogboard/internal/custom_errors"
	"blogboard/internal/logger"
	"blogboard/internal/model"
	"blogboard/internal/pagination"
	post_service "blogboard/internal/service/post"
)

type PostHandler struct {
	posts    post_service.Service
	validate *validator.Validate
	pageSize int
	log      *logger.Logger
}

func NewPostHandler(posts post_service.Service, validate *validator.Validate, pageSize int, log *logger.Logger) *PostHandler {
	return &PostHandler{
		posts:    posts,
		validate: validate,
		pageSize: pageSize,
		log:      log,
	}
}

type ListPostsResponse struct {
	Posts      []*model.PostDetailed `json:"posts"`
	TotalCount int                   `json:"total_count"`
	Page       int                   `json:"page"`
	PageSize   int                   `json:"page_size"`
	TotalPages int                   `json:"total_pages"`
}

// ListPosts serves one page of the filtered, created_at-descending
// listing. The page parameter is clamped rather than rejected.
func (h *PostHandler) ListPosts(c *gin.Context) {
	page := 1
	if raw := c.Query("page"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid page number"})
			return
		}
		page = parsed
	}

	pageSize := h.pageSize
	if raw := c.Query("page_size"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 && parsed <= 100 {
			pageSize = parsed
		}
	}

	search := strings.TrimSpace(c.Query("search"))

	filters := &model.PostFilters{}
	if search != "" {
		filters.Search = &search
	}
	if raw := c.Query("owner_id"); raw != "" {
		ownerID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || ownerID <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid owner id"})
			return
		}
		filters.OwnerID = &ownerID
	}

	window := pagination.Window{Page: page, PageSize: pageSize}
	offset := window.Offset()
	limit := window.Limit()
	filters.Offset = &offset
	filters.Limit = &limit

	posts, total, err := h.posts.ListPosts(c.Request.Context(), filters)
	if err != nil {
		respondError(c, h.log, err, "Failed to load posts, please try again")
		return
	}

	window.TotalCount = total
	c.JSON(http.StatusOK, ListPostsResponse{
		Posts:      posts,
		TotalCount: total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: window.TotalPages(),
	})
}

func (h *PostHandler) GetPost(c *gin.Context) {
	id, ok := h.postID(c)
	if !ok {
		return
	}

	post, err := h.posts.GetPostByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err, "Failed to load post, please try again")
		return
	}

	c.JSON(http.StatusOK, post)
}

type CreatePostRequest struct {
	Title   string  `json:"title" validate:"required,min=1"`
	Excerpt *string `json:"excerpt,omitempty" validate:"omitempty,max=500"`
	Content string  `json:"content" validate:"required,min=1"`
}

func (h *PostHandler) CreatePost(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	var req CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		h.log.Debug("Create post validation failed", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Title and content are required"})
		return
	}

	created, err := h.posts.CreatePost(c.Request.Context(), &model.CreatePostDTO{
		OwnerID: identity.ID,
		Title:   req.Title,
		Excerpt: req.Excerpt,
		Content: req.Content,
	})
	if err != nil {
		respondError(c, h.log, err, "Failed to save post, please try again")
		return
	}

	c.JSON(http.StatusCreated, created)
}

type UpdatePostRequest struct {
	Title   *string `json:"title,omitempty" validate:"omitempty,min=1"`
	Excerpt *string `json:"excerpt,omitempty" validate:"omitempty,max=500"`
	Content *string `json:"content,omitempty" validate:"omitempty,min=1"`
}

func (h *PostHandler) UpdatePost(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	id, idOK := h.postID(c)
	if !idOK {
		return
	}

	var req UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		h.log.Debug("Update post validation failed", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Title and content cannot be empty"})
		return
	}
	if req.Title == nil && req.Excerpt == nil && req.Content == nil {
		respondError(c, h.log, custom_errors.ErrNoUpdateRows, "")
		return
	}

	updated, err := h.posts.UpdatePost(c.Request.Context(), identity.ID, id, &model.UpdatePostDTO{
		Title:   req.Title,
		Excerpt: req.Excerpt,
		Content: req.Content,
	})
	if err != nil {
		respondError(c, h.log, err, "Failed to save post, please try again")
		return
	}

	c.JSON(http.StatusOK, updated)
}

func (h *PostHandler) DeletePost(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	id, idOK := h.postID(c)
	if !idOK {
		return
	}

	if err := h.posts.DeletePost(c.Request.Context(), identity.ID, id); err != nil {
		respondError(c, h.log, err, "Failed to delete post, please try again")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Post deleted"})
}

func (h *PostHandler) postID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post id"})
		return 0, false
	}
	return id, true
}
