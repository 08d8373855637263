package http

import (
	"errors"
	"net/http"
	"time"

	"media-feed/internal/entity"
	"media-feed/internal/usecase"
	"media-feed/pkg/logger"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	postUseCase usecase.PostUseCase
	logger      *logger.Logger
}

func NewPostHandler(postUseCase usecase.PostUseCase, logger *logger.Logger) *PostHandler {
	return &PostHandler{
		postUseCase: postUseCase,
		logger:      logger,
	}
}

type PostResponse struct {
	ID        string `json:"id"`
	Caption   string `json:"caption"`
	URL       string `json:"url"`
	FileType  string `json:"file_type"`
	FileName  string `json:"file_name"`
	CreatedAt string `json:"created_at"`
}

type FeedResponse struct {
	Posts []PostResponse `json:"posts"`
}

type DeleteResponse struct {
	Success string `json:"success"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	Detail string `json:"detail"`
}

func formatPostResponse(post *entity.Post) PostResponse {
	return PostResponse{
		ID:        post.ID,
		Caption:   post.Caption,
		URL:       post.URL,
		FileType:  string(post.FileType),
		FileName:  post.FileName,
		CreatedAt: post.CreatedAt.Format(time.RFC3339Nano),
	}
}

// UploadPost godoc
// @Summary      Upload a post
// @Description  Upload a media file with an optional caption. The file is forwarded to the media gateway and the resulting post is stored.
// @Tags         posts
// @Accept       multipart/form-data
// @Produce      json
// @Param        file formData file true "Media file"
// @Param        caption formData string false "Post caption"
// @Success      200  {object}  PostResponse
// @Failure      422  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /upload [post]
func (h *PostHandler) UploadPost(c *gin.Context) {
	defer func() {
		if c.Request.MultipartForm != nil {
			if err := c.Request.MultipartForm.RemoveAll(); err != nil {
				h.logger.Warn("Failed to release multipart form: %v", err)
			}
		}
	}()

	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Detail: "file is required"})
		return
	}
	caption := c.PostForm("caption")

	post, err := h.postUseCase.CreatePost(c.Request.Context(), file, caption)
	if err != nil {
		h.logger.Error("Failed to create post: %v", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Detail: err.Error()})
		return
	}

	c.JSON(http.StatusOK, formatPostResponse(post))
}

// GetFeed godoc
// @Summary      Get feed
// @Description  Get all posts, newest first
// @Tags         feed
// @Produce      json
// @Success      200  {object}  FeedResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /feed [get]
func (h *PostHandler) GetFeed(c *gin.Context) {
	posts, err := h.postUseCase.ListPosts(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to list posts: %v", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Detail: "Failed to fetch posts"})
		return
	}

	response := FeedResponse{Posts: make([]PostResponse, len(posts))}
	for i, post := range posts {
		response.Posts[i] = formatPostResponse(post)
	}

	c.JSON(http.StatusOK, response)
}

// DeletePost godoc
// @Summary      Delete post
// @Description  Delete a post by its UUID
// @Tags         posts
// @Produce      json
// @Param        post_id path string true "Post ID (UUID)"
// @Success      200  {object}  DeleteResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /posts/{post_id} [delete]
func (h *PostHandler) DeletePost(c *gin.Context) {
	postID := c.Param("post_id")

	if err := h.postUseCase.DeletePost(c.Request.Context(), postID); err != nil {
		switch {
		case errors.Is(err, entity.ErrInvalidPostID):
			c.JSON(http.StatusBadRequest, ErrorResponse{Detail: "Invalid post id"})
		case errors.Is(err, entity.ErrPostNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Detail: "Post not found"})
		default:
			h.logger.Error("Failed to delete post %s: %v", postID, err)
			c.JSON(http.StatusInternalServerError, ErrorResponse{Detail: "Failed to delete post"})
		}
		return
	}

	c.JSON(http.StatusOK, DeleteResponse{Success: "true", Message: "Post deleted successfully"})
}
