package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/anonto42/petsocial/backend/internal/models"
	"github.com/anonto42/petsocial/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// PostHandler handles HTTP requests related to posts
type PostHandler struct {
	feed        *services.PostFeed
	credentials *services.CredentialStore // To fetch the author name for new posts
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(feed *services.PostFeed, credentials *services.CredentialStore) *PostHandler {
	return &PostHandler{
		feed:        feed,
		credentials: credentials,
	}
}

// RegisterPostRoutes registers post-related routes. Every route requires authentication.
func (h *PostHandler) RegisterPostRoutes(g *echo.Group, requireAuth echo.MiddlewareFunc) {
	posts := g.Group("/posts", requireAuth)
	posts.POST("", h.CreatePost)
	posts.GET("", h.GetPosts)
	posts.GET("/:id", h.GetPost)
	posts.DELETE("/:id", h.DeletePost)
	posts.PUT("/like/:id", h.LikePost)
	posts.PUT("/unlike/:id", h.UnlikePost)
}

// CreatePost creates a new post authored by the caller
func (h *PostHandler) CreatePost(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return err
	}

	var req models.CreatePostRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.credentials.GetByID(c.Request().Context(), userID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return echo.NewHTTPError(http.StatusUnauthorized, "User not found")
		}
		return err
	}

	post, err := h.feed.Create(c.Request().Context(), userID, user.Name, req.Text)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, post)
}

// GetPosts lists posts newest first, optionally paged and filtered by author
func (h *PostHandler) GetPosts(c echo.Context) error {
	skip, err := queryInt(c, "skip")
	if err != nil {
		return err
	}
	limit, err := queryInt(c, "limit")
	if err != nil {
		return err
	}

	var posts []models.Post
	if raw := c.QueryParam("user_id"); raw != "" {
		userID, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid user_id")
		}
		posts, err = h.feed.ListByUser(c.Request().Context(), uint(userID), skip, limit)
		if err != nil {
			return err
		}
	} else {
		posts, err = h.feed.List(c.Request().Context(), skip, limit)
		if err != nil {
			return err
		}
	}

	return c.JSON(http.StatusOK, posts)
}

// GetPost retrieves a post by ID
func (h *PostHandler) GetPost(c echo.Context) error {
	post, err := h.feed.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return err
	}
	return c.JSON(http.StatusOK, post)
}

// DeletePost deletes a post owned by the caller
func (h *PostHandler) DeletePost(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return err
	}

	err = h.feed.Delete(c.Request().Context(), c.Param("id"), userID)
	switch {
	case errors.Is(err, services.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "Post not found")
	case errors.Is(err, services.ErrForbidden):
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authorized")
	case err != nil:
		return err
	}
	return c.JSON(http.StatusOK, messageBody{Msg: "Post removed"})
}

// LikePost adds the caller to the post's likes
func (h *PostHandler) LikePost(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return err
	}

	likes, err := h.feed.Like(c.Request().Context(), c.Param("id"), userID)
	switch {
	case errors.Is(err, services.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "Post not found")
	case errors.Is(err, services.ErrAlreadyLiked):
		return echo.NewHTTPError(http.StatusBadRequest, "Post already liked")
	case err != nil:
		return err
	}
	return c.JSON(http.StatusOK, likes)
}

// UnlikePost removes the caller from the post's likes
func (h *PostHandler) UnlikePost(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return err
	}

	likes, err := h.feed.Unlike(c.Request().Context(), c.Param("id"), userID)
	switch {
	case errors.Is(err, services.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "Post not found")
	case errors.Is(err, services.ErrNotLiked):
		return echo.NewHTTPError(http.StatusBadRequest, "Post has not yet been liked")
	case err != nil:
		return err
	}
	return c.JSON(http.StatusOK, likes)
}

// queryInt parses an optional non-negative integer query parameter, 0 when absent
func queryInt(c echo.Context, name string) (int64, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || v < 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "Invalid "+name)
	}
	return v, nil
}
