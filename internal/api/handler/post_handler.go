package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/openboard/forum-api/internal/api/metrics"
	"github.com/openboard/forum-api/internal/core/domain"
	"github.com/openboard/forum-api/internal/core/ports"
)

type PostHandler struct {
	service ports.PostService
}

func NewPostHandler(service ports.PostService) *PostHandler {
	return &PostHandler{service: service}
}

type postRequest struct {
	Message string `json:"message" validate:"required,min=3,max=400"`
}

type paginateRequest struct {
	PerPage     int `query:"perPage" validate:"required,gt=0"`
	CurrentPage int `query:"currentPage" validate:"required"`
}

type postResponse struct {
	PostID         string    `json:"postId"`
	ThreadID       string    `json:"threadId"`
	Message        string    `json:"message"`
	Published      time.Time `json:"published"`
	AuthorID       string    `json:"authorId"`
	AuthorUsername string    `json:"authorUsername"`
}

type paginationItems struct {
	PerPage int `json:"perPage"`
	Count   int `json:"count"`
	Total   int `json:"total"`
}

type pagination struct {
	LastPage    int             `json:"lastPage"`
	CurrentPage int             `json:"currentPage"`
	Items       paginationItems `json:"items"`
}

type threadPostsResponse struct {
	Pagination pagination     `json:"pagination"`
	Posts      []postResponse `json:"posts"`
}

type postDeletedResponse struct {
	PostID string `json:"postId"`
}

func toPostResponse(p *domain.Post) postResponse {
	return postResponse{
		PostID:         p.ID,
		ThreadID:       p.ThreadID,
		Message:        p.Message,
		Published:      p.Published,
		AuthorID:       p.AuthorID,
		AuthorUsername: p.AuthorUsername,
	}
}

// ListByThread returns one page of a thread's posts, newest first.
//
// @Summary      List posts in a thread
// @Tags         posts
// @Produce      json
// @Param        id           path      string  true  "Thread id"
// @Param        perPage      query     int     true  "Page size"
// @Param        currentPage  query     int     true  "Page number (1-based)"
// @Success      200          {object}  threadPostsResponse
// @Failure      400          {object}  map[string]string
// @Failure      404          {object}  map[string]string
// @Router       /api/posts/thread/{id} [get]
func (h *PostHandler) ListByThread(c echo.Context) error {
	var req paginateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid pagination parameters")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	page, err := h.service.ListByThread(c.Request().Context(), c.Param("id"), req.CurrentPage, req.PerPage)
	if err != nil {
		return err
	}

	posts := make([]postResponse, 0, len(page.Posts))
	for i := range page.Posts {
		posts = append(posts, toPostResponse(&page.Posts[i]))
	}

	return c.JSON(http.StatusOK, threadPostsResponse{
		Pagination: pagination{
			LastPage:    page.LastPage,
			CurrentPage: page.CurrentPage,
			Items: paginationItems{
				PerPage: page.PerPage,
				Count:   page.Count,
				Total:   page.Total,
			},
		},
		Posts: posts,
	})
}

// Create adds a post to an existing thread.
//
// @Summary      Create a post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Param        id    path      string       true  "Thread id"
// @Param        body  body      postRequest  true  "Post content"
// @Success      200   {object}  postResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/posts/thread/{id} [post]
func (h *PostHandler) Create(c echo.Context) error {
	var req postRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	post, err := h.service.Create(c.Request().Context(), ctxPrincipal(c), c.Param("id"), req.Message)
	if err != nil {
		return err
	}

	metrics.PostsCreatedTotal.Inc()
	return c.JSON(http.StatusOK, toPostResponse(post))
}

// Update edits a post. Only the author or an admin may do this.
//
// @Summary      Update a post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Param        id    path      string       true  "Post id"
// @Param        body  body      postRequest  true  "New post content"
// @Success      200   {object}  postResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/posts/post/{id} [put]
func (h *PostHandler) Update(c echo.Context) error {
	var req postRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	post, err := h.service.Update(c.Request().Context(), ctxPrincipal(c), c.Param("id"), req.Message)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPostResponse(post))
}

// Delete removes a post. Only the author or an admin may do this.
//
// @Summary      Delete a post
// @Tags         posts
// @Produce      json
// @Param        id   path      string  true  "Post id"
// @Success      200  {object}  postDeletedResponse
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/posts/post/{id} [delete]
func (h *PostHandler) Delete(c echo.Context) error {
	id := c.Param("id")
	if err := h.service.Delete(c.Request().Context(), ctxPrincipal(c), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, postDeletedResponse{PostID: id})
}
