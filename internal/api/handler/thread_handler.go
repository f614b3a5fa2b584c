package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/openboard/forum-api/internal/api/metrics"
	"github.com/openboard/forum-api/internal/core/domain"
	"github.com/openboard/forum-api/internal/core/ports"
)

type ThreadHandler struct {
	service ports.ThreadService
}

func NewThreadHandler(service ports.ThreadService) *ThreadHandler {
	return &ThreadHandler{service: service}
}

type threadRequest struct {
	Title          string `json:"title" validate:"required,min=3,max=50"`
	InitialMessage string `json:"initialMessage" validate:"required,min=3,max=500"`
}

type threadResponse struct {
	ThreadID       string    `json:"threadId"`
	Title          string    `json:"title"`
	InitialMessage string    `json:"initialMessage"`
	Published      time.Time `json:"published"`
	AuthorID       string    `json:"authorId"`
	AuthorUsername string    `json:"authorUsername"`
}

type threadDeletedResponse struct {
	ThreadID string `json:"threadId"`
}

func toThreadResponse(t *domain.Thread) threadResponse {
	return threadResponse{
		ThreadID:       t.ID,
		Title:          t.Title,
		InitialMessage: t.InitialMessage,
		Published:      t.Published,
		AuthorID:       t.AuthorID,
		AuthorUsername: t.AuthorUsername,
	}
}

// List returns every thread, newest first.
//
// @Summary      List all threads
// @Tags         threads
// @Produce      json
// @Success      200  {array}  threadResponse
// @Router       /api/threads/all [get]
func (h *ThreadHandler) List(c echo.Context) error {
	threads, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}

	out := make([]threadResponse, 0, len(threads))
	for i := range threads {
		out = append(out, toThreadResponse(&threads[i]))
	}
	return c.JSON(http.StatusOK, out)
}

// Get fetches one thread by id.
//
// @Summary      Get a thread
// @Tags         threads
// @Produce      json
// @Param        id   path      string  true  "Thread id"
// @Success      200  {object}  threadResponse
// @Failure      404  {object}  map[string]string
// @Router       /api/threads/thread/{id} [get]
func (h *ThreadHandler) Get(c echo.Context) error {
	thread, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toThreadResponse(thread))
}

// Create starts a new thread owned by the authenticated user.
//
// @Summary      Create a thread
// @Tags         threads
// @Accept       json
// @Produce      json
// @Param        body  body      threadRequest  true  "Thread content"
// @Success      200   {object}  threadResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /api/threads/thread/new [post]
func (h *ThreadHandler) Create(c echo.Context) error {
	var req threadRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	thread, err := h.service.Create(c.Request().Context(), ctxPrincipal(c), req.Title, req.InitialMessage)
	if err != nil {
		return err
	}

	metrics.ThreadsCreatedTotal.Inc()
	return c.JSON(http.StatusOK, toThreadResponse(thread))
}

// Update edits a thread. Only the owner or an admin may do this.
//
// @Summary      Update a thread
// @Tags         threads
// @Accept       json
// @Produce      json
// @Param        id    path      string         true  "Thread id"
// @Param        body  body      threadRequest  true  "New thread content"
// @Success      200   {object}  threadResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/threads/thread/{id} [put]
func (h *ThreadHandler) Update(c echo.Context) error {
	var req threadRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	thread, err := h.service.Update(c.Request().Context(), ctxPrincipal(c), c.Param("id"), req.Title, req.InitialMessage)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toThreadResponse(thread))
}

// Delete removes a thread and all of its posts. Only the owner or an admin
// may do this.
//
// @Summary      Delete a thread
// @Tags         threads
// @Produce      json
// @Param        id   path      string  true  "Thread id"
// @Success      200  {object}  threadDeletedResponse
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/threads/thread/{id} [delete]
func (h *ThreadHandler) Delete(c echo.Context) error {
	id := c.Param("id")
	if err := h.service.Delete(c.Request().Context(), ctxPrincipal(c), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, threadDeletedResponse{ThreadID: id})
}
