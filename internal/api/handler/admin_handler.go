package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/openboard/forum-api/internal/api/metrics"
	"github.com/openboard/forum-api/internal/core/domain"
	"github.com/openboard/forum-api/internal/core/ports"
)

type AdminHandler struct {
	service ports.AdminService
}

func NewAdminHandler(service ports.AdminService) *AdminHandler {
	return &AdminHandler{service: service}
}

type userListResponse struct {
	Users []authResponse `json:"users"`
}

type banResponse struct {
	UserID string `json:"userId"`
}

// ListUsers returns every registered account.
//
// @Summary      List all users
// @Tags         admin
// @Produce      json
// @Success      200  {object}  userListResponse
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /api/admin/users/all [get]
func (h *AdminHandler) ListUsers(c echo.Context) error {
	users, err := h.service.ListUsers(c.Request().Context())
	if err != nil {
		return err
	}

	out := make([]authResponse, 0, len(users))
	for i := range users {
		out = append(out, authResponse{
			UserID:   users[i].ID,
			Username: users[i].Username,
			Role:     users[i].Role,
		})
	}
	return c.JSON(http.StatusOK, userListResponse{Users: out})
}

// Ban removes a user account together with all of its threads and posts.
//
// @Summary      Ban a user
// @Tags         admin
// @Produce      json
// @Param        username  path      string  true  "Username to ban"
// @Success      200       {object}  banResponse
// @Failure      401       {object}  map[string]string
// @Failure      403       {object}  map[string]string
// @Failure      404       {object}  map[string]string
// @Router       /api/admin/ban/{username} [delete]
func (h *AdminHandler) Ban(c echo.Context) error {
	userID, err := h.service.BanUser(c.Request().Context(), ctxPrincipal(c), c.Param("username"))
	if err != nil {
		return err
	}

	metrics.ModerationActionsTotal.WithLabelValues(domain.AuditBanUser).Inc()
	return c.JSON(http.StatusOK, banResponse{UserID: userID})
}

// DeletePost removes any user's post.
//
// @Summary      Delete any post
// @Tags         admin
// @Produce      json
// @Param        id   path      string  true  "Post id"
// @Success      200  {object}  postDeletedResponse
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/admin/post/{id} [delete]
func (h *AdminHandler) DeletePost(c echo.Context) error {
	id := c.Param("id")
	if err := h.service.DeletePost(c.Request().Context(), ctxPrincipal(c), id); err != nil {
		return err
	}

	metrics.ModerationActionsTotal.WithLabelValues(domain.AuditDeletePost).Inc()
	return c.JSON(http.StatusOK, postDeletedResponse{PostID: id})
}

// DeleteThread removes any user's thread and all posts under it.
//
// @Summary      Delete any thread
// @Tags         admin
// @Produce      json
// @Param        id   path      string  true  "Thread id"
// @Success      200  {object}  threadDeletedResponse
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/admin/thread/{id} [delete]
func (h *AdminHandler) DeleteThread(c echo.Context) error {
	id := c.Param("id")
	if err := h.service.DeleteThread(c.Request().Context(), ctxPrincipal(c), id); err != nil {
		return err
	}

	metrics.ModerationActionsTotal.WithLabelValues(domain.AuditDeleteThread).Inc()
	return c.JSON(http.StatusOK, threadDeletedResponse{ThreadID: id})
}
