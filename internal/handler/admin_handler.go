package handler

import (
	"net/http"

	"github.com/campusbooks/campusbooks-backend/internal/service"
	"github.com/labstack/echo/v4"
)

type AdminHandler struct {
	adminSvc service.AdminService
	userSvc  service.UserService
}

func NewAdminHandler(adminSvc service.AdminService, userSvc service.UserService) *AdminHandler {
	return &AdminHandler{adminSvc: adminSvc, userSvc: userSvc}
}

func (h *AdminHandler) Stats(c echo.Context) error {
	uid := currentUID(c)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	user, err := h.userSvc.Get(c.Request().Context(), uid)
	if err != nil {
		return serviceError(c, err)
	}
	if !user.IsAdmin {
		return c.JSON(http.StatusForbidden, NewErrorResponse("forbidden", "admin access required"))
	}
	stats, err := h.adminSvc.ComputeStats(c.Request().Context())
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, stats)
}
