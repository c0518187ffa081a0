package handler

import (
	"net/http"
	"strings"

	"github.com/campusbooks/campusbooks-backend/internal/middleware"
	"github.com/campusbooks/campusbooks-backend/internal/service"
	"github.com/labstack/echo/v4"
)

type UserHandler struct {
	svc service.UserService
}

func NewUserHandler(svc service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

// Me upserts the caller from its verified token claims and returns the
// stored row, so the client always sees the same record the rest of the
// app does (admin flag included).
func (h *UserHandler) Me(c echo.Context) error {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok || claims.UID == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	first, last := splitName(claims.Name)
	user, err := h.svc.UpsertFromLogin(c.Request().Context(), service.LoginProfile{
		ID:              claims.UID,
		Email:           strPtrOrNil(claims.Email),
		FirstName:       first,
		LastName:        last,
		ProfileImageURL: strPtrOrNil(claims.Picture),
	})
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, user)
}

type PublicUserResponse struct {
	ID              string  `json:"id"`
	DisplayName     string  `json:"displayName"`
	ProfileImageURL *string `json:"profileImageUrl"`
}

func (h *UserHandler) GetPublic(c echo.Context) error {
	user, err := h.svc.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return serviceError(c, err)
	}
	display := strings.TrimSpace(strDeref(user.FirstName) + " " + strDeref(user.LastName))
	return c.JSON(http.StatusOK, PublicUserResponse{
		ID:              user.ID,
		DisplayName:     display,
		ProfileImageURL: user.ProfileImageURL,
	})
}

func splitName(name string) (*string, *string) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, nil
	}
	first, last, found := strings.Cut(name, " ")
	if !found {
		return &first, nil
	}
	return &first, &last
}

func strPtrOrNil(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func strDeref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
