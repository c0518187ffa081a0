package handler

import (
	"net/http"

	"github.com/campusbooks/campusbooks-backend/internal/service"
	"github.com/labstack/echo/v4"
)

type ListingHandler struct {
	svc service.ListingService
}

func NewListingHandler(svc service.ListingService) *ListingHandler {
	return &ListingHandler{svc: svc}
}

type CreateListingRequest struct {
	Title       string  `json:"title"`
	CourseCode  string  `json:"courseCode"`
	Author      *string `json:"author"`
	Price       string  `json:"price"`
	Condition   string  `json:"condition"`
	Description *string `json:"description"`
	ImageURL    *string `json:"imageUrl"`
}

type UpdateListingRequest struct {
	Title       *string `json:"title"`
	CourseCode  *string `json:"courseCode"`
	Author      *string `json:"author"`
	Price       *string `json:"price"`
	Condition   *string `json:"condition"`
	Description *string `json:"description"`
	ImageURL    *string `json:"imageUrl"`
	Status      *string `json:"status"`
}

func (h *ListingHandler) Create(c echo.Context) error {
	uid := currentUID(c)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	var req CreateListingRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	listing, err := h.svc.Create(c.Request().Context(), uid, service.CreateListingInput{
		Title:       req.Title,
		CourseCode:  req.CourseCode,
		Author:      req.Author,
		Price:       req.Price,
		Condition:   req.Condition,
		Description: req.Description,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusCreated, listing)
}

func (h *ListingHandler) Get(c echo.Context) error {
	listing, err := h.svc.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, listing)
}

func (h *ListingHandler) List(c echo.Context) error {
	listings, err := h.svc.ListAll(c.Request().Context())
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, listings)
}

func (h *ListingHandler) ListMine(c echo.Context) error {
	uid := currentUID(c)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	listings, err := h.svc.ListMine(c.Request().Context(), uid)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, listings)
}

func (h *ListingHandler) Update(c echo.Context) error {
	uid := currentUID(c)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	var req UpdateListingRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	listing, err := h.svc.Update(c.Request().Context(), c.Param("id"), uid, service.UpdateListingInput{
		Title:       req.Title,
		CourseCode:  req.CourseCode,
		Author:      req.Author,
		Price:       req.Price,
		Condition:   req.Condition,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		Status:      req.Status,
	})
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, listing)
}

func (h *ListingHandler) Delete(c echo.Context) error {
	uid := currentUID(c)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	if err := h.svc.Delete(c.Request().Context(), c.Param("id"), uid); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "listing deleted"})
}
