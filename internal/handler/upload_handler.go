package handler

import (
	"net/http"

	"github.com/campusbooks/campusbooks-backend/internal/objectstore"
	"github.com/labstack/echo/v4"
)

type UploadHandler struct {
	store *objectstore.Store
}

func NewUploadHandler(store *objectstore.Store) *UploadHandler {
	return &UploadHandler{store: store}
}

type UploadRequest struct {
	ContentType string `json:"contentType"`
}

func (h *UploadHandler) CreateUploadURL(c echo.Context) error {
	uid := currentUID(c)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	var req UploadRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	if req.ContentType == "" {
		req.ContentType = "application/octet-stream"
	}
	upload, err := h.store.NewListingImageUpload(req.ContentType)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to generate upload url"))
	}
	return c.JSON(http.StatusOK, upload)
}
