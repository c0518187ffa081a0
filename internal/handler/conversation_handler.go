package handler

import (
	"net/http"

	"github.com/campusbooks/campusbooks-backend/internal/service"
	"github.com/labstack/echo/v4"
)

type ConversationHandler struct {
	svc service.ConversationService
}

func NewConversationHandler(svc service.ConversationService) *ConversationHandler {
	return &ConversationHandler{svc: svc}
}

type SendMessageRequest struct {
	ListingID string `json:"listingId"`
	Content   string `json:"content"`
	// RecipientID disambiguates which thread a listing owner replies to
	// when several buyers have messaged the same listing. Ignored for
	// non-owners.
	RecipientID string `json:"recipientId"`
}

type StartConversationRequest struct {
	ListingID string `json:"listingId"`
}

func (h *ConversationHandler) SendMessage(c echo.Context) error {
	uid := currentUID(c)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	var req SendMessageRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	msg, err := h.svc.SendMessage(c.Request().Context(), uid, req.ListingID, req.Content, req.RecipientID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusCreated, msg)
}

func (h *ConversationHandler) Start(c echo.Context) error {
	uid := currentUID(c)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	var req StartConversationRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	if err := h.svc.StartConversation(c.Request().Context(), uid, req.ListingID); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "conversation started"})
}

func (h *ConversationHandler) List(c echo.Context) error {
	uid := currentUID(c)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	views, err := h.svc.ListConversations(c.Request().Context(), uid)
	if err != nil {
		return serviceError(c, err)
	}
	// JSON object keys must be strings; threads serialize under
	// "<listingId>:<otherUserId>".
	resp := make(map[string]service.ConversationView, len(views))
	for key, view := range views {
		resp[key.String()] = view
	}
	return c.JSON(http.StatusOK, resp)
}
