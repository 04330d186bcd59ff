package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/hoteldesk/hotel-booking-backend/internal/auth"
	"github.com/hoteldesk/hotel-booking-backend/internal/interval"
	"github.com/hoteldesk/hotel-booking-backend/internal/pkg/response"
	"github.com/hoteldesk/hotel-booking-backend/internal/reservation"
	"github.com/hoteldesk/hotel-booking-backend/internal/user"
)

type Handler struct {
	service     reservation.Service
	userService user.Service
}

func NewHandler(service reservation.Service, userService user.Service) *Handler {
	return &Handler{
		service:     service,
		userService: userService,
	}
}

// checkIsAdmin resolves the caller against the identity store; the role claim
// in the token is a hint only.
func (h *Handler) checkIsAdmin(c *gin.Context, userID string) bool {
	ident, err := h.userService.GetByID(c.Request.Context(), userID)
	if err != nil {
		return false
	}
	return ident.IsAdmin()
}

func (h *Handler) Search(c *gin.Context) {
	var req AvailabilityRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "room_type, start and end are required"})
		return
	}

	stay, err := interval.Parse(req.StartDate, req.EndDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": reservation.ErrInvalidRange.Message})
		return
	}

	available, err := h.service.SearchAvailability(c.Request.Context(), req.RoomType, stay.Start, stay.End)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]AvailableRoomResponse, len(available))
	for i, a := range available {
		items[i] = AvailableRoomResponse{
			RoomID:     a.RoomID,
			RoomNumber: a.RoomNumber,
			PriceCents: a.PriceCents,
		}
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *Handler) Create(c *gin.Context) {
	var body BookReservationBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	userID := auth.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	stay, err := interval.Parse(body.StartDate, body.EndDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": reservation.ErrInvalidRange.Message})
		return
	}

	res, err := h.service.Book(c.Request.Context(), reservation.BookRequest{
		CustomerID: userID,
		RoomID:     body.RoomID,
		StartDate:  stay.Start,
		EndDate:    stay.End,
	})
	if err != nil {
		switch err {
		case reservation.ErrInvalidRange:
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case reservation.ErrRoomNotFound:
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case reservation.ErrConflict:
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			response.Error(c, err)
		}
		return
	}

	c.JSON(http.StatusCreated, NewReservationResponse(res))
}

func (h *Handler) List(c *gin.Context) {
	var req ListReservationsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters"})
		return
	}
	req.Normalize()

	currentUserID := auth.GetUserID(c)
	isAdmin := h.checkIsAdmin(c, currentUserID)

	// Admins may browse all reservations or filter by customer;
	// everyone else is pinned to their own.
	if !isAdmin {
		if req.CustomerID != "" && req.CustomerID != currentUserID {
			c.JSON(http.StatusForbidden, gin.H{"error": "permission denied"})
			return
		}
		req.CustomerID = currentUserID
	}

	reservations, total, err := h.service.List(c.Request.Context(), reservation.Filter{
		CustomerID: req.CustomerID,
		RoomID:     req.RoomID,
		Page:       req.Page,
		PageSize:   req.PageSize,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]ReservationResponse, len(reservations))
	for i, res := range reservations {
		items[i] = NewReservationResponse(res)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, req.Page, req.PageSize, total))
}

func (h *Handler) Get(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	res, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	userID := auth.GetUserID(c)
	if res.CustomerID != userID && !h.checkIsAdmin(c, userID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "permission denied"})
		return
	}

	c.JSON(http.StatusOK, NewReservationResponse(res))
}

func (h *Handler) Delete(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	userID := auth.GetUserID(c)
	isAdmin := h.checkIsAdmin(c, userID)

	err := h.service.Cancel(c.Request.Context(), id, userID, isAdmin)
	if err != nil {
		switch err {
		case reservation.ErrNotFound:
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case reservation.ErrPermissionDenied:
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		default:
			response.Error(c, err)
		}
		return
	}

	c.Status(http.StatusNoContent)
}
