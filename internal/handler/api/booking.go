package api

import (
	"errors"
	"net/http"

	"roombook/internal/handler/dto/request"
	"roombook/internal/handler/dto/response"
	"roombook/internal/handler/middleware"
	"roombook/internal/pkg/errs"
	"roombook/internal/usecase/commands"
	"roombook/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BookingHandler struct {
	requestCommands commands.RequestCommands
	requestQueries  queries.RequestQueries
}

func NewBookingHandler(requestCommands commands.RequestCommands, requestQueries queries.RequestQueries) *BookingHandler {
	return &BookingHandler{
		requestCommands: requestCommands,
		requestQueries:  requestQueries,
	}
}

func (h *BookingHandler) CreateBooking(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	var req request.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	date, err := req.ParseDate()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid date format, expected YYYY-MM-DD",
		})
		return
	}
	window, err := req.ParseWindow()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid time window",
		})
		return
	}

	result, err := h.requestCommands.CreateRequest(c.Request.Context(), commands.CreateRequestParams{
		UserID:   userID,
		Date:     date,
		Window:   window,
		Capacity: req.Capacity,
		Kind:     req.ParsedKind(),
		Note:     req.TrimmedNote(),
	})
	if err != nil {
		writeBookingError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.CreateBookingResponse{
		Request:  response.FromRequestView(result.Request),
		Decision: response.FromDecision(result.Decision),
	})
}

func (h *BookingHandler) GetBooking(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request ID format",
		})
		return
	}

	view, err := h.requestQueries.GetByID(c.Request.Context(), id)
	if err != nil {
		writeBookingError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.FromRequestView(view))
}

func (h *BookingHandler) ListBookings(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	views, err := h.requestQueries.ListByUser(c.Request.Context(), userID)
	if err != nil {
		writeBookingError(c, err)
		return
	}

	result := make([]*response.BookingResponse, len(views))
	for i, view := range views {
		result[i] = response.FromRequestView(view)
	}
	c.JSON(http.StatusOK, result)
}

func (h *BookingHandler) GetAuditTrail(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request ID format",
		})
		return
	}

	views, err := h.requestQueries.AuditTrail(c.Request.Context(), id)
	if err != nil {
		writeBookingError(c, err)
		return
	}

	result := make([]*response.AuditEntryResponse, len(views))
	for i, view := range views {
		result[i] = response.FromAuditView(view)
	}
	c.JSON(http.StatusOK, result)
}

func (h *BookingHandler) CancelBooking(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request ID format",
		})
		return
	}

	view, err := h.requestCommands.CancelRequest(c.Request.Context(), id, userID)
	if err != nil {
		writeBookingError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.FromRequestView(view))
}

// writeBookingError translates the shared booking error vocabulary; every
// booking-facing handler funnels through it.
func writeBookingError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errs.ErrRequestNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Request not found"})
	case errors.Is(err, errs.ErrResourceNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Resource not found"})
	case errors.Is(err, errs.ErrInvalidTimeWindow):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid time window"})
	case errors.Is(err, errs.ErrInvalidCapacity):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Capacity must be positive"})
	case errors.Is(err, errs.ErrInvalidRequestKind):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown request kind"})
	case errors.Is(err, errs.ErrNotRequestOwner):
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the request owner may do this"})
	case errors.Is(err, errs.ErrRequestNotCancellable):
		c.JSON(http.StatusConflict, gin.H{"error": "Request can no longer be cancelled"})
	case errors.Is(err, errs.ErrRequestFinalized):
		c.JSON(http.StatusConflict, gin.H{"error": "Lane already finalized"})
	case errors.Is(err, errs.ErrResourceConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "Resource already booked for an overlapping window"})
	case errors.Is(err, errs.ErrNoResourceAvailable):
		c.JSON(http.StatusConflict, gin.H{"error": "No resource available for the requested window"})
	case errors.Is(err, errs.ErrResourceInactive):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Resource is deactivated"})
	case errors.Is(err, errs.ErrResourceTooSmall):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Resource capacity is insufficient"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
