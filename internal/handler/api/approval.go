package api

import (
	"net/http"

	"roombook/internal/domain/booking"
	"roombook/internal/handler/dto/request"
	"roombook/internal/handler/dto/response"
	"roombook/internal/handler/middleware"
	"roombook/internal/usecase/commands"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ApprovalHandler serves the two lane-scoped transition endpoints. Role
// gating happens in the router: logistics reaches the room lane, it_admin
// the zoom lane.
type ApprovalHandler struct {
	approvalCommands commands.ApprovalCommands
}

func NewApprovalHandler(approvalCommands commands.ApprovalCommands) *ApprovalHandler {
	return &ApprovalHandler{approvalCommands: approvalCommands}
}

func (h *ApprovalHandler) ApproveRoom(c *gin.Context) { h.approve(c, booking.LaneRoom) }
func (h *ApprovalHandler) ApproveZoom(c *gin.Context) { h.approve(c, booking.LaneZoom) }
func (h *ApprovalHandler) RejectRoom(c *gin.Context)  { h.reject(c, booking.LaneRoom) }
func (h *ApprovalHandler) RejectZoom(c *gin.Context)  { h.reject(c, booking.LaneZoom) }

func (h *ApprovalHandler) approve(c *gin.Context, lane booking.Lane) {
	actor, id, ok := h.actorAndID(c)
	if !ok {
		return
	}

	var req request.ApproveLaneRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid request format",
			})
			return
		}
	}

	view, err := h.approvalCommands.ApproveLane(c.Request.Context(), commands.ApproveLaneParams{
		RequestID:  id,
		Actor:      actor,
		Lane:       lane,
		ResourceID: req.ResourceID,
		Note:       req.Note,
	})
	if err != nil {
		writeBookingError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.FromRequestView(view))
}

func (h *ApprovalHandler) reject(c *gin.Context, lane booking.Lane) {
	actor, id, ok := h.actorAndID(c)
	if !ok {
		return
	}

	var req request.RejectLaneRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid request format",
			})
			return
		}
	}

	view, err := h.approvalCommands.RejectLane(c.Request.Context(), commands.RejectLaneParams{
		RequestID: id,
		Actor:     actor,
		Lane:      lane,
		Note:      req.Note,
	})
	if err != nil {
		writeBookingError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.FromRequestView(view))
}

func (h *ApprovalHandler) actorAndID(c *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	actor, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return uuid.Nil, uuid.Nil, false
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request ID format",
		})
		return uuid.Nil, uuid.Nil, false
	}

	return actor, id, true
}
