package api

import (
	"errors"
	"net/http"

	"roombook/internal/handler/dto/request"
	"roombook/internal/handler/dto/response"
	"roombook/internal/pkg/errs"
	"roombook/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type AvailabilityHandler struct {
	availability queries.AvailabilityQueries
	evaluation   queries.EvaluationQueries
}

func NewAvailabilityHandler(availability queries.AvailabilityQueries, evaluation queries.EvaluationQueries) *AvailabilityHandler {
	return &AvailabilityHandler{
		availability: availability,
		evaluation:   evaluation,
	}
}

func (h *AvailabilityHandler) ListAvailable(c *gin.Context) {
	spec, ok := h.bindSpec(c)
	if !ok {
		return
	}

	views, err := h.availability.FindAvailable(c.Request.Context(), spec)
	if err != nil {
		writeAvailabilityError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.FromResourceViews(views))
}

func (h *AvailabilityHandler) GetOptimal(c *gin.Context) {
	spec, ok := h.bindSpec(c)
	if !ok {
		return
	}

	view, err := h.availability.FindOptimal(c.Request.Context(), spec)
	if err != nil {
		writeAvailabilityError(c, err)
		return
	}
	if view == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "No resource available for the requested window",
		})
		return
	}

	resp := response.FromResourceView(*view)
	c.JSON(http.StatusOK, resp)
}

func (h *AvailabilityHandler) ListAlternatives(c *gin.Context) {
	spec, ok := h.bindSpec(c)
	if !ok {
		return
	}

	options, err := h.availability.FindAlternativeSlots(c.Request.Context(), spec)
	if err != nil {
		writeAvailabilityError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.FromSlotOptions(options))
}

func (h *AvailabilityHandler) Evaluate(c *gin.Context) {
	var req request.EvaluateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	spec, err := req.ToSpec()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid date or time window",
		})
		return
	}

	decision, err := h.evaluation.Evaluate(c.Request.Context(), spec)
	if err != nil {
		writeAvailabilityError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.FromDecision(decision))
}

func (h *AvailabilityHandler) bindSpec(c *gin.Context) (queries.AvailabilitySpec, bool) {
	var query request.AvailabilityQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid query parameters",
		})
		return queries.AvailabilitySpec{}, false
	}

	spec, err := query.ToSpec()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid date or time window",
		})
		return queries.AvailabilitySpec{}, false
	}
	return spec, true
}

func writeAvailabilityError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errs.ErrInvalidTimeWindow),
		errors.Is(err, errs.ErrInvalidCapacity),
		errors.Is(err, errs.ErrInvalidResourceKind),
		errors.Is(err, errs.ErrInvalidRequestKind):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid availability query"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
