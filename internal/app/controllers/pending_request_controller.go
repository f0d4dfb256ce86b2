package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/creditbridge/internal/app/models/dto"
	"github.com/yigit/creditbridge/internal/app/services"
	"github.com/yigit/creditbridge/internal/middleware"
	"github.com/yigit/creditbridge/internal/pkg/apperrors"
	"github.com/yigit/creditbridge/internal/pkg/helpers"
)

// PendingRequestController lets administrators review the queue and decide requests
type PendingRequestController struct {
	resolutionService services.ResolutionService
	logger            zerolog.Logger
}

// NewPendingRequestController creates a new PendingRequestController
func NewPendingRequestController(resolutionService services.ResolutionService, logger zerolog.Logger) *PendingRequestController {
	return &PendingRequestController{
		resolutionService: resolutionService,
		logger:            logger,
	}
}

// ListPending returns every queued request
// @Summary List pending requests
// @Description Lists queued transfer requests, oldest first
// @Tags pending-requests
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.PendingRequest} "Pending requests"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /pending-requests [get]
func (c *PendingRequestController) ListPending(ctx *gin.Context) {
	requests, err := c.resolutionService.ListPending(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(requests))
}

// GetPending returns one queued request
// @Summary Get pending request
// @Tags pending-requests
// @Produce json
// @Security BearerAuth
// @Param id path int true "Pending request ID"
// @Success 200 {object} dto.APIResponse{data=models.PendingRequest} "Pending request"
// @Failure 400 {object} dto.ErrorResponse "Invalid pending request ID"
// @Failure 404 {object} dto.ErrorResponse "Pending request not found"
// @Router /pending-requests/{id} [get]
func (c *PendingRequestController) GetPending(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "Pending request")
	if !ok {
		return
	}

	request, err := c.resolutionService.GetPending(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(request))
}

// Approve records an approval precedent and notifies the requester
// @Summary Approve pending request
// @Description Resolves inline school and course entries into the catalog, records the decision as a precedent and removes the request from the queue
// @Tags pending-requests
// @Produce json
// @Security BearerAuth
// @Param id path int true "Pending request ID"
// @Success 200 {object} dto.APIResponse{data=dto.DecisionResponse} "Request approved"
// @Failure 404 {object} dto.ErrorResponse "Pending request not found"
// @Failure 503 {object} dto.ErrorResponse "Decision could not be saved"
// @Router /pending-requests/{id}/approve [post]
func (c *PendingRequestController) Approve(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "Pending request")
	if !ok {
		return
	}

	precedent, err := c.resolutionService.Approve(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().
		Int64("pendingRequestId", id).
		Int64("adminId", ctx.GetInt64(middleware.AdminIDKey)).
		Msg("Pending request approved")

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.DecisionResponse{
		PendingRequestID: id,
		Approved:         true,
		PrecedentID:      precedent.ID,
		DecidedAt:        precedent.DecidedAt,
	}))
}

// Disapprove rejects a pending request with reasons
// @Summary Disapprove pending request
// @Description Sends the reasons to the requester and removes the request from the queue. No precedent is recorded.
// @Tags pending-requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Pending request ID"
// @Param request body dto.DisapproveRequest true "Reasons"
// @Success 200 {object} dto.APIResponse{data=dto.DecisionResponse} "Request disapproved"
// @Failure 400 {object} dto.ErrorResponse "Reasons are required"
// @Failure 404 {object} dto.ErrorResponse "Pending request not found"
// @Router /pending-requests/{id}/disapprove [post]
func (c *PendingRequestController) Disapprove(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "Pending request")
	if !ok {
		return
	}

	var req dto.DisapproveRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}
	// Administrators must tell the requester something.
	if strings.TrimSpace(req.Reasons) == "" {
		middleware.HandleAPIError(ctx, apperrors.NewValidationError(map[string]string{"reasons": "reasons must not be blank"}))
		return
	}

	if err := c.resolutionService.Disapprove(ctx.Request.Context(), id, req.Reasons); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().
		Int64("pendingRequestId", id).
		Int64("adminId", ctx.GetInt64(middleware.AdminIDKey)).
		Msg("Pending request disapproved")

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.DecisionResponse{
		PendingRequestID: id,
		Approved:         false,
	}))
}

// ListPrecedents returns decided requests, newest first
// @Summary List precedents
// @Tags precedents
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number (1-based)" default(1)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} dto.APIResponse{data=dto.PrecedentListResponse} "Precedents"
// @Router /precedents [get]
func (c *PendingRequestController) ListPrecedents(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)

	precedents, total, err := c.resolutionService.ListPrecedents(ctx.Request.Context(), page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.PrecedentListResponse{
		Precedents: precedents,
		Pagination: helpers.NewPaginationInfo(total, page, size),
	}))
}
