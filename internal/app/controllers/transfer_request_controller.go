package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/creditbridge/internal/app/models"
	"github.com/yigit/creditbridge/internal/app/models/dto"
	"github.com/yigit/creditbridge/internal/app/services"
	"github.com/yigit/creditbridge/internal/middleware"
)

// TransferRequestController accepts transfer credit requests from the public form
type TransferRequestController struct {
	resolutionService services.ResolutionService
	logger            zerolog.Logger
}

// NewTransferRequestController creates a new TransferRequestController
func NewTransferRequestController(resolutionService services.ResolutionService, logger zerolog.Logger) *TransferRequestController {
	return &TransferRequestController{
		resolutionService: resolutionService,
		logger:            logger,
	}
}

// Submit classifies a transfer credit request
// @Summary Submit a transfer credit request
// @Description Online courses are rejected, requests matching a recent decision are resolved immediately, everything else waits for an administrator. The decision is sent by email.
// @Tags transfer-requests
// @Accept json
// @Produce json
// @Param request body dto.SubmitTransferRequest true "Transfer credit request"
// @Success 200 {object} dto.APIResponse{data=dto.SubmitTransferResponse} "Request resolved, decision sent by email"
// @Success 202 {object} dto.APIResponse{data=dto.SubmitTransferResponse} "Request queued for review"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "School or course not found"
// @Failure 503 {object} dto.ErrorResponse "Request could not be saved"
// @Router /transfer-requests [post]
func (c *TransferRequestController) Submit(ctx *gin.Context) {
	var req dto.SubmitTransferRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	outcome, err := c.resolutionService.Classify(ctx.Request.Context(), req.ToSubmission())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	resp := dto.NewSubmitTransferResponse(outcome)
	status := http.StatusOK
	if outcome.Kind == models.OutcomeQueued {
		status = http.StatusAccepted
	}

	ctx.JSON(status, dto.NewAPIResponse(resp))
}
