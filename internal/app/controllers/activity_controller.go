package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/uisgo/uisgo-backend/internal/app/models/dto"
	"github.com/uisgo/uisgo-backend/internal/app/services"
	"github.com/uisgo/uisgo-backend/internal/middleware"
	"github.com/uisgo/uisgo-backend/internal/pkg/helpers"
)

// ActivityController handles activity and submission operations
type ActivityController struct {
	activityService services.ActivityService
}

// NewActivityController creates a new ActivityController
func NewActivityController(activityService services.ActivityService) *ActivityController {
	return &ActivityController{activityService: activityService}
}

// CreateActivity handles activity creation
// @Summary Create an activity
// @Description Creates a published activity targeted at groups the caller owns
// @Tags activities
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateActivityRequest true "Activity data"
// @Success 201 {object} dto.APIResponse{data=dto.ActivityDetailResponse} "Activity created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /activities [post]
func (c *ActivityController) CreateActivity(ctx *gin.Context) {
	userID, role, ok := currentIdentity(ctx)
	if !ok {
		return
	}

	var req dto.CreateActivityRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, err, "Invalid activity data")
		return
	}

	activity, err := c.activityService.CreateActivity(ctx, userID, role, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusCreated, activity)
}

// ListActivities lists activities visible to the caller
// @Summary List activities
// @Description Owners see their activities; students see published activities targeted at their groups
// @Tags activities
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse} "Activities retrieved"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /activities [get]
func (c *ActivityController) ListActivities(ctx *gin.Context) {
	userID, role, ok := currentIdentity(ctx)
	if !ok {
		return
	}
	limit, offset := helpers.ParseLimitOffset(ctx)

	activities, total, err := c.activityService.ListActivities(ctx, userID, role, limit, offset)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondPaginated(ctx, activities, total, limit, offset)
}

// GetActivity returns activity details
// @Summary Get activity details
// @Description Returns an activity with its question; owners also get the submission list
// @Tags activities
// @Produce json
// @Security BearerAuth
// @Param id path string true "Activity ID"
// @Success 200 {object} dto.APIResponse{data=dto.ActivityDetailResponse} "Activity retrieved"
// @Failure 404 {object} dto.ErrorResponse "Activity not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /activities/{id} [get]
func (c *ActivityController) GetActivity(ctx *gin.Context) {
	userID, role, ok := currentIdentity(ctx)
	if !ok {
		return
	}
	activityID, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	activity, err := c.activityService.GetActivity(ctx, activityID, userID, role)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusOK, activity)
}

// UpdateActivity updates activity fields
// @Summary Update an activity
// @Description Updates fields of an activity the caller owns, including its status
// @Tags activities
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Activity ID"
// @Param request body dto.UpdateActivityRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=dto.ActivityDetailResponse} "Activity updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Activity not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /activities/{id} [patch]
func (c *ActivityController) UpdateActivity(ctx *gin.Context) {
	userID, role, ok := currentIdentity(ctx)
	if !ok {
		return
	}
	activityID, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateActivityRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, err, "Invalid activity data")
		return
	}

	activity, err := c.activityService.UpdateActivity(ctx, activityID, userID, role, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusOK, activity)
}

// Publish publishes an activity
// @Summary Publish an activity
// @Description Sets the activity status to published; re-publishing is a no-op
// @Tags activities
// @Produce json
// @Security BearerAuth
// @Param id path string true "Activity ID"
// @Success 200 {object} dto.APIResponse{data=dto.ActivityDetailResponse}
// @Failure 403 {object} dto.APIResponse
// @Failure 404 {object} dto.APIResponse
// @Router /activities/{id}/publish [post]
func (c *ActivityController) Publish(ctx *gin.Context) {
	userID, role, ok := currentIdentity(ctx)
	if !ok {
		return
	}
	activityID, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	activity, err := c.activityService.Publish(ctx, activityID, userID, role)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusOK, activity)
}

// DeleteActivity removes an activity
// @Summary Delete an activity
// @Description Deletes an activity the caller owns with its targets and submissions
// @Tags activities
// @Produce json
// @Security BearerAuth
// @Param id path string true "Activity ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Activity deleted"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Activity not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /activities/{id} [delete]
func (c *ActivityController) DeleteActivity(ctx *gin.Context) {
	userID, role, ok := currentIdentity(ctx)
	if !ok {
		return
	}
	activityID, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.activityService.DeleteActivity(ctx, activityID, userID, role); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusOK, dto.SuccessResponse{Message: "Activity deleted"})
}

// Submit records the caller's answer
// @Summary Submit an answer
// @Description Records the caller's answer. Single choice answers are graded immediately and award coins when correct.
// @Tags activities
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Activity ID"
// @Param request body dto.SubmitAnswerRequest true "Answer"
// @Success 201 {object} dto.APIResponse{data=dto.SubmissionResultResponse} "Answer recorded"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 403 {object} dto.ErrorResponse "Activity not targeted at the caller"
// @Failure 404 {object} dto.ErrorResponse "Activity not found"
// @Failure 409 {object} dto.ErrorResponse "Closed or already submitted"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /activities/{id}/submit [post]
func (c *ActivityController) Submit(ctx *gin.Context) {
	userID, _, ok := currentIdentity(ctx)
	if !ok {
		return
	}
	activityID, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.SubmitAnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, err, "Invalid answer data")
		return
	}

	result, err := c.activityService.Submit(ctx, activityID, userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusCreated, result)
}

// GradeSubmission grades an open submission
// @Summary Grade a submission
// @Description Approves or rejects an open answer. Approval awards the activity's coins once.
// @Tags activities
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param submissionId path string true "Submission ID"
// @Param request body dto.GradeSubmissionRequest true "Grade"
// @Success 200 {object} dto.APIResponse{data=dto.SubmissionResultResponse} "Submission graded"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Submission not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /activities/submissions/{submissionId}/grade [post]
func (c *ActivityController) GradeSubmission(ctx *gin.Context) {
	userID, role, ok := currentIdentity(ctx)
	if !ok {
		return
	}
	submissionID, ok := parseUUIDParam(ctx, "submissionId")
	if !ok {
		return
	}

	var req dto.GradeSubmissionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, err, "Invalid grade data")
		return
	}

	result, err := c.activityService.GradeSubmission(ctx, submissionID, userID, role, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusOK, result)
}
