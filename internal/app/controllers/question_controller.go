package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/uisgo/uisgo-backend/internal/app/models/dto"
	"github.com/uisgo/uisgo-backend/internal/app/repositories"
	"github.com/uisgo/uisgo-backend/internal/app/services"
	"github.com/uisgo/uisgo-backend/internal/middleware"
	"github.com/uisgo/uisgo-backend/internal/pkg/helpers"
)

// QuestionController handles community questions and credits
type QuestionController struct {
	questionService services.QuestionService
}

// NewQuestionController creates a new QuestionController
func NewQuestionController(questionService services.QuestionService) *QuestionController {
	return &QuestionController{questionService: questionService}
}

// CreateQuestion handles question creation
// @Summary Create a question
// @Description Creates a question targeted at owned groups or published globally
// @Tags questions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateQuestionRequest true "Question data"
// @Success 201 {object} dto.APIResponse{data=dto.QuestionResponseDTO} "Question created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /questions [post]
func (c *QuestionController) CreateQuestion(ctx *gin.Context) {
	userID, role, ok := currentIdentity(ctx)
	if !ok {
		return
	}

	var req dto.CreateQuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, err, "Invalid question data")
		return
	}

	question, err := c.questionService.CreateQuestion(ctx, userID, role, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusCreated, question)
}

// ListQuestions lists questions visible to the caller
// @Summary List questions
// @Description Authors see their questions; students see active global questions and questions targeted at their groups
// @Tags questions
// @Produce json
// @Security BearerAuth
// @Param only_global query bool false "Only questions with zero group targets"
// @Param group_id query string false "Only questions targeting this group"
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse} "Questions retrieved"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "No access to the requested group"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /questions [get]
func (c *QuestionController) ListQuestions(ctx *gin.Context) {
	userID, role, ok := currentIdentity(ctx)
	if !ok {
		return
	}
	limit, offset := helpers.ParseLimitOffset(ctx)

	filter := repositories.QuestionFilter{
		OnlyGlobal: ctx.Query("only_global") == "true",
	}
	if raw := ctx.Query("group_id"); raw != "" {
		groupID, err := uuid.Parse(raw)
		if err != nil {
			bindError(ctx, err, "Invalid group id")
			return
		}
		filter.GroupID = &groupID
	}

	questions, total, err := c.questionService.ListQuestions(ctx, userID, role, filter, limit, offset)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondPaginated(ctx, questions, total, limit, offset)
}

// GetQuestion returns question details
// @Summary Get question details
// @Description Returns a question with its targets and whether the caller answered it
// @Tags questions
// @Produce json
// @Security BearerAuth
// @Param id path string true "Question ID"
// @Success 200 {object} dto.APIResponse{data=dto.QuestionResponseDTO} "Question retrieved"
// @Failure 404 {object} dto.ErrorResponse "Question not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /questions/{id} [get]
func (c *QuestionController) GetQuestion(ctx *gin.Context) {
	userID, role, ok := currentIdentity(ctx)
	if !ok {
		return
	}
	questionID, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	question, err := c.questionService.GetQuestion(ctx, userID, role, questionID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusOK, question)
}

// UpdateQuestion updates question fields
// @Summary Update a question
// @Description Updates fields of a question the caller authored
// @Tags questions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Question ID"
// @Param request body dto.UpdateQuestionRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=dto.QuestionResponseDTO} "Question updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Question not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /questions/{id} [patch]
func (c *QuestionController) UpdateQuestion(ctx *gin.Context) {
	userID, role, ok := currentIdentity(ctx)
	if !ok {
		return
	}
	questionID, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateQuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, err, "Invalid question data")
		return
	}

	question, err := c.questionService.UpdateQuestion(ctx, userID, role, questionID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusOK, question)
}

// ReplaceTargets replaces a question's group targets
// @Summary Replace question targets
// @Description Replaces the set of groups a question is targeted at
// @Tags questions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Question ID"
// @Param request body dto.QuestionTargetsRequest true "Target group IDs"
// @Success 200 {object} dto.APIResponse{data=dto.QuestionResponseDTO} "Targets replaced"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Question not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /questions/{id}/targets [put]
func (c *QuestionController) ReplaceTargets(ctx *gin.Context) {
	userID, role, ok := currentIdentity(ctx)
	if !ok {
		return
	}
	questionID, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.QuestionTargetsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, err, "Invalid targets data")
		return
	}

	question, err := c.questionService.ReplaceTargets(ctx, userID, role, questionID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusOK, question)
}

// DeleteQuestion removes a question
// @Summary Delete a question
// @Description Deletes a question the caller authored with its targets and responses
// @Tags questions
// @Produce json
// @Security BearerAuth
// @Param id path string true "Question ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Question deleted"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Question not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /questions/{id} [delete]
func (c *QuestionController) DeleteQuestion(ctx *gin.Context) {
	userID, role, ok := currentIdentity(ctx)
	if !ok {
		return
	}
	questionID, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.questionService.DeleteQuestion(ctx, userID, role, questionID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusOK, dto.SuccessResponse{Message: "Question deleted"})
}

// Answer records the caller's answer to a question
// @Summary Answer a question
// @Description Records the caller's answer and awards the question's credit and coin rewards
// @Tags questions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Question ID"
// @Param request body dto.AnswerQuestionRequest true "Answer"
// @Success 201 {object} dto.APIResponse{data=dto.QuestionAnswerResponse} "Answer recorded"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Question not found"
// @Failure 409 {object} dto.ErrorResponse "Already answered"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /questions/{id}/answer [post]
func (c *QuestionController) Answer(ctx *gin.Context) {
	userID, _, ok := currentIdentity(ctx)
	if !ok {
		return
	}
	questionID, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.AnswerQuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, err, "Invalid answer data")
		return
	}

	result, err := c.questionService.Answer(ctx, userID, questionID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusCreated, result)
}

// ListResponses lists the responses to a question
// @Summary List question responses
// @Description Returns the responses to a question the caller authored
// @Tags questions
// @Produce json
// @Security BearerAuth
// @Param id path string true "Question ID"
// @Success 200 {object} dto.APIResponse{data=[]dto.QuestionResponseItem} "Responses retrieved"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Question not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /questions/{id}/responses [get]
func (c *QuestionController) ListResponses(ctx *gin.Context) {
	userID, role, ok := currentIdentity(ctx)
	if !ok {
		return
	}
	questionID, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	responses, err := c.questionService.ListResponses(ctx, userID, role, questionID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusOK, responses)
}

// GetCredits returns the caller's credit balance
// @Summary Get my credits
// @Description Returns the caller's accumulated question credits
// @Tags questions
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.QuestionCreditsResponse} "Credits retrieved"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /credits/me [get]
func (c *QuestionController) GetCredits(ctx *gin.Context) {
	userID, _, ok := currentIdentity(ctx)
	if !ok {
		return
	}

	credits, err := c.questionService.GetCredits(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusOK, credits)
}
