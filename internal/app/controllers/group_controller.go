package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/uisgo/uisgo-backend/internal/app/models/dto"
	"github.com/uisgo/uisgo-backend/internal/app/services"
	"github.com/uisgo/uisgo-backend/internal/middleware"
)

// GroupController handles group, membership and invite operations
type GroupController struct {
	groupService services.GroupService
}

// NewGroupController creates a new GroupController
func NewGroupController(groupService services.GroupService) *GroupController {
	return &GroupController{groupService: groupService}
}

// CreateGroup handles group creation
// @Summary Create a group
// @Description Creates a group owned by the caller with a default invite code
// @Tags groups
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateGroupRequest true "Group data"
// @Success 201 {object} dto.APIResponse{data=dto.GroupDetailResponse} "Group created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /groups [post]
func (c *GroupController) CreateGroup(ctx *gin.Context) {
	userID, _, ok := currentIdentity(ctx)
	if !ok {
		return
	}

	var req dto.CreateGroupRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, err, "Invalid group data")
		return
	}

	group, err := c.groupService.CreateGroup(ctx, userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusCreated, group)
}

// ListGroups lists the caller's groups
// @Summary List my groups
// @Description Owners see groups they created, students see groups they joined
// @Tags groups
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.GroupResponse} "Groups retrieved"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /groups [get]
func (c *GroupController) ListGroups(ctx *gin.Context) {
	userID, role, ok := currentIdentity(ctx)
	if !ok {
		return
	}

	groups, err := c.groupService.ListGroups(ctx, userID, role)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusOK, groups)
}

// GetGroup returns group details
// @Summary Get group details
// @Description Returns a group with its invite links for the owner and its targeted questions
// @Tags groups
// @Produce json
// @Security BearerAuth
// @Param id path string true "Group ID"
// @Success 200 {object} dto.APIResponse{data=dto.GroupDetailResponse} "Group retrieved"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Group not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /groups/{id} [get]
func (c *GroupController) GetGroup(ctx *gin.Context) {
	userID, role, ok := currentIdentity(ctx)
	if !ok {
		return
	}
	groupID, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	group, err := c.groupService.GetGroup(ctx, groupID, userID, role)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusOK, group)
}

// UpdateGroup updates group fields
// @Summary Update a group
// @Description Updates name and subject of a group the caller owns
// @Tags groups
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Group ID"
// @Param request body dto.UpdateGroupRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=dto.GroupResponse} "Group updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Group not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /groups/{id} [patch]
func (c *GroupController) UpdateGroup(ctx *gin.Context) {
	userID, role, ok := currentIdentity(ctx)
	if !ok {
		return
	}
	groupID, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateGroupRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, err, "Invalid group data")
		return
	}

	group, err := c.groupService.UpdateGroup(ctx, groupID, userID, role, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusOK, group)
}

// DeleteGroup removes a group
// @Summary Delete a group
// @Description Deletes a group the caller owns, including memberships and invites
// @Tags groups
// @Produce json
// @Security BearerAuth
// @Param id path string true "Group ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Group deleted"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Group not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /groups/{id} [delete]
func (c *GroupController) DeleteGroup(ctx *gin.Context) {
	userID, role, ok := currentIdentity(ctx)
	if !ok {
		return
	}
	groupID, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.groupService.DeleteGroup(ctx, groupID, userID, role); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusOK, dto.SuccessResponse{Message: "Group deleted"})
}

// ListMembers lists group members
// @Summary List group members
// @Description Returns the members of a group the caller owns
// @Tags groups
// @Produce json
// @Security BearerAuth
// @Param id path string true "Group ID"
// @Success 200 {object} dto.APIResponse{data=[]models.GroupMember} "Members retrieved"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Group not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /groups/{id}/members [get]
func (c *GroupController) ListMembers(ctx *gin.Context) {
	userID, role, ok := currentIdentity(ctx)
	if !ok {
		return
	}
	groupID, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	members, err := c.groupService.ListMembers(ctx, groupID, userID, role)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusOK, members)
}

// CreateInvite issues a fresh invite code
// @Summary Create an invite code
// @Description Deactivates prior codes and issues a fresh invite code for a group the caller owns
// @Tags groups
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Group ID"
// @Param request body dto.CreateInviteRequest true "Invite constraints"
// @Success 201 {object} dto.APIResponse{data=dto.InviteCodeResponse} "Invite created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Group not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /groups/{id}/invites [post]
func (c *GroupController) CreateInvite(ctx *gin.Context) {
	userID, role, ok := currentIdentity(ctx)
	if !ok {
		return
	}
	groupID, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.CreateInviteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, err, "Invalid invite data")
		return
	}

	invite, err := c.groupService.CreateInvite(ctx, groupID, userID, role, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusCreated, invite)
}

// Join redeems an invite code
// @Summary Join a group
// @Description Adds the caller to the group behind the invite code. Joining twice is a no-op.
// @Tags groups
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.JoinGroupRequest true "Invite code"
// @Success 200 {object} dto.APIResponse{data=dto.JoinGroupResponse} "Joined"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Invite not found"
// @Failure 409 {object} dto.ErrorResponse "Invite expired or exhausted"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /groups/join [post]
func (c *GroupController) Join(ctx *gin.Context) {
	userID, _, ok := currentIdentity(ctx)
	if !ok {
		return
	}

	var req dto.JoinGroupRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, err, "Invalid join request")
		return
	}

	result, err := c.groupService.Join(ctx, userID, req.Code)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusOK, result)
}

// InviteQR renders an invite code as a QR image
// @Summary Get invite QR code
// @Description Returns a PNG QR code encoding the join link for an invite code
// @Tags groups
// @Produce png
// @Param code path string true "Invite code"
// @Success 200 {file} file "PNG image"
// @Failure 404 {object} dto.ErrorResponse "Invite not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /join/{code}/qr [get]
func (c *GroupController) InviteQR(ctx *gin.Context) {
	code := ctx.Param("code")
	if _, _, err := c.groupService.ResolveInvite(ctx, code); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	png, err := c.groupService.InviteQRPNG(code)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Data(http.StatusOK, "image/png", png)
}
