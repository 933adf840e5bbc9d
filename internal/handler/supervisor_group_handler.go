package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"task-tracker-api/internal/dto"
	"task-tracker-api/internal/response"
	"task-tracker-api/internal/service"
)

type SupervisorGroupHandler struct {
	groupService service.SupervisorGroupService
}

func NewSupervisorGroupHandler(groupService service.SupervisorGroupService) *SupervisorGroupHandler {
	return &SupervisorGroupHandler{groupService: groupService}
}

// CreateGroup godoc
// @Summary      감독 그룹 생성
// @Description  ADMIN만 가능하며 호출자가 그룹의 감독자가 됩니다
// @Tags         supervisor-groups
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CreateSupervisorGroupRequest true "그룹 생성 요청"
// @Success      201 {object} response.SuccessResponse{data=dto.SupervisorGroupResponse} "생성 성공"
// @Failure      400 {object} response.ErrorResponse "잘못된 요청 또는 알 수 없는 멤버"
// @Failure      403 {object} response.ErrorResponse "권한 없음"
// @Router       /supervisor-groups [post]
func (h *SupervisorGroupHandler) CreateGroup(c *gin.Context) {
	var req dto.CreateSupervisorGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	auth, ok := ExtractAuthData(c)
	if !ok {
		return
	}

	group, err := h.groupService.CreateGroup(c.Request.Context(), auth.UserID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusCreated, group)
}

// GetMyGroups godoc
// @Summary      내 감독 그룹 목록
// @Tags         supervisor-groups
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.SuccessResponse{data=[]dto.SupervisorGroupResponse} "조회 성공"
// @Router       /supervisor-groups [get]
func (h *SupervisorGroupHandler) GetMyGroups(c *gin.Context) {
	auth, ok := ExtractAuthData(c)
	if !ok {
		return
	}

	groups, err := h.groupService.GetMyGroups(c.Request.Context(), auth.UserID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, groups)
}

// UpdateGroup godoc
// @Summary      감독 그룹 수정
// @Description  memberIds를 보내면 멤버 목록 전체가 교체됩니다
// @Tags         supervisor-groups
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        groupId path string true "Group ID (UUID)"
// @Param        request body dto.UpdateSupervisorGroupRequest true "그룹 수정 요청"
// @Success      200 {object} response.SuccessResponse{data=dto.SupervisorGroupResponse} "수정 성공"
// @Failure      403 {object} response.ErrorResponse "그룹 소유자가 아님"
// @Failure      404 {object} response.ErrorResponse "그룹을 찾을 수 없음"
// @Router       /supervisor-groups/{groupId} [put]
func (h *SupervisorGroupHandler) UpdateGroup(c *gin.Context) {
	groupID, ok := pathUUID(c, "groupId", "group")
	if !ok {
		return
	}

	var req dto.UpdateSupervisorGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	auth, ok := ExtractAuthData(c)
	if !ok {
		return
	}

	group, err := h.groupService.UpdateGroup(c.Request.Context(), auth.UserID, groupID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, group)
}

// DeleteGroup godoc
// @Summary      감독 그룹 삭제
// @Tags         supervisor-groups
// @Produce      json
// @Security     BearerAuth
// @Param        groupId path string true "Group ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=dto.MessageResponse} "삭제 성공"
// @Failure      403 {object} response.ErrorResponse "그룹 소유자가 아님"
// @Failure      404 {object} response.ErrorResponse "그룹을 찾을 수 없음"
// @Router       /supervisor-groups/{groupId} [delete]
func (h *SupervisorGroupHandler) DeleteGroup(c *gin.Context) {
	groupID, ok := pathUUID(c, "groupId", "group")
	if !ok {
		return
	}

	auth, ok := ExtractAuthData(c)
	if !ok {
		return
	}

	if err := h.groupService.DeleteGroup(c.Request.Context(), auth.UserID, groupID); err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, dto.MessageResponse{Message: "Supervisor group deleted"})
}
