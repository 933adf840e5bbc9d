package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"task-tracker-api/internal/dto"
	"task-tracker-api/internal/response"
	"task-tracker-api/internal/service"
)

type UserHandler struct {
	userService service.UserService
}

func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// GetUsers godoc
// @Summary      사용자 목록 조회
// @Description  호출자 역할에 따라 보이는 사용자만 반환합니다
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.SuccessResponse{data=[]dto.UserResponse} "조회 성공"
// @Failure      401 {object} response.ErrorResponse "인증 실패"
// @Failure      500 {object} response.ErrorResponse "서버 에러"
// @Router       /users [get]
func (h *UserHandler) GetUsers(c *gin.Context) {
	auth, ok := ExtractAuthData(c)
	if !ok {
		return
	}

	users, err := h.userService.ListUsers(c.Request.Context(), auth.UserID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, users)
}

// GetProfile godoc
// @Summary      내 프로필 조회
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.SuccessResponse{data=dto.UserResponse} "조회 성공"
// @Failure      401 {object} response.ErrorResponse "인증 실패"
// @Failure      404 {object} response.ErrorResponse "사용자를 찾을 수 없음"
// @Router       /users/profile [get]
func (h *UserHandler) GetProfile(c *gin.Context) {
	auth, ok := ExtractAuthData(c)
	if !ok {
		return
	}

	user, err := h.userService.GetProfile(c.Request.Context(), auth.UserID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, user)
}

// UpdateRole godoc
// @Summary      사용자 역할 변경
// @Description  ADMIN만 가능합니다
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        userId path string true "User ID (UUID)"
// @Param        request body dto.UpdateRoleRequest true "역할 변경 요청"
// @Success      200 {object} response.SuccessResponse{data=dto.UserResponse} "변경 성공"
// @Failure      400 {object} response.ErrorResponse "잘못된 요청"
// @Failure      403 {object} response.ErrorResponse "권한 없음"
// @Failure      404 {object} response.ErrorResponse "사용자를 찾을 수 없음"
// @Router       /users/{userId}/role [put]
func (h *UserHandler) UpdateRole(c *gin.Context) {
	targetID, ok := pathUUID(c, "userId", "user")
	if !ok {
		return
	}

	var req dto.UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	auth, ok := ExtractAuthData(c)
	if !ok {
		return
	}

	user, err := h.userService.UpdateRole(c.Request.Context(), auth.UserID, targetID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, user)
}
