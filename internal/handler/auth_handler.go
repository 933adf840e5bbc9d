package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"task-tracker-api/internal/dto"
	"task-tracker-api/internal/response"
	"task-tracker-api/internal/service"
)

type AuthHandler struct {
	authService service.AuthService
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register godoc
// @Summary      회원 가입
// @Description  계정을 만들고 토큰을 발급합니다. role을 생략하면 EMPLOYEE입니다
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body dto.RegisterRequest true "가입 요청"
// @Success      201 {object} response.SuccessResponse{data=dto.AuthResponse} "가입 성공"
// @Failure      400 {object} response.ErrorResponse "잘못된 요청 또는 이미 사용 중인 이메일"
// @Failure      500 {object} response.ErrorResponse "서버 에러"
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	resp, err := h.authService.Register(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusCreated, resp)
}

// Login godoc
// @Summary      로그인
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body dto.LoginRequest true "로그인 요청"
// @Success      200 {object} response.SuccessResponse{data=dto.AuthResponse} "로그인 성공"
// @Failure      400 {object} response.ErrorResponse "잘못된 자격 증명"
// @Failure      500 {object} response.ErrorResponse "서버 에러"
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	resp, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, resp)
}

// Logout godoc
// @Summary      로그아웃
// @Description  Redis가 설정된 경우 토큰을 만료 시각까지 폐기합니다
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.SuccessResponse{data=dto.MessageResponse} "로그아웃 성공"
// @Failure      401 {object} response.ErrorResponse "인증 실패"
// @Failure      500 {object} response.ErrorResponse "서버 에러"
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	auth, ok := ExtractAuthData(c)
	if !ok {
		return
	}

	if err := h.authService.Logout(c.Request.Context(), auth.Token); err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, dto.MessageResponse{Message: "Logged out"})
}
