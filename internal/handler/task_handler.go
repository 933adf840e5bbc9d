package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"task-tracker-api/internal/dto"
	"task-tracker-api/internal/response"
	"task-tracker-api/internal/service"
)

type TaskHandler struct {
	taskService  service.TaskService
	topicService service.TopicService
}

func NewTaskHandler(taskService service.TaskService, topicService service.TopicService) *TaskHandler {
	return &TaskHandler{
		taskService:  taskService,
		topicService: topicService,
	}
}

// GetTasks godoc
// @Summary      작업 목록 조회
// @Description  호출자의 역할에 따라 보이는 작업만 최신순으로 반환합니다. status=OVERDUE는 기한이 지난 미완료 작업입니다
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        status query string false "상태" Enums(OPEN, IN_PROGRESS, WAITING_APPROVAL, COMPLETED, OVERDUE)
// @Param        priority query string false "우선순위" Enums(LOW, MEDIUM, HIGH)
// @Param        assigneeId query string false "담당자 ID (UUID)"
// @Param        projectId query string false "Project ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=[]dto.TaskResponse} "조회 성공"
// @Failure      400 {object} response.ErrorResponse "잘못된 필터"
// @Failure      401 {object} response.ErrorResponse "인증 실패"
// @Router       /tasks [get]
func (h *TaskHandler) GetTasks(c *gin.Context) {
	var query dto.TaskFilterQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid query parameters: "+err.Error())
		return
	}

	auth, ok := ExtractAuthData(c)
	if !ok {
		return
	}

	tasks, err := h.taskService.GetTasks(c.Request.Context(), auth.UserID, &query)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, tasks)
}

// CreateTask godoc
// @Summary      작업 생성
// @Description  topics는 문자열 또는 {title} 객체 배열을 받습니다
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CreateTaskRequest true "작업 생성 요청"
// @Success      201 {object} response.SuccessResponse{data=dto.TaskResponse} "생성 성공"
// @Failure      400 {object} response.ErrorResponse "잘못된 요청 또는 알 수 없는 담당자"
// @Router       /tasks [post]
func (h *TaskHandler) CreateTask(c *gin.Context) {
	var req dto.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	auth, ok := ExtractAuthData(c)
	if !ok {
		return
	}

	task, err := h.taskService.CreateTask(c.Request.Context(), auth.UserID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusCreated, task)
}

// GetTask godoc
// @Summary      작업 상세 조회
// @Description  담당자, 체크리스트, 댓글, 이력을 함께 반환합니다
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Task ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=dto.TaskDetailResponse} "조회 성공"
// @Failure      404 {object} response.ErrorResponse "작업을 찾을 수 없음"
// @Router       /tasks/{id} [get]
func (h *TaskHandler) GetTask(c *gin.Context) {
	taskID, ok := pathUUID(c, "id", "task")
	if !ok {
		return
	}

	task, err := h.taskService.GetTask(c.Request.Context(), taskID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, task)
}

// GetHistory godoc
// @Summary      작업 이력 조회
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Task ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=[]dto.HistoryResponse} "조회 성공"
// @Failure      404 {object} response.ErrorResponse "작업을 찾을 수 없음"
// @Router       /tasks/{id}/history [get]
func (h *TaskHandler) GetHistory(c *gin.Context) {
	taskID, ok := pathUUID(c, "id", "task")
	if !ok {
		return
	}

	history, err := h.taskService.GetHistory(c.Request.Context(), taskID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, history)
}

// UpdateTask godoc
// @Summary      작업 수정
// @Description  status 값은 상태 전이 규칙을 따릅니다. 변경된 필드는 UPDATED 이력으로 남습니다
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Task ID (UUID)"
// @Param        request body dto.UpdateTaskRequest true "작업 수정 요청"
// @Success      200 {object} response.SuccessResponse{data=dto.TaskResponse} "수정 성공"
// @Failure      400 {object} response.ErrorResponse "잘못된 요청 또는 허용되지 않는 전이"
// @Failure      403 {object} response.ErrorResponse "권한 없음"
// @Failure      404 {object} response.ErrorResponse "작업을 찾을 수 없음"
// @Router       /tasks/{id} [put]
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	taskID, ok := pathUUID(c, "id", "task")
	if !ok {
		return
	}

	var req dto.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	auth, ok := ExtractAuthData(c)
	if !ok {
		return
	}

	task, err := h.taskService.UpdateTask(c.Request.Context(), auth.UserID, taskID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, task)
}

// ChangeStatus godoc
// @Summary      작업 상태 변경
// @Description  START, SUBMIT은 담당자 또는 생성자, APPROVE, REJECT, REOPEN은 생성자 또는 ADMIN이 할 수 있습니다
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Task ID (UUID)"
// @Param        request body dto.UpdateTaskStatusRequest true "상태 변경 요청"
// @Success      200 {object} response.SuccessResponse{data=dto.TaskResponse} "변경 성공"
// @Failure      400 {object} response.ErrorResponse "허용되지 않는 전이"
// @Failure      403 {object} response.ErrorResponse "권한 없음"
// @Failure      404 {object} response.ErrorResponse "작업을 찾을 수 없음"
// @Router       /tasks/{id}/status [patch]
func (h *TaskHandler) ChangeStatus(c *gin.Context) {
	taskID, ok := pathUUID(c, "id", "task")
	if !ok {
		return
	}

	var req dto.UpdateTaskStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	auth, ok := ExtractAuthData(c)
	if !ok {
		return
	}

	task, err := h.taskService.ChangeStatus(c.Request.Context(), auth.UserID, taskID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, task)
}

// MoveTask godoc
// @Summary      작업 이동
// @Description  작업을 Project 컬럼의 지정 위치로 옮기고 뒤의 작업을 한 칸씩 밀어냅니다
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Task ID (UUID)"
// @Param        request body dto.MoveTaskRequest true "이동 요청"
// @Success      200 {object} response.SuccessResponse{data=dto.TaskResponse} "이동 성공"
// @Failure      400 {object} response.ErrorResponse "잘못된 요청"
// @Failure      403 {object} response.ErrorResponse "권한 없음"
// @Failure      404 {object} response.ErrorResponse "작업 또는 Project를 찾을 수 없음"
// @Router       /tasks/{id}/move [patch]
func (h *TaskHandler) MoveTask(c *gin.Context) {
	taskID, ok := pathUUID(c, "id", "task")
	if !ok {
		return
	}

	var req dto.MoveTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	auth, ok := ExtractAuthData(c)
	if !ok {
		return
	}

	task, err := h.taskService.MoveTask(c.Request.Context(), auth.UserID, taskID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, task)
}

// DeleteTask godoc
// @Summary      작업 삭제
// @Description  생성자 또는 ADMIN만 가능합니다
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Task ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=dto.MessageResponse} "삭제 성공"
// @Failure      403 {object} response.ErrorResponse "권한 없음"
// @Failure      404 {object} response.ErrorResponse "작업을 찾을 수 없음"
// @Router       /tasks/{id} [delete]
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	taskID, ok := pathUUID(c, "id", "task")
	if !ok {
		return
	}

	auth, ok := ExtractAuthData(c)
	if !ok {
		return
	}

	if err := h.taskService.DeleteTask(c.Request.Context(), auth.UserID, taskID); err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, dto.MessageResponse{Message: "Task deleted"})
}

// AddTopic godoc
// @Summary      체크리스트 항목 추가
// @Description  PENDING 상태로 마지막에 추가되며 상태 자동 전이는 일어나지 않습니다
// @Tags         topics
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Task ID (UUID)"
// @Param        request body dto.CreateTopicRequest true "항목 추가 요청"
// @Success      201 {object} response.SuccessResponse{data=dto.TopicResponse} "추가 성공"
// @Failure      400 {object} response.ErrorResponse "잘못된 요청"
// @Failure      403 {object} response.ErrorResponse "권한 없음"
// @Failure      404 {object} response.ErrorResponse "작업을 찾을 수 없음"
// @Router       /tasks/{id}/topics [post]
func (h *TaskHandler) AddTopic(c *gin.Context) {
	taskID, ok := pathUUID(c, "id", "task")
	if !ok {
		return
	}

	var req dto.CreateTopicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	auth, ok := ExtractAuthData(c)
	if !ok {
		return
	}

	topic, err := h.topicService.AddTopic(c.Request.Context(), auth.UserID, taskID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusCreated, topic)
}

// ToggleTopic godoc
// @Summary      체크리스트 항목 토글
// @Description  DONE과 PENDING을 전환하고 진행률에 따른 상태 자동 전이를 함께 적용합니다. newTaskStatus는 전이가 없으면 null입니다
// @Tags         topics
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Task ID (UUID)"
// @Param        topicId path string true "Topic ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=dto.ToggleTopicResponse} "토글 성공"
// @Failure      404 {object} response.ErrorResponse "작업 또는 항목을 찾을 수 없음"
// @Router       /tasks/{id}/topics/{topicId}/toggle [patch]
func (h *TaskHandler) ToggleTopic(c *gin.Context) {
	taskID, ok := pathUUID(c, "id", "task")
	if !ok {
		return
	}
	topicID, ok := pathUUID(c, "topicId", "topic")
	if !ok {
		return
	}

	auth, ok := ExtractAuthData(c)
	if !ok {
		return
	}

	result, err := h.topicService.ToggleTopic(c.Request.Context(), auth.UserID, taskID, topicID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, result)
}
