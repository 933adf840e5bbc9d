package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"task-tracker-api/internal/dto"
	"task-tracker-api/internal/response"
)

func newTaskRouter(userID uuid.UUID, tasks *MockTaskService, topics *MockTopicService) http.Handler {
	h := NewTaskHandler(tasks, topics)
	r := newTestRouter(&userID)
	r.GET("/tasks", h.GetTasks)
	r.POST("/tasks", h.CreateTask)
	r.GET("/tasks/:id", h.GetTask)
	r.GET("/tasks/:id/history", h.GetHistory)
	r.PUT("/tasks/:id", h.UpdateTask)
	r.PATCH("/tasks/:id/status", h.ChangeStatus)
	r.PATCH("/tasks/:id/move", h.MoveTask)
	r.DELETE("/tasks/:id", h.DeleteTask)
	r.POST("/tasks/:id/topics", h.AddTopic)
	r.PATCH("/tasks/:id/topics/:topicId/toggle", h.ToggleTopic)
	return r
}

func TestTaskHandler_GetTasks(t *testing.T) {
	userID := uuid.New()
	assignee := uuid.New()

	tests := []struct {
		name           string
		query          string
		mockService    func(*MockTaskService)
		expectedStatus int
	}{
		{
			name:  "성공: 필터 전달",
			query: "?status=OVERDUE&priority=HIGH&assigneeId=" + assignee.String(),
			mockService: func(m *MockTaskService) {
				m.GetTasksFunc = func(ctx context.Context, uid uuid.UUID, q *dto.TaskFilterQuery) ([]dto.TaskResponse, error) {
					assert.Equal(t, userID, uid)
					assert.Equal(t, "OVERDUE", q.Status)
					assert.Equal(t, "HIGH", q.Priority)
					assert.Equal(t, assignee.String(), q.AssigneeID)
					return []dto.TaskResponse{{Title: "late", DisplayStatus: "OVERDUE", IsOverdue: true}}, nil
				}
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "실패: 알 수 없는 상태",
			query:          "?status=DONE",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "실패: 잘못된 assigneeId",
			query:          "?assigneeId=abc",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "실패: 서비스 내부 오류",
			mockService: func(m *MockTaskService) {
				m.GetTasksFunc = func(ctx context.Context, uid uuid.UUID, q *dto.TaskFilterQuery) ([]dto.TaskResponse, error) {
					return nil, response.NewAppError(response.ErrCodeInternal, "Failed to list tasks", "db down")
				}
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &MockTaskService{}
			if tt.mockService != nil {
				tt.mockService(svc)
			}
			w := performRequest(newTaskRouter(userID, svc, &MockTopicService{}), http.MethodGet, "/tasks"+tt.query, nil)
			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestTaskHandler_CreateTask(t *testing.T) {
	userID := uuid.New()

	t.Run("성공: 문자열과 객체 토픽 혼합", func(t *testing.T) {
		var got *dto.CreateTaskRequest
		svc := &MockTaskService{
			CreateTaskFunc: func(ctx context.Context, uid uuid.UUID, req *dto.CreateTaskRequest) (*dto.TaskResponse, error) {
				got = req
				return &dto.TaskResponse{ID: uuid.New(), Title: req.Title, Status: "OPEN"}, nil
			},
		}
		body := `{"title":"Ship","priority":"HIGH","topics":["write", {"title":"review"}]}`
		w := performRequest(newTaskRouter(userID, svc, &MockTopicService{}), http.MethodPost, "/tasks", body)

		assert.Equal(t, http.StatusCreated, w.Code)
		require.NotNil(t, got)
		require.Len(t, got.Topics, 2)
		assert.Equal(t, "write", got.Topics[0].Title)
		assert.Equal(t, "review", got.Topics[1].Title)
	})

	t.Run("실패: 제목 누락", func(t *testing.T) {
		w := performRequest(newTaskRouter(userID, &MockTaskService{}, &MockTopicService{}), http.MethodPost, "/tasks", `{"priority":"LOW"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("실패: 잘못된 우선순위", func(t *testing.T) {
		w := performRequest(newTaskRouter(userID, &MockTaskService{}, &MockTopicService{}), http.MethodPost, "/tasks", `{"title":"x","priority":"URGENT"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("실패: 알 수 없는 담당자", func(t *testing.T) {
		svc := &MockTaskService{
			CreateTaskFunc: func(ctx context.Context, uid uuid.UUID, req *dto.CreateTaskRequest) (*dto.TaskResponse, error) {
				return nil, response.NewAppError(response.ErrCodeValidation, "Unknown assignee ids", "")
			},
		}
		w := performRequest(newTaskRouter(userID, svc, &MockTopicService{}), http.MethodPost, "/tasks",
			`{"title":"x","assigneeIds":["`+uuid.New().String()+`"]}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Unknown assignee ids", decodeError(t, w).Message)
	})
}

func TestTaskHandler_ChangeStatus(t *testing.T) {
	userID := uuid.New()
	taskID := uuid.New()

	tests := []struct {
		name           string
		path           string
		body           interface{}
		err            error
		expectedStatus int
		expectedCode   string
	}{
		{
			name:           "성공",
			path:           "/tasks/" + taskID.String() + "/status",
			body:           dto.UpdateTaskStatusRequest{Status: "IN_PROGRESS"},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "실패: 허용되지 않는 전이",
			path:           "/tasks/" + taskID.String() + "/status",
			body:           dto.UpdateTaskStatusRequest{Status: "COMPLETED"},
			err:            response.NewAppError(response.ErrCodeInvalidTransition, "Cannot change status from OPEN to COMPLETED", ""),
			expectedStatus: http.StatusBadRequest,
			expectedCode:   response.ErrCodeInvalidTransition,
		},
		{
			name:           "실패: 권한 없음",
			path:           "/tasks/" + taskID.String() + "/status",
			body:           dto.UpdateTaskStatusRequest{Status: "COMPLETED"},
			err:            response.NewAppError(response.ErrCodeForbidden, "You are not allowed to approve this task", ""),
			expectedStatus: http.StatusForbidden,
			expectedCode:   response.ErrCodeForbidden,
		},
		{
			name:           "실패: OVERDUE는 설정 불가",
			path:           "/tasks/" + taskID.String() + "/status",
			body:           map[string]string{"status": "OVERDUE"},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   response.ErrCodeValidation,
		},
		{
			name:           "실패: 잘못된 작업 ID",
			path:           "/tasks/not-a-uuid/status",
			body:           dto.UpdateTaskStatusRequest{Status: "IN_PROGRESS"},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   response.ErrCodeValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &MockTaskService{
				ChangeStatusFunc: func(ctx context.Context, uid, tid uuid.UUID, req *dto.UpdateTaskStatusRequest) (*dto.TaskResponse, error) {
					if tt.err != nil {
						return nil, tt.err
					}
					assert.Equal(t, userID, uid)
					assert.Equal(t, taskID, tid)
					return &dto.TaskResponse{ID: tid, Status: req.Status}, nil
				},
			}
			w := performRequest(newTaskRouter(userID, svc, &MockTopicService{}), http.MethodPatch, tt.path, tt.body)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedCode != "" {
				assert.Equal(t, tt.expectedCode, decodeError(t, w).Error.Code)
			}
		})
	}
}

func TestTaskHandler_ToggleTopic(t *testing.T) {
	userID := uuid.New()
	taskID := uuid.New()
	topicID := uuid.New()

	t.Run("성공: 자동 전이 포함", func(t *testing.T) {
		topics := &MockTopicService{
			ToggleTopicFunc: func(ctx context.Context, uid, tid, tpid uuid.UUID) (*dto.ToggleTopicResponse, error) {
				assert.Equal(t, taskID, tid)
				assert.Equal(t, topicID, tpid)
				status := "WAITING_APPROVAL"
				return &dto.ToggleTopicResponse{
					Topic:         dto.TopicResponse{ID: tpid, TaskID: tid, Status: "DONE"},
					TaskProgress:  100,
					NewTaskStatus: &status,
				}, nil
			},
		}
		path := "/tasks/" + taskID.String() + "/topics/" + topicID.String() + "/toggle"
		w := performRequest(newTaskRouter(userID, &MockTaskService{}, topics), http.MethodPatch, path, nil)

		require.Equal(t, http.StatusOK, w.Code)
		var out dto.ToggleTopicResponse
		decodeData(t, w, &out)
		assert.Equal(t, 100, out.TaskProgress)
		require.NotNil(t, out.NewTaskStatus)
		assert.Equal(t, "WAITING_APPROVAL", *out.NewTaskStatus)
	})

	t.Run("성공: 전이 없으면 null", func(t *testing.T) {
		path := "/tasks/" + taskID.String() + "/topics/" + topicID.String() + "/toggle"
		w := performRequest(newTaskRouter(userID, &MockTaskService{}, &MockTopicService{}), http.MethodPatch, path, nil)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"newTaskStatus":null`)
	})

	t.Run("실패: 다른 작업의 항목", func(t *testing.T) {
		topics := &MockTopicService{
			ToggleTopicFunc: func(ctx context.Context, uid, tid, tpid uuid.UUID) (*dto.ToggleTopicResponse, error) {
				return nil, response.NewAppError(response.ErrCodeNotFound, "Topic not found", "")
			},
		}
		path := "/tasks/" + taskID.String() + "/topics/" + topicID.String() + "/toggle"
		w := performRequest(newTaskRouter(userID, &MockTaskService{}, topics), http.MethodPatch, path, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("실패: 잘못된 항목 ID", func(t *testing.T) {
		path := "/tasks/" + taskID.String() + "/topics/xyz/toggle"
		w := performRequest(newTaskRouter(userID, &MockTaskService{}, &MockTopicService{}), http.MethodPatch, path, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestTaskHandler_MoveTask(t *testing.T) {
	userID := uuid.New()
	taskID := uuid.New()
	projectID := uuid.New()

	t.Run("성공: null projectId는 Project 밖으로 이동", func(t *testing.T) {
		var got *dto.MoveTaskRequest
		svc := &MockTaskService{
			MoveTaskFunc: func(ctx context.Context, uid, tid uuid.UUID, req *dto.MoveTaskRequest) (*dto.TaskResponse, error) {
				got = req
				return &dto.TaskResponse{ID: tid}, nil
			},
		}
		w := performRequest(newTaskRouter(userID, svc, &MockTopicService{}), http.MethodPatch,
			"/tasks/"+taskID.String()+"/move", `{"projectId":null,"position":0}`)

		assert.Equal(t, http.StatusOK, w.Code)
		require.NotNil(t, got)
		assert.Nil(t, got.ProjectID)
		require.NotNil(t, got.Position)
		assert.Equal(t, 0, *got.Position)
	})

	t.Run("실패: 위치 누락", func(t *testing.T) {
		w := performRequest(newTaskRouter(userID, &MockTaskService{}, &MockTopicService{}), http.MethodPatch,
			"/tasks/"+taskID.String()+"/move", `{"projectId":"`+projectID.String()+`"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("실패: 음수 위치", func(t *testing.T) {
		w := performRequest(newTaskRouter(userID, &MockTaskService{}, &MockTopicService{}), http.MethodPatch,
			"/tasks/"+taskID.String()+"/move", `{"position":-1}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestTaskHandler_CRUD(t *testing.T) {
	userID := uuid.New()
	taskID := uuid.New()
	router := newTaskRouter(userID, &MockTaskService{}, &MockTopicService{})

	w := performRequest(router, http.MethodGet, "/tasks/"+taskID.String(), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = performRequest(router, http.MethodGet, "/tasks/"+taskID.String()+"/history", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = performRequest(router, http.MethodPut, "/tasks/"+taskID.String(), `{"title":"renamed","assigneeIds":[]}`)
	assert.Equal(t, http.StatusOK, w.Code)

	w = performRequest(router, http.MethodPut, "/tasks/"+taskID.String(), `{"status":"OVERDUE"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = performRequest(router, http.MethodDelete, "/tasks/"+taskID.String(), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = performRequest(router, http.MethodPost, "/tasks/"+taskID.String()+"/topics", `{"title":"new item"}`)
	assert.Equal(t, http.StatusCreated, w.Code)

	w = performRequest(router, http.MethodPost, "/tasks/"+taskID.String()+"/topics", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	notFound := newTaskRouter(userID, &MockTaskService{
		GetTaskFunc: func(ctx context.Context, id uuid.UUID) (*dto.TaskDetailResponse, error) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "Task not found", "")
		},
	}, &MockTopicService{})
	w = performRequest(notFound, http.MethodGet, "/tasks/"+taskID.String(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Task not found", decodeError(t, w).Message)
}
