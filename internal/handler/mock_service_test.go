package handler

import (
	"context"

	"github.com/google/uuid"

	"task-tracker-api/internal/dto"
)

// MockAuthService is a mock implementation of AuthService
type MockAuthService struct {
	RegisterFunc func(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error)
	LoginFunc    func(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
	LogoutFunc   func(ctx context.Context, token string) error
}

func (m *MockAuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, req)
	}
	return &dto.AuthResponse{}, nil
}

func (m *MockAuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, req)
	}
	return &dto.AuthResponse{}, nil
}

func (m *MockAuthService) Logout(ctx context.Context, token string) error {
	if m.LogoutFunc != nil {
		return m.LogoutFunc(ctx, token)
	}
	return nil
}

// MockUserService is a mock implementation of UserService
type MockUserService struct {
	ListUsersFunc  func(ctx context.Context, viewerID uuid.UUID) ([]dto.UserResponse, error)
	GetProfileFunc func(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error)
	UpdateRoleFunc func(ctx context.Context, actorID, targetID uuid.UUID, req *dto.UpdateRoleRequest) (*dto.UserResponse, error)
}

func (m *MockUserService) ListUsers(ctx context.Context, viewerID uuid.UUID) ([]dto.UserResponse, error) {
	if m.ListUsersFunc != nil {
		return m.ListUsersFunc(ctx, viewerID)
	}
	return []dto.UserResponse{}, nil
}

func (m *MockUserService) GetProfile(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error) {
	if m.GetProfileFunc != nil {
		return m.GetProfileFunc(ctx, userID)
	}
	return &dto.UserResponse{ID: userID}, nil
}

func (m *MockUserService) UpdateRole(ctx context.Context, actorID, targetID uuid.UUID, req *dto.UpdateRoleRequest) (*dto.UserResponse, error) {
	if m.UpdateRoleFunc != nil {
		return m.UpdateRoleFunc(ctx, actorID, targetID, req)
	}
	return &dto.UserResponse{ID: targetID, Role: req.Role}, nil
}

// MockTeamService is a mock implementation of TeamService
type MockTeamService struct {
	CreateTeamFunc func(ctx context.Context, req *dto.CreateTeamRequest) (*dto.TeamResponse, error)
	GetTeamsFunc   func(ctx context.Context) ([]dto.TeamResponse, error)
	AddMemberFunc  func(ctx context.Context, teamID uuid.UUID, req *dto.AddTeamMemberRequest) (*dto.UserResponse, error)
}

func (m *MockTeamService) CreateTeam(ctx context.Context, req *dto.CreateTeamRequest) (*dto.TeamResponse, error) {
	if m.CreateTeamFunc != nil {
		return m.CreateTeamFunc(ctx, req)
	}
	return &dto.TeamResponse{Name: req.Name}, nil
}

func (m *MockTeamService) GetTeams(ctx context.Context) ([]dto.TeamResponse, error) {
	if m.GetTeamsFunc != nil {
		return m.GetTeamsFunc(ctx)
	}
	return []dto.TeamResponse{}, nil
}

func (m *MockTeamService) AddMember(ctx context.Context, teamID uuid.UUID, req *dto.AddTeamMemberRequest) (*dto.UserResponse, error) {
	if m.AddMemberFunc != nil {
		return m.AddMemberFunc(ctx, teamID, req)
	}
	return &dto.UserResponse{ID: req.UserID, TeamID: &teamID}, nil
}

// MockSupervisorGroupService is a mock implementation of SupervisorGroupService
type MockSupervisorGroupService struct {
	CreateGroupFunc func(ctx context.Context, actorID uuid.UUID, req *dto.CreateSupervisorGroupRequest) (*dto.SupervisorGroupResponse, error)
	GetMyGroupsFunc func(ctx context.Context, actorID uuid.UUID) ([]dto.SupervisorGroupResponse, error)
	UpdateGroupFunc func(ctx context.Context, actorID, groupID uuid.UUID, req *dto.UpdateSupervisorGroupRequest) (*dto.SupervisorGroupResponse, error)
	DeleteGroupFunc func(ctx context.Context, actorID, groupID uuid.UUID) error
}

func (m *MockSupervisorGroupService) CreateGroup(ctx context.Context, actorID uuid.UUID, req *dto.CreateSupervisorGroupRequest) (*dto.SupervisorGroupResponse, error) {
	if m.CreateGroupFunc != nil {
		return m.CreateGroupFunc(ctx, actorID, req)
	}
	return &dto.SupervisorGroupResponse{Name: req.Name, SupervisorID: actorID}, nil
}

func (m *MockSupervisorGroupService) GetMyGroups(ctx context.Context, actorID uuid.UUID) ([]dto.SupervisorGroupResponse, error) {
	if m.GetMyGroupsFunc != nil {
		return m.GetMyGroupsFunc(ctx, actorID)
	}
	return []dto.SupervisorGroupResponse{}, nil
}

func (m *MockSupervisorGroupService) UpdateGroup(ctx context.Context, actorID, groupID uuid.UUID, req *dto.UpdateSupervisorGroupRequest) (*dto.SupervisorGroupResponse, error) {
	if m.UpdateGroupFunc != nil {
		return m.UpdateGroupFunc(ctx, actorID, groupID, req)
	}
	return &dto.SupervisorGroupResponse{ID: groupID}, nil
}

func (m *MockSupervisorGroupService) DeleteGroup(ctx context.Context, actorID, groupID uuid.UUID) error {
	if m.DeleteGroupFunc != nil {
		return m.DeleteGroupFunc(ctx, actorID, groupID)
	}
	return nil
}

// MockProjectService is a mock implementation of ProjectService
type MockProjectService struct {
	GetProjectsFunc   func(ctx context.Context, userID uuid.UUID) ([]dto.ProjectResponse, error)
	CreateProjectFunc func(ctx context.Context, userID uuid.UUID, req *dto.CreateProjectRequest) (*dto.ProjectResponse, error)
	UpdateProjectFunc func(ctx context.Context, userID, projectID uuid.UUID, req *dto.UpdateProjectRequest) (*dto.ProjectResponse, error)
	DeleteProjectFunc func(ctx context.Context, userID, projectID uuid.UUID) error
}

func (m *MockProjectService) GetProjects(ctx context.Context, userID uuid.UUID) ([]dto.ProjectResponse, error) {
	if m.GetProjectsFunc != nil {
		return m.GetProjectsFunc(ctx, userID)
	}
	return []dto.ProjectResponse{}, nil
}

func (m *MockProjectService) CreateProject(ctx context.Context, userID uuid.UUID, req *dto.CreateProjectRequest) (*dto.ProjectResponse, error) {
	if m.CreateProjectFunc != nil {
		return m.CreateProjectFunc(ctx, userID, req)
	}
	return &dto.ProjectResponse{Name: req.Name, CreatorID: userID}, nil
}

func (m *MockProjectService) UpdateProject(ctx context.Context, userID, projectID uuid.UUID, req *dto.UpdateProjectRequest) (*dto.ProjectResponse, error) {
	if m.UpdateProjectFunc != nil {
		return m.UpdateProjectFunc(ctx, userID, projectID, req)
	}
	return &dto.ProjectResponse{ID: projectID}, nil
}

func (m *MockProjectService) DeleteProject(ctx context.Context, userID, projectID uuid.UUID) error {
	if m.DeleteProjectFunc != nil {
		return m.DeleteProjectFunc(ctx, userID, projectID)
	}
	return nil
}

// MockTaskService is a mock implementation of TaskService
type MockTaskService struct {
	CreateTaskFunc   func(ctx context.Context, userID uuid.UUID, req *dto.CreateTaskRequest) (*dto.TaskResponse, error)
	GetTasksFunc     func(ctx context.Context, userID uuid.UUID, query *dto.TaskFilterQuery) ([]dto.TaskResponse, error)
	GetTaskFunc      func(ctx context.Context, taskID uuid.UUID) (*dto.TaskDetailResponse, error)
	GetHistoryFunc   func(ctx context.Context, taskID uuid.UUID) ([]dto.HistoryResponse, error)
	UpdateTaskFunc   func(ctx context.Context, userID, taskID uuid.UUID, req *dto.UpdateTaskRequest) (*dto.TaskResponse, error)
	ChangeStatusFunc func(ctx context.Context, userID, taskID uuid.UUID, req *dto.UpdateTaskStatusRequest) (*dto.TaskResponse, error)
	MoveTaskFunc     func(ctx context.Context, userID, taskID uuid.UUID, req *dto.MoveTaskRequest) (*dto.TaskResponse, error)
	DeleteTaskFunc   func(ctx context.Context, userID, taskID uuid.UUID) error
}

func (m *MockTaskService) CreateTask(ctx context.Context, userID uuid.UUID, req *dto.CreateTaskRequest) (*dto.TaskResponse, error) {
	if m.CreateTaskFunc != nil {
		return m.CreateTaskFunc(ctx, userID, req)
	}
	return &dto.TaskResponse{Title: req.Title, CreatorID: userID}, nil
}

func (m *MockTaskService) GetTasks(ctx context.Context, userID uuid.UUID, query *dto.TaskFilterQuery) ([]dto.TaskResponse, error) {
	if m.GetTasksFunc != nil {
		return m.GetTasksFunc(ctx, userID, query)
	}
	return []dto.TaskResponse{}, nil
}

func (m *MockTaskService) GetTask(ctx context.Context, taskID uuid.UUID) (*dto.TaskDetailResponse, error) {
	if m.GetTaskFunc != nil {
		return m.GetTaskFunc(ctx, taskID)
	}
	return &dto.TaskDetailResponse{TaskResponse: dto.TaskResponse{ID: taskID}}, nil
}

func (m *MockTaskService) GetHistory(ctx context.Context, taskID uuid.UUID) ([]dto.HistoryResponse, error) {
	if m.GetHistoryFunc != nil {
		return m.GetHistoryFunc(ctx, taskID)
	}
	return []dto.HistoryResponse{}, nil
}

func (m *MockTaskService) UpdateTask(ctx context.Context, userID, taskID uuid.UUID, req *dto.UpdateTaskRequest) (*dto.TaskResponse, error) {
	if m.UpdateTaskFunc != nil {
		return m.UpdateTaskFunc(ctx, userID, taskID, req)
	}
	return &dto.TaskResponse{ID: taskID}, nil
}

func (m *MockTaskService) ChangeStatus(ctx context.Context, userID, taskID uuid.UUID, req *dto.UpdateTaskStatusRequest) (*dto.TaskResponse, error) {
	if m.ChangeStatusFunc != nil {
		return m.ChangeStatusFunc(ctx, userID, taskID, req)
	}
	return &dto.TaskResponse{ID: taskID, Status: req.Status}, nil
}

func (m *MockTaskService) MoveTask(ctx context.Context, userID, taskID uuid.UUID, req *dto.MoveTaskRequest) (*dto.TaskResponse, error) {
	if m.MoveTaskFunc != nil {
		return m.MoveTaskFunc(ctx, userID, taskID, req)
	}
	return &dto.TaskResponse{ID: taskID, ProjectID: req.ProjectID}, nil
}

func (m *MockTaskService) DeleteTask(ctx context.Context, userID, taskID uuid.UUID) error {
	if m.DeleteTaskFunc != nil {
		return m.DeleteTaskFunc(ctx, userID, taskID)
	}
	return nil
}

// MockTopicService is a mock implementation of TopicService
type MockTopicService struct {
	AddTopicFunc    func(ctx context.Context, userID, taskID uuid.UUID, req *dto.CreateTopicRequest) (*dto.TopicResponse, error)
	ToggleTopicFunc func(ctx context.Context, userID, taskID, topicID uuid.UUID) (*dto.ToggleTopicResponse, error)
}

func (m *MockTopicService) AddTopic(ctx context.Context, userID, taskID uuid.UUID, req *dto.CreateTopicRequest) (*dto.TopicResponse, error) {
	if m.AddTopicFunc != nil {
		return m.AddTopicFunc(ctx, userID, taskID, req)
	}
	return &dto.TopicResponse{TaskID: taskID, Title: req.Title, Status: "PENDING"}, nil
}

func (m *MockTopicService) ToggleTopic(ctx context.Context, userID, taskID, topicID uuid.UUID) (*dto.ToggleTopicResponse, error) {
	if m.ToggleTopicFunc != nil {
		return m.ToggleTopicFunc(ctx, userID, taskID, topicID)
	}
	return &dto.ToggleTopicResponse{Topic: dto.TopicResponse{ID: topicID, TaskID: taskID}}, nil
}

// MockCommentService is a mock implementation of CommentService
type MockCommentService struct {
	CreateCommentFunc func(ctx context.Context, userID uuid.UUID, req *dto.CreateCommentRequest) (*dto.CommentResponse, error)
	GetCommentsFunc   func(ctx context.Context, taskID uuid.UUID) ([]dto.CommentResponse, error)
}

func (m *MockCommentService) CreateComment(ctx context.Context, userID uuid.UUID, req *dto.CreateCommentRequest) (*dto.CommentResponse, error) {
	if m.CreateCommentFunc != nil {
		return m.CreateCommentFunc(ctx, userID, req)
	}
	return &dto.CommentResponse{TaskID: req.TaskID, UserID: userID, Content: req.Content}, nil
}

func (m *MockCommentService) GetComments(ctx context.Context, taskID uuid.UUID) ([]dto.CommentResponse, error) {
	if m.GetCommentsFunc != nil {
		return m.GetCommentsFunc(ctx, taskID)
	}
	return []dto.CommentResponse{}, nil
}

// MockNotificationService is a mock implementation of NotificationService
type MockNotificationService struct {
	GetNotificationsFunc func(ctx context.Context, userID uuid.UUID) ([]dto.NotificationResponse, error)
	MarkReadFunc         func(ctx context.Context, userID, notificationID uuid.UUID) error
}

func (m *MockNotificationService) GetNotifications(ctx context.Context, userID uuid.UUID) ([]dto.NotificationResponse, error) {
	if m.GetNotificationsFunc != nil {
		return m.GetNotificationsFunc(ctx, userID)
	}
	return []dto.NotificationResponse{}, nil
}

func (m *MockNotificationService) MarkRead(ctx context.Context, userID, notificationID uuid.UUID) error {
	if m.MarkReadFunc != nil {
		return m.MarkReadFunc(ctx, userID, notificationID)
	}
	return nil
}
