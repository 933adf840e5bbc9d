package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"task-tracker-api/internal/domain"
	"task-tracker-api/internal/dto"
	"task-tracker-api/internal/metrics"
	"task-tracker-api/internal/repository"
	"task-tracker-api/internal/response"
	"task-tracker-api/internal/sanitize"
	"task-tracker-api/internal/workflow"
)

// TaskService defines the interface for task business logic
type TaskService interface {
	CreateTask(ctx context.Context, userID uuid.UUID, req *dto.CreateTaskRequest) (*dto.TaskResponse, error)
	GetTasks(ctx context.Context, userID uuid.UUID, query *dto.TaskFilterQuery) ([]dto.TaskResponse, error)
	GetTask(ctx context.Context, taskID uuid.UUID) (*dto.TaskDetailResponse, error)
	GetHistory(ctx context.Context, taskID uuid.UUID) ([]dto.HistoryResponse, error)
	UpdateTask(ctx context.Context, userID, taskID uuid.UUID, req *dto.UpdateTaskRequest) (*dto.TaskResponse, error)
	ChangeStatus(ctx context.Context, userID, taskID uuid.UUID, req *dto.UpdateTaskStatusRequest) (*dto.TaskResponse, error)
	MoveTask(ctx context.Context, userID, taskID uuid.UUID, req *dto.MoveTaskRequest) (*dto.TaskResponse, error)
	DeleteTask(ctx context.Context, userID, taskID uuid.UUID) error
}

type taskServiceImpl struct {
	taskRepo    repository.TaskRepository
	userRepo    repository.UserRepository
	projectRepo repository.ProjectRepository
	historyRepo repository.HistoryRepository
	transactor  repository.Transactor
	visibility  visibilityResolver
	history     historyRecorder
	notifier    notifier
	metrics     *metrics.Metrics
	logger      *zap.Logger
	now         func() time.Time
}

// TaskServiceDeps groups the collaborators of the task service
type TaskServiceDeps struct {
	TaskRepo         repository.TaskRepository
	UserRepo         repository.UserRepository
	ProjectRepo      repository.ProjectRepository
	GroupRepo        repository.SupervisorGroupRepository
	HistoryRepo      repository.HistoryRepository
	NotificationRepo repository.NotificationRepository
	Transactor       repository.Transactor
	UserScope        string
	Metrics          *metrics.Metrics
	Logger           *zap.Logger
}

// NewTaskService creates a new instance of TaskService
func NewTaskService(deps TaskServiceDeps) TaskService {
	return &taskServiceImpl{
		taskRepo:    deps.TaskRepo,
		userRepo:    deps.UserRepo,
		projectRepo: deps.ProjectRepo,
		historyRepo: deps.HistoryRepo,
		transactor:  deps.Transactor,
		visibility:  visibilityResolver{groupRepo: deps.GroupRepo, userScope: deps.UserScope},
		history:     historyRecorder{repo: deps.HistoryRepo},
		notifier:    notifier{repo: deps.NotificationRepo, metrics: deps.Metrics},
		metrics:     deps.Metrics,
		logger:      deps.Logger,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

func (s *taskServiceImpl) CreateTask(ctx context.Context, userID uuid.UUID, req *dto.CreateTaskRequest) (*dto.TaskResponse, error) {
	title := sanitize.Text(req.Title)
	if title == "" {
		return nil, response.NewAppError(response.ErrCodeValidation, "Title is required", "")
	}

	priority := domain.PriorityMedium
	if req.Priority != "" {
		p, err := domain.ParsePriority(req.Priority)
		if err != nil {
			return nil, response.NewAppError(response.ErrCodeValidation, "Invalid priority", err.Error())
		}
		priority = p
	}

	assigneeIDs := uniqueIDs(req.AssigneeIDs)
	if err := requireUsers(ctx, s.userRepo, assigneeIDs, "assignee ids"); err != nil {
		return nil, err
	}

	if req.ProjectID != nil {
		if _, err := s.projectRepo.FindByID(ctx, *req.ProjectID); err != nil {
			if isNotFound(err) {
				return nil, response.NewAppError(response.ErrCodeValidation, "Unknown project", "")
			}
			return nil, response.NewAppError(response.ErrCodeInternal, "Failed to load project", err.Error())
		}
	}

	task := &domain.Task{
		Title:       title,
		Description: sanitize.Text(req.Description),
		Priority:    priority,
		Status:      domain.TaskStatusOpen,
		DueDate:     utcPtr(req.DueDate),
		CreatorID:   userID,
		ProjectID:   req.ProjectID,
	}
	for _, id := range assigneeIDs {
		task.Assignees = append(task.Assignees, domain.TaskAssignee{UserID: id})
	}
	for i, t := range req.Topics {
		topicTitle := sanitize.Text(t.Title)
		if topicTitle == "" {
			return nil, response.NewAppError(response.ErrCodeValidation, "Topic title is required", fmt.Sprintf("topic %d", i))
		}
		task.Topics = append(task.Topics, domain.TaskTopic{
			Title:      topicTitle,
			Status:     domain.TopicStatusPending,
			OrderIndex: i,
		})
	}

	var notified int
	err := s.transactor.Transaction(ctx, func(ctx context.Context) error {
		if err := s.taskRepo.Create(ctx, task); err != nil {
			return err
		}
		if err := s.history.record(ctx, task.ID, userID, domain.HistoryActionCreated, "Task created", nil); err != nil {
			return err
		}
		n, err := s.notifier.notify(ctx, domain.NotificationTaskAssigned, &task.ID,
			fmt.Sprintf("You were assigned to task %q", task.Title), assigneeIDs, userID)
		notified = n
		return err
	})
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to create task", err.Error())
	}

	s.metrics.IncrementTaskCreated()
	s.notifier.sent(domain.NotificationTaskAssigned, notified)
	s.logger.Info("Task created",
		zap.String("task_id", task.ID.String()),
		zap.String("creator_id", userID.String()),
		zap.Strings("assignee_ids", idStrings(assigneeIDs)),
		zap.Int("topics", len(task.Topics)))

	return s.taskResponse(ctx, task.ID)
}

func (s *taskServiceImpl) GetTasks(ctx context.Context, userID uuid.UUID, query *dto.TaskFilterQuery) ([]dto.TaskResponse, error) {
	viewer, err := loadActor(ctx, s.userRepo, userID)
	if err != nil {
		return nil, err
	}
	pol, err := s.visibility.resolve(ctx, viewer)
	if err != nil {
		return nil, err
	}

	now := s.now()
	filter, err := buildTaskFilter(query, now)
	if err != nil {
		return nil, err
	}

	tasks, err := s.taskRepo.List(ctx, filter, pol.Tasks())
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to list tasks", err.Error())
	}

	ids := make([]uuid.UUID, len(tasks))
	for i, t := range tasks {
		ids[i] = t.ID
	}
	counts, err := s.taskRepo.CountComments(ctx, ids)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to count comments", err.Error())
	}

	out := make([]dto.TaskResponse, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, toTaskResponse(t, counts[t.ID], now))
	}
	return out, nil
}

// buildTaskFilter converts query parameters. status=OVERDUE selects the derived view.
func buildTaskFilter(query *dto.TaskFilterQuery, now time.Time) (repository.TaskFilter, error) {
	filter := repository.TaskFilter{Now: now}
	if query == nil {
		return filter, nil
	}

	switch {
	case query.Status == string(domain.DisplayStatusOverdue):
		filter.Overdue = true
	case query.Status != "":
		st, err := domain.ParseTaskStatus(query.Status)
		if err != nil {
			return filter, response.NewAppError(response.ErrCodeValidation, "Invalid status filter", err.Error())
		}
		filter.Status = &st
	}
	if query.Priority != "" {
		p, err := domain.ParsePriority(query.Priority)
		if err != nil {
			return filter, response.NewAppError(response.ErrCodeValidation, "Invalid priority filter", err.Error())
		}
		filter.Priority = &p
	}
	if query.AssigneeID != "" {
		id, err := uuid.Parse(query.AssigneeID)
		if err != nil {
			return filter, response.NewAppError(response.ErrCodeValidation, "Invalid assigneeId", err.Error())
		}
		filter.AssigneeID = &id
	}
	if query.ProjectID != "" {
		id, err := uuid.Parse(query.ProjectID)
		if err != nil {
			return filter, response.NewAppError(response.ErrCodeValidation, "Invalid projectId", err.Error())
		}
		filter.ProjectID = &id
	}
	return filter, nil
}

func (s *taskServiceImpl) GetTask(ctx context.Context, taskID uuid.UUID) (*dto.TaskDetailResponse, error) {
	task, err := s.taskRepo.FindDetail(ctx, taskID)
	if err != nil {
		return nil, notFoundOr(err, "Task not found", "Failed to load task")
	}
	resp := toTaskDetailResponse(task, s.now())
	return &resp, nil
}

func (s *taskServiceImpl) GetHistory(ctx context.Context, taskID uuid.UUID) ([]dto.HistoryResponse, error) {
	if _, err := s.taskRepo.FindByID(ctx, taskID); err != nil {
		return nil, notFoundOr(err, "Task not found", "Failed to load task")
	}
	entries, err := s.historyRepo.FindByTaskID(ctx, taskID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to load history", err.Error())
	}
	out := make([]dto.HistoryResponse, 0, len(entries))
	for _, h := range entries {
		out = append(out, toHistoryResponse(h))
	}
	return out, nil
}

// UpdateTask applies the given fields. A status value goes through the state
// machine with the caller as actor. One UPDATED entry lists what changed.
func (s *taskServiceImpl) UpdateTask(ctx context.Context, userID, taskID uuid.UUID, req *dto.UpdateTaskRequest) (*dto.TaskResponse, error) {
	actor, task, err := s.editableTask(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}

	changes := map[string]fieldChange{}

	if req.Title != nil {
		title := sanitize.Text(*req.Title)
		if title == "" {
			return nil, response.NewAppError(response.ErrCodeValidation, "Title is required", "")
		}
		if title != task.Title {
			changes["title"] = fieldChange{From: task.Title, To: title}
			task.Title = title
		}
	}
	if req.Description != nil {
		description := sanitize.Text(*req.Description)
		if description != task.Description {
			changes["description"] = fieldChange{From: task.Description, To: description}
			task.Description = description
		}
	}
	if req.Priority != nil {
		p, err := domain.ParsePriority(*req.Priority)
		if err != nil {
			return nil, response.NewAppError(response.ErrCodeValidation, "Invalid priority", err.Error())
		}
		if p != task.Priority {
			changes["priority"] = fieldChange{From: task.Priority, To: p}
			task.Priority = p
		}
	}
	if req.DueDate != nil {
		due := req.DueDate.UTC()
		if task.DueDate == nil || !task.DueDate.Equal(due) {
			changes["dueDate"] = fieldChange{From: task.DueDate, To: due}
			task.DueDate = &due
			task.OverdueNotifiedAt = nil
		}
	}

	var transition *statusChange
	if req.Status != nil {
		to, err := domain.ParseTaskStatus(*req.Status)
		if err != nil {
			return nil, response.NewAppError(response.ErrCodeValidation, "Invalid status", err.Error())
		}
		if to != task.Status {
			if _, err := authorizeTransition(task, actor, to); err != nil {
				return nil, err
			}
			transition = &statusChange{from: task.Status, to: to}
			changes["status"] = fieldChange{From: task.Status, To: to}
			task.Status = to
		}
	}

	var addedAssignees []uuid.UUID
	replaceAssignees := false
	if req.AssigneeIDs != nil {
		next := uniqueIDs(*req.AssigneeIDs)
		if err := requireUsers(ctx, s.userRepo, next, "assignee ids"); err != nil {
			return nil, err
		}
		current := task.AssigneeIDs()
		if !sameIDSet(current, next) {
			replaceAssignees = true
			addedAssignees = diffIDs(next, current)
			changes["assigneeIds"] = fieldChange{From: idStrings(current), To: idStrings(next)}
		}
	}

	if len(changes) == 0 {
		return s.taskResponse(ctx, task.ID)
	}

	var notified int
	err = s.transactor.Transaction(ctx, func(ctx context.Context) error {
		if err := s.taskRepo.Update(ctx, task); err != nil {
			return err
		}
		if replaceAssignees {
			if err := s.taskRepo.ReplaceAssignees(ctx, task.ID, uniqueIDs(*req.AssigneeIDs)); err != nil {
				return err
			}
		}
		details := "Updated fields: " + strings.Join(sortedKeys(changes), ", ")
		if err := s.history.record(ctx, task.ID, userID, domain.HistoryActionUpdated, details, changes); err != nil {
			return err
		}
		n, err := s.notifier.notify(ctx, domain.NotificationTaskAssigned, &task.ID,
			fmt.Sprintf("You were assigned to task %q", task.Title), addedAssignees, userID)
		notified = n
		return err
	})
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to update task", err.Error())
	}

	if transition != nil {
		s.metrics.RecordStatusTransition(string(transition.from), string(transition.to), metrics.TriggerManual)
	}
	s.notifier.sent(domain.NotificationTaskAssigned, notified)
	s.logger.Info("Task updated",
		zap.String("task_id", task.ID.String()),
		zap.String("user_id", userID.String()),
		zap.Strings("fields", sortedKeys(changes)))

	return s.taskResponse(ctx, task.ID)
}

func (s *taskServiceImpl) ChangeStatus(ctx context.Context, userID, taskID uuid.UUID, req *dto.UpdateTaskStatusRequest) (*dto.TaskResponse, error) {
	actor, err := loadActor(ctx, s.userRepo, userID)
	if err != nil {
		return nil, err
	}
	task, err := s.taskRepo.FindByID(ctx, taskID)
	if err != nil {
		return nil, notFoundOr(err, "Task not found", "Failed to load task")
	}

	to, err := domain.ParseTaskStatus(req.Status)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeValidation, "Invalid status", err.Error())
	}
	action, err := authorizeTransition(task, actor, to)
	if err != nil {
		return nil, err
	}

	from := task.Status
	err = s.transactor.Transaction(ctx, func(ctx context.Context) error {
		if err := s.taskRepo.UpdateStatus(ctx, task.ID, to); err != nil {
			return err
		}
		details := fmt.Sprintf("Status changed from %s to %s (%s)", from, to, action)
		return s.history.record(ctx, task.ID, userID, domain.HistoryActionStatusChanged, details, nil)
	})
	if err != nil {
		return nil, notFoundOr(err, "Task not found", "Failed to change status")
	}

	s.metrics.RecordStatusTransition(string(from), string(to), metrics.TriggerManual)
	s.logger.Info("Task status changed",
		zap.String("task_id", task.ID.String()),
		zap.String("user_id", userID.String()),
		zap.String("from", string(from)),
		zap.String("to", string(to)))

	return s.taskResponse(ctx, task.ID)
}

// MoveTask places the task at position in the project column and pushes the
// tasks at or after that position down by one
func (s *taskServiceImpl) MoveTask(ctx context.Context, userID, taskID uuid.UUID, req *dto.MoveTaskRequest) (*dto.TaskResponse, error) {
	_, task, err := s.editableTask(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}
	if req.Position == nil || *req.Position < 0 {
		return nil, response.NewAppError(response.ErrCodeValidation, "Position must be zero or greater", "")
	}
	position := *req.Position

	details := fmt.Sprintf("Moved out of project to position %d", position)
	if req.ProjectID != nil {
		project, err := s.projectRepo.FindByID(ctx, *req.ProjectID)
		if err != nil {
			return nil, notFoundOr(err, "Project not found", "Failed to load project")
		}
		details = fmt.Sprintf("Moved to project %q at position %d", project.Name, position)
	}

	err = s.transactor.Transaction(ctx, func(ctx context.Context) error {
		if err := s.taskRepo.ShiftPositions(ctx, req.ProjectID, position, task.ID); err != nil {
			return err
		}
		task.ProjectID = req.ProjectID
		task.Position = position
		if err := s.taskRepo.Update(ctx, task); err != nil {
			return err
		}
		return s.history.record(ctx, task.ID, userID, domain.HistoryActionMoved, details, nil)
	})
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to move task", err.Error())
	}

	return s.taskResponse(ctx, task.ID)
}

func (s *taskServiceImpl) DeleteTask(ctx context.Context, userID, taskID uuid.UUID) error {
	actor, err := loadActor(ctx, s.userRepo, userID)
	if err != nil {
		return err
	}
	task, err := s.taskRepo.FindByID(ctx, taskID)
	if err != nil {
		return notFoundOr(err, "Task not found", "Failed to load task")
	}
	if !task.IsCreator(userID) && !actor.IsAdmin() {
		return response.NewAppError(response.ErrCodeForbidden, "Only the creator or a supervisor can delete this task", "")
	}

	if err := s.taskRepo.Delete(ctx, taskID); err != nil {
		return notFoundOr(err, "Task not found", "Failed to delete task")
	}

	s.logger.Info("Task deleted",
		zap.String("task_id", taskID.String()),
		zap.String("user_id", userID.String()))
	return nil
}

// editableTask loads a task the user may edit: its creator, an assignee or an ADMIN
func (s *taskServiceImpl) editableTask(ctx context.Context, userID, taskID uuid.UUID) (*domain.User, *domain.Task, error) {
	actor, err := loadActor(ctx, s.userRepo, userID)
	if err != nil {
		return nil, nil, err
	}
	task, err := s.taskRepo.FindByID(ctx, taskID)
	if err != nil {
		return nil, nil, notFoundOr(err, "Task not found", "Failed to load task")
	}
	if !canEditTask(task, actor) {
		return nil, nil, response.NewAppError(response.ErrCodeForbidden, "You cannot edit this task", "")
	}
	return actor, task, nil
}

func canEditTask(task *domain.Task, actor *domain.User) bool {
	return task.IsCreator(actor.ID) || task.IsAssignee(actor.ID) || actor.IsAdmin()
}

func (s *taskServiceImpl) taskResponse(ctx context.Context, taskID uuid.UUID) (*dto.TaskResponse, error) {
	task, err := s.taskRepo.FindDetail(ctx, taskID)
	if err != nil {
		return nil, notFoundOr(err, "Task not found", "Failed to load task")
	}
	resp := toTaskResponse(task, int64(len(task.Comments)), s.now())
	return &resp, nil
}

type statusChange struct {
	from domain.TaskStatus
	to   domain.TaskStatus
}

// authorizeTransition maps state machine errors to API errors
func authorizeTransition(task *domain.Task, actor *domain.User, to domain.TaskStatus) (workflow.Action, error) {
	action, err := workflow.Authorize(task, workflow.ActorOf(actor), to)
	switch {
	case err == nil:
		return action, nil
	case errors.Is(err, workflow.ErrInvalidTransition):
		return "", response.NewAppError(response.ErrCodeInvalidTransition,
			fmt.Sprintf("Cannot change status from %s to %s", task.Status, to), "")
	case errors.Is(err, workflow.ErrNotPermitted):
		return "", response.NewAppError(response.ErrCodeForbidden,
			fmt.Sprintf("You are not allowed to %s this task", strings.ToLower(string(action))), "")
	default:
		return "", response.NewAppError(response.ErrCodeInternal, "Failed to check transition", err.Error())
	}
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}

func sameIDSet(a, b []uuid.UUID) bool {
	if len(a) != len(b) {
		return false
	}
	return len(diffIDs(a, b)) == 0
}

// diffIDs returns the ids in a that are not in b
func diffIDs(a, b []uuid.UUID) []uuid.UUID {
	in := make(map[uuid.UUID]struct{}, len(b))
	for _, id := range b {
		in[id] = struct{}{}
	}
	var out []uuid.UUID
	for _, id := range a {
		if _, ok := in[id]; !ok {
			out = append(out, id)
		}
	}
	return out
}

func sortedKeys(m map[string]fieldChange) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
