package service

import (
	"encoding/json"
	"time"

	"task-tracker-api/internal/domain"
	"task-tracker-api/internal/dto"
	"task-tracker-api/internal/workflow"
)

func toUserSummary(u *domain.User) *dto.UserSummary {
	if u == nil {
		return nil
	}
	return &dto.UserSummary{ID: u.ID, Name: u.Name, Email: u.Email}
}

func toUserResponse(u *domain.User) dto.UserResponse {
	resp := dto.UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      string(u.Role),
		TeamID:    u.TeamID,
		CreatedAt: u.CreatedAt,
	}
	if u.Team != nil {
		resp.Team = &dto.TeamSummary{ID: u.Team.ID, Name: u.Team.Name}
	}
	return resp
}

func toTeamResponse(t *domain.Team) dto.TeamResponse {
	members := make([]dto.UserSummary, 0, len(t.Members))
	for i := range t.Members {
		members = append(members, *toUserSummary(&t.Members[i]))
	}
	return dto.TeamResponse{
		ID:          t.ID,
		Name:        t.Name,
		Description: t.Description,
		Members:     members,
		CreatedAt:   t.CreatedAt,
	}
}

func toSupervisorGroupResponse(g *domain.SupervisorGroup) dto.SupervisorGroupResponse {
	members := make([]dto.UserSummary, 0, len(g.Members))
	for _, m := range g.Members {
		if m.User != nil {
			members = append(members, *toUserSummary(m.User))
			continue
		}
		members = append(members, dto.UserSummary{ID: m.UserID})
	}
	return dto.SupervisorGroupResponse{
		ID:           g.ID,
		Name:         g.Name,
		SupervisorID: g.SupervisorID,
		Supervisor:   toUserSummary(g.Supervisor),
		Members:      members,
		CreatedAt:    g.CreatedAt,
		UpdatedAt:    g.UpdatedAt,
	}
}

func toProjectResponse(p *domain.Project, taskCount int64) dto.ProjectResponse {
	return dto.ProjectResponse{
		ID:                p.ID,
		Name:              p.Name,
		Description:       p.Description,
		Color:             p.Color,
		Icon:              p.Icon,
		IsArchived:        p.IsArchived,
		CreatorID:         p.CreatorID,
		Creator:           toUserSummary(p.Creator),
		TeamID:            p.TeamID,
		SupervisorGroupID: p.SupervisorGroupID,
		TaskCount:         taskCount,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
}

func toTopicResponse(t *domain.TaskTopic) dto.TopicResponse {
	return dto.TopicResponse{
		ID:          t.ID,
		TaskID:      t.TaskID,
		Title:       t.Title,
		Status:      string(t.Status),
		OrderIndex:  t.OrderIndex,
		CompletedBy: t.CompletedBy,
		CompletedAt: t.CompletedAt,
		Completer:   toUserSummary(t.Completer),
	}
}

func toTaskResponse(t *domain.Task, commentCount int64, now time.Time) dto.TaskResponse {
	assignees := make([]dto.AssigneeResponse, 0, len(t.Assignees))
	for _, a := range t.Assignees {
		assignees = append(assignees, dto.AssigneeResponse{UserID: a.UserID, User: toUserSummary(a.User)})
	}
	topics := make([]dto.TopicResponse, 0, len(t.Topics))
	for i := range t.Topics {
		topics = append(topics, toTopicResponse(&t.Topics[i]))
	}

	return dto.TaskResponse{
		ID:            t.ID,
		Title:         t.Title,
		Description:   t.Description,
		Priority:      string(t.Priority),
		Status:        string(t.Status),
		DisplayStatus: string(workflow.Display(t, now)),
		IsOverdue:     workflow.IsOverdue(t, now),
		DueDate:       t.DueDate,
		CreatorID:     t.CreatorID,
		Creator:       toUserSummary(t.Creator),
		ProjectID:     t.ProjectID,
		Position:      t.Position,
		Assignees:     assignees,
		Topics:        topics,
		Progress:      workflow.Progress(t.Topics),
		CommentCount:  commentCount,
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
	}
}

func toCommentResponse(c *domain.Comment) dto.CommentResponse {
	return dto.CommentResponse{
		ID:        c.ID,
		TaskID:    c.TaskID,
		UserID:    c.UserID,
		User:      toUserSummary(c.User),
		Content:   c.Content,
		CreatedAt: c.CreatedAt,
	}
}

func toHistoryResponse(h *domain.TaskHistory) dto.HistoryResponse {
	resp := dto.HistoryResponse{
		ID:        h.ID,
		Action:    string(h.Action),
		Details:   h.Details,
		UserID:    h.UserID,
		User:      toUserSummary(h.User),
		CreatedAt: h.CreatedAt,
	}
	if len(h.Changes) > 0 {
		resp.Changes = json.RawMessage(h.Changes)
	}
	return resp
}

func toTaskDetailResponse(t *domain.Task, now time.Time) dto.TaskDetailResponse {
	comments := make([]dto.CommentResponse, 0, len(t.Comments))
	for i := range t.Comments {
		comments = append(comments, toCommentResponse(&t.Comments[i]))
	}
	history := make([]dto.HistoryResponse, 0, len(t.History))
	for i := range t.History {
		history = append(history, toHistoryResponse(&t.History[i]))
	}

	detail := dto.TaskDetailResponse{
		TaskResponse: toTaskResponse(t, int64(len(t.Comments)), now),
		Comments:     comments,
		History:      history,
	}
	if t.Project != nil {
		detail.Project = &dto.ProjectSummary{
			ID:    t.Project.ID,
			Name:  t.Project.Name,
			Color: t.Project.Color,
			Icon:  t.Project.Icon,
		}
	}
	return detail
}

func toNotificationResponse(n *domain.Notification) dto.NotificationResponse {
	return dto.NotificationResponse{
		ID:        n.ID,
		Type:      string(n.Type),
		Content:   n.Content,
		TaskID:    n.TaskID,
		Read:      n.Read,
		CreatedAt: n.CreatedAt,
	}
}
