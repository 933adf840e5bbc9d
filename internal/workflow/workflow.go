// Package workflow holds the task status state machine: the manual transition
// table with its actor rules, the checklist-driven automatic transitions and
// the derived OVERDUE view.
package workflow

import (
	"errors"
	"math"
	"time"

	"github.com/google/uuid"

	"task-tracker-api/internal/domain"
)

var (
	// ErrInvalidTransition is returned when no edge joins the two statuses
	ErrInvalidTransition = errors.New("invalid status transition")
	// ErrNotPermitted is returned when the actor may not fire an existing edge
	ErrNotPermitted = errors.New("actor not permitted to perform transition")
)

// Actor is the user requesting a transition
type Actor struct {
	ID   uuid.UUID
	Role domain.Role
}

// ActorOf builds an Actor from a user
func ActorOf(u *domain.User) Actor {
	return Actor{ID: u.ID, Role: u.Role}
}

// Action names a manual transition
type Action string

const (
	ActionStart   Action = "START"
	ActionSubmit  Action = "SUBMIT"
	ActionApprove Action = "APPROVE"
	ActionReject  Action = "REJECT"
	ActionReopen  Action = "REOPEN"
)

type actorRule func(task *domain.Task, actor Actor) bool

func assigneeOrCreator(task *domain.Task, actor Actor) bool {
	return task.IsCreator(actor.ID) || task.IsAssignee(actor.ID)
}

func creatorOrAdmin(task *domain.Task, actor Actor) bool {
	return task.IsCreator(actor.ID) || actor.Role == domain.RoleAdmin
}

type edge struct {
	from domain.TaskStatus
	to   domain.TaskStatus
}

type transition struct {
	action  Action
	allowed actorRule
}

var transitions = map[edge]transition{
	{domain.TaskStatusOpen, domain.TaskStatusInProgress}:            {ActionStart, assigneeOrCreator},
	{domain.TaskStatusInProgress, domain.TaskStatusWaitingApproval}: {ActionSubmit, assigneeOrCreator},
	{domain.TaskStatusWaitingApproval, domain.TaskStatusCompleted}:  {ActionApprove, creatorOrAdmin},
	{domain.TaskStatusWaitingApproval, domain.TaskStatusInProgress}: {ActionReject, creatorOrAdmin},
	{domain.TaskStatusCompleted, domain.TaskStatusInProgress}:       {ActionReopen, creatorOrAdmin},
}

// CanTransition reports whether the table has an edge from -> to
func CanTransition(from, to domain.TaskStatus) bool {
	_, ok := transitions[edge{from, to}]
	return ok
}

// Authorize checks that actor may move task to the target status and returns
// the action that edge represents
func Authorize(task *domain.Task, actor Actor, to domain.TaskStatus) (Action, error) {
	t, ok := transitions[edge{task.Status, to}]
	if !ok {
		return "", ErrInvalidTransition
	}
	if !t.allowed(task, actor) {
		return t.action, ErrNotPermitted
	}
	return t.action, nil
}

// NextTargets lists the statuses reachable from status in one manual step
func NextTargets(status domain.TaskStatus) []domain.TaskStatus {
	var out []domain.TaskStatus
	for _, s := range domain.TaskStatuses {
		if CanTransition(status, s) {
			out = append(out, s)
		}
	}
	return out
}

// ToggleTopic returns the status a topic moves to when toggled.
// DONE goes back to PENDING, anything else becomes DONE.
func ToggleTopic(current domain.TopicStatus) domain.TopicStatus {
	if current == domain.TopicStatusDone {
		return domain.TopicStatusPending
	}
	return domain.TopicStatusDone
}

// ApplyToggle flips topic and maintains its completion metadata
func ApplyToggle(topic *domain.TaskTopic, by uuid.UUID, now time.Time) {
	topic.Status = ToggleTopic(topic.Status)
	if topic.Status == domain.TopicStatusDone {
		completer := by
		at := now
		topic.CompletedBy = &completer
		topic.CompletedAt = &at
		return
	}
	topic.CompletedBy = nil
	topic.CompletedAt = nil
}

// AutoTransition computes the status change caused by a topic toggle.
// topics must reflect the state after the toggle and toggled is the new status
// of the toggled topic. ok is false when no automatic transition fires.
func AutoTransition(current domain.TaskStatus, topics []domain.TaskTopic, toggled domain.TopicStatus) (next domain.TaskStatus, ok bool) {
	done, total := countDone(topics)

	switch {
	case total > 0 && done == total &&
		current != domain.TaskStatusWaitingApproval && current != domain.TaskStatusCompleted:
		return domain.TaskStatusWaitingApproval, true
	case toggled == domain.TopicStatusPending && current == domain.TaskStatusWaitingApproval:
		return domain.TaskStatusInProgress, true
	case toggled == domain.TopicStatusDone && current == domain.TaskStatusOpen:
		return domain.TaskStatusInProgress, true
	}
	return current, false
}

// Progress is the rounded percentage of DONE topics, 0 for an empty checklist
func Progress(topics []domain.TaskTopic) int {
	done, total := countDone(topics)
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(done) / float64(total) * 100))
}

func countDone(topics []domain.TaskTopic) (done, total int) {
	for i := range topics {
		if topics[i].IsDone() {
			done++
		}
	}
	return done, len(topics)
}

// IsOverdue reports whether task is past due and unfinished at now
func IsOverdue(task *domain.Task, now time.Time) bool {
	return task.DueDate != nil && task.DueDate.Before(now) && task.Status != domain.TaskStatusCompleted
}

// Display returns the status shown to clients at now
func Display(task *domain.Task, now time.Time) domain.DisplayStatus {
	if IsOverdue(task, now) {
		return domain.DisplayStatusOverdue
	}
	return domain.DisplayStatus(task.Status)
}
