package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"task-tracker-api/internal/domain"
)

// SupervisorGroupRepository defines the interface for supervisor group data access
type SupervisorGroupRepository interface {
	Create(ctx context.Context, group *domain.SupervisorGroup, memberIDs []uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.SupervisorGroup, error)
	FindBySupervisor(ctx context.Context, supervisorID uuid.UUID) ([]*domain.SupervisorGroup, error)
	UpdateName(ctx context.Context, id uuid.UUID, name string) error
	ReplaceMembers(ctx context.Context, id uuid.UUID, memberIDs []uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
	MemberIDsBySupervisor(ctx context.Context, supervisorID uuid.UUID) ([]uuid.UUID, error)
}

type supervisorGroupRepositoryImpl struct {
	db *gorm.DB
}

// NewSupervisorGroupRepository creates a new instance of SupervisorGroupRepository
func NewSupervisorGroupRepository(db *gorm.DB) SupervisorGroupRepository {
	return &supervisorGroupRepositoryImpl{db: db}
}

// Create inserts the group and its member rows
func (r *supervisorGroupRepositoryImpl) Create(ctx context.Context, group *domain.SupervisorGroup, memberIDs []uuid.UUID) error {
	return conn(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Members", "Supervisor").Create(group).Error; err != nil {
			return err
		}
		return insertMembers(tx, group.ID, memberIDs)
	})
}

func (r *supervisorGroupRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.SupervisorGroup, error) {
	var group domain.SupervisorGroup
	if err := conn(ctx, r.db).
		Preload("Supervisor").
		Preload("Members.User").
		Where("id = ?", id).
		First(&group).Error; err != nil {
		return nil, err
	}
	return &group, nil
}

// FindBySupervisor returns the groups owned by supervisorID, newest first
func (r *supervisorGroupRepositoryImpl) FindBySupervisor(ctx context.Context, supervisorID uuid.UUID) ([]*domain.SupervisorGroup, error) {
	var groups []*domain.SupervisorGroup
	if err := conn(ctx, r.db).
		Preload("Members.User").
		Where("supervisor_id = ?", supervisorID).
		Order("created_at DESC").
		Find(&groups).Error; err != nil {
		return nil, err
	}
	return groups, nil
}

func (r *supervisorGroupRepositoryImpl) UpdateName(ctx context.Context, id uuid.UUID, name string) error {
	return updateOne(conn(ctx, r.db).Model(&domain.SupervisorGroup{}).Where("id = ?", id).Update("name", name))
}

// ReplaceMembers swaps the whole member set
func (r *supervisorGroupRepositoryImpl) ReplaceMembers(ctx context.Context, id uuid.UUID, memberIDs []uuid.UUID) error {
	return conn(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("supervisor_group_id = ?", id).Delete(&domain.SupervisorGroupMember{}).Error; err != nil {
			return err
		}
		return insertMembers(tx, id, memberIDs)
	})
}

// Delete removes the group with its member rows
func (r *supervisorGroupRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return conn(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("supervisor_group_id = ?", id).Delete(&domain.SupervisorGroupMember{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&domain.Project{}).Where("supervisor_group_id = ?", id).Update("supervisor_group_id", nil).Error; err != nil {
			return err
		}
		return updateOne(tx.Where("id = ?", id).Delete(&domain.SupervisorGroup{}))
	})
}

// MemberIDsBySupervisor returns the distinct members of every group owned by supervisorID
func (r *supervisorGroupRepositoryImpl) MemberIDsBySupervisor(ctx context.Context, supervisorID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	if err := conn(ctx, r.db).
		Model(&domain.SupervisorGroupMember{}).
		Distinct("supervisor_group_members.user_id").
		Joins("JOIN supervisor_groups sg ON sg.id = supervisor_group_members.supervisor_group_id").
		Where("sg.supervisor_id = ?", supervisorID).
		Pluck("supervisor_group_members.user_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func insertMembers(tx *gorm.DB, groupID uuid.UUID, memberIDs []uuid.UUID) error {
	if len(memberIDs) == 0 {
		return nil
	}
	members := make([]domain.SupervisorGroupMember, 0, len(memberIDs))
	for _, uid := range memberIDs {
		members = append(members, domain.SupervisorGroupMember{SupervisorGroupID: groupID, UserID: uid})
	}
	return tx.Omit("User").Create(&members).Error
}
