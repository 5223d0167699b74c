package repository

import (
	"context"

	"gorm.io/gorm"

	"enlistment/backend/internal/domain"
	"enlistment/backend/internal/model"
	pkgerrors "enlistment/backend/pkg/errors"
)

// SectionRepository 班级数据访问接口
type SectionRepository interface {
	// Create 新建班级，同一事务内以 roomVersion 为条件推进教室版本
	Create(ctx context.Context, section *domain.Section, roomVersion int) error
	GetByID(ctx context.Context, id string) (*domain.Section, error)
	List(ctx context.Context) ([]*domain.Section, error)
	ListPage(ctx context.Context, offset, limit int) ([]*domain.Section, int64, error)
	ListByRoom(ctx context.Context, roomName string) ([]*domain.Section, error)
}

type sectionRepo struct {
	db *gorm.DB
}

func NewSectionRepo(db *gorm.DB) SectionRepository {
	return &sectionRepo{db: db}
}

// Create 教室版本是同教室建班的并发令牌：两个并发请求读到同一版本时
// 只有一个能推进版本并插入，另一个返回 ErrOptimisticLock 后重新校验冲突。
// 唯一索引 uq_sections_room_schedule 与主键兜底，冲突时返回 gorm.ErrDuplicatedKey。
func (r *sectionRepo) Create(ctx context.Context, section *domain.Section, roomVersion int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.Room{}).
			Where("name = ? AND version = ?", section.Room.Name, roomVersion).
			Update("version", roomVersion+1)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return pkgerrors.ErrOptimisticLock
		}

		row := toSectionModel(section)
		if err := tx.Create(row).Error; err != nil {
			return err
		}
		section.Version = row.Version
		return nil
	})
}

func (r *sectionRepo) GetByID(ctx context.Context, id string) (*domain.Section, error) {
	var row model.Section
	err := r.db.WithContext(ctx).
		Preload("Room").
		Where("section_id = ?", id).
		First(&row).Error
	if err != nil {
		return nil, err
	}
	return toDomainSection(&row)
}

func (r *sectionRepo) List(ctx context.Context) ([]*domain.Section, error) {
	var rows []model.Section
	err := r.db.WithContext(ctx).
		Preload("Room").
		Order("section_id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return toDomainSections(rows)
}

func (r *sectionRepo) ListPage(ctx context.Context, offset, limit int) ([]*domain.Section, int64, error) {
	var (
		rows  []model.Section
		total int64
	)
	if err := r.db.WithContext(ctx).Model(&model.Section{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := r.db.WithContext(ctx).
		Preload("Room").
		Order("section_id ASC").
		Offset(offset).Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	sections, err := toDomainSections(rows)
	return sections, total, err
}

func (r *sectionRepo) ListByRoom(ctx context.Context, roomName string) ([]*domain.Section, error) {
	var rows []model.Section
	err := r.db.WithContext(ctx).
		Preload("Room").
		Where("room_name = ?", roomName).
		Order("section_id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return toDomainSections(rows)
}
