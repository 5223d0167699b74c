package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"enlistment/backend/internal/domain"
	"enlistment/backend/internal/model"
	pkgerrors "enlistment/backend/pkg/errors"
)

// EnlistmentRepository 选课持久化单元
type EnlistmentRepository interface {
	// Save 在一个事务内写入班级、学生与关联记录。
	// 班级与学生均以读取时的版本为条件更新，任一条件不满足返回
	// pkgerrors.ErrOptimisticLock 且不写入任何数据；成功后两者版本各加 1。
	Save(ctx context.Context, action domain.Action, student *domain.Student, section *domain.Section) error
}

type enlistmentRepo struct {
	db *gorm.DB
}

func NewEnlistmentRepo(db *gorm.DB) EnlistmentRepository {
	return &enlistmentRepo{db: db}
}

func (r *enlistmentRepo) Save(ctx context.Context, action domain.Action, student *domain.Student, section *domain.Section) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// ── 班级 ──
		result := tx.Model(&model.Section{}).
			Where("section_id = ? AND version = ?", section.ID, section.Version).
			Updates(map[string]interface{}{
				"enrolled_count": section.Enrolled,
				"version":        section.Version + 1,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return pkgerrors.ErrOptimisticLock
		}

		// ── 学生 ──
		result = tx.Model(&model.Student{}).
			Where("student_number = ? AND version = ?", student.Number, student.Version).
			Update("version", student.Version+1)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return pkgerrors.ErrOptimisticLock
		}

		// ── 关联 ──
		switch action {
		case domain.ActionEnlist:
			return tx.Create(&model.StudentSection{
				StudentNumber: student.Number,
				SectionID:     section.ID,
			}).Error
		case domain.ActionCancel:
			result = tx.Where("student_number = ? AND section_id = ?", student.Number, section.ID).
				Delete(&model.StudentSection{})
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return pkgerrors.ErrOptimisticLock
			}
			return nil
		default:
			return fmt.Errorf("无效的选课动作: %q", string(action))
		}
	})
	if err != nil {
		return err
	}

	section.Version++
	student.Version++
	return nil
}
