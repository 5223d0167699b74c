package repository

import (
	"context"

	"gorm.io/gorm"

	"enlistment/backend/internal/domain"
	"enlistment/backend/internal/model"
)

// StudentRepository 学生数据访问接口
type StudentRepository interface {
	Create(ctx context.Context, student *model.Student) error
	// GetByNumber 学生账号行（登录、个人信息）
	GetByNumber(ctx context.Context, number int) (*model.Student, error)
	// Load 学生聚合快照：版本号 + 已选班级
	Load(ctx context.Context, number int) (*domain.Student, error)
	ListBySection(ctx context.Context, sectionID string) ([]model.Student, error)
}

type studentRepo struct {
	db *gorm.DB
}

func NewStudentRepo(db *gorm.DB) StudentRepository {
	return &studentRepo{db: db}
}

func (r *studentRepo) Create(ctx context.Context, student *model.Student) error {
	if student.Version == 0 {
		student.Version = 1
	}
	return r.db.WithContext(ctx).Create(student).Error
}

func (r *studentRepo) GetByNumber(ctx context.Context, number int) (*model.Student, error) {
	var student model.Student
	err := r.db.WithContext(ctx).Where("student_number = ?", number).First(&student).Error
	if err != nil {
		return nil, err
	}
	return &student, nil
}

// Load 必须先读学生行再读关联：关联变化总伴随学生版本推进，
// 先读到的旧版本会让后续条件写入失败，而不会出现"新版本 + 旧关联"的快照。
func (r *studentRepo) Load(ctx context.Context, number int) (*domain.Student, error) {
	db := r.db.WithContext(ctx)

	var row model.Student
	if err := db.Where("student_number = ?", number).First(&row).Error; err != nil {
		return nil, err
	}

	var sectionIDs []string
	err := db.Model(&model.StudentSection{}).
		Where("student_number = ?", number).
		Pluck("section_id", &sectionIDs).Error
	if err != nil {
		return nil, err
	}

	student := &domain.Student{Number: row.StudentNumber, Version: row.Version}
	if len(sectionIDs) == 0 {
		return student, nil
	}

	var rows []model.Section
	err = db.Preload("Room").
		Where("section_id IN ?", sectionIDs).
		Order("section_id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	if student.Sections, err = toDomainSections(rows); err != nil {
		return nil, err
	}
	return student, nil
}

func (r *studentRepo) ListBySection(ctx context.Context, sectionID string) ([]model.Student, error) {
	var students []model.Student
	err := r.db.WithContext(ctx).
		Joins("JOIN student_sections ON student_sections.student_number = students.student_number").
		Where("student_sections.section_id = ?", sectionID).
		Order("students.lastname ASC, students.firstname ASC, students.student_number ASC").
		Find(&students).Error
	return students, err
}
