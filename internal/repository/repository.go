package repository

import "gorm.io/gorm"

// Repository 所有 Repository 的聚合入口
type Repository struct {
	Room       RoomRepository
	Subject    SubjectRepository
	Section    SectionRepository
	Student    StudentRepository
	Admin      AdminRepository
	Enlistment EnlistmentRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		Room:       NewRoomRepo(db),
		Subject:    NewSubjectRepo(db),
		Section:    NewSectionRepo(db),
		Student:    NewStudentRepo(db),
		Admin:      NewAdminRepo(db),
		Enlistment: NewEnlistmentRepo(db),
	}
}
