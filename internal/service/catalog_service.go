package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"enlistment/backend/internal/domain"
	"enlistment/backend/internal/dto"
	"enlistment/backend/internal/model"
	"enlistment/backend/internal/repository"
)

// ── 基础数据模块业务错误 ──

var (
	ErrRoomExists    = errors.New("教室已存在")
	ErrSubjectExists = errors.New("课程已存在")
	ErrStudentExists = errors.New("学号已存在")
)

// CatalogService 教室、课程、学生档案维护（管理员）
type CatalogService interface {
	CreateRoom(ctx context.Context, req *dto.CreateRoomRequest) (*dto.RoomResponse, error)
	ListRooms(ctx context.Context) ([]dto.RoomResponse, error)
	CreateSubject(ctx context.Context, req *dto.CreateSubjectRequest) (*dto.SubjectResponse, error)
	ListSubjects(ctx context.Context) ([]dto.SubjectResponse, error)
	CreateStudent(ctx context.Context, req *dto.CreateStudentRequest) (*dto.StudentResponse, error)
	// SectionPage 建班表单所需的教室、课程与星期组合
	SectionPage(ctx context.Context) (*dto.SectionPageResponse, error)
}

type catalogService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewCatalogService 创建 CatalogService 实例
func NewCatalogService(repo *repository.Repository, logger *zap.Logger) CatalogService {
	return &catalogService{repo: repo, logger: logger}
}

// ── 教室 ──

func (s *catalogService) CreateRoom(ctx context.Context, req *dto.CreateRoomRequest) (*dto.RoomResponse, error) {
	room := &model.Room{Name: req.Name, Capacity: req.Capacity}
	if err := s.repo.Room.Create(ctx, room); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrRoomExists
		}
		s.logger.Error("创建教室失败", zap.String("room", req.Name), zap.Error(err))
		return nil, err
	}
	return &dto.RoomResponse{Name: room.Name, Capacity: room.Capacity}, nil
}

func (s *catalogService) ListRooms(ctx context.Context) ([]dto.RoomResponse, error) {
	rooms, err := s.repo.Room.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.RoomResponse, 0, len(rooms))
	for _, r := range rooms {
		out = append(out, dto.RoomResponse{Name: r.Name, Capacity: r.Capacity})
	}
	return out, nil
}

// ── 课程 ──

func (s *catalogService) CreateSubject(ctx context.Context, req *dto.CreateSubjectRequest) (*dto.SubjectResponse, error) {
	if err := s.repo.Subject.Create(ctx, &model.Subject{SubjectID: req.SubjectID}); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrSubjectExists
		}
		s.logger.Error("创建课程失败", zap.String("subject_id", req.SubjectID), zap.Error(err))
		return nil, err
	}
	return &dto.SubjectResponse{SubjectID: req.SubjectID}, nil
}

func (s *catalogService) ListSubjects(ctx context.Context) ([]dto.SubjectResponse, error) {
	subjects, err := s.repo.Subject.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SubjectResponse, 0, len(subjects))
	for _, sub := range subjects {
		out = append(out, dto.SubjectResponse{SubjectID: sub.SubjectID})
	}
	return out, nil
}

// ── 学生档案 ──

func (s *catalogService) CreateStudent(ctx context.Context, req *dto.CreateStudentRequest) (*dto.StudentResponse, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	student := &model.Student{
		StudentNumber: req.StudentNumber,
		Firstname:     req.Firstname,
		Lastname:      req.Lastname,
		PasswordHash:  string(hash),
	}
	if err := s.repo.Student.Create(ctx, student); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrStudentExists
		}
		s.logger.Error("创建学生失败", zap.Int("student_number", req.StudentNumber), zap.Error(err))
		return nil, err
	}
	return &dto.StudentResponse{
		StudentNumber: student.StudentNumber,
		Firstname:     student.Firstname,
		Lastname:      student.Lastname,
	}, nil
}

// ── 建班页 ──

func (s *catalogService) SectionPage(ctx context.Context) (*dto.SectionPageResponse, error) {
	rooms, err := s.ListRooms(ctx)
	if err != nil {
		return nil, err
	}
	subjects, err := s.ListSubjects(ctx)
	if err != nil {
		return nil, err
	}
	days := make([]string, 0, len(domain.AllDays()))
	for _, d := range domain.AllDays() {
		days = append(days, d.String())
	}
	return &dto.SectionPageResponse{Rooms: rooms, Subjects: subjects, Days: days}, nil
}
