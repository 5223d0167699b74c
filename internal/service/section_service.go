package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"enlistment/backend/config"
	"enlistment/backend/internal/domain"
	"enlistment/backend/internal/dto"
	"enlistment/backend/internal/repository"
)

// ── 班级模块业务错误 ──

var (
	ErrInvalidSchedule = errors.New("上课时间无效")
)

// SectionService 班级业务接口
type SectionService interface {
	Create(ctx context.Context, req *dto.CreateSectionRequest) (*dto.SectionResponse, error)
	GetByID(ctx context.Context, id string) (*dto.SectionResponse, error)
	List(ctx context.Context, req *dto.SectionListRequest) ([]dto.SectionResponse, int64, error)
}

type sectionService struct {
	policy RetryPolicy
	repo   *repository.Repository
	logger *zap.Logger
}

// NewSectionService 创建 SectionService 实例
func NewSectionService(cfg *config.EnlistConfig, repo *repository.Repository, logger *zap.Logger) SectionService {
	return &sectionService{policy: newRetryPolicy(cfg), repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *sectionService) Create(ctx context.Context, req *dto.CreateSectionRequest) (*dto.SectionResponse, error) {
	schedule, err := domain.ParseSchedule(req.Days, req.StartTime, req.EndTime)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSchedule, err)
	}

	if _, err := s.repo.Subject.GetByID(ctx, req.SubjectID); err != nil {
		return nil, notFound(err, "subject", req.SubjectID)
	}

	// 同教室冲突校验以教室版本为条件提交：并发建班时失败方重新读取后再校验
	section, _, err := retryOnConflict(ctx, s.policy,
		func(int) (*domain.Section, error) {
			return s.attemptCreate(ctx, req, schedule)
		},
		func(attempt int, next time.Duration) {
			s.logger.Debug("建班教室版本冲突，重试",
				zap.String("section_id", req.SectionID),
				zap.String("room", req.RoomName),
				zap.Int("attempt", attempt),
				zap.Duration("backoff", next),
			)
		},
	)
	if err != nil {
		if !domain.IsRuleViolation(err) && !errors.Is(err, domain.ErrInvalidSectionID) {
			s.logger.Error("创建班级失败", zap.String("section_id", req.SectionID), zap.Error(err))
		}
		return nil, err
	}

	s.logger.Info("班级已创建",
		zap.String("section_id", section.ID),
		zap.String("schedule", section.Schedule.Signature()),
		zap.String("room", section.Room.Name),
	)
	resp := toSectionResponse(section)
	return &resp, nil
}

func (s *sectionService) attemptCreate(ctx context.Context, req *dto.CreateSectionRequest, schedule domain.Schedule) (*domain.Section, error) {
	room, err := s.repo.Room.GetByName(ctx, req.RoomName)
	if err != nil {
		return nil, notFound(err, "room", req.RoomName)
	}

	section, err := domain.NewSection(req.SectionID, req.SubjectID, schedule,
		domain.Room{Name: room.Name, Capacity: room.Capacity})
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.Section.ListByRoom(ctx, room.Name)
	if err != nil {
		return nil, err
	}
	if err := section.CheckRoomConflict(existing); err != nil {
		return nil, err
	}

	if err := s.repo.Section.Create(ctx, section, room.Version); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, &domain.DuplicateSectionError{SectionID: section.ID}
		}
		return nil, err
	}
	return section, nil
}

// ────────────────────── GetByID ──────────────────────

func (s *sectionService) GetByID(ctx context.Context, id string) (*dto.SectionResponse, error) {
	section, err := s.repo.Section.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "section", id)
	}
	resp := toSectionResponse(section)
	return &resp, nil
}

// ────────────────────── List ──────────────────────

func (s *sectionService) List(ctx context.Context, req *dto.SectionListRequest) ([]dto.SectionResponse, int64, error) {
	sections, total, err := s.repo.Section.ListPage(ctx, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("查询班级列表失败", zap.Error(err))
		return nil, 0, err
	}
	return toSectionResponses(sections), total, nil
}
