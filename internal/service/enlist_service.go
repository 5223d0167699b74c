package service

import (
	"context"
	"errors"
	"strconv"
	"time"

	"go.uber.org/zap"

	"enlistment/backend/config"
	"enlistment/backend/internal/domain"
	"enlistment/backend/internal/dto"
	"enlistment/backend/internal/repository"
)

// EnlistService 选课业务接口
//
// Execute 每次尝试：
//  1. 加载学生与班级快照（含版本号）
//  2. 内存中执行选课 / 退选规则校验
//  3. 单事务条件写入班级、学生、关联记录
//
// 版本冲突时丢弃快照重新执行，规则性拒绝（满员、时间冲突、未选、不存在）不重试。
// 进程内不加锁，并发隔离完全依赖条件写入。
type EnlistService interface {
	Execute(ctx context.Context, studentNumber int, sectionID string, action domain.Action) (*dto.EnlistResultResponse, error)
	Overview(ctx context.Context, studentNumber int) (*dto.EnlistOverviewResponse, error)
}

type enlistService struct {
	policy RetryPolicy
	repo   *repository.Repository
	logger *zap.Logger
}

// NewEnlistService 创建 EnlistService 实例
func NewEnlistService(cfg *config.EnlistConfig, repo *repository.Repository, logger *zap.Logger) EnlistService {
	return &enlistService{policy: newRetryPolicy(cfg), repo: repo, logger: logger}
}

// ────────────────────── Execute ──────────────────────

func (s *enlistService) Execute(ctx context.Context, studentNumber int, sectionID string, action domain.Action) (*dto.EnlistResultResponse, error) {
	fields := []zap.Field{
		zap.Int("student_number", studentNumber),
		zap.String("section_id", sectionID),
		zap.String("action", string(action)),
	}

	section, attempts, err := retryOnConflict(ctx, s.policy,
		func(int) (*domain.Section, error) {
			return s.attempt(ctx, studentNumber, sectionID, action)
		},
		func(attempt int, next time.Duration) {
			s.logger.Debug("选课版本冲突，重新加载后重试",
				append(fields, zap.Int("attempt", attempt), zap.Duration("backoff", next))...)
		},
	)
	if err != nil {
		var exhausted *domain.ConcurrencyExhaustedError
		if errors.As(err, &exhausted) {
			s.logger.Warn("选课并发冲突重试耗尽", append(fields, zap.Int("attempt", attempts))...)
		} else if !domain.IsRuleViolation(err) && ctx.Err() == nil {
			s.logger.Error("选课失败", append(fields, zap.Error(err))...)
		}
		return nil, err
	}

	s.logger.Info("选课成功", append(fields, zap.Int("attempt", attempts))...)
	return &dto.EnlistResultResponse{
		StudentNumber: studentNumber,
		Action:        string(action),
		Attempts:      attempts,
		Section:       toSectionResponse(section),
	}, nil
}

// attempt 单次 加载 → 校验 → 条件写入
func (s *enlistService) attempt(ctx context.Context, studentNumber int, sectionID string, action domain.Action) (*domain.Section, error) {
	student, err := s.repo.Student.Load(ctx, studentNumber)
	if err != nil {
		return nil, notFound(err, "student", strconv.Itoa(studentNumber))
	}
	section, err := s.repo.Section.GetByID(ctx, sectionID)
	if err != nil {
		return nil, notFound(err, "section", sectionID)
	}

	if err := action.Apply(student, section); err != nil {
		return nil, err
	}

	if err := s.repo.Enlistment.Save(ctx, action, student, section); err != nil {
		return nil, err
	}
	return section, nil
}

// ────────────────────── Overview ──────────────────────

func (s *enlistService) Overview(ctx context.Context, studentNumber int) (*dto.EnlistOverviewResponse, error) {
	student, err := s.repo.Student.Load(ctx, studentNumber)
	if err != nil {
		return nil, notFound(err, "student", strconv.Itoa(studentNumber))
	}

	all, err := s.repo.Section.List(ctx)
	if err != nil {
		s.logger.Error("查询班级列表失败", zap.Error(err))
		return nil, err
	}

	available := make([]*domain.Section, 0, len(all))
	for _, sec := range all {
		if !student.IsEnlisted(sec.ID) {
			available = append(available, sec)
		}
	}

	return &dto.EnlistOverviewResponse{
		StudentNumber: studentNumber,
		Enlisted:      toSectionResponses(student.Sections),
		Available:     toSectionResponses(available),
	}, nil
}
