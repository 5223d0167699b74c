package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"enlistment/backend/internal/domain"
	"enlistment/backend/internal/dto"
	"enlistment/backend/internal/model"
	"enlistment/backend/internal/repository"
	"enlistment/backend/pkg/database"
)

// ── 真实 Repository + SQLite ──

func newSQLiteRepo(t *testing.T) (*repository.Repository, *gorm.DB) {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name)), database.NewGormConfig("silent"))
	if err != nil {
		t.Fatalf("打开 SQLite 失败: %v", err)
	}
	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	if err := db.AutoMigrate(model.All()...); err != nil {
		t.Fatalf("AutoMigrate 失败: %v", err)
	}
	return repository.NewRepository(db), db
}

func TestEnlistService_SQLite_ConcurrentSeats(t *testing.T) {
	repo, db := newSQLiteRepo(t)
	ctx := context.Background()
	catalog := NewCatalogService(repo, zap.NewNop())
	sections := NewSectionService(testEnlistConfig(10), repo, zap.NewNop())
	enlist := NewEnlistService(testEnlistConfig(10), repo, zap.NewNop())

	const seats, students = 4, 10
	if _, err := catalog.CreateRoom(ctx, &dto.CreateRoomRequest{Name: "F612", Capacity: seats}); err != nil {
		t.Fatal(err)
	}
	if _, err := catalog.CreateSubject(ctx, &dto.CreateSubjectRequest{SubjectID: "MATH101"}); err != nil {
		t.Fatal(err)
	}
	if _, err := sections.Create(ctx, sectionReq("S1", "MTH", "09:00", "10:00", "F612")); err != nil {
		t.Fatal(err)
	}
	for n := 1; n <= students; n++ {
		if err := repo.Student.Create(ctx, &model.Student{
			StudentNumber: n, Firstname: "F", Lastname: fmt.Sprintf("L%02d", n), PasswordHash: "x",
		}); err != nil {
			t.Fatal(err)
		}
	}

	var succeeded atomic.Int32
	var g errgroup.Group
	for n := 1; n <= students; n++ {
		g.Go(func() error {
			_, err := enlist.Execute(ctx, n, "S1", domain.ActionEnlist)
			var capErr *domain.CapacityExceededError
			switch {
			case err == nil:
				succeeded.Add(1)
			case errors.As(err, &capErr):
			default:
				return err
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatalf("意外错误: %v", err)
	}

	if succeeded.Load() != seats {
		t.Errorf("期望 %d 人成功，实际=%d", seats, succeeded.Load())
	}
	var links int64
	db.Model(&model.StudentSection{}).Where("section_id = ?", "S1").Count(&links)
	sec, err := repo.Section.GetByID(ctx, "S1")
	if err != nil {
		t.Fatal(err)
	}
	if sec.Enrolled != seats || links != seats {
		t.Errorf("已选人数与关联记录应一致: enrolled=%d links=%d", sec.Enrolled, links)
	}
	if sec.Version != 1+seats {
		t.Errorf("每次成功提交推进一次版本，期望=%d，实际=%d", 1+seats, sec.Version)
	}
}

func TestEnlistService_SQLite_EnlistCancelInterleaved(t *testing.T) {
	repo, _ := newSQLiteRepo(t)
	ctx := context.Background()
	catalog := NewCatalogService(repo, zap.NewNop())
	sections := NewSectionService(testEnlistConfig(10), repo, zap.NewNop())
	enlist := NewEnlistService(testEnlistConfig(20), repo, zap.NewNop())

	_, _ = catalog.CreateRoom(ctx, &dto.CreateRoomRequest{Name: "F612", Capacity: 50})
	_, _ = catalog.CreateSubject(ctx, &dto.CreateSubjectRequest{SubjectID: "MATH101"})
	for _, req := range []*dto.CreateSectionRequest{
		sectionReq("A", "MTH", "09:00", "10:00", "F612"),
		sectionReq("B", "TF", "09:00", "10:00", "F612"),
	} {
		if _, err := sections.Create(ctx, req); err != nil {
			t.Fatal(err)
		}
	}
	_ = repo.Student.Create(ctx, &model.Student{StudentNumber: 1, Firstname: "F", Lastname: "L", PasswordHash: "x"})
	if _, err := enlist.Execute(ctx, 1, "A", domain.ActionEnlist); err != nil {
		t.Fatal(err)
	}

	// 同一学生并发退选 A、选 B：学生版本冲突时失败方重新加载后重试
	var g errgroup.Group
	g.Go(func() error {
		_, err := enlist.Execute(ctx, 1, "A", domain.ActionCancel)
		return err
	})
	g.Go(func() error {
		_, err := enlist.Execute(ctx, 1, "B", domain.ActionEnlist)
		return err
	})
	if err := g.Wait(); err != nil {
		t.Fatalf("两个请求都应成功: %v", err)
	}

	student, err := repo.Student.Load(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	if ids := student.SectionIDs(); len(ids) != 1 || ids[0] != "B" {
		t.Errorf("期望最终只选 B，实际=%v", ids)
	}
	a, _ := repo.Section.GetByID(ctx, "A")
	b, _ := repo.Section.GetByID(ctx, "B")
	if a.Enrolled != 0 || b.Enrolled != 1 {
		t.Errorf("已选人数异常: A=%d B=%d", a.Enrolled, b.Enrolled)
	}
}
